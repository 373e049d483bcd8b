package ldap

import (
	"fmt"

	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
	"github.com/KilimcininKorOglu/ldapcodec/internal/filter"
)

// buildSearch adds the SearchRequest grammar, including the Filter CHOICE,
// and the three search responses.
func buildSearch(g *grammarSet, env *envelope) {
	buildSearchRequest(g, env)
	buildSearchResultEntry(g, env)
	buildSearchResultReference(g, env)
	resultResponse(g, env, ApplicationSearchResultDone, func() ProtocolOp { return &SearchResultDone{} })
}

func buildSearchRequest(g *grammarSet, env *envelope) {
	t := g.table("SearchRequest")
	start := t.state("start", false)
	base := t.state("expectScope", false)
	scope := t.state("expectDerefAliases", false)
	deref := t.state("expectSizeLimit", false)
	size := t.state("expectTimeLimit", false)
	timeLimit := t.state("expectTypesOnly", false)
	typesOnly := t.state("expectFilter", false)
	fs := &filterStates{done: t.state("expectAttributes", false)}
	attrs := t.state("expectAttribute", true)
	attrsDone := t.state("end", true)

	t.on(start, tagOctetString, Transition{
		Next: base,
		Action: setString("baseObject", func(c *container, s string) {
			opAs[*SearchRequest](c).BaseObject = s
		}),
	})
	t.on(base, tagEnumerated, Transition{
		Next: scope,
		Action: setInt("scope", int(ScopeBaseObject), int(ScopeWholeSubtree), func(c *container, v int) {
			opAs[*SearchRequest](c).Scope = SearchScope(v)
		}),
	})
	t.on(scope, tagEnumerated, Transition{
		Next: deref,
		Action: setInt("derefAliases", int(DerefNever), int(DerefAlways), func(c *container, v int) {
			opAs[*SearchRequest](c).DerefAliases = DerefAliases(v)
		}),
	})
	t.on(deref, tagInteger, Transition{
		Next: size,
		Action: setInt("sizeLimit", int32(0), int32(maxInt), func(c *container, v int32) {
			opAs[*SearchRequest](c).SizeLimit = v
		}),
	})
	t.on(size, tagInteger, Transition{
		Next: timeLimit,
		Action: setInt("timeLimit", int32(0), int32(maxInt), func(c *container, v int32) {
			opAs[*SearchRequest](c).TimeLimit = v
		}),
	})
	t.on(timeLimit, tagBoolean, Transition{
		Next: typesOnly,
		Action: setBool("typesOnly", func(c *container, v bool) {
			opAs[*SearchRequest](c).TypesOnly = v
		}),
	})

	buildFilter(t, fs, typesOnly)

	t.on(fs.done, tagSequence, Transition{
		Next:   attrs,
		Resume: attrsDone,
		Action: func(c *container, _ *ber.TLV) error {
			if len(c.filters) != 0 {
				return fmt.Errorf("%w: attributes inside an open filter", ErrInvalidFilter)
			}
			return c.claim("attributes")
		},
	})
	t.on(attrs, tagOctetString, Transition{
		Next: attrs,
		Action: appendString(func(c *container, s string) {
			req := opAs[*SearchRequest](c)
			req.Attributes = append(req.Attributes, s)
		}),
	})

	env.operation(ApplicationSearchRequest, start, func() ProtocolOp { return &SearchRequest{} }, nil, nil)
}

// filterStates are the states a Filter returns to once it closes. Which
// one applies depends on the innermost open AND, OR or NOT.
type filterStates struct {
	done    State // the outermost filter is complete
	setNext State // inside AND/OR after at least one member
	notDone State // inside NOT after its operand
}

// buildFilter adds the Filter grammar, entered from each of entries.
//
//	Filter ::= CHOICE {
//	     and             [0] SET SIZE (1..MAX) OF filter Filter,
//	     or              [1] SET SIZE (1..MAX) OF filter Filter,
//	     not             [2] Filter,
//	     equalityMatch   [3] AttributeValueAssertion,
//	     substrings      [4] SubstringFilter,
//	     greaterOrEqual  [5] AttributeValueAssertion,
//	     lessOrEqual     [6] AttributeValueAssertion,
//	     present         [7] AttributeDescription,
//	     approxMatch     [8] AttributeValueAssertion,
//	     extensibleMatch [9] MatchingRuleAssertion,
//	     ...  }
func buildFilter(t *table, fs *filterStates, entry State) {
	setStart := t.state("expectSetMember", false)
	fs.setNext = t.state("expectSetMemberOrEnd", true)
	notStart := t.state("expectNotOperand", false)
	fs.notDone = t.state("endNot", true)

	avaStart := t.state("expectAttributeDesc", false)
	avaDesc := t.state("expectAssertionValue", false)
	avaValue := t.state("endAssertion", true)

	subStart := t.state("expectSubstringsType", false)
	subType := t.state("expectSubstrings", false)
	subSeq := t.state("expectSubstring", false)
	subInitial := t.state("expectAnyOrFinal", true)
	subAny := t.state("expectAnyOrFinal", true)
	subFinal := t.state("endSubstrings", true)
	subDone := t.state("endSubstrings", true)

	extStart := t.state("expectMatchingRule", false)
	extRule := t.state("expectMatchingType", false)
	extType := t.state("expectMatchValue", false)
	extValue := t.state("expectDNAttributes", true)
	extDN := t.state("endExtensible", true)

	pop := func(c *container) error { return popFilter(c, fs) }
	open := func(next State, action Action) *Transition {
		return &Transition{Next: next, Action: action, OnClose: pop}
	}
	assertion := func(typ filter.FilterType) *Transition {
		return open(avaStart, pushFilter(typ))
	}

	choice := map[byte]*Transition{
		ctxC(FilterTagAnd):            open(setStart, pushFilter(filter.FilterAnd)),
		ctxC(FilterTagOr):             open(setStart, pushFilter(filter.FilterOr)),
		ctxC(FilterTagNot):            open(notStart, pushFilter(filter.FilterNot)),
		ctxC(FilterTagEquality):       assertion(filter.FilterEquality),
		ctxC(FilterTagSubstrings):     open(subStart, pushFilter(filter.FilterSubstring)),
		ctxC(FilterTagGreaterOrEqual): assertion(filter.FilterGreaterOrEqual),
		ctxC(FilterTagLessOrEqual):    assertion(filter.FilterLessOrEqual),
		ctx(FilterTagPresent): {
			Action: func(c *container, tlv *ber.TLV) error {
				attr := tlv.String()
				if attr == "" {
					return fmt.Errorf("%w: empty attribute in present filter", ErrInvalidFilter)
				}
				if err := attachFilter(c, filter.NewPresentFilter(attr)); err != nil {
					return err
				}
				afterFilter(c, fs)
				return nil
			},
		},
		ctxC(FilterTagApproxMatch):     assertion(filter.FilterApproxMatch),
		ctxC(FilterTagExtensibleMatch): open(extStart, pushFilter(filter.FilterExtensibleMatch)),
	}
	for _, s := range []State{entry, setStart, fs.setNext, notStart} {
		t.onClass(s, ber.ClassContextSpecific, Transition{Choice: choice})
	}

	// AttributeValueAssertion ::= SEQUENCE {
	//      attributeDesc   AttributeDescription,
	//      assertionValue  AssertionValue }
	t.on(avaStart, tagOctetString, Transition{Next: avaDesc, Action: setFilterAttribute})
	t.on(avaDesc, tagOctetString, Transition{
		Next: avaValue,
		Action: func(c *container, tlv *ber.TLV) error {
			topFilter(c).Value = tlv.Bytes()
			return nil
		},
	})

	// SubstringFilter ::= SEQUENCE {
	//      type           AttributeDescription,
	//      substrings     SEQUENCE SIZE (1..MAX) OF substring CHOICE {
	//           initial [0] AssertionValue,  -- can occur at most once
	//           any     [1] AssertionValue,
	//           final   [2] AssertionValue } -- can occur at most once
	//      }
	t.on(subStart, tagOctetString, Transition{Next: subType, Action: setFilterAttribute})
	t.on(subType, tagSequence, Transition{Next: subSeq, Resume: subDone})
	initial := Transition{Next: subInitial, Action: func(c *container, tlv *ber.TLV) error {
		topFilter(c).Substring.Initial = tlv.Bytes()
		return nil
	}}
	anyPart := Transition{Next: subAny, Action: func(c *container, tlv *ber.TLV) error {
		sub := topFilter(c).Substring
		sub.Any = append(sub.Any, tlv.Bytes())
		return nil
	}}
	final := Transition{Next: subFinal, Action: func(c *container, tlv *ber.TLV) error {
		topFilter(c).Substring.Final = tlv.Bytes()
		return nil
	}}
	t.on(subSeq, ctx(SubstringInitial), initial)
	for _, s := range []State{subSeq, subInitial, subAny} {
		t.on(s, ctx(SubstringAny), anyPart)
		t.on(s, ctx(SubstringFinal), final)
	}

	// MatchingRuleAssertion ::= SEQUENCE {
	//      matchingRule    [1] MatchingRuleId OPTIONAL,
	//      type            [2] AttributeDescription OPTIONAL,
	//      matchValue      [3] AssertionValue,
	//      dnAttributes    [4] BOOLEAN DEFAULT FALSE }
	rule := Transition{Next: extRule, Action: func(c *container, tlv *ber.TLV) error {
		topFilter(c).Extensible.MatchingRule = tlv.String()
		return nil
	}}
	typ := Transition{Next: extType, Action: func(c *container, tlv *ber.TLV) error {
		f := topFilter(c)
		f.Attribute = tlv.String()
		f.Extensible.Attribute = f.Attribute
		return nil
	}}
	value := Transition{Next: extValue, Action: func(c *container, tlv *ber.TLV) error {
		f := topFilter(c)
		f.Value = tlv.Bytes()
		f.Extensible.Value = f.Value
		return nil
	}}
	t.on(extStart, ctx(MatchingRuleTag), rule)
	t.on(extStart, ctx(MatchingTypeTag), typ)
	t.on(extStart, ctx(MatchValueTag), value)
	t.on(extRule, ctx(MatchingTypeTag), typ)
	t.on(extRule, ctx(MatchValueTag), value)
	t.on(extType, ctx(MatchValueTag), value)
	t.on(extValue, ctx(DNAttributesTag), Transition{Next: extDN, Action: func(c *container, tlv *ber.TLV) error {
		v, err := tlv.Bool()
		if err != nil {
			return fmt.Errorf("dnAttributes: %w", err)
		}
		topFilter(c).Extensible.DNAttributes = v
		return nil
	}})
}

// pushFilter opens a filter and makes it the innermost one.
func pushFilter(typ filter.FilterType) Action {
	return func(c *container, _ *ber.TLV) error {
		f := &filter.Filter{Type: typ}
		switch typ {
		case filter.FilterSubstring:
			f.Substring = &filter.SubstringFilter{}
		case filter.FilterExtensibleMatch:
			f.Extensible = &filter.ExtensibleMatch{}
		}
		if err := attachFilter(c, f); err != nil {
			return err
		}
		c.filters = append(c.filters, f)
		return nil
	}
}

// attachFilter links f to the innermost open filter, or makes it the
// search filter.
func attachFilter(c *container, f *filter.Filter) error {
	if len(c.filters) == 0 {
		if err := c.claim("filter"); err != nil {
			return err
		}
		opAs[*SearchRequest](c).Filter = f
		return nil
	}
	parent := topFilter(c)
	switch parent.Type {
	case filter.FilterAnd, filter.FilterOr:
		parent.Children = append(parent.Children, f)
	case filter.FilterNot:
		parent.Child = f
	default:
		return fmt.Errorf("%w: %s cannot contain a filter", ErrInvalidFilter, parent.Type)
	}
	return nil
}

// popFilter closes the innermost filter.
func popFilter(c *container, fs *filterStates) error {
	f := topFilter(c)
	c.filters = c.filters[:len(c.filters)-1]
	if f.Type == filter.FilterExtensibleMatch && f.Extensible.MatchingRule == "" && f.Extensible.Attribute == "" {
		return fmt.Errorf("%w: extensible match needs a matching rule or a type", ErrInvalidFilter)
	}
	afterFilter(c, fs)
	return nil
}

// afterFilter moves to the state that follows a complete filter.
func afterFilter(c *container, fs *filterStates) {
	if len(c.filters) == 0 {
		c.state = fs.done
		return
	}
	switch topFilter(c).Type {
	case filter.FilterNot:
		c.state = fs.notDone
	default:
		c.state = fs.setNext
	}
}

func topFilter(c *container) *filter.Filter {
	return c.filters[len(c.filters)-1]
}

func setFilterAttribute(c *container, t *ber.TLV) error {
	f := topFilter(c)
	f.Attribute = t.String()
	if f.Substring != nil {
		f.Substring.Attribute = f.Attribute
	}
	return nil
}

// SearchResultEntry ::= [APPLICATION 4] SEQUENCE {
//
//	objectName      LDAPDN,
//	attributes      PartialAttributeList }
func buildSearchResultEntry(g *grammarSet, env *envelope) {
	t := g.table("SearchResultEntry")
	start := t.state("start", false)
	name := t.state("expectAttributes", false)
	list := t.state("expectAttribute", true)
	listDone := t.state("end", true)

	t.on(start, tagOctetString, Transition{
		Next: name,
		Action: setString("objectName", func(c *container, s string) {
			opAs[*SearchResultEntry](c).ObjectName = s
		}),
	})
	t.on(name, tagSequence, Transition{Next: list, Resume: listDone})
	buildAttribute(t, list, false, func(c *container) *[]Attribute {
		return &opAs[*SearchResultEntry](c).Attributes
	})

	env.operation(ApplicationSearchResultEntry, start, func() ProtocolOp { return &SearchResultEntry{} }, nil, nil)
}

// buildAttribute adds one element of an attribute list, entered from list.
// requireValue selects Attribute (vals SIZE(1..MAX)) over PartialAttribute.
//
//	PartialAttribute ::= SEQUENCE {
//	     type       AttributeDescription,
//	     vals       SET OF value AttributeValue }
func buildAttribute(t *table, list State, requireValue bool, attrs func(c *container) *[]Attribute) {
	start := t.state("expectAttributeType", false)
	typ := t.state("expectVals", false)
	vals := t.state("expectValue", !requireValue)
	more := t.state("expectValueOrEnd", true)
	done := t.state("endAttribute", true)

	t.on(list, tagSequence, Transition{
		Next:   start,
		Resume: list,
		Action: func(c *container, _ *ber.TLV) error {
			dst := attrs(c)
			*dst = append(*dst, Attribute{})
			c.attr = &(*dst)[len(*dst)-1]
			return nil
		},
	})
	t.on(start, tagOctetString, Transition{Next: typ, Action: setAttrType})
	t.on(typ, tagSet, Transition{Next: vals, Resume: done})
	t.on(vals, tagOctetString, Transition{Next: more, Action: addAttrValue})
	t.on(more, tagOctetString, Transition{Next: more, Action: addAttrValue})
}

// SearchResultReference ::= [APPLICATION 19] SEQUENCE SIZE (1..MAX) OF uri URI
func buildSearchResultReference(g *grammarSet, env *envelope) {
	t := g.table("SearchResultReference")
	start := t.state("start", false)
	uri := t.state("expectURIOrEnd", true)

	add := Transition{
		Next: uri,
		Action: appendString(func(c *container, s string) {
			ref := opAs[*SearchResultReference](c)
			ref.URIs = append(ref.URIs, s)
		}),
	}
	t.on(start, tagOctetString, add)
	t.on(uri, tagOctetString, add)

	env.operation(ApplicationSearchResultReference, start, func() ProtocolOp { return &SearchResultReference{} }, nil, nil)
}
