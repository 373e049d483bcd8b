package ldap

import (
	"fmt"

	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
	"github.com/KilimcininKorOglu/ldapcodec/internal/filter"
)

// SearchScope represents the scope of an LDAP search operation
type SearchScope int

const (
	// ScopeBaseObject searches only the base object
	ScopeBaseObject SearchScope = 0
	// ScopeSingleLevel searches one level below the base object
	ScopeSingleLevel SearchScope = 1
	// ScopeWholeSubtree searches the entire subtree
	ScopeWholeSubtree SearchScope = 2
)

// String returns the string representation of the search scope
func (s SearchScope) String() string {
	switch s {
	case ScopeBaseObject:
		return "BaseObject"
	case ScopeSingleLevel:
		return "SingleLevel"
	case ScopeWholeSubtree:
		return "WholeSubtree"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// DerefAliases represents how aliases should be dereferenced during search
type DerefAliases int

const (
	// DerefNever never dereferences aliases
	DerefNever DerefAliases = 0
	// DerefInSearching dereferences aliases when searching subordinates
	DerefInSearching DerefAliases = 1
	// DerefFindingBaseObj dereferences aliases when finding the base object
	DerefFindingBaseObj DerefAliases = 2
	// DerefAlways always dereferences aliases
	DerefAlways DerefAliases = 3
)

// String returns the string representation of the deref aliases setting
func (d DerefAliases) String() string {
	switch d {
	case DerefNever:
		return "NeverDerefAliases"
	case DerefInSearching:
		return "DerefInSearching"
	case DerefFindingBaseObj:
		return "DerefFindingBaseObj"
	case DerefAlways:
		return "DerefAlways"
	default:
		return fmt.Sprintf("Unknown(%d)", int(d))
	}
}

// Filter CHOICE tags (context-specific) per RFC 4511 Section 4.5.1
const (
	FilterTagAnd             = 0 // [0] SET SIZE (1..MAX) OF Filter
	FilterTagOr              = 1 // [1] SET SIZE (1..MAX) OF Filter
	FilterTagNot             = 2 // [2] Filter
	FilterTagEquality        = 3 // [3] AttributeValueAssertion
	FilterTagSubstrings      = 4 // [4] SubstringFilter
	FilterTagGreaterOrEqual  = 5 // [5] AttributeValueAssertion
	FilterTagLessOrEqual     = 6 // [6] AttributeValueAssertion
	FilterTagPresent         = 7 // [7] AttributeDescription
	FilterTagApproxMatch     = 8 // [8] AttributeValueAssertion
	FilterTagExtensibleMatch = 9 // [9] MatchingRuleAssertion
)

// Substring choice tags
const (
	SubstringInitial = 0 // [0] initial
	SubstringAny     = 1 // [1] any
	SubstringFinal   = 2 // [2] final
)

// MatchingRuleAssertion component tags
const (
	MatchingRuleTag = 1 // [1] matchingRule
	MatchingTypeTag = 2 // [2] type
	MatchValueTag   = 3 // [3] matchValue
	DNAttributesTag = 4 // [4] dnAttributes
)

// SearchRequest represents an LDAP Search Request
// SearchRequest ::= [APPLICATION 3] SEQUENCE {
//
//	baseObject      LDAPDN,
//	scope           ENUMERATED { baseObject(0), singleLevel(1), wholeSubtree(2) },
//	derefAliases    ENUMERATED { neverDerefAliases(0), derefInSearching(1),
//	                             derefFindingBaseObj(2), derefAlways(3) },
//	sizeLimit       INTEGER (0 .. maxInt),
//	timeLimit       INTEGER (0 .. maxInt),
//	typesOnly       BOOLEAN,
//	filter          Filter,
//	attributes      AttributeSelection
//
// }
type SearchRequest struct {
	// BaseObject is the DN of the base entry
	BaseObject string
	// Scope is the search scope
	Scope SearchScope
	// DerefAliases specifies how aliases should be dereferenced
	DerefAliases DerefAliases
	// SizeLimit is the maximum number of entries to return (0 = no limit)
	SizeLimit int32
	// TimeLimit is the maximum time in seconds (0 = no limit)
	TimeLimit int32
	// TypesOnly if true, only attribute types are returned (no values)
	TypesOnly bool
	// Filter is the search filter
	Filter *filter.Filter
	// Attributes is the list of attributes to return
	Attributes []string
}

// OperationType implements ProtocolOp.
func (r *SearchRequest) OperationType() OperationType { return ApplicationSearchRequest }

func (r *SearchRequest) encode(e *ber.BEREncoder) {
	pos := e.Begin(ApplicationSearchRequest.Tag())
	e.WriteString(r.BaseObject)
	e.WriteEnumerated(int64(r.Scope))
	e.WriteEnumerated(int64(r.DerefAliases))
	e.WriteInteger(int64(r.SizeLimit))
	e.WriteInteger(int64(r.TimeLimit))
	e.WriteBoolean(r.TypesOnly)
	encodeFilter(e, r.Filter)
	attrs := e.BeginSequence()
	for _, a := range r.Attributes {
		e.WriteString(a)
	}
	e.End(attrs)
	e.End(pos)
}

// SearchResultEntry represents one entry returned by a search
// SearchResultEntry ::= [APPLICATION 4] SEQUENCE {
//
//	objectName      LDAPDN,
//	attributes      PartialAttributeList
//
// }
type SearchResultEntry struct {
	ObjectName string
	Attributes []Attribute
}

// OperationType implements ProtocolOp.
func (r *SearchResultEntry) OperationType() OperationType { return ApplicationSearchResultEntry }

// GetAttribute returns the values of the named attribute.
func (r *SearchResultEntry) GetAttribute(name string) [][]byte {
	for _, a := range r.Attributes {
		if a.Type == name {
			return a.Values
		}
	}
	return nil
}

func (r *SearchResultEntry) encode(e *ber.BEREncoder) {
	pos := e.Begin(ApplicationSearchResultEntry.Tag())
	e.WriteString(r.ObjectName)
	encodeAttributes(e, r.Attributes)
	e.End(pos)
}

// SearchResultReference ::= [APPLICATION 19] SEQUENCE SIZE (1..MAX) OF uri URI
type SearchResultReference struct {
	URIs []string
}

// OperationType implements ProtocolOp.
func (r *SearchResultReference) OperationType() OperationType {
	return ApplicationSearchResultReference
}

func (r *SearchResultReference) encode(e *ber.BEREncoder) {
	pos := e.Begin(ApplicationSearchResultReference.Tag())
	for _, uri := range r.URIs {
		e.WriteString(uri)
	}
	e.End(pos)
}

// encodeAttributes writes a PartialAttributeList or AttributeList.
func encodeAttributes(e *ber.BEREncoder, attrs []Attribute) {
	list := e.BeginSequence()
	for _, a := range attrs {
		encodeAttribute(e, a)
	}
	e.End(list)
}

func encodeAttribute(e *ber.BEREncoder, a Attribute) {
	seq := e.BeginSequence()
	e.WriteString(a.Type)
	vals := e.BeginSet()
	for _, v := range a.Values {
		e.WriteOctetString(v)
	}
	e.End(vals)
	e.End(seq)
}

// EncodeFilter returns the BER encoding of f as it appears inside a
// SearchRequest.
func EncodeFilter(f *filter.Filter) []byte {
	e := ber.NewBEREncoder(64)
	encodeFilter(e, f)
	return e.Bytes()
}

// encodeFilter writes f as a Filter CHOICE. A nil filter is written as
// (objectClass=*).
func encodeFilter(e *ber.BEREncoder, f *filter.Filter) {
	if f == nil {
		f = filter.NewPresentFilter("objectClass")
	}
	switch f.Type {
	case filter.FilterAnd, filter.FilterOr:
		tag := FilterTagAnd
		if f.Type == filter.FilterOr {
			tag = FilterTagOr
		}
		pos := e.BeginContext(tag)
		for _, child := range f.Children {
			encodeFilter(e, child)
		}
		e.End(pos)
	case filter.FilterNot:
		pos := e.BeginContext(FilterTagNot)
		encodeFilter(e, f.Child)
		e.End(pos)
	case filter.FilterEquality:
		encodeAssertion(e, FilterTagEquality, f.Attribute, f.Value)
	case filter.FilterGreaterOrEqual:
		encodeAssertion(e, FilterTagGreaterOrEqual, f.Attribute, f.Value)
	case filter.FilterLessOrEqual:
		encodeAssertion(e, FilterTagLessOrEqual, f.Attribute, f.Value)
	case filter.FilterApproxMatch:
		encodeAssertion(e, FilterTagApproxMatch, f.Attribute, f.Value)
	case filter.FilterPresent:
		e.WriteElement(ber.MakeTag(ber.ClassContextSpecific, false, FilterTagPresent), []byte(f.Attribute))
	case filter.FilterSubstring:
		pos := e.BeginContext(FilterTagSubstrings)
		sub := f.Substring
		if sub == nil {
			sub = &filter.SubstringFilter{}
		}
		e.WriteString(f.Attribute)
		seq := e.BeginSequence()
		if sub.Initial != nil {
			e.WriteElement(ber.MakeTag(ber.ClassContextSpecific, false, SubstringInitial), sub.Initial)
		}
		for _, v := range sub.Any {
			e.WriteElement(ber.MakeTag(ber.ClassContextSpecific, false, SubstringAny), v)
		}
		if sub.Final != nil {
			e.WriteElement(ber.MakeTag(ber.ClassContextSpecific, false, SubstringFinal), sub.Final)
		}
		e.End(seq)
		e.End(pos)
	case filter.FilterExtensibleMatch:
		pos := e.BeginContext(FilterTagExtensibleMatch)
		em := f.Extensible
		if em == nil {
			em = &filter.ExtensibleMatch{Attribute: f.Attribute, Value: f.Value}
		}
		if em.MatchingRule != "" {
			e.WriteElement(ber.MakeTag(ber.ClassContextSpecific, false, MatchingRuleTag), []byte(em.MatchingRule))
		}
		if em.Attribute != "" {
			e.WriteElement(ber.MakeTag(ber.ClassContextSpecific, false, MatchingTypeTag), []byte(em.Attribute))
		}
		e.WriteElement(ber.MakeTag(ber.ClassContextSpecific, false, MatchValueTag), em.Value)
		if em.DNAttributes {
			e.WriteBooleanWithTag(ber.MakeTag(ber.ClassContextSpecific, false, DNAttributesTag), true)
		}
		e.End(pos)
	}
}

func encodeAssertion(e *ber.BEREncoder, tag int, attr string, value []byte) {
	pos := e.BeginContext(tag)
	e.WriteString(attr)
	e.WriteOctetString(value)
	e.End(pos)
}
