package ldap

import (
	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
)

// buildUpdates adds the grammars of the update operations (modify, add,
// delete, modifyDN), compare, abandon and unbind, with their responses.
func buildUpdates(g *grammarSet, env *envelope) {
	buildModifyRequest(g, env)
	buildAddRequest(g, env)
	buildModifyDNRequest(g, env)
	buildCompareRequest(g, env)

	// DelRequest ::= [APPLICATION 10] LDAPDN
	env.operation(ApplicationDelRequest, stateNone, func() ProtocolOp { return &DeleteRequest{} },
		func(c *container, t *ber.TLV) error {
			opAs[*DeleteRequest](c).DN = t.String()
			return nil
		}, nil)

	// AbandonRequest ::= [APPLICATION 16] MessageID
	env.operation(ApplicationAbandonRequest, stateNone, func() ProtocolOp { return &AbandonRequest{} },
		setInt("abandonID", int32(MinMessageID), int32(MaxMessageID), func(c *container, v int32) {
			opAs[*AbandonRequest](c).MessageID = v
		}), nil)

	// UnbindRequest ::= [APPLICATION 2] NULL
	env.operation(ApplicationUnbindRequest, stateNone, func() ProtocolOp { return &UnbindRequest{} },
		func(c *container, t *ber.TLV) error {
			if t.Length != 0 {
				return ErrInvalidUnbind
			}
			return nil
		}, nil)

	resultResponse(g, env, ApplicationModifyResponse, func() ProtocolOp { return &ModifyResponse{} })
	resultResponse(g, env, ApplicationAddResponse, func() ProtocolOp { return &AddResponse{} })
	resultResponse(g, env, ApplicationDelResponse, func() ProtocolOp { return &DeleteResponse{} })
	resultResponse(g, env, ApplicationModifyDNResponse, func() ProtocolOp { return &ModifyDNResponse{} })
	resultResponse(g, env, ApplicationCompareResponse, func() ProtocolOp { return &CompareResponse{} })
}

// ModifyRequest ::= [APPLICATION 6] SEQUENCE {
//
//	object          LDAPDN,
//	changes         SEQUENCE OF change SEQUENCE {
//	     operation       ENUMERATED { add (0), delete (1), replace (2), increment (3) },
//	     modification    PartialAttribute } }
func buildModifyRequest(g *grammarSet, env *envelope) {
	t := g.table("ModifyRequest")
	start := t.state("start", false)
	object := t.state("expectChanges", false)
	changes := t.state("expectChange", true)
	changesDone := t.state("end", true)
	change := t.state("expectOperation", false)
	operation := t.state("expectModification", false)
	modDone := t.state("endChange", true)

	t.on(start, tagOctetString, Transition{
		Next: object,
		Action: setString("object", func(c *container, s string) {
			opAs[*ModifyRequest](c).Object = s
		}),
	})
	t.on(object, tagSequence, Transition{Next: changes, Resume: changesDone})
	t.on(changes, tagSequence, Transition{
		Next:   change,
		Resume: changes,
		Action: func(c *container, _ *ber.TLV) error {
			req := opAs[*ModifyRequest](c)
			req.Changes = append(req.Changes, Modification{})
			c.attr = &req.Changes[len(req.Changes)-1].Attribute
			return nil
		},
	})
	t.on(change, tagEnumerated, Transition{
		Next: operation,
		Action: func(c *container, tlv *ber.TLV) error {
			v, err := ber.DecodeIntegerInRange(tlv.Value.Bytes(), int(ModifyOperationAdd), int(ModifyOperationIncrement))
			if err != nil {
				return err
			}
			req := opAs[*ModifyRequest](c)
			req.Changes[len(req.Changes)-1].Operation = ModifyOperation(v)
			return nil
		},
	})

	// modification is a single PartialAttribute, not a list
	attrStart := t.state("expectAttributeType", false)
	attrType := t.state("expectVals", false)
	vals := t.state("expectValue", true)
	valsDone := t.state("endModification", true)
	t.on(operation, tagSequence, Transition{Next: attrStart, Resume: modDone})
	t.on(attrStart, tagOctetString, Transition{Next: attrType, Action: setAttrType})
	t.on(attrType, tagSet, Transition{Next: vals, Resume: valsDone})
	t.on(vals, tagOctetString, Transition{Next: vals, Action: addAttrValue})

	env.operation(ApplicationModifyRequest, start, func() ProtocolOp { return &ModifyRequest{} }, nil, nil)
}

// AddRequest ::= [APPLICATION 8] SEQUENCE {
//
//	entry           LDAPDN,
//	attributes      AttributeList }
func buildAddRequest(g *grammarSet, env *envelope) {
	t := g.table("AddRequest")
	start := t.state("start", false)
	entry := t.state("expectAttributes", false)
	list := t.state("expectAttribute", true)
	listDone := t.state("end", true)

	t.on(start, tagOctetString, Transition{
		Next: entry,
		Action: setString("entry", func(c *container, s string) {
			opAs[*AddRequest](c).Entry = s
		}),
	})
	t.on(entry, tagSequence, Transition{Next: list, Resume: listDone})
	buildAttribute(t, list, true, func(c *container) *[]Attribute {
		return &opAs[*AddRequest](c).Attributes
	})

	env.operation(ApplicationAddRequest, start, func() ProtocolOp { return &AddRequest{} }, nil, nil)
}

// ModifyDNRequest ::= [APPLICATION 12] SEQUENCE {
//
//	entry           LDAPDN,
//	newrdn          RelativeLDAPDN,
//	deleteoldrdn    BOOLEAN,
//	newSuperior     [0] LDAPDN OPTIONAL }
func buildModifyDNRequest(g *grammarSet, env *envelope) {
	t := g.table("ModifyDNRequest")
	start := t.state("start", false)
	entry := t.state("expectNewRDN", false)
	newRDN := t.state("expectDeleteOldRDN", false)
	deleteOld := t.state("expectNewSuperior", true)
	superior := t.state("end", true)

	t.on(start, tagOctetString, Transition{
		Next: entry,
		Action: setString("entry", func(c *container, s string) {
			opAs[*ModifyDNRequest](c).Entry = s
		}),
	})
	t.on(entry, tagOctetString, Transition{
		Next: newRDN,
		Action: setString("newrdn", func(c *container, s string) {
			opAs[*ModifyDNRequest](c).NewRDN = s
		}),
	})
	t.on(newRDN, tagBoolean, Transition{
		Next: deleteOld,
		Action: setBool("deleteoldrdn", func(c *container, v bool) {
			opAs[*ModifyDNRequest](c).DeleteOldRDN = v
		}),
	})
	t.on(deleteOld, ctx(ContextTagNewSuperior), Transition{
		Next: superior,
		Action: setString("newSuperior", func(c *container, s string) {
			req := opAs[*ModifyDNRequest](c)
			req.NewSuperior = s
			req.HasNewSuperior = true
		}),
	})

	env.operation(ApplicationModifyDNRequest, start, func() ProtocolOp { return &ModifyDNRequest{} }, nil, nil)
}

// CompareRequest ::= [APPLICATION 14] SEQUENCE {
//
//	entry           LDAPDN,
//	ava             AttributeValueAssertion }
func buildCompareRequest(g *grammarSet, env *envelope) {
	t := g.table("CompareRequest")
	start := t.state("start", false)
	entry := t.state("expectAVA", false)
	avaStart := t.state("expectAttributeDesc", false)
	desc := t.state("expectAssertionValue", false)
	value := t.state("endAVA", true)
	avaDone := t.state("end", true)

	t.on(start, tagOctetString, Transition{
		Next: entry,
		Action: setString("entry", func(c *container, s string) {
			opAs[*CompareRequest](c).DN = s
		}),
	})
	t.on(entry, tagSequence, Transition{Next: avaStart, Resume: avaDone})
	t.on(avaStart, tagOctetString, Transition{
		Next: desc,
		Action: setString("attributeDesc", func(c *container, s string) {
			opAs[*CompareRequest](c).Attribute = s
		}),
	})
	t.on(desc, tagOctetString, Transition{
		Next: value,
		Action: setBytes("assertionValue", func(c *container, b []byte) {
			opAs[*CompareRequest](c).Value = b
		}),
	})

	env.operation(ApplicationCompareRequest, start, func() ProtocolOp { return &CompareRequest{} }, nil, nil)
}
