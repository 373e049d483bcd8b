package ldap

import (
	"fmt"

	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
)

// Universal tags as they appear on the wire.
const (
	tagBoolean     = byte(ber.TagBoolean)
	tagInteger     = byte(ber.TagInteger)
	tagOctetString = byte(ber.TagOctetString)
	tagEnumerated  = byte(ber.TagEnumerated)
	tagSequence    = byte(ber.TypeConstructed | ber.TagSequence)
	tagSet         = byte(ber.TypeConstructed | ber.TagSet)
)

// ctx returns a primitive context-specific tag.
func ctx(n int) byte {
	return ber.MakeTag(ber.ClassContextSpecific, false, n)
}

// ctxC returns a constructed context-specific tag.
func ctxC(n int) byte {
	return ber.MakeTag(ber.ClassContextSpecific, true, n)
}

// envelope exposes the LDAPMessage states the operation grammars hook into.
type envelope struct {
	t *table
	// protocolOp is the state after messageID
	protocolOp State
	// opDone is entered once the protocolOp element is complete
	opDone State
}

// operation registers a protocolOp. start is the first state inside a
// constructed operation; for primitive operations the action consumes the
// whole element.
func (env *envelope) operation(op OperationType, start State, newOp func() ProtocolOp, action Action, onClose CloseAction) {
	begin := func(c *container, t *ber.TLV) error {
		if err := c.claim("protocolOp"); err != nil {
			return err
		}
		c.msg.Op = newOp()
		if action != nil {
			return action(c, t)
		}
		return nil
	}
	if op.Tag()&ber.TypeConstructed == 0 {
		env.t.on(env.protocolOp, op.Tag(), Transition{Next: env.opDone, Action: begin})
		return
	}
	env.t.on(env.protocolOp, op.Tag(), Transition{
		Next:    start,
		Action:  begin,
		Resume:  env.opDone,
		OnClose: onClose,
	})
}

// buildGrammar builds the LDAPMessage grammar and every operation grammar.
//
//	LDAPMessage ::= SEQUENCE {
//	     messageID       MessageID,
//	     protocolOp      CHOICE { ... },
//	     controls       [0] Controls OPTIONAL }
func buildGrammar() *grammarSet {
	g := &grammarSet{}
	t := g.table("LDAPMessage")

	start := t.state("start", false)
	messageID := t.state("expectMessageID", false)
	protocolOp := t.state("expectProtocolOp", false)
	opDone := t.state("expectControls", true)
	controls := t.state("expectControl", true)
	controlsDone := t.state("end", true)
	g.start = start

	t.on(start, tagSequence, Transition{Next: messageID})
	t.on(messageID, tagInteger, Transition{
		Next: protocolOp,
		Action: setInt("messageID", int32(MinMessageID), int32(MaxMessageID), func(c *container, v int32) {
			c.msg.MessageID = v
			c.hasMessageID = true
		}),
	})

	// Controls ::= SEQUENCE OF control Control. An empty list is accepted.
	t.on(opDone, ctxC(ContextTagControls), Transition{
		Next:   controls,
		Action: claimOnly("controls"),
		Resume: controlsDone,
	})
	buildControl(g, t, controls)

	env := &envelope{t: t, protocolOp: protocolOp, opDone: opDone}
	buildBind(g, env)
	buildSearch(g, env)
	buildUpdates(g, env)
	buildExtended(g, env)
	return g
}

// buildControl adds the Control grammar, entered from list.
//
//	Control ::= SEQUENCE {
//	     controlType             LDAPOID,
//	     criticality             BOOLEAN DEFAULT FALSE,
//	     controlValue            OCTET STRING OPTIONAL }
func buildControl(g *grammarSet, parent *table, list State) {
	t := g.table("Control")
	start := t.state("start", false)
	controlType := t.state("expectCriticality", true)
	criticality := t.state("expectControlValue", true)
	value := t.state("end", true)

	parent.on(list, tagSequence, Transition{
		Next: start,
		Action: func(c *container, _ *ber.TLV) error {
			c.msg.Controls = append(c.msg.Controls, Control{})
			c.control = &c.msg.Controls[len(c.msg.Controls)-1]
			return nil
		},
		Resume:  list,
		OnClose: finishControl,
	})

	setType := func(c *container, tlv *ber.TLV) error {
		oid := tlv.String()
		if !ber.IsValidOID(oid) {
			return fmt.Errorf("control type: %w: %q", ber.ErrInvalidOID, oid)
		}
		c.control.OID = oid
		return nil
	}
	setCriticality := func(c *container, tlv *ber.TLV) error {
		v, err := tlv.Bool()
		if err != nil {
			return err
		}
		c.control.Criticality = v
		return nil
	}
	setValue := func(c *container, tlv *ber.TLV) error {
		c.control.Value = tlv.Bytes()
		c.control.HasValue = true
		return nil
	}

	t.on(start, tagOctetString, Transition{Next: controlType, Action: setType})
	t.on(controlType, tagBoolean, Transition{Next: criticality, Action: setCriticality})
	t.on(controlType, tagOctetString, Transition{Next: value, Action: setValue})
	t.on(criticality, tagOctetString, Transition{Next: value, Action: setValue})
}

func finishControl(c *container) error {
	ctrl := c.control
	c.control = nil
	v, err := c.decodeValue(KindControl, ctrl.OID, ctrl.Value, ctrl.HasValue)
	if err != nil {
		return err
	}
	ctrl.Decoded = v
	return nil
}
