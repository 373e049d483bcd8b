package ldap

import (
	"fmt"

	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
	"github.com/KilimcininKorOglu/ldapcodec/internal/filter"
	"github.com/KilimcininKorOglu/ldapcodec/internal/logging"
)

// container is the ber.Handler that runs the grammar. It owns the message
// under construction until the outermost SEQUENCE closes.
type container struct {
	g    *grammarSet
	opts *Options
	reg  *ValueRegistry
	log  logging.Logger

	state        State
	msg          *Message
	hasMessageID bool
	claimed      map[string]bool

	// header-only element handed to actions of constructed elements
	hdr ber.TLV

	control *Control
	attr    *Attribute
	filters []*filter.Filter
	// set while the referrals of a result are being dropped
	dropReferral bool
}

func newContainer(g *grammarSet, opts *Options, reg *ValueRegistry, log logging.Logger) *container {
	c := &container{
		g:       g,
		opts:    opts,
		reg:     reg,
		log:     log,
		claimed: make(map[string]bool),
	}
	c.reset()
	return c
}

// reset discards the message under construction.
func (c *container) reset() {
	c.state = c.g.start
	c.msg = &Message{}
	c.hasMessageID = false
	clear(c.claimed)
	c.control = nil
	c.attr = nil
	c.filters = c.filters[:0]
	c.dropReferral = false
}

// finish hands the completed message over and starts a new one.
func (c *container) finish() *Message {
	msg := c.msg
	c.reset()
	return msg
}

// Open implements ber.Handler.
func (c *container) Open(f *ber.Frame) error {
	tr, err := c.g.lookup(c.state, f.Tag)
	if err != nil {
		return err
	}
	c.state = tr.Next
	if tr.Resume != stateNone || tr.OnClose != nil {
		f.Resume = tr
	}
	if tr.Action != nil {
		c.hdr = ber.TLV{Header: f.Header}
		return tr.Action(c, &c.hdr)
	}
	return nil
}

// Primitive implements ber.Handler.
func (c *container) Primitive(t *ber.TLV) error {
	tr, err := c.g.lookup(c.state, t.Tag)
	if err != nil {
		return err
	}
	c.state = tr.Next
	if tr.Action != nil {
		return tr.Action(c, t)
	}
	return nil
}

// Close implements ber.Handler.
func (c *container) Close(f *ber.Frame) error {
	if !c.g.endAllowed(c.state) {
		return &PrematureEndError{State: c.state}
	}
	tr, _ := f.Resume.(*Transition)
	if tr == nil {
		return nil
	}
	if tr.Resume != stateNone {
		c.state = tr.Resume
	}
	if tr.OnClose != nil {
		return tr.OnClose(c)
	}
	return nil
}

// claim marks a single-valued field as set.
func (c *container) claim(field string) error {
	if c.claimed[field] {
		return fmt.Errorf("%w: %s", ErrDuplicateField, field)
	}
	c.claimed[field] = true
	return nil
}

// violation applies p to a semantically invalid value. It returns nil when
// the value is to be dropped.
func (c *container) violation(p Policy, field, message string) error {
	if p == PolicyStrict {
		return &SemanticError{Field: field, Message: message}
	}
	c.warn(field, message)
	return nil
}

func (c *container) warn(field, message string) {
	c.msg.Warnings = append(c.msg.Warnings, Warning{Field: field, Message: message})
	c.log.Warn("coerced invalid value", "field", field, "reason", message,
		"messageID", c.msg.MessageID)
}

// decodeValue runs the registered decoder for a control or extended value.
// A nil result with a nil error leaves the value raw.
func (c *container) decodeValue(kind ValueKind, oid string, value []byte, hasValue bool) (any, error) {
	if !hasValue {
		value = nil
	}
	v, ok, err := c.reg.Decode(kind, oid, value)
	if err != nil {
		if c.opts.ControlPolicy == ValuePolicyLenient {
			c.warn(kind.String()+" "+oid, err.Error())
			return nil, nil
		}
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return v, nil
}

// result returns the LDAPResult of the response under construction.
func (c *container) result() *LDAPResult {
	return c.msg.Op.(resultOp).result()
}

// opAs returns the protocolOp under construction as T.
func opAs[T ProtocolOp](c *container) T {
	op, _ := c.msg.Op.(T)
	return op
}
