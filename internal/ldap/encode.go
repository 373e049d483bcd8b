package ldap

import (
	"fmt"

	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
)

// Encode returns the BER encoding of the message. Decoding the result
// yields an equal message, apart from Warnings and decoded values.
func (m *Message) Encode() ([]byte, error) {
	if m.Op == nil {
		return nil, fmt.Errorf("%w: no protocolOp", ErrInvalidMessage)
	}
	if m.MessageID < MinMessageID {
		return nil, fmt.Errorf("%w: messageID %d", ErrInvalidMessage, m.MessageID)
	}

	e := ber.NewBEREncoder(256)
	pos := e.BeginSequence()
	e.WriteInteger(int64(m.MessageID))
	m.Op.encode(e)
	if len(m.Controls) > 0 {
		ctrls := e.BeginContext(ContextTagControls)
		for i := range m.Controls {
			m.Controls[i].encode(e)
		}
		e.End(ctrls)
	}
	e.End(pos)
	return e.Bytes(), nil
}

func (c *Control) encode(e *ber.BEREncoder) {
	pos := e.BeginSequence()
	e.WriteString(c.OID)
	if c.Criticality {
		e.WriteBoolean(true)
	}
	if c.HasValue || c.Value != nil {
		e.WriteOctetString(c.Value)
	}
	e.End(pos)
}
