package ldap

import (
	"testing"

	asn1ber "github.com/go-asn1-ber/asn1-ber"
	"github.com/stretchr/testify/require"
)

// Fixtures are built with go-asn1-ber so that the decoder is checked
// against an independent encoder.

func berSeq(children ...*asn1ber.Packet) *asn1ber.Packet {
	p := asn1ber.Encode(asn1ber.ClassUniversal, asn1ber.TypeConstructed, asn1ber.TagSequence, nil, "")
	for _, c := range children {
		p.AppendChild(c)
	}
	return p
}

func berSet(children ...*asn1ber.Packet) *asn1ber.Packet {
	p := asn1ber.Encode(asn1ber.ClassUniversal, asn1ber.TypeConstructed, asn1ber.TagSet, nil, "")
	for _, c := range children {
		p.AppendChild(c)
	}
	return p
}

func berString(s string) *asn1ber.Packet {
	return asn1ber.NewString(asn1ber.ClassUniversal, asn1ber.TypePrimitive, asn1ber.TagOctetString, s, "")
}

func berInt(v int64) *asn1ber.Packet {
	return asn1ber.NewInteger(asn1ber.ClassUniversal, asn1ber.TypePrimitive, asn1ber.TagInteger, v, "")
}

func berEnum(v int64) *asn1ber.Packet {
	return asn1ber.NewInteger(asn1ber.ClassUniversal, asn1ber.TypePrimitive, asn1ber.TagEnumerated, v, "")
}

func berBool(v bool) *asn1ber.Packet {
	return asn1ber.NewBoolean(asn1ber.ClassUniversal, asn1ber.TypePrimitive, asn1ber.TagBoolean, v, "")
}

// berCtx returns a primitive context-specific string.
func berCtx(n int, s string) *asn1ber.Packet {
	return asn1ber.NewString(asn1ber.ClassContext, asn1ber.TypePrimitive, asn1ber.Tag(n), s, "")
}

// berCtxC returns a constructed context-specific element.
func berCtxC(n int, children ...*asn1ber.Packet) *asn1ber.Packet {
	p := asn1ber.Encode(asn1ber.ClassContext, asn1ber.TypeConstructed, asn1ber.Tag(n), nil, "")
	for _, c := range children {
		p.AppendChild(c)
	}
	return p
}

// berOp returns a constructed protocolOp.
func berOp(op OperationType, children ...*asn1ber.Packet) *asn1ber.Packet {
	p := asn1ber.Encode(asn1ber.ClassApplication, asn1ber.TypeConstructed, asn1ber.Tag(op), nil, "")
	for _, c := range children {
		p.AppendChild(c)
	}
	return p
}

// berResult returns the LDAPResult components.
func berResult(code int64, matchedDN, diag string) []*asn1ber.Packet {
	return []*asn1ber.Packet{berEnum(code), berString(matchedDN), berString(diag)}
}

func berControl(oid string, critical bool, value ...string) *asn1ber.Packet {
	p := berSeq(berString(oid))
	if critical {
		p.AppendChild(berBool(true))
	}
	for _, v := range value {
		p.AppendChild(berString(v))
	}
	return p
}

// berMessage returns an encoded LDAPMessage.
func berMessage(id int64, op *asn1ber.Packet, controls ...*asn1ber.Packet) []byte {
	p := berSeq(berInt(id), op)
	if len(controls) > 0 {
		p.AppendChild(berCtxC(ContextTagControls, controls...))
	}
	return p.Bytes()
}

// decodeOne decodes data, which must hold exactly one message.
func decodeOne(t *testing.T, opts Options, data []byte) *Message {
	t.Helper()
	d := NewDecoder(opts)
	msgs, err := d.Feed(data)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.False(t, d.Pending())
	return msgs[0]
}

// decodeErr decodes data and returns the error it fails with.
func decodeErr(t *testing.T, opts Options, data []byte) error {
	t.Helper()
	d := NewDecoder(opts)
	msgs, err := d.Feed(data)
	require.Error(t, err)
	require.Empty(t, msgs)
	return err
}
