package ldap

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
	"github.com/KilimcininKorOglu/ldapcodec/internal/logging"
)

func extendedResponseFixture() []byte {
	return berMessage(456,
		berOp(ApplicationExtendedResponse, berResult(int64(ResultProtocolError), "", "")...),
		berControl("1.2.840.113556.1.4.643", true, "Some text"),
	)
}

func TestDecodeExtendedResponseWithControl(t *testing.T) {
	msg := decodeOne(t, DefaultOptions(), extendedResponseFixture())

	assert.Equal(t, int32(456), msg.MessageID)
	assert.Equal(t, ApplicationExtendedResponse, msg.OperationType())
	resp, ok := msg.Op.(*ExtendedResponse)
	require.True(t, ok)
	assert.Equal(t, ResultProtocolError, resp.ResultCode)
	assert.Empty(t, resp.MatchedDN)
	assert.Empty(t, resp.DiagnosticMessage)
	assert.Empty(t, resp.Name)
	assert.False(t, resp.HasValue)

	require.Len(t, msg.Controls, 1)
	ctrl := msg.Controls[0]
	assert.Equal(t, "1.2.840.113556.1.4.643", ctrl.OID)
	assert.True(t, ctrl.Criticality)
	assert.True(t, ctrl.HasValue)
	assert.Equal(t, []byte("Some text"), ctrl.Value)
	assert.Nil(t, ctrl.Decoded)
	assert.Empty(t, msg.Warnings)
}

func TestDecodeAnySplit(t *testing.T) {
	data := extendedResponseFixture()
	want := decodeOne(t, DefaultOptions(), data)

	for i := 0; i <= len(data); i++ {
		d := NewDecoder(DefaultOptions())
		first, err := d.Feed(data[:i])
		require.NoError(t, err, "split at %d", i)
		second, err := d.Feed(data[i:])
		require.NoError(t, err, "split at %d", i)

		msgs := append(first, second...)
		require.Len(t, msgs, 1, "split at %d", i)
		assert.Equal(t, want, msgs[0], "split at %d", i)
		assert.False(t, d.Pending())
	}
}

func TestDecodeByteByByte(t *testing.T) {
	data := append(extendedResponseFixture(), searchRequestFixture(t)...)

	d := NewDecoder(DefaultOptions())
	var msgs []*Message
	for i := range data {
		got, err := d.Feed(data[i : i+1])
		require.NoError(t, err)
		msgs = append(msgs, got...)
		if i < len(data)-1 {
			assert.True(t, d.Pending(), "offset %d", i)
		}
	}
	require.Len(t, msgs, 2)
	assert.Equal(t, int32(456), msgs[0].MessageID)
	assert.Equal(t, ApplicationSearchRequest, msgs[1].OperationType())
}

func TestDecodeSeveralMessagesInOneChunk(t *testing.T) {
	unbind := []byte{0x30, 0x05, 0x02, 0x01, 0x03, 0x42, 0x00}
	abandon := []byte{0x30, 0x06, 0x02, 0x01, 0x04, 0x50, 0x01, 0x02}

	var data []byte
	data = append(data, unbind...)
	data = append(data, abandon...)
	data = append(data, unbind[:3]...)

	d := NewDecoder(DefaultOptions())
	msgs, err := d.Feed(data)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.IsType(t, &UnbindRequest{}, msgs[0].Op)
	assert.Equal(t, int32(3), msgs[0].MessageID)
	assert.Equal(t, &AbandonRequest{MessageID: 2}, msgs[1].Op)
	assert.True(t, d.Pending())

	msgs, err = d.Feed(unbind[3:])
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.False(t, d.Pending())
}

func TestDecodeIndefiniteLength(t *testing.T) {
	data := []byte{
		0x30, 0x80,
		0x02, 0x01, 0x09,
		0x6b, 0x80, // DelResponse
		0x0a, 0x01, 0x00,
		0x04, 0x00,
		0x04, 0x00,
		0x00, 0x00,
		0x00, 0x00,
	}
	msg := decodeOne(t, DefaultOptions(), data)
	assert.Equal(t, &DeleteResponse{}, msg.Op)
}

func TestDecodeUnexpectedTag(t *testing.T) {
	// protocolOp is an OCTET STRING
	data := []byte{0x30, 0x06, 0x02, 0x01, 0x07, 0x04, 0x01, 'x'}

	d := NewDecoder(DefaultOptions())
	msgs, err := d.Feed(data)
	require.Error(t, err)
	assert.Empty(t, msgs)
	assert.True(t, errors.Is(err, ErrUnexpectedTag))

	var derr *DecodeError
	require.True(t, errors.As(err, &derr))
	assert.True(t, derr.HasMessageID)
	assert.Equal(t, int32(7), derr.MessageID)
	assert.Equal(t, len(data), derr.Offset)

	var terr *UnexpectedTagError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, byte(0x04), terr.Tag)
	assert.Equal(t, "LDAPMessage.expectProtocolOp", terr.State.String())
}

func TestDecodeErrorIsSticky(t *testing.T) {
	bad := []byte{0x30, 0x03, 0x04, 0x01, 'x'}
	good := []byte{0x30, 0x05, 0x02, 0x01, 0x01, 0x42, 0x00}

	d := NewDecoder(DefaultOptions())
	msgs, err := d.Feed(append(append([]byte{}, good...), bad...))
	require.Error(t, err)
	require.Len(t, msgs, 1, "messages before the failure are returned")
	assert.Equal(t, err, d.Err())

	var derr *DecodeError
	require.True(t, errors.As(err, &derr))
	assert.False(t, derr.HasMessageID)

	msgs, err2 := d.Feed(good)
	assert.Empty(t, msgs)
	assert.Equal(t, err, err2)
	assert.False(t, d.Pending())

	d.Reset()
	assert.NoError(t, d.Err())
	msgs, err = d.Feed(good)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestDecodePrematureEnd(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty message", []byte{0x30, 0x00}},
		{"no protocolOp", []byte{0x30, 0x03, 0x02, 0x01, 0x01}},
		{"empty bind request", []byte{0x30, 0x05, 0x02, 0x01, 0x01, 0x60, 0x00}},
		{"result without diagnosticMessage", berMessage(1, berOp(ApplicationAddResponse, berEnum(0), berString("")))},
		{"empty reference", berMessage(1, berOp(ApplicationSearchResultReference))},
		{"empty control", berMessage(1, berOp(ApplicationDelResponse, berResult(0, "", "")...), berSeq())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decodeErr(t, DefaultOptions(), tt.data)
			assert.True(t, errors.Is(err, ErrPrematureEnd), err.Error())
		})
	}
}

func TestDecodeMessageIDRange(t *testing.T) {
	err := decodeErr(t, DefaultOptions(), []byte{0x30, 0x05, 0x02, 0x01, 0xff, 0x42, 0x00})
	assert.True(t, errors.Is(err, ber.ErrIntegerOutOfRange))

	err = decodeErr(t, DefaultOptions(), []byte{0x30, 0x09, 0x02, 0x05, 0x00, 0x80, 0x00, 0x00, 0x00, 0x42, 0x00})
	assert.True(t, errors.Is(err, ber.ErrIntegerOutOfRange))

	msg := decodeOne(t, DefaultOptions(), []byte{0x30, 0x08, 0x02, 0x04, 0x7f, 0xff, 0xff, 0xff, 0x42, 0x00})
	assert.Equal(t, int32(MaxMessageID), msg.MessageID)
}

func TestDecodeLimits(t *testing.T) {
	big := berMessage(1, berOp(ApplicationAddRequest,
		berString("cn=x"),
		berSeq(berSeq(berString("description"), berSet(berString(string(bytes.Repeat([]byte("a"), 300)))))),
	))

	opts := DefaultOptions()
	opts.MaxPDUSize = 128
	err := decodeErr(t, opts, big)
	assert.True(t, errors.Is(err, ber.ErrMessageTooLarge))

	opts = DefaultOptions()
	opts.MaxDepth = 3
	err = decodeErr(t, opts, big)
	assert.True(t, errors.Is(err, ber.ErrMaxDepth))

	opts = DefaultOptions()
	opts.MaxLengthBytes = 1
	err = decodeErr(t, opts, []byte{0x30, 0x83, 0x00, 0x00, 0x05})
	assert.True(t, errors.Is(err, ber.ErrMalformedLength))
}

func TestDecoderLogsWithSession(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = logging.NewWithWriter(logging.Config{Level: "debug", Format: "json"}, &buf)

	d := NewDecoder(opts)
	_, err := d.Feed(extendedResponseFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "decoded message")
	assert.Contains(t, out, "session_id")
	assert.Contains(t, out, "ExtendedResponse")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "LDAPMessage.start", grammar.start.String())
	assert.Equal(t, "State(0)", stateNone.String())
	assert.Equal(t, "State(-1)", State(-1).String())
}

func BenchmarkDecodeSearchRequest(b *testing.B) {
	data := berMessage(2, berOp(ApplicationSearchRequest,
		berString("dc=example,dc=com"),
		berEnum(2), berEnum(0), berInt(0), berInt(0), berBool(false),
		berCtxC(FilterTagAnd,
			berCtxC(FilterTagEquality, berString("objectClass"), berString("person")),
			berCtx(FilterTagPresent, "mail"),
		),
		berSeq(berString("cn"), berString("mail")),
	))
	d := NewDecoder(DefaultOptions())
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := d.Feed(data); err != nil {
			b.Fatal(err)
		}
	}
}

func TestUnexpectedTagStateNames(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		state string
	}{
		{"missing messageID", []byte{0x30, 0x03, 0x04, 0x01, 'x'}, "LDAPMessage.expectMessageID"},
		{"protocolOp not a choice", []byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x04, 0x01, 'x'}, "LDAPMessage.expectProtocolOp"},
		{"trailing element after protocolOp", []byte{0x30, 0x08, 0x02, 0x01, 0x01, 0x42, 0x00, 0x04, 0x01, 'x'}, "LDAPMessage.expectControls"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder(DefaultOptions()).Feed(tt.data)
			var terr *UnexpectedTagError
			require.True(t, errors.As(err, &terr))
			assert.Equal(t, tt.state, terr.State.String())
		})
	}
}
