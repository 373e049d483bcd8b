package ber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOIDRoundTrip(t *testing.T) {
	oids := []string{
		"0.0",
		"1.2.840.113556.1.4.319",
		"1.3.6.1.4.1.4203.1.11.1",
		"2.5.4.3",
		"2.999.3",
		"2.25.329800735698586629295641978511506172918",
		"1.3.6.1.4.1.1466.20037",
	}

	for _, s := range oids {
		t.Run(s, func(t *testing.T) {
			encoded, err := EncodeOID(s)
			require.NoError(t, err)

			oid, err := DecodeOID(encoded)
			require.NoError(t, err)
			assert.Equal(t, s, oid.String())
			assert.Equal(t, encoded, oid.Bytes())
		})
	}
}

func TestEncodeOIDKnownBytes(t *testing.T) {
	encoded, err := EncodeOID("1.2.840.113556.1.4.319")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x2A, 0x86, 0x48, 0x86, 0xF7, 0x14, 0x01, 0x04, 0x82, 0x3F}, encoded)

	// The first subidentifier exceeds 127 under arc 2.
	encoded, err = EncodeOID("2.100.3")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x81, 0x34, 0x03}, encoded)
}

func TestDecodeOIDErrors(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{name: "empty", content: nil},
		{name: "truncated", content: []byte{0x2A, 0x86}},
		{name: "non-minimal subidentifier", content: []byte{0x2A, 0x80, 0x01}},
		{name: "non-minimal first", content: []byte{0x80, 0x2A}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeOID(tt.content)
			assert.ErrorIs(t, err, ErrInvalidOID)
		})
	}
}

func TestIsValidOID(t *testing.T) {
	tests := []struct {
		oid  string
		want bool
	}{
		{"0.0", true},
		{"0.39", true},
		{"1.39.5", true},
		{"2.40", true},
		{"2.5.4.3", true},
		{"0.123456", true},
		{"1.40", true},
		{"1.2.840.113556.1.4.643", true},
		{"", false},
		{"0", false},
		{"3.1", false},
		{"0..1", false},
		{"0.", false},
		{"1.2.", false},
		{".1.2", false},
		{"1..2", false},
		{"1.2.a", false},
		{"1.02", false},
		{"01.2", false},
		{"1.2.3 ", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidOID(tt.oid), "IsValidOID(%q)", tt.oid)
	}
}

func TestParseOID(t *testing.T) {
	oid, err := ParseOID("1.3.6.1")
	require.NoError(t, err)
	assert.Len(t, oid.Arcs(), 4)
	assert.True(t, oid.Equal(MustParseOID("1.3.6.1")))
	assert.False(t, oid.Equal(MustParseOID("1.3.6.2")))
	assert.False(t, oid.IsZero())

	_, err = ParseOID("4.1")
	assert.ErrorIs(t, err, ErrInvalidOID)

	// syntactically valid, but arc1*40+arc2 would collide with first arc 2
	for _, s := range []string{"0.123456", "0.40", "1.40"} {
		_, err = ParseOID(s)
		assert.ErrorIs(t, err, ErrInvalidOID, s)
		_, err = EncodeOID(s)
		assert.ErrorIs(t, err, ErrInvalidOID, s)
	}
	_, err = ParseOID("1.39")
	assert.NoError(t, err)
	assert.Panics(t, func() { MustParseOID("x") })
}
