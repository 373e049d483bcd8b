package ldap

import (
	"errors"
	"testing"

	goldap "github.com/go-ldap/ldap/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KilimcininKorOglu/ldapcodec/internal/filter"
)

func TestEncodeMatchesIndependentEncoder(t *testing.T) {
	msg := &Message{
		MessageID: 456,
		Op:        &ExtendedResponse{LDAPResult: LDAPResult{ResultCode: ResultProtocolError}},
		Controls: []Control{
			{OID: "1.2.840.113556.1.4.643", Criticality: true, Value: []byte("Some text"), HasValue: true},
		},
	}
	data, err := msg.Encode()
	require.NoError(t, err)
	assert.Equal(t, extendedResponseFixture(), data)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	result := LDAPResult{ResultCode: ResultReferral, DiagnosticMessage: "elsewhere", Referral: []string{"ldap://b.example.com/"}}

	ops := []ProtocolOp{
		&BindRequest{Version: 3, Name: "cn=admin", AuthMethod: AuthMethodSimple, SimplePassword: []byte("pw")},
		&BindRequest{Version: 3, AuthMethod: AuthMethodSASL, SASLCredentials: &SASLCredentials{Mechanism: "DIGEST-MD5", Credentials: []byte("resp")}},
		&BindResponse{LDAPResult: LDAPResult{ResultCode: ResultSaslBindInProgress}, ServerSASLCreds: []byte("challenge")},
		&UnbindRequest{},
		&SearchRequest{
			BaseObject:   "dc=example,dc=com",
			Scope:        ScopeSingleLevel,
			DerefAliases: DerefFindingBaseObj,
			SizeLimit:    100,
			TimeLimit:    5,
			Filter: filter.NewAndFilter(
				filter.NewEqualityFilter("objectClass", []byte("person")),
				filter.NewNotFilter(filter.NewPresentFilter("mail")),
			),
			Attributes: []string{"cn", "sn"},
		},
		&SearchResultEntry{ObjectName: "cn=a,dc=example,dc=com", Attributes: []Attribute{{Type: "cn", Values: [][]byte{[]byte("a")}}}},
		&SearchResultReference{URIs: []string{"ldap://a.example.com/dc=example,dc=com"}},
		&SearchResultDone{LDAPResult: result},
		&ModifyRequest{Object: "cn=a", Changes: []Modification{
			{Operation: ModifyOperationAdd, Attribute: Attribute{Type: "mail", Values: [][]byte{[]byte("a@example.com")}}},
			{Operation: ModifyOperationIncrement, Attribute: Attribute{Type: "uidNumber", Values: [][]byte{[]byte("1")}}},
		}},
		&ModifyResponse{LDAPResult: result},
		&AddRequest{Entry: "cn=b", Attributes: []Attribute{{Type: "objectClass", Values: [][]byte{[]byte("top"), []byte("person")}}}},
		&AddResponse{LDAPResult: LDAPResult{ResultCode: ResultEntryAlreadyExists}},
		&DeleteRequest{DN: "cn=c"},
		&DeleteResponse{LDAPResult: LDAPResult{ResultCode: ResultNoSuchObject, MatchedDN: "dc=example,dc=com"}},
		&ModifyDNRequest{Entry: "cn=d", NewRDN: "cn=e", DeleteOldRDN: true, NewSuperior: "ou=x", HasNewSuperior: true},
		&ModifyDNResponse{LDAPResult: LDAPResult{ResultCode: ResultSuccess}},
		&CompareRequest{DN: "cn=f", Attribute: "sn", Value: []byte("g")},
		&CompareResponse{LDAPResult: LDAPResult{ResultCode: ResultCompareFalse}},
		&AbandonRequest{MessageID: 300},
		&ExtendedRequest{Name: "1.3.6.1.4.1.99999.1", Value: []byte("v"), HasValue: true},
		&ExtendedResponse{LDAPResult: LDAPResult{ResultCode: ResultSuccess}, Name: "1.3.6.1.4.1.99999.1", Value: []byte("w"), HasValue: true},
		&IntermediateResponse{Name: "1.3.6.1.4.1.99999.2", Value: []byte("x"), HasValue: true},
	}

	opts := DefaultOptions()
	opts.Registry = NewValueRegistry()
	for _, op := range ops {
		t.Run(op.OperationType().String(), func(t *testing.T) {
			want := &Message{
				MessageID: 17,
				Op:        op,
				Controls:  []Control{{OID: "1.2.3.4", Criticality: true, Value: []byte("c"), HasValue: true}},
			}
			data, err := want.Encode()
			require.NoError(t, err)
			assert.Equal(t, want, decodeOne(t, opts, data))
		})
	}
}

func TestEncodeInvalidMessage(t *testing.T) {
	_, err := (&Message{MessageID: 1}).Encode()
	assert.True(t, errors.Is(err, ErrInvalidMessage))

	_, err = (&Message{MessageID: -1, Op: &UnbindRequest{}}).Encode()
	assert.True(t, errors.Is(err, ErrInvalidMessage))
}

func TestEncodeNilFilter(t *testing.T) {
	data, err := (&Message{MessageID: 1, Op: &SearchRequest{}}).Encode()
	require.NoError(t, err)

	msg := decodeOne(t, DefaultOptions(), data)
	assert.Equal(t, "(objectClass=*)", msg.Op.(*SearchRequest).Filter.String())
}

func TestEncodeFilter(t *testing.T) {
	const str = "(&(objectClass=person)(|(cn=Jo*hn*son)(!(mail=*))))"
	want, err := goldap.CompileFilter(str)
	require.NoError(t, err)

	f, err := filter.Parse(str)
	require.NoError(t, err)
	assert.Equal(t, want.Bytes(), EncodeFilter(f))
}
