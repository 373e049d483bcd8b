package ldap

import (
	"errors"
	"testing"

	asn1ber "github.com/go-asn1-ber/asn1-ber"
	goldap "github.com/go-ldap/ldap/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
	"github.com/KilimcininKorOglu/ldapcodec/internal/filter"
)

const complexFilter = "(&(objectClass=person)(|(cn=Jo*hn*son)(!(mail=*)))(uid>=a)(uid<=z)(sn~=smith)(cn:caseExactMatch:=Bob))"

func searchRequestFixture(t testing.TB) []byte {
	f, err := goldap.CompileFilter(complexFilter)
	require.NoError(t, err)
	return berMessage(2, berOp(ApplicationSearchRequest,
		berString("dc=example,dc=com"),
		berEnum(int64(ScopeWholeSubtree)),
		berEnum(int64(DerefAlways)),
		berInt(10),
		berInt(30),
		berBool(true),
		f,
		berSeq(berString("cn"), berString("mail")),
	))
}

func searchWithFilter(f *asn1ber.Packet) []byte {
	return berMessage(2, berOp(ApplicationSearchRequest,
		berString(""), berEnum(0), berEnum(0), berInt(0), berInt(0), berBool(false),
		f,
		berSeq(),
	))
}

func TestDecodeBindRequest(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		msg := decodeOne(t, DefaultOptions(), berMessage(1, berOp(ApplicationBindRequest,
			berInt(3), berString("cn=admin,dc=example,dc=com"), berCtx(AuthSimple, "secret"))))
		req, ok := msg.Op.(*BindRequest)
		require.True(t, ok)
		assert.Equal(t, 3, req.Version)
		assert.Equal(t, "cn=admin,dc=example,dc=com", req.Name)
		assert.Equal(t, AuthMethodSimple, req.AuthMethod)
		assert.Equal(t, []byte("secret"), req.SimplePassword)
		assert.False(t, req.IsAnonymous())
	})

	t.Run("anonymous", func(t *testing.T) {
		msg := decodeOne(t, DefaultOptions(), berMessage(1, berOp(ApplicationBindRequest,
			berInt(3), berString(""), berCtx(AuthSimple, ""))))
		req := msg.Op.(*BindRequest)
		assert.True(t, req.IsAnonymous())
		assert.NotNil(t, req.SimplePassword)
	})

	t.Run("sasl", func(t *testing.T) {
		msg := decodeOne(t, DefaultOptions(), berMessage(1, berOp(ApplicationBindRequest,
			berInt(3), berString(""), berCtxC(AuthSASL, berString("PLAIN"), berString("\x00user\x00pass")))))
		req := msg.Op.(*BindRequest)
		assert.Equal(t, AuthMethodSASL, req.AuthMethod)
		require.NotNil(t, req.SASLCredentials)
		assert.Equal(t, "PLAIN", req.SASLCredentials.Mechanism)
		assert.Equal(t, []byte("\x00user\x00pass"), req.SASLCredentials.Credentials)
	})

	t.Run("sasl without credentials", func(t *testing.T) {
		msg := decodeOne(t, DefaultOptions(), berMessage(1, berOp(ApplicationBindRequest,
			berInt(3), berString(""), berCtxC(AuthSASL, berString("EXTERNAL")))))
		req := msg.Op.(*BindRequest)
		assert.Equal(t, "EXTERNAL", req.SASLCredentials.Mechanism)
		assert.Nil(t, req.SASLCredentials.Credentials)
	})

	t.Run("version out of range", func(t *testing.T) {
		err := decodeErr(t, DefaultOptions(), berMessage(1, berOp(ApplicationBindRequest,
			berInt(128), berString(""), berCtx(AuthSimple, ""))))
		assert.True(t, errors.Is(err, ber.ErrIntegerOutOfRange))
	})

	t.Run("unknown authentication choice", func(t *testing.T) {
		err := decodeErr(t, DefaultOptions(), berMessage(1, berOp(ApplicationBindRequest,
			berInt(3), berString(""), berCtx(1, "x"))))
		assert.True(t, errors.Is(err, ErrUnexpectedTag))
	})

	t.Run("sasl without mechanism", func(t *testing.T) {
		err := decodeErr(t, DefaultOptions(), berMessage(1, berOp(ApplicationBindRequest,
			berInt(3), berString(""), berCtxC(AuthSASL))))
		assert.True(t, errors.Is(err, ErrPrematureEnd))
	})
}

func TestDecodeBindResponse(t *testing.T) {
	op := berOp(ApplicationBindResponse, berResult(int64(ResultSaslBindInProgress), "", "continue")...)
	op.AppendChild(berCtx(ContextTagServerSASLCreds, "challenge"))
	msg := decodeOne(t, DefaultOptions(), berMessage(1, op))

	resp := msg.Op.(*BindResponse)
	assert.Equal(t, ResultSaslBindInProgress, resp.ResultCode)
	assert.Equal(t, "continue", resp.DiagnosticMessage)
	assert.Equal(t, []byte("challenge"), resp.ServerSASLCreds)
}

func TestDecodeSearchRequest(t *testing.T) {
	msg := decodeOne(t, DefaultOptions(), searchRequestFixture(t))

	req, ok := msg.Op.(*SearchRequest)
	require.True(t, ok)
	assert.Equal(t, "dc=example,dc=com", req.BaseObject)
	assert.Equal(t, ScopeWholeSubtree, req.Scope)
	assert.Equal(t, DerefAlways, req.DerefAliases)
	assert.Equal(t, int32(10), req.SizeLimit)
	assert.Equal(t, int32(30), req.TimeLimit)
	assert.True(t, req.TypesOnly)
	assert.Equal(t, []string{"cn", "mail"}, req.Attributes)

	want, err := filter.Parse(complexFilter)
	require.NoError(t, err)
	require.NotNil(t, req.Filter)
	assert.Equal(t, want.String(), req.Filter.String())

	and := req.Filter
	require.Equal(t, filter.FilterAnd, and.Type)
	require.Len(t, and.Children, 6)
	or := and.Children[1]
	require.Equal(t, filter.FilterOr, or.Type)
	sub := or.Children[0].Substring
	require.NotNil(t, sub)
	assert.Equal(t, "cn", sub.Attribute)
	assert.Equal(t, []byte("Jo"), sub.Initial)
	assert.Equal(t, [][]byte{[]byte("hn")}, sub.Any)
	assert.Equal(t, []byte("son"), sub.Final)
	assert.Equal(t, filter.FilterNot, or.Children[1].Type)
	assert.Equal(t, filter.FilterPresent, or.Children[1].Child.Type)

	ext := and.Children[5].Extensible
	require.NotNil(t, ext)
	assert.Equal(t, "caseExactMatch", ext.MatchingRule)
	assert.Equal(t, "cn", ext.Attribute)
	assert.Equal(t, []byte("Bob"), ext.Value)
}

func TestDecodeSearchRequestFilters(t *testing.T) {
	tests := []string{
		"(cn=*)",
		"(!(cn=a))",
		"(!(!(cn=a)))",
		"(|(cn=a)(&(sn=b)(sn=c))(!(uid=d)))",
		"(cn=*end)",
		"(cn=start*)",
		"(cn=*a*b*)",
		"(:dn:2.5.13.5:=x)",
		"(cn:dn:=x)",
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			f, err := goldap.CompileFilter(s)
			require.NoError(t, err)
			msg := decodeOne(t, DefaultOptions(), searchWithFilter(f))

			want, err := filter.Parse(s)
			require.NoError(t, err)
			assert.Equal(t, want.String(), msg.Op.(*SearchRequest).Filter.String())
		})
	}
}

func TestDecodeSearchRequestInvalidFilters(t *testing.T) {
	initial := berCtx(SubstringInitial, "a")
	final := berCtx(SubstringFinal, "z")

	tests := []struct {
		name   string
		filter *asn1ber.Packet
		want   error
	}{
		{"empty and", berCtxC(FilterTagAnd), ErrPrematureEnd},
		{"empty not", berCtxC(FilterTagNot), ErrPrematureEnd},
		{"not with two operands", berCtxC(FilterTagNot, berCtx(FilterTagPresent, "a"), berCtx(FilterTagPresent, "b")), ErrUnexpectedTag},
		{"assertion without value", berCtxC(FilterTagEquality, berString("cn")), ErrPrematureEnd},
		{"empty present", berCtx(FilterTagPresent, ""), ErrInvalidFilter},
		{"constructed present", berCtxC(FilterTagPresent, berString("cn")), ErrUnexpectedTag},
		{"unknown choice", berCtxC(10, berString("cn")), ErrUnexpectedTag},
		{"universal tag", berString("cn"), ErrUnexpectedTag},
		{"no substrings", berCtxC(FilterTagSubstrings, berString("cn"), berSeq()), ErrPrematureEnd},
		{"initial after final", berCtxC(FilterTagSubstrings, berString("cn"), berSeq(final, initial)), ErrUnexpectedTag},
		{"two finals", berCtxC(FilterTagSubstrings, berString("cn"), berSeq(final, berCtx(SubstringFinal, "y"))), ErrUnexpectedTag},
		{"extensible without rule or type", berCtxC(FilterTagExtensibleMatch, berCtx(MatchValueTag, "x")), ErrInvalidFilter},
		{"extensible without value", berCtxC(FilterTagExtensibleMatch, berCtx(MatchingTypeTag, "cn")), ErrPrematureEnd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decodeErr(t, DefaultOptions(), searchWithFilter(tt.filter))
			assert.True(t, errors.Is(err, tt.want), err.Error())
		})
	}
}

func TestDecodeSearchRequestLimits(t *testing.T) {
	data := berMessage(2, berOp(ApplicationSearchRequest,
		berString(""), berEnum(3), berEnum(0), berInt(0), berInt(0), berBool(false),
		berCtx(FilterTagPresent, "cn"), berSeq()))
	err := decodeErr(t, DefaultOptions(), data)
	assert.True(t, errors.Is(err, ber.ErrIntegerOutOfRange))

	data = berMessage(2, berOp(ApplicationSearchRequest,
		berString(""), berEnum(0), berEnum(0), berInt(-1), berInt(0), berBool(false),
		berCtx(FilterTagPresent, "cn"), berSeq()))
	err = decodeErr(t, DefaultOptions(), data)
	assert.True(t, errors.Is(err, ber.ErrIntegerOutOfRange))
}

func TestDecodeSearchResults(t *testing.T) {
	entry := berMessage(3, berOp(ApplicationSearchResultEntry,
		berString("cn=a,dc=example,dc=com"),
		berSeq(
			berSeq(berString("cn"), berSet(berString("a"), berString("A"))),
			berSeq(berString("objectClass"), berSet()),
		),
	))
	msg := decodeOne(t, DefaultOptions(), entry)
	e := msg.Op.(*SearchResultEntry)
	assert.Equal(t, "cn=a,dc=example,dc=com", e.ObjectName)
	require.Len(t, e.Attributes, 2)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("A")}, e.GetAttribute("cn"))
	assert.Empty(t, e.Attributes[1].Values)

	ref := berMessage(3, berOp(ApplicationSearchResultReference,
		berString("ldap://a.example.com/dc=example,dc=com"),
		berString("ldap://b.example.com/dc=example,dc=com"),
	))
	msg = decodeOne(t, DefaultOptions(), ref)
	assert.Equal(t, &SearchResultReference{URIs: []string{
		"ldap://a.example.com/dc=example,dc=com",
		"ldap://b.example.com/dc=example,dc=com",
	}}, msg.Op)

	done := berMessage(3, berOp(ApplicationSearchResultDone, berResult(int64(ResultSizeLimitExceeded), "", "limit")...))
	msg = decodeOne(t, DefaultOptions(), done)
	assert.Equal(t, ResultSizeLimitExceeded, msg.Op.(*SearchResultDone).ResultCode)
}

func TestDecodeModifyRequest(t *testing.T) {
	data := berMessage(4, berOp(ApplicationModifyRequest,
		berString("cn=a,dc=example,dc=com"),
		berSeq(
			berSeq(berEnum(int64(ModifyOperationReplace)), berSeq(berString("mail"), berSet(berString("a@example.com")))),
			berSeq(berEnum(int64(ModifyOperationDelete)), berSeq(berString("description"), berSet())),
		),
	))
	msg := decodeOne(t, DefaultOptions(), data)
	req := msg.Op.(*ModifyRequest)
	assert.Equal(t, "cn=a,dc=example,dc=com", req.Object)
	assert.Equal(t, []Modification{
		{Operation: ModifyOperationReplace, Attribute: Attribute{Type: "mail", Values: [][]byte{[]byte("a@example.com")}}},
		{Operation: ModifyOperationDelete, Attribute: Attribute{Type: "description"}},
	}, req.Changes)

	bad := berMessage(4, berOp(ApplicationModifyRequest,
		berString("cn=a"),
		berSeq(berSeq(berEnum(4), berSeq(berString("mail"), berSet()))),
	))
	err := decodeErr(t, DefaultOptions(), bad)
	assert.True(t, errors.Is(err, ber.ErrIntegerOutOfRange))

	trailing := berMessage(4, berOp(ApplicationModifyRequest,
		berString("cn=a"),
		berSeq(berSeq(berEnum(0), berSeq(berString("mail"), berSet(), berString("x")))),
	))
	err = decodeErr(t, DefaultOptions(), trailing)
	assert.True(t, errors.Is(err, ErrUnexpectedTag))
}

func TestDecodeAddRequest(t *testing.T) {
	data := berMessage(5, berOp(ApplicationAddRequest,
		berString("cn=new,dc=example,dc=com"),
		berSeq(
			berSeq(berString("objectClass"), berSet(berString("top"), berString("person"))),
			berSeq(berString("cn"), berSet(berString("new"))),
		),
	))
	msg := decodeOne(t, DefaultOptions(), data)
	req := msg.Op.(*AddRequest)
	assert.Equal(t, "cn=new,dc=example,dc=com", req.Entry)
	require.Len(t, req.Attributes, 2)
	assert.Equal(t, [][]byte{[]byte("new")}, req.GetAttribute("cn"))

	empty := berMessage(5, berOp(ApplicationAddRequest,
		berString("cn=new"),
		berSeq(berSeq(berString("cn"), berSet())),
	))
	err := decodeErr(t, DefaultOptions(), empty)
	assert.True(t, errors.Is(err, ErrPrematureEnd))
}

func TestDecodeSimpleRequests(t *testing.T) {
	del := asn1ber.NewString(asn1ber.ClassApplication, asn1ber.TypePrimitive, asn1ber.Tag(ApplicationDelRequest), "cn=old,dc=example,dc=com", "")
	msg := decodeOne(t, DefaultOptions(), berMessage(6, del))
	assert.Equal(t, &DeleteRequest{DN: "cn=old,dc=example,dc=com"}, msg.Op)

	abandon := asn1ber.NewInteger(asn1ber.ClassApplication, asn1ber.TypePrimitive, asn1ber.Tag(ApplicationAbandonRequest), int64(5), "")
	msg = decodeOne(t, DefaultOptions(), berMessage(7, abandon))
	assert.Equal(t, &AbandonRequest{MessageID: 5}, msg.Op)

	msg = decodeOne(t, DefaultOptions(), []byte{0x30, 0x05, 0x02, 0x01, 0x08, 0x42, 0x00})
	assert.Equal(t, &UnbindRequest{}, msg.Op)

	err := decodeErr(t, DefaultOptions(), []byte{0x30, 0x06, 0x02, 0x01, 0x08, 0x42, 0x01, 0x00})
	assert.True(t, errors.Is(err, ErrInvalidUnbind))

	// constructed form of a primitive operation
	err = decodeErr(t, DefaultOptions(), berMessage(6, berOp(ApplicationDelRequest)))
	assert.True(t, errors.Is(err, ErrUnexpectedTag))
}

func TestDecodeModifyDNRequest(t *testing.T) {
	data := berMessage(8, berOp(ApplicationModifyDNRequest,
		berString("cn=a,ou=old,dc=example,dc=com"),
		berString("cn=b"),
		berBool(true),
		berCtx(ContextTagNewSuperior, "ou=new,dc=example,dc=com"),
	))
	msg := decodeOne(t, DefaultOptions(), data)
	assert.Equal(t, &ModifyDNRequest{
		Entry:          "cn=a,ou=old,dc=example,dc=com",
		NewRDN:         "cn=b",
		DeleteOldRDN:   true,
		NewSuperior:    "ou=new,dc=example,dc=com",
		HasNewSuperior: true,
	}, msg.Op)

	data = berMessage(8, berOp(ApplicationModifyDNRequest, berString("cn=a"), berString("cn=b"), berBool(false)))
	msg = decodeOne(t, DefaultOptions(), data)
	assert.False(t, msg.Op.(*ModifyDNRequest).HasNewSuperior)
}

func TestDecodeCompareRequest(t *testing.T) {
	data := berMessage(9, berOp(ApplicationCompareRequest,
		berString("cn=a,dc=example,dc=com"),
		berSeq(berString("sn"), berString("Smith")),
	))
	msg := decodeOne(t, DefaultOptions(), data)
	assert.Equal(t, &CompareRequest{DN: "cn=a,dc=example,dc=com", Attribute: "sn", Value: []byte("Smith")}, msg.Op)

	resp := berMessage(9, berOp(ApplicationCompareResponse, berResult(int64(ResultCompareTrue), "", "")...))
	msg = decodeOne(t, DefaultOptions(), resp)
	assert.Equal(t, ResultCompareTrue, msg.Op.(*CompareResponse).ResultCode)
}

func TestDecodeUpdateResponses(t *testing.T) {
	tests := []struct {
		op   OperationType
		want ProtocolOp
	}{
		{ApplicationModifyResponse, &ModifyResponse{LDAPResult{ResultCode: ResultBusy, DiagnosticMessage: "busy"}}},
		{ApplicationAddResponse, &AddResponse{LDAPResult{ResultCode: ResultBusy, DiagnosticMessage: "busy"}}},
		{ApplicationDelResponse, &DeleteResponse{LDAPResult{ResultCode: ResultBusy, DiagnosticMessage: "busy"}}},
		{ApplicationModifyDNResponse, &ModifyDNResponse{LDAPResult{ResultCode: ResultBusy, DiagnosticMessage: "busy"}}},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			msg := decodeOne(t, DefaultOptions(), berMessage(10, berOp(tt.op, berResult(int64(ResultBusy), "", "busy")...)))
			assert.Equal(t, tt.want, msg.Op)
		})
	}
}

func TestDecodeExtendedOperations(t *testing.T) {
	t.Run("password modify request", func(t *testing.T) {
		value := (&PasswordModifyRequest{UserIdentity: []byte("uid=a"), NewPassword: []byte("new")}).Encode()
		data := berMessage(11, berOp(ApplicationExtendedRequest,
			berCtx(ContextTagRequestName, OIDPasswordModify),
			berCtx(ContextTagRequestValue, string(value)),
		))
		msg := decodeOne(t, DefaultOptions(), data)
		req := msg.Op.(*ExtendedRequest)
		assert.Equal(t, OIDPasswordModify, req.Name)
		assert.True(t, req.HasValue)
		assert.Equal(t, &PasswordModifyRequest{UserIdentity: []byte("uid=a"), NewPassword: []byte("new")}, req.Decoded)
	})

	t.Run("start tls", func(t *testing.T) {
		msg := decodeOne(t, DefaultOptions(), berMessage(11, berOp(ApplicationExtendedRequest,
			berCtx(ContextTagRequestName, OIDStartTLS))))
		req := msg.Op.(*ExtendedRequest)
		assert.False(t, req.HasValue)
		assert.Equal(t, &StartTLSRequest{}, req.Decoded)

		op := berOp(ApplicationExtendedResponse, berResult(0, "", "")...)
		op.AppendChild(berCtx(ContextTagResponseName, OIDStartTLS))
		msg = decodeOne(t, DefaultOptions(), berMessage(11, op))
		assert.Equal(t, &StartTLSResponse{}, msg.Op.(*ExtendedResponse).Decoded)
	})

	t.Run("unregistered request", func(t *testing.T) {
		msg := decodeOne(t, DefaultOptions(), berMessage(11, berOp(ApplicationExtendedRequest,
			berCtx(ContextTagRequestName, "1.2.3.4"), berCtx(ContextTagRequestValue, ""))))
		req := msg.Op.(*ExtendedRequest)
		assert.True(t, req.HasValue)
		assert.Equal(t, []byte{}, req.Value)
		assert.Nil(t, req.Decoded)
	})

	t.Run("missing request name", func(t *testing.T) {
		err := decodeErr(t, DefaultOptions(), berMessage(11, berOp(ApplicationExtendedRequest)))
		assert.True(t, errors.Is(err, ErrPrematureEnd))
	})

	t.Run("invalid request name", func(t *testing.T) {
		err := decodeErr(t, DefaultOptions(), berMessage(11, berOp(ApplicationExtendedRequest,
			berCtx(ContextTagRequestName, "1..2"))))
		assert.True(t, errors.Is(err, ber.ErrInvalidOID))
	})

	t.Run("who am i response without name", func(t *testing.T) {
		op := berOp(ApplicationExtendedResponse, berResult(0, "", "")...)
		op.AppendChild(berCtx(ContextTagResponseValue, "dn:cn=a"))
		msg := decodeOne(t, DefaultOptions(), berMessage(11, op))
		resp := msg.Op.(*ExtendedResponse)
		assert.Nil(t, resp.Decoded)

		require.NoError(t, NewDefaultValueRegistry(nil).DecodeExtendedResponse(OIDWhoAmI, resp))
		assert.Equal(t, &WhoAmIResponse{AuthzID: "dn:cn=a"}, resp.Decoded)
	})

	t.Run("notice of disconnection", func(t *testing.T) {
		op := berOp(ApplicationExtendedResponse, berResult(int64(ResultUnavailable), "", "shutting down")...)
		op.AppendChild(berCtx(ContextTagResponseName, OIDNoticeOfDisconnection))
		msg := decodeOne(t, DefaultOptions(), berMessage(0, op))
		assert.Equal(t, int32(0), msg.MessageID)
		assert.Equal(t, &NoticeOfDisconnection{}, msg.Op.(*ExtendedResponse).Decoded)
	})

	t.Run("intermediate response", func(t *testing.T) {
		msg := decodeOne(t, DefaultOptions(), berMessage(12, berOp(ApplicationIntermediateResponse)))
		assert.Equal(t, &IntermediateResponse{}, msg.Op)

		msg = decodeOne(t, DefaultOptions(), berMessage(12, berOp(ApplicationIntermediateResponse,
			berCtx(ContextTagIntermediateName, "1.3.6.1.4.1.4203.1.9.1.4"),
			berCtx(ContextTagIntermediateValue, "raw"))))
		resp := msg.Op.(*IntermediateResponse)
		assert.Equal(t, "1.3.6.1.4.1.4203.1.9.1.4", resp.Name)
		assert.Equal(t, []byte("raw"), resp.Value)
		assert.Nil(t, resp.Decoded)
	})
}

func TestDecodeTwoProtocolOps(t *testing.T) {
	data := berSeq(berInt(1),
		berOp(ApplicationDelResponse, berResult(0, "", "")...),
		berOp(ApplicationDelResponse, berResult(0, "", "")...),
	).Bytes()
	err := decodeErr(t, DefaultOptions(), data)
	assert.True(t, errors.Is(err, ErrUnexpectedTag))
}
