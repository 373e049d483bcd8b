package ldap

import (
	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
)

// Context-specific tags for response fields
const (
	// ContextTagReferral is the tag for referral URIs in LDAPResult [3]
	ContextTagReferral = 3
	// ContextTagServerSASLCreds is the tag for server SASL credentials in BindResponse [7]
	ContextTagServerSASLCreds = 7
)

// LDAPResult represents the common result structure used in most LDAP responses.
// Per RFC 4511 Section 4.1.9:
// LDAPResult ::= SEQUENCE {
//
//	resultCode         ENUMERATED { ... },
//	matchedDN          LDAPDN,
//	diagnosticMessage  LDAPString,
//	referral           [3] Referral OPTIONAL
//
// }
type LDAPResult struct {
	// ResultCode indicates the outcome of the operation
	ResultCode ResultCode
	// MatchedDN contains the DN of the last entry matched during processing
	MatchedDN string
	// DiagnosticMessage contains additional diagnostic information
	DiagnosticMessage string
	// Referral contains URIs to other servers (optional)
	Referral []string
}

func (r *LDAPResult) result() *LDAPResult {
	return r
}

// resultOp is implemented by every response carrying an LDAPResult.
type resultOp interface {
	result() *LDAPResult
}

// encode writes the LDAPResult components without an outer tag.
func (r *LDAPResult) encode(e *ber.BEREncoder) {
	e.WriteEnumerated(int64(r.ResultCode))
	e.WriteString(r.MatchedDN)
	e.WriteString(r.DiagnosticMessage)
	if len(r.Referral) > 0 {
		pos := e.BeginContext(ContextTagReferral)
		for _, uri := range r.Referral {
			e.WriteString(uri)
		}
		e.End(pos)
	}
}

func encodeResponse(e *ber.BEREncoder, op OperationType, r *LDAPResult) {
	pos := e.Begin(op.Tag())
	r.encode(e)
	e.End(pos)
}

// BindResponse represents an LDAP Bind response.
// Per RFC 4511 Section 4.2.2:
// BindResponse ::= [APPLICATION 1] SEQUENCE {
//
//	COMPONENTS OF LDAPResult,
//	serverSaslCreds    [7] OCTET STRING OPTIONAL
//
// }
type BindResponse struct {
	LDAPResult
	// ServerSASLCreds is nil when absent
	ServerSASLCreds []byte
}

// OperationType implements ProtocolOp.
func (r *BindResponse) OperationType() OperationType { return ApplicationBindResponse }

func (r *BindResponse) encode(e *ber.BEREncoder) {
	pos := e.Begin(ApplicationBindResponse.Tag())
	r.LDAPResult.encode(e)
	if r.ServerSASLCreds != nil {
		e.WriteElement(ber.MakeTag(ber.ClassContextSpecific, false, ContextTagServerSASLCreds), r.ServerSASLCreds)
	}
	e.End(pos)
}

// SearchResultDone ::= [APPLICATION 5] LDAPResult
type SearchResultDone struct {
	LDAPResult
}

// OperationType implements ProtocolOp.
func (r *SearchResultDone) OperationType() OperationType { return ApplicationSearchResultDone }

func (r *SearchResultDone) encode(e *ber.BEREncoder) {
	encodeResponse(e, ApplicationSearchResultDone, &r.LDAPResult)
}

// ModifyResponse ::= [APPLICATION 7] LDAPResult
type ModifyResponse struct {
	LDAPResult
}

// OperationType implements ProtocolOp.
func (r *ModifyResponse) OperationType() OperationType { return ApplicationModifyResponse }

func (r *ModifyResponse) encode(e *ber.BEREncoder) {
	encodeResponse(e, ApplicationModifyResponse, &r.LDAPResult)
}

// AddResponse ::= [APPLICATION 9] LDAPResult
type AddResponse struct {
	LDAPResult
}

// OperationType implements ProtocolOp.
func (r *AddResponse) OperationType() OperationType { return ApplicationAddResponse }

func (r *AddResponse) encode(e *ber.BEREncoder) {
	encodeResponse(e, ApplicationAddResponse, &r.LDAPResult)
}

// DeleteResponse ::= [APPLICATION 11] LDAPResult
type DeleteResponse struct {
	LDAPResult
}

// OperationType implements ProtocolOp.
func (r *DeleteResponse) OperationType() OperationType { return ApplicationDelResponse }

func (r *DeleteResponse) encode(e *ber.BEREncoder) {
	encodeResponse(e, ApplicationDelResponse, &r.LDAPResult)
}

// ModifyDNResponse ::= [APPLICATION 13] LDAPResult
type ModifyDNResponse struct {
	LDAPResult
}

// OperationType implements ProtocolOp.
func (r *ModifyDNResponse) OperationType() OperationType { return ApplicationModifyDNResponse }

func (r *ModifyDNResponse) encode(e *ber.BEREncoder) {
	encodeResponse(e, ApplicationModifyDNResponse, &r.LDAPResult)
}

// CompareResponse ::= [APPLICATION 15] LDAPResult
type CompareResponse struct {
	LDAPResult
}

// OperationType implements ProtocolOp.
func (r *CompareResponse) OperationType() OperationType { return ApplicationCompareResponse }

func (r *CompareResponse) encode(e *ber.BEREncoder) {
	encodeResponse(e, ApplicationCompareResponse, &r.LDAPResult)
}
