package ldap

import (
	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
)

// Context-specific tags of extended operations
const (
	ContextTagRequestName       = 0  // ExtendedRequest requestName [0]
	ContextTagRequestValue      = 1  // ExtendedRequest requestValue [1]
	ContextTagResponseName      = 10 // ExtendedResponse responseName [10]
	ContextTagResponseValue     = 11 // ExtendedResponse responseValue [11]
	ContextTagIntermediateName  = 0  // IntermediateResponse responseName [0]
	ContextTagIntermediateValue = 1  // IntermediateResponse responseValue [1]
)

// Extended operation OIDs with built-in value decoders.
const (
	OIDStartTLS              = "1.3.6.1.4.1.1466.20037"
	OIDPasswordModify        = "1.3.6.1.4.1.4203.1.11.1"
	OIDWhoAmI                = "1.3.6.1.4.1.4203.1.11.3"
	OIDCancel                = "1.3.6.1.1.8"
	OIDNoticeOfDisconnection = "1.3.6.1.4.1.1466.20036"
)

// ExtendedRequest represents an LDAP Extended Request
// ExtendedRequest ::= [APPLICATION 23] SEQUENCE {
//
//	requestName      [0] LDAPOID,
//	requestValue     [1] OCTET STRING OPTIONAL
//
// }
type ExtendedRequest struct {
	Name     string
	Value    []byte
	HasValue bool
	// Decoded holds the value decoded by the ValueRegistry, if any
	Decoded any
}

// OperationType implements ProtocolOp.
func (r *ExtendedRequest) OperationType() OperationType { return ApplicationExtendedRequest }

func (r *ExtendedRequest) encode(e *ber.BEREncoder) {
	pos := e.Begin(ApplicationExtendedRequest.Tag())
	e.WriteTaggedValue(ContextTagRequestName, false, []byte(r.Name))
	if r.HasValue || r.Value != nil {
		e.WriteTaggedValue(ContextTagRequestValue, false, r.Value)
	}
	e.End(pos)
}

// ExtendedResponse represents an LDAP Extended Response
// ExtendedResponse ::= [APPLICATION 24] SEQUENCE {
//
//	COMPONENTS OF LDAPResult,
//	responseName     [10] LDAPOID OPTIONAL,
//	responseValue    [11] OCTET STRING OPTIONAL
//
// }
type ExtendedResponse struct {
	LDAPResult
	// Name is empty when responseName was absent
	Name     string
	Value    []byte
	HasValue bool
	Decoded  any
}

// OperationType implements ProtocolOp.
func (r *ExtendedResponse) OperationType() OperationType { return ApplicationExtendedResponse }

func (r *ExtendedResponse) encode(e *ber.BEREncoder) {
	pos := e.Begin(ApplicationExtendedResponse.Tag())
	r.LDAPResult.encode(e)
	if r.Name != "" {
		e.WriteTaggedValue(ContextTagResponseName, false, []byte(r.Name))
	}
	if r.HasValue || r.Value != nil {
		e.WriteTaggedValue(ContextTagResponseValue, false, r.Value)
	}
	e.End(pos)
}

// IntermediateResponse represents an LDAP Intermediate Response
// IntermediateResponse ::= [APPLICATION 25] SEQUENCE {
//
//	responseName     [0] LDAPOID OPTIONAL,
//	responseValue    [1] OCTET STRING OPTIONAL
//
// }
type IntermediateResponse struct {
	Name     string
	Value    []byte
	HasValue bool
	Decoded  any
}

// OperationType implements ProtocolOp.
func (r *IntermediateResponse) OperationType() OperationType {
	return ApplicationIntermediateResponse
}

func (r *IntermediateResponse) encode(e *ber.BEREncoder) {
	pos := e.Begin(ApplicationIntermediateResponse.Tag())
	if r.Name != "" {
		e.WriteTaggedValue(ContextTagIntermediateName, false, []byte(r.Name))
	}
	if r.HasValue || r.Value != nil {
		e.WriteTaggedValue(ContextTagIntermediateValue, false, r.Value)
	}
	e.End(pos)
}

// StartTLSRequest and StartTLSResponse (RFC 4511 Section 4.14) carry no
// value.
type (
	StartTLSRequest  struct{}
	StartTLSResponse struct{}
)

// PasswordModifyRequest is the value of a Password Modify request
// (RFC 3062). Absent fields are nil.
//
//	PasswdModifyRequestValue ::= SEQUENCE {
//	  userIdentity    [0]  OCTET STRING OPTIONAL
//	  oldPasswd       [1]  OCTET STRING OPTIONAL
//	  newPasswd       [2]  OCTET STRING OPTIONAL }
type PasswordModifyRequest struct {
	UserIdentity []byte
	OldPassword  []byte
	NewPassword  []byte
}

// Encode returns the request value.
func (p *PasswordModifyRequest) Encode() []byte {
	e := ber.NewBEREncoder(64)
	pos := e.BeginSequence()
	for i, f := range [][]byte{p.UserIdentity, p.OldPassword, p.NewPassword} {
		if f != nil {
			e.WriteTaggedValue(i, false, f)
		}
	}
	e.End(pos)
	return e.Bytes()
}

// PasswordModifyResponse is the value of a Password Modify response.
//
//	PasswdModifyResponseValue ::= SEQUENCE {
//	  genPasswd       [0]     OCTET STRING OPTIONAL }
type PasswordModifyResponse struct {
	GeneratedPassword []byte
}

// WhoAmIRequest carries no value.
type WhoAmIRequest struct{}

// WhoAmIResponse is the value of a "Who am I?" response (RFC 4532). The
// value is the authzId itself, empty for an anonymous association.
type WhoAmIResponse struct {
	AuthzID string
}

// CancelRequest is the value of a Cancel request (RFC 3909).
//
//	cancelRequestValue ::= SEQUENCE {
//	    cancelID        MessageID }
type CancelRequest struct {
	CancelID int32
}

// Encode returns the request value.
func (c *CancelRequest) Encode() []byte {
	e := ber.NewBEREncoder(8)
	pos := e.BeginSequence()
	e.WriteInteger(int64(c.CancelID))
	e.End(pos)
	return e.Bytes()
}

// NoticeOfDisconnection is the unsolicited notification sent with message
// ID 0 before a server closes the connection.
type NoticeOfDisconnection struct{}

func decodeStartTLSRequest(value []byte) (any, error) {
	if value != nil {
		return nil, errUnexpectedValue
	}
	return &StartTLSRequest{}, nil
}

func decodeStartTLSResponse(value []byte) (any, error) {
	if value != nil {
		return nil, errUnexpectedValue
	}
	return &StartTLSResponse{}, nil
}

func decodePasswordModifyRequest(value []byte) (any, error) {
	req := &PasswordModifyRequest{}
	if value == nil {
		return req, nil
	}
	d, err := sequenceOf(value)
	if err != nil {
		return nil, err
	}
	fields := []*[]byte{&req.UserIdentity, &req.OldPassword, &req.NewPassword}
	for i, f := range fields {
		if !d.IsContextTag(i) {
			continue
		}
		if *f, err = d.ReadOctetStringWithTag(i); err != nil {
			return nil, errors.Wrapf(err, "field [%d]", i)
		}
	}
	if err := end(d); err != nil {
		return nil, err
	}
	return req, nil
}

func decodePasswordModifyResponse(value []byte) (any, error) {
	resp := &PasswordModifyResponse{}
	if value == nil {
		return resp, nil
	}
	d, err := sequenceOf(value)
	if err != nil {
		return nil, err
	}
	if d.IsContextTag(0) {
		if resp.GeneratedPassword, err = d.ReadOctetStringWithTag(0); err != nil {
			return nil, errors.Wrap(err, "genPasswd")
		}
	}
	if err := end(d); err != nil {
		return nil, err
	}
	return resp, nil
}

func decodeWhoAmIRequest(value []byte) (any, error) {
	if value != nil {
		return nil, errUnexpectedValue
	}
	return &WhoAmIRequest{}, nil
}

func decodeWhoAmIResponse(value []byte) (any, error) {
	return &WhoAmIResponse{AuthzID: string(value)}, nil
}

func decodeCancelRequest(value []byte) (any, error) {
	if value == nil {
		return nil, errNoValue
	}
	d, err := sequenceOf(value)
	if err != nil {
		return nil, err
	}
	content, err := d.ReadInteger()
	if err != nil {
		return nil, errors.Wrap(err, "cancelID")
	}
	if content < MinMessageID || content > MaxMessageID {
		return nil, &ber.IntegerRangeError{Value: content, Min: MinMessageID, Max: MaxMessageID}
	}
	if err := end(d); err != nil {
		return nil, err
	}
	return &CancelRequest{CancelID: int32(content)}, nil
}

func decodeNoticeOfDisconnection(value []byte) (any, error) {
	if value != nil {
		return nil, errUnexpectedValue
	}
	return &NoticeOfDisconnection{}, nil
}

func registerDefaultExtended(r *ValueRegistry) {
	r.mustRegister(KindExtendedRequest, OIDStartTLS, decodeStartTLSRequest)
	r.mustRegister(KindExtendedResponse, OIDStartTLS, decodeStartTLSResponse)
	r.mustRegister(KindExtendedRequest, OIDPasswordModify, decodePasswordModifyRequest)
	r.mustRegister(KindExtendedResponse, OIDPasswordModify, decodePasswordModifyResponse)
	r.mustRegister(KindExtendedRequest, OIDWhoAmI, decodeWhoAmIRequest)
	r.mustRegister(KindExtendedResponse, OIDWhoAmI, decodeWhoAmIResponse)
	r.mustRegister(KindExtendedRequest, OIDCancel, decodeCancelRequest)
	r.mustRegister(KindExtendedResponse, OIDNoticeOfDisconnection, decodeNoticeOfDisconnection)
}
