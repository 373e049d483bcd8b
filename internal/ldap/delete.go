package ldap

import (
	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
)

// DeleteRequest represents an LDAP Delete Request
// DelRequest ::= [APPLICATION 10] LDAPDN
// Note: DelRequest is a primitive type (just an LDAPDN), not a SEQUENCE
type DeleteRequest struct {
	// DN is the distinguished name of the entry to delete
	DN string
}

// OperationType implements ProtocolOp.
func (r *DeleteRequest) OperationType() OperationType { return ApplicationDelRequest }

func (r *DeleteRequest) encode(e *ber.BEREncoder) {
	e.WriteElement(ApplicationDelRequest.Tag(), []byte(r.DN))
}

// UnbindRequest represents an LDAP Unbind Request
// UnbindRequest ::= [APPLICATION 2] NULL
type UnbindRequest struct{}

// OperationType implements ProtocolOp.
func (r *UnbindRequest) OperationType() OperationType { return ApplicationUnbindRequest }

func (r *UnbindRequest) encode(e *ber.BEREncoder) {
	e.WriteElement(ApplicationUnbindRequest.Tag(), nil)
}

// AbandonRequest represents an LDAP Abandon Request
// AbandonRequest ::= [APPLICATION 16] MessageID
type AbandonRequest struct {
	// MessageID is the ID of the message to abandon
	MessageID int32
}

// OperationType implements ProtocolOp.
func (r *AbandonRequest) OperationType() OperationType { return ApplicationAbandonRequest }

func (r *AbandonRequest) encode(e *ber.BEREncoder) {
	e.WriteIntegerWithTag(ApplicationAbandonRequest.Tag(), int64(r.MessageID))
}
