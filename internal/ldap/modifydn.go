package ldap

import (
	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
)

// ContextTagNewSuperior is the tag of newSuperior in ModifyDNRequest [0]
const ContextTagNewSuperior = 0

// ModifyDNRequest represents an LDAP ModifyDN Request
// ModifyDNRequest ::= [APPLICATION 12] SEQUENCE {
//
//	entry           LDAPDN,
//	newrdn          RelativeLDAPDN,
//	deleteoldrdn    BOOLEAN,
//	newSuperior     [0] LDAPDN OPTIONAL
//
// }
type ModifyDNRequest struct {
	// Entry is the DN of the entry to rename/move
	Entry string
	// NewRDN is the new relative distinguished name
	NewRDN string
	// DeleteOldRDN indicates whether to delete the old RDN attribute values
	DeleteOldRDN bool
	// NewSuperior is the optional new parent DN (for moving entries)
	NewSuperior string
	// HasNewSuperior is set when newSuperior was present, even if empty
	HasNewSuperior bool
}

// OperationType implements ProtocolOp.
func (r *ModifyDNRequest) OperationType() OperationType { return ApplicationModifyDNRequest }

func (r *ModifyDNRequest) encode(e *ber.BEREncoder) {
	pos := e.Begin(ApplicationModifyDNRequest.Tag())
	e.WriteString(r.Entry)
	e.WriteString(r.NewRDN)
	e.WriteBoolean(r.DeleteOldRDN)
	if r.HasNewSuperior || r.NewSuperior != "" {
		e.WriteTaggedValue(ContextTagNewSuperior, false, []byte(r.NewSuperior))
	}
	e.End(pos)
}
