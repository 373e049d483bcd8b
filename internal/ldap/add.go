package ldap

import (
	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
)

// AddRequest represents an LDAP Add Request
// AddRequest ::= [APPLICATION 8] SEQUENCE {
//
//	entry           LDAPDN,
//	attributes      AttributeList
//
// }
// AttributeList ::= SEQUENCE OF attribute Attribute
// Attribute ::= PartialAttribute(WITH COMPONENTS { ..., vals (SIZE(1..MAX))})
type AddRequest struct {
	// Entry is the DN of the entry to add
	Entry string
	// Attributes contains the list of attributes for the new entry
	Attributes []Attribute
}

// OperationType implements ProtocolOp.
func (r *AddRequest) OperationType() OperationType { return ApplicationAddRequest }

// GetAttribute returns the values of the named attribute.
func (r *AddRequest) GetAttribute(name string) [][]byte {
	for _, a := range r.Attributes {
		if a.Type == name {
			return a.Values
		}
	}
	return nil
}

func (r *AddRequest) encode(e *ber.BEREncoder) {
	pos := e.Begin(ApplicationAddRequest.Tag())
	e.WriteString(r.Entry)
	encodeAttributes(e, r.Attributes)
	e.End(pos)
}
