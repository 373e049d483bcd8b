package ldap

import (
	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
)

// CompareRequest represents an LDAP Compare Request
// CompareRequest ::= [APPLICATION 14] SEQUENCE {
//
//	entry           LDAPDN,
//	ava             AttributeValueAssertion
//
// }
// AttributeValueAssertion ::= SEQUENCE {
//
//	attributeDesc   AttributeDescription,
//	assertionValue  AssertionValue
//
// }
type CompareRequest struct {
	// DN is the distinguished name of the entry to compare
	DN string
	// Attribute is the attribute description to compare
	Attribute string
	// Value is the assertion value to compare against
	Value []byte
}

// OperationType implements ProtocolOp.
func (r *CompareRequest) OperationType() OperationType { return ApplicationCompareRequest }

func (r *CompareRequest) encode(e *ber.BEREncoder) {
	pos := e.Begin(ApplicationCompareRequest.Tag())
	e.WriteString(r.DN)
	ava := e.BeginSequence()
	e.WriteString(r.Attribute)
	e.WriteOctetString(r.Value)
	e.End(ava)
	e.End(pos)
}
