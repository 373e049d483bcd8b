package ldap

import (
	"fmt"

	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
)

// ModifyOperation represents the type of modification operation
type ModifyOperation int

const (
	// ModifyOperationAdd adds values to an attribute
	ModifyOperationAdd ModifyOperation = 0
	// ModifyOperationDelete deletes values from an attribute
	ModifyOperationDelete ModifyOperation = 1
	// ModifyOperationReplace replaces all values of an attribute
	ModifyOperationReplace ModifyOperation = 2
	// ModifyOperationIncrement increments an integer attribute (RFC 4525)
	ModifyOperationIncrement ModifyOperation = 3
)

// String returns the string representation of the modify operation
func (m ModifyOperation) String() string {
	switch m {
	case ModifyOperationAdd:
		return "Add"
	case ModifyOperationDelete:
		return "Delete"
	case ModifyOperationReplace:
		return "Replace"
	case ModifyOperationIncrement:
		return "Increment"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// Modification represents a single modification in a ModifyRequest
// Change ::= SEQUENCE {
//
//	operation       ENUMERATED { add(0), delete(1), replace(2), increment(3) },
//	modification    PartialAttribute
//
// }
type Modification struct {
	// Operation is the type of modification
	Operation ModifyOperation
	// Attribute contains the attribute type and values for the modification
	Attribute Attribute
}

// ModifyRequest represents an LDAP Modify Request
// ModifyRequest ::= [APPLICATION 6] SEQUENCE {
//
//	object          LDAPDN,
//	changes         SEQUENCE OF change Change
//
// }
type ModifyRequest struct {
	// Object is the DN of the entry to modify
	Object string
	// Changes contains the list of modifications to apply
	Changes []Modification
}

// OperationType implements ProtocolOp.
func (r *ModifyRequest) OperationType() OperationType { return ApplicationModifyRequest }

func (r *ModifyRequest) encode(e *ber.BEREncoder) {
	pos := e.Begin(ApplicationModifyRequest.Tag())
	e.WriteString(r.Object)
	changes := e.BeginSequence()
	for _, c := range r.Changes {
		change := e.BeginSequence()
		e.WriteEnumerated(int64(c.Operation))
		encodeAttribute(e, c.Attribute)
		e.End(change)
	}
	e.End(changes)
	e.End(pos)
}
