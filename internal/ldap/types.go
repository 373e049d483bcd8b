package ldap

import (
	"fmt"

	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
)

// OperationType identifies a protocolOp by its APPLICATION tag number.
type OperationType int

// LDAP protocol operation tags (APPLICATION class)
// Per RFC 4511 Section 4.2
const (
	ApplicationBindRequest           OperationType = 0  // [APPLICATION 0]
	ApplicationBindResponse          OperationType = 1  // [APPLICATION 1]
	ApplicationUnbindRequest         OperationType = 2  // [APPLICATION 2]
	ApplicationSearchRequest         OperationType = 3  // [APPLICATION 3]
	ApplicationSearchResultEntry     OperationType = 4  // [APPLICATION 4]
	ApplicationSearchResultDone      OperationType = 5  // [APPLICATION 5]
	ApplicationModifyRequest         OperationType = 6  // [APPLICATION 6]
	ApplicationModifyResponse        OperationType = 7  // [APPLICATION 7]
	ApplicationAddRequest            OperationType = 8  // [APPLICATION 8]
	ApplicationAddResponse           OperationType = 9  // [APPLICATION 9]
	ApplicationDelRequest            OperationType = 10 // [APPLICATION 10]
	ApplicationDelResponse           OperationType = 11 // [APPLICATION 11]
	ApplicationModifyDNRequest       OperationType = 12 // [APPLICATION 12]
	ApplicationModifyDNResponse      OperationType = 13 // [APPLICATION 13]
	ApplicationCompareRequest        OperationType = 14 // [APPLICATION 14]
	ApplicationCompareResponse       OperationType = 15 // [APPLICATION 15]
	ApplicationAbandonRequest        OperationType = 16 // [APPLICATION 16]
	ApplicationSearchResultReference OperationType = 19 // [APPLICATION 19]
	ApplicationExtendedRequest       OperationType = 23 // [APPLICATION 23]
	ApplicationExtendedResponse      OperationType = 24 // [APPLICATION 24]
	ApplicationIntermediateResponse  OperationType = 25 // [APPLICATION 25]
)

var operationNames = map[OperationType]string{
	ApplicationBindRequest:           "BindRequest",
	ApplicationBindResponse:          "BindResponse",
	ApplicationUnbindRequest:         "UnbindRequest",
	ApplicationSearchRequest:         "SearchRequest",
	ApplicationSearchResultEntry:     "SearchResultEntry",
	ApplicationSearchResultDone:      "SearchResultDone",
	ApplicationModifyRequest:         "ModifyRequest",
	ApplicationModifyResponse:        "ModifyResponse",
	ApplicationAddRequest:            "AddRequest",
	ApplicationAddResponse:           "AddResponse",
	ApplicationDelRequest:            "DelRequest",
	ApplicationDelResponse:           "DelResponse",
	ApplicationModifyDNRequest:       "ModifyDNRequest",
	ApplicationModifyDNResponse:      "ModifyDNResponse",
	ApplicationCompareRequest:        "CompareRequest",
	ApplicationCompareResponse:       "CompareResponse",
	ApplicationAbandonRequest:        "AbandonRequest",
	ApplicationSearchResultReference: "SearchResultReference",
	ApplicationExtendedRequest:       "ExtendedRequest",
	ApplicationExtendedResponse:      "ExtendedResponse",
	ApplicationIntermediateResponse:  "IntermediateResponse",
}

// String returns the string representation of the operation type
func (o OperationType) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(o))
}

// Tag returns the identifier octet of the operation. Unbind, Delete and
// Abandon requests are primitive; all other operations are constructed.
func (o OperationType) Tag() byte {
	switch o {
	case ApplicationUnbindRequest, ApplicationDelRequest, ApplicationAbandonRequest:
		return ber.MakeTag(ber.ClassApplication, false, int(o))
	default:
		return ber.MakeTag(ber.ClassApplication, true, int(o))
	}
}

// Context-specific tags for Controls
const (
	ContextTagControls = 0 // [0] Controls OPTIONAL
)

// MaxMessageID is the maximum valid message ID per RFC 4511
// MessageID ::= INTEGER (0 .. maxInt)
// maxInt INTEGER ::= 2147483647 -- (2^^31 - 1)
const MaxMessageID = 2147483647

// MinMessageID is the minimum valid message ID
const MinMessageID = 0

// maxInt bounds sizeLimit and timeLimit.
const maxInt = 2147483647

// ProtocolOp is the decoded protocolOp of a message. The concrete types are
// the request and response structs of this package.
type ProtocolOp interface {
	OperationType() OperationType
	encode(e *ber.BEREncoder)
}

// Message is a decoded LDAPMessage.
// LDAPMessage ::= SEQUENCE {
//
//	messageID       MessageID,
//	protocolOp      CHOICE { ... },
//	controls        [0] Controls OPTIONAL
//
// }
type Message struct {
	MessageID int32
	Op        ProtocolOp
	Controls  []Control
	// Warnings lists values that were dropped because they violated
	// RFC 4511 but were coerced instead of rejected.
	Warnings []Warning
}

// OperationType returns the type of the protocolOp.
func (m *Message) OperationType() OperationType {
	if m.Op == nil {
		return -1
	}
	return m.Op.OperationType()
}

// Control returns the first control with the given OID.
func (m *Message) Control(oid string) (*Control, bool) {
	for i := range m.Controls {
		if m.Controls[i].OID == oid {
			return &m.Controls[i], true
		}
	}
	return nil, false
}

// Control represents an LDAP control as defined in RFC 4511 Section 4.1.11
// Control ::= SEQUENCE {
//
//	controlType             LDAPOID,
//	criticality             BOOLEAN DEFAULT FALSE,
//	controlValue            OCTET STRING OPTIONAL
//
// }
type Control struct {
	// OID is the control type OID
	OID string
	// Criticality indicates whether the control is critical
	Criticality bool
	// Value is the optional control value
	Value []byte
	// HasValue distinguishes an empty value from an absent one
	HasValue bool
	// Decoded holds the value decoded by the ValueRegistry, if any
	Decoded any
}

// Attribute is an attribute description with its values. It is used for
// both PartialAttribute and Attribute; the latter must carry at least one
// value.
type Attribute struct {
	Type   string
	Values [][]byte
}

// Warning records a value that was coerced during decoding.
type Warning struct {
	Field   string
	Message string
}

// String implements fmt.Stringer.
func (w Warning) String() string {
	return w.Field + ": " + w.Message
}
