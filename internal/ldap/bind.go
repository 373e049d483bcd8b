package ldap

import (
	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
)

// Authentication method tags (context-specific)
const (
	// AuthSimple is the tag for simple authentication [0]
	AuthSimple = 0
	// AuthSASL is the tag for SASL authentication [3]
	AuthSASL = 3
)

// Bind version bounds, version INTEGER (1 .. 127)
const (
	MinBindVersion = 1
	MaxBindVersion = 127
)

// AuthMethod represents the authentication method used in a BindRequest
type AuthMethod int

const (
	// AuthMethodSimple indicates simple (password) authentication
	AuthMethodSimple AuthMethod = iota
	// AuthMethodSASL indicates SASL authentication
	AuthMethodSASL
)

// String returns the string representation of the authentication method
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodSimple:
		return "Simple"
	case AuthMethodSASL:
		return "SASL"
	default:
		return "Unknown"
	}
}

// SASLCredentials represents SASL authentication credentials
// SaslCredentials ::= SEQUENCE {
//
//	mechanism               LDAPString,
//	credentials             OCTET STRING OPTIONAL
//
// }
type SASLCredentials struct {
	// Mechanism is the SASL mechanism name (e.g., "PLAIN", "GSSAPI")
	Mechanism string
	// Credentials is nil when absent
	Credentials []byte
}

// BindRequest represents an LDAP Bind Request
// BindRequest ::= [APPLICATION 0] SEQUENCE {
//
//	version                 INTEGER (1 .. 127),
//	name                    LDAPDN,
//	authentication          AuthenticationChoice
//
// }
// AuthenticationChoice ::= CHOICE {
//
//	simple                  [0] OCTET STRING,
//	sasl                    [3] SaslCredentials
//
// }
type BindRequest struct {
	// Version is the LDAP protocol version (typically 3)
	Version int
	// Name is the DN of the user binding
	Name string
	// AuthMethod indicates the authentication method used
	AuthMethod AuthMethod
	// SimplePassword contains the password for simple authentication
	SimplePassword []byte
	// SASLCredentials contains SASL credentials for SASL authentication
	SASLCredentials *SASLCredentials
}

// OperationType implements ProtocolOp.
func (r *BindRequest) OperationType() OperationType { return ApplicationBindRequest }

// IsAnonymous returns true if this is an anonymous bind request
func (r *BindRequest) IsAnonymous() bool {
	return r.AuthMethod == AuthMethodSimple && r.Name == "" && len(r.SimplePassword) == 0
}

func (r *BindRequest) encode(e *ber.BEREncoder) {
	pos := e.Begin(ApplicationBindRequest.Tag())
	e.WriteInteger(int64(r.Version))
	e.WriteString(r.Name)
	switch r.AuthMethod {
	case AuthMethodSASL:
		sasl := e.BeginContext(AuthSASL)
		if r.SASLCredentials != nil {
			e.WriteString(r.SASLCredentials.Mechanism)
			if r.SASLCredentials.Credentials != nil {
				e.WriteOctetString(r.SASLCredentials.Credentials)
			}
		}
		e.End(sasl)
	default:
		e.WriteElement(ber.MakeTag(ber.ClassContextSpecific, false, AuthSimple), r.SimplePassword)
	}
	e.End(pos)
}
