package ldap

import (
	"fmt"
	"strings"

	"github.com/KilimcininKorOglu/ldapcodec/internal/logging"
	"github.com/KilimcininKorOglu/ldapcodec/internal/schema"
)

// Policy selects how a semantically invalid result field is handled.
type Policy int

const (
	// PolicyCoerce drops the offending value and records a Warning.
	PolicyCoerce Policy = iota
	// PolicyStrict fails the message with a *SemanticError.
	PolicyStrict
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyCoerce:
		return "coerce"
	case PolicyStrict:
		return "strict"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses "coerce" or "strict".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "coerce":
		return PolicyCoerce, nil
	case "strict":
		return PolicyStrict, nil
	default:
		return 0, fmt.Errorf("ldap: unknown policy %q", s)
	}
}

// ValuePolicy selects how a failing control or extended value decoder is
// handled.
type ValuePolicy int

const (
	// ValuePolicyStrict fails the message.
	ValuePolicyStrict ValuePolicy = iota
	// ValuePolicyLenient keeps the raw value and records a Warning.
	ValuePolicyLenient
)

// String returns the configuration name of the policy.
func (p ValuePolicy) String() string {
	switch p {
	case ValuePolicyStrict:
		return "strict"
	case ValuePolicyLenient:
		return "lenient"
	default:
		return fmt.Sprintf("ValuePolicy(%d)", int(p))
	}
}

// ParseValuePolicy parses "strict" or "lenient".
func ParseValuePolicy(s string) (ValuePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return ValuePolicyStrict, nil
	case "lenient":
		return ValuePolicyLenient, nil
	default:
		return 0, fmt.Errorf("ldap: unknown value policy %q", s)
	}
}

// Default decoder limits.
const (
	DefaultMaxPDUSize = 10 * 1024 * 1024
	DefaultMaxDepth   = 64
)

// Options configures a Decoder.
type Options struct {
	// MaxPDUSize limits the encoded size of one message. Zero means
	// unlimited.
	MaxPDUSize int
	// MaxLengthBytes is the maximum number of long-form length octets.
	MaxLengthBytes int
	// MaxDepth limits element nesting. Zero means unlimited.
	MaxDepth int

	MatchedDNPolicy Policy
	ReferralPolicy  Policy
	ControlPolicy   ValuePolicy

	// Registry decodes control and extended values. Nil selects
	// NewDefaultValueRegistry(Schema).
	Registry *ValueRegistry
	// Schema resolves attribute names inside control values. Nil leaves
	// names as sent.
	Schema schema.AttributeTypeLookup
	// Logger receives per-message debug output and warnings. Nil disables
	// logging.
	Logger logging.Logger
}

// DefaultOptions returns the default decoder options.
func DefaultOptions() Options {
	return Options{
		MaxPDUSize:      DefaultMaxPDUSize,
		MaxLengthBytes:  4,
		MaxDepth:        DefaultMaxDepth,
		MatchedDNPolicy: PolicyCoerce,
		ReferralPolicy:  PolicyCoerce,
		ControlPolicy:   ValuePolicyStrict,
	}
}
