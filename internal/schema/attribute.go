package schema

import "strings"

// AttributeUsage defines how an attribute is used in the directory.
type AttributeUsage int

const (
	// UserApplications indicates a user attribute that applications can read and write.
	UserApplications AttributeUsage = iota

	// DirectoryOperation indicates an operational attribute used by the directory
	// for its own purposes.
	DirectoryOperation

	// DistributedOperation indicates an operational attribute shared across
	// directory servers.
	DistributedOperation

	// DSAOperation indicates an operational attribute local to one server.
	DSAOperation
)

// String returns the string representation of the AttributeUsage.
func (u AttributeUsage) String() string {
	switch u {
	case UserApplications:
		return "userApplications"
	case DirectoryOperation:
		return "directoryOperation"
	case DistributedOperation:
		return "distributedOperation"
	case DSAOperation:
		return "dSAOperation"
	default:
		return "unknown"
	}
}

// IsOperational returns true if this usage indicates an operational attribute.
func (u AttributeUsage) IsOperational() bool {
	return u != UserApplications
}

// AttributeType describes one attribute type.
type AttributeType struct {
	OID         string         // Object Identifier (e.g., "2.5.4.3")
	Name        string         // Primary name (e.g., "cn")
	Names       []string       // All names including aliases (e.g., ["cn", "commonName"])
	Desc        string         // Human-readable description
	Syntax      string         // Syntax OID
	SingleValue bool           // If true, attribute can have only one value
	Usage       AttributeUsage // How the attribute is used
}

// NewAttributeType creates a new AttributeType with the given OID and names.
// The first name is the primary one.
func NewAttributeType(oid string, names ...string) *AttributeType {
	at := &AttributeType{
		OID:   oid,
		Names: names,
		Usage: UserApplications,
	}
	if len(names) > 0 {
		at.Name = names[0]
	}
	return at
}

// HasName checks if the attribute type has the given name (case-insensitive).
func (at *AttributeType) HasName(name string) bool {
	for _, n := range at.Names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
