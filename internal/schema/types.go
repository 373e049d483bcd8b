package schema

import "strings"

// AttributeTypeLookup resolves attribute types by name or OID.
type AttributeTypeLookup interface {
	// AttributeType returns the attribute type for a name or OID.
	AttributeType(nameOrOID string) (*AttributeType, bool)
}

// Registry is an attribute type table indexed by OID and lowercased name.
type Registry struct {
	byOID  map[string]*AttributeType
	byName map[string]*AttributeType
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byOID:  make(map[string]*AttributeType),
		byName: make(map[string]*AttributeType),
	}
}

// NewDefaultRegistry creates a Registry holding the standard attribute types.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, at := range defaultAttributeTypes() {
		r.Add(at)
	}
	return r
}

// Add registers an attribute type under its OID and every name.
// Add must not be called once the registry is shared.
func (r *Registry) Add(at *AttributeType) {
	if at.OID != "" {
		r.byOID[at.OID] = at
	}
	for _, name := range at.Names {
		r.byName[strings.ToLower(name)] = at
	}
}

// AttributeType implements AttributeTypeLookup.
func (r *Registry) AttributeType(nameOrOID string) (*AttributeType, bool) {
	if at, ok := r.byOID[nameOrOID]; ok {
		return at, true
	}
	at, ok := r.byName[strings.ToLower(nameOrOID)]
	return at, ok
}

// CanonicalName returns the primary name for a name or OID, or the input
// unchanged when the attribute type is unknown.
func (r *Registry) CanonicalName(nameOrOID string) string {
	return CanonicalName(r, nameOrOID)
}

// Len returns the number of attribute types.
func (r *Registry) Len() int {
	return len(r.byOID)
}

// CanonicalName resolves nameOrOID through any lookup. Options after a
// semicolon (as in "cn;lang-en") are preserved.
func CanonicalName(lookup AttributeTypeLookup, nameOrOID string) string {
	if lookup == nil {
		return nameOrOID
	}
	base, options, _ := strings.Cut(nameOrOID, ";")
	at, ok := lookup.AttributeType(base)
	if !ok || at.Name == "" {
		return nameOrOID
	}
	if options != "" {
		return at.Name + ";" + options
	}
	return at.Name
}
