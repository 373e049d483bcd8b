package ldap

import (
	"fmt"

	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
	"github.com/KilimcininKorOglu/ldapcodec/internal/schema"
)

// ValueDecoder decodes the value of a control or extended operation.
// value is nil when the element carried no value.
type ValueDecoder func(value []byte) (any, error)

// ValueKind selects the namespace a ValueDecoder is registered in.
type ValueKind int

const (
	// KindControl decodes controlValue, keyed by controlType.
	KindControl ValueKind = iota
	// KindExtendedRequest decodes requestValue, keyed by requestName.
	KindExtendedRequest
	// KindExtendedResponse decodes responseValue, keyed by responseName
	// or, for responses without a name, by the request's name.
	KindExtendedResponse
	// KindIntermediateResponse decodes an IntermediateResponse value,
	// keyed by responseName.
	KindIntermediateResponse
)

// String returns the string representation of the kind.
func (k ValueKind) String() string {
	switch k {
	case KindControl:
		return "control"
	case KindExtendedRequest:
		return "extended request"
	case KindExtendedResponse:
		return "extended response"
	case KindIntermediateResponse:
		return "intermediate response"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// ValueRegistry maps OIDs to value decoders. It is populated before any
// Decoder uses it and only read afterwards, so one registry can be shared
// by any number of decoders without locking.
type ValueRegistry struct {
	decoders map[ValueKind]map[string]ValueDecoder
}

// NewValueRegistry creates an empty registry.
func NewValueRegistry() *ValueRegistry {
	return &ValueRegistry{
		decoders: make(map[ValueKind]map[string]ValueDecoder),
	}
}

// NewDefaultValueRegistry creates a registry holding the decoders for the
// controls and extended operations this package knows. lookup, when not
// nil, canonicalises attribute names found in control values.
func NewDefaultValueRegistry(lookup schema.AttributeTypeLookup) *ValueRegistry {
	r := NewValueRegistry()
	registerDefaultControls(r, lookup)
	registerDefaultExtended(r)
	return r
}

// Register adds a control value decoder.
func (r *ValueRegistry) Register(oid string, dec ValueDecoder) error {
	return r.RegisterKind(KindControl, oid, dec)
}

// RegisterKind adds a decoder to the given namespace. The OID must be a
// valid dotted-decimal OID; a later registration replaces an earlier one.
func (r *ValueRegistry) RegisterKind(kind ValueKind, oid string, dec ValueDecoder) error {
	if !ber.IsValidOID(oid) {
		return fmt.Errorf("%w: %q", ber.ErrInvalidOID, oid)
	}
	if dec == nil {
		return fmt.Errorf("ldap: nil %s decoder for %s", kind, oid)
	}
	m, ok := r.decoders[kind]
	if !ok {
		m = make(map[string]ValueDecoder)
		r.decoders[kind] = m
	}
	m[oid] = dec
	return nil
}

func (r *ValueRegistry) mustRegister(kind ValueKind, oid string, dec ValueDecoder) {
	if err := r.RegisterKind(kind, oid, dec); err != nil {
		panic(err)
	}
}

// Lookup returns the decoder registered for oid.
func (r *ValueRegistry) Lookup(kind ValueKind, oid string) (ValueDecoder, bool) {
	if r == nil {
		return nil, false
	}
	dec, ok := r.decoders[kind][oid]
	return dec, ok
}

// Decode runs the decoder registered for oid. ok is false when there is
// none.
func (r *ValueRegistry) Decode(kind ValueKind, oid string, value []byte) (v any, ok bool, err error) {
	dec, ok := r.Lookup(kind, oid)
	if !ok {
		return nil, false, nil
	}
	v, err = dec(value)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %s %s: %v", ErrInvalidValue, kind, oid, err)
	}
	return v, true, nil
}

// DecodeExtendedResponse decodes the value of a response whose
// responseName was omitted, using the name of the request it answers.
// Responses that already carry a name are decoded with that name.
func (r *ValueRegistry) DecodeExtendedResponse(requestName string, resp *ExtendedResponse) error {
	name := resp.Name
	if name == "" {
		name = requestName
	}
	var value []byte
	if resp.HasValue {
		value = resp.Value
	}
	v, ok, err := r.Decode(KindExtendedResponse, name, value)
	if err != nil {
		return err
	}
	if ok {
		resp.Decoded = v
	}
	return nil
}

// Len returns the number of registered decoders of a kind.
func (r *ValueRegistry) Len(kind ValueKind) int {
	return len(r.decoders[kind])
}
