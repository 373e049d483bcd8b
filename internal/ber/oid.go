package ber

import (
	"math/big"
	"strings"
)

// OID is a decoded OBJECT IDENTIFIER. Arcs are unbounded, so identifiers
// such as UUID-based 2.25 arcs survive a round trip.
type OID struct {
	arcs    []*big.Int
	encoded []byte
}

var (
	big40  = big.NewInt(40)
	big80  = big.NewInt(80)
	big128 = big.NewInt(128)
)

// ParseOID parses a dotted-decimal object identifier.
func ParseOID(s string) (OID, error) {
	if !IsValidOID(s) || !encodable(s) {
		return OID{}, ErrInvalidOID
	}

	parts := strings.Split(s, ".")
	arcs := make([]*big.Int, len(parts))
	for i, p := range parts {
		arc, ok := new(big.Int).SetString(p, 10)
		if !ok {
			return OID{}, ErrInvalidOID
		}
		arcs[i] = arc
	}
	return OID{arcs: arcs, encoded: encodeArcs(arcs)}, nil
}

// MustParseOID is like ParseOID but panics on error. Intended for constants.
func MustParseOID(s string) OID {
	oid, err := ParseOID(s)
	if err != nil {
		panic("ber: invalid OID " + s)
	}
	return oid
}

// DecodeOID decodes the content octets of an OBJECT IDENTIFIER. Empty
// content, truncated subidentifiers and subidentifiers with a leading 0x80
// octet are rejected.
func DecodeOID(content []byte) (OID, error) {
	if len(content) == 0 {
		return OID{}, ErrInvalidOID
	}

	var subids []*big.Int
	for i := 0; i < len(content); {
		if content[i] == 0x80 {
			return OID{}, ErrInvalidOID
		}
		v := new(big.Int)
		for {
			if i >= len(content) {
				return OID{}, ErrInvalidOID
			}
			b := content[i]
			i++
			v.Lsh(v, 7)
			v.Or(v, big.NewInt(int64(b&0x7F)))
			if b&0x80 == 0 {
				break
			}
		}
		subids = append(subids, v)
	}

	// The first subidentifier packs two arcs.
	first := subids[0]
	arcs := make([]*big.Int, 0, len(subids)+1)
	switch {
	case first.Cmp(big40) < 0:
		arcs = append(arcs, big.NewInt(0), new(big.Int).Set(first))
	case first.Cmp(big80) < 0:
		arcs = append(arcs, big.NewInt(1), new(big.Int).Sub(first, big40))
	default:
		arcs = append(arcs, big.NewInt(2), new(big.Int).Sub(first, big80))
	}
	arcs = append(arcs, subids[1:]...)

	encoded := make([]byte, len(content))
	copy(encoded, content)
	return OID{arcs: arcs, encoded: encoded}, nil
}

// EncodeOID returns the content octets for a dotted-decimal identifier.
func EncodeOID(s string) ([]byte, error) {
	oid, err := ParseOID(s)
	if err != nil {
		return nil, err
	}
	return oid.Bytes(), nil
}

func encodeArcs(arcs []*big.Int) []byte {
	first := new(big.Int).Mul(arcs[0], big40)
	first.Add(first, arcs[1])

	out := appendBase128(nil, first)
	for _, arc := range arcs[2:] {
		out = appendBase128(out, arc)
	}
	return out
}

func appendBase128(out []byte, v *big.Int) []byte {
	if v.Sign() == 0 {
		return append(out, 0)
	}

	var groups []byte
	tmp := new(big.Int).Set(v)
	rem := new(big.Int)
	for tmp.Sign() != 0 {
		tmp.DivMod(tmp, big128, rem)
		groups = append(groups, byte(rem.Int64()))
	}
	for i := len(groups) - 1; i >= 0; i-- {
		b := groups[i]
		if i > 0 {
			b |= 0x80
		}
		out = append(out, b)
	}
	return out
}

// String returns the dotted-decimal form.
func (o OID) String() string {
	parts := make([]string, len(o.arcs))
	for i, arc := range o.arcs {
		parts[i] = arc.String()
	}
	return strings.Join(parts, ".")
}

// Bytes returns the canonical content octets.
func (o OID) Bytes() []byte {
	out := make([]byte, len(o.encoded))
	copy(out, o.encoded)
	return out
}

// Arcs returns a copy of the arcs.
func (o OID) Arcs() []*big.Int {
	out := make([]*big.Int, len(o.arcs))
	for i, arc := range o.arcs {
		out[i] = new(big.Int).Set(arc)
	}
	return out
}

// IsZero reports whether o holds no identifier.
func (o OID) IsZero() bool {
	return len(o.arcs) == 0
}

// Equal reports whether two identifiers have the same arcs.
func (o OID) Equal(other OID) bool {
	if len(o.arcs) != len(other.arcs) {
		return false
	}
	for i := range o.arcs {
		if o.arcs[i].Cmp(other.arcs[i]) != 0 {
			return false
		}
	}
	return true
}

// IsValidOID reports whether s is a dotted-decimal object identifier with at
// least two arcs and a first arc of 0, 1 or 2. Arcs with leading zeros are
// rejected since they have no canonical encoding. The second arc is not
// bounded here; ParseOID additionally requires it to be below 40 under
// first arcs 0 and 1.
func IsValidOID(s string) bool {
	if s == "" {
		return false
	}

	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts {
		if p == "" || (len(p) > 1 && p[0] == '0') {
			return false
		}
		for i := 0; i < len(p); i++ {
			if p[i] < '0' || p[i] > '9' {
				return false
			}
		}
	}

	switch parts[0] {
	case "0", "1", "2":
		return true
	default:
		return false
	}
}

// encodable reports whether the first two arcs of a valid OID fit the
// arc1*40+arc2 packing of the first subidentifier.
func encodable(s string) bool {
	if s[0] == '2' {
		return true
	}
	second := strings.SplitN(s, ".", 3)[1]
	return len(second) == 1 || (len(second) == 2 && second < "40")
}
