package ber

// BitString holds the bits of a BIT STRING. Storage is len(bytes) ==
// ceil(numBits/8). Index 0 addresses the lowest used bit of the last octet,
// so the unused padding bits sit below it and never change.
type BitString struct {
	bytes   []byte
	numBits int
}

// NewBitString returns a zeroed BitString of numBits bits.
func NewBitString(numBits int) BitString {
	if numBits < 0 {
		numBits = 0
	}
	return BitString{bytes: make([]byte, (numBits+7)/8), numBits: numBits}
}

// BitStringFromBytes wraps storage of len(b)*8 bits. b is copied.
func BitStringFromBytes(b []byte) BitString {
	bytes := make([]byte, len(b))
	copy(bytes, b)
	return BitString{bytes: bytes, numBits: len(b) * 8}
}

// DecodeBitString decodes content octets whose first octet is the number of
// unused bits (0-7) in the final octet.
func DecodeBitString(content []byte) (BitString, error) {
	if len(content) == 0 {
		return BitString{}, ErrInvalidBitString
	}
	unused := int(content[0])
	if unused > 7 || (len(content) == 1 && unused != 0) {
		return BitString{}, ErrInvalidBitString
	}

	bytes := make([]byte, len(content)-1)
	copy(bytes, content[1:])
	return BitString{bytes: bytes, numBits: len(bytes)*8 - unused}, nil
}

// Len returns the number of bits.
func (b BitString) Len() int {
	return b.numBits
}

// UnusedBits returns the number of padding bits in the final octet.
func (b BitString) UnusedBits() int {
	return len(b.bytes)*8 - b.numBits
}

// Bytes returns a copy of the storage octets.
func (b BitString) Bytes() []byte {
	out := make([]byte, len(b.bytes))
	copy(out, b.bytes)
	return out
}

// Encode returns the content octets including the unused-bits octet.
func (b BitString) Encode() []byte {
	out := make([]byte, 0, len(b.bytes)+1)
	out = append(out, byte(b.UnusedBits()))
	return append(out, b.bytes...)
}

func (b BitString) locate(i int) (int, byte, error) {
	if i < 0 || i >= b.numBits {
		return 0, 0, ErrBitIndexOutOfBounds
	}
	pos := i + b.UnusedBits()
	return len(b.bytes) - 1 - pos/8, 1 << uint(pos%8), nil
}

// Get reports whether bit i is set.
func (b BitString) Get(i int) (bool, error) {
	idx, mask, err := b.locate(i)
	if err != nil {
		return false, err
	}
	return b.bytes[idx]&mask != 0, nil
}

// Set sets bit i.
func (b BitString) Set(i int) error {
	idx, mask, err := b.locate(i)
	if err != nil {
		return err
	}
	b.bytes[idx] |= mask
	return nil
}

// Clear clears bit i.
func (b BitString) Clear(i int) error {
	idx, mask, err := b.locate(i)
	if err != nil {
		return err
	}
	b.bytes[idx] &^= mask
	return nil
}
