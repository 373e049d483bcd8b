package ber

// Buffer accumulates the value octets of a TLV as they arrive.
// Bytes aliases the internal storage, which is reused after Reset; callers
// that keep a value past the current event take a Clone or String.
type Buffer struct {
	b []byte
}

// maxPrealloc caps the capacity reserved up front for a declared length, so
// a hostile length does not allocate before any value octet arrived.
const maxPrealloc = 4096

// Grow reserves room for n more octets, up to maxPrealloc.
func (b *Buffer) Grow(n int) {
	if n > maxPrealloc {
		n = maxPrealloc
	}
	if cap(b.b)-len(b.b) < n {
		nb := make([]byte, len(b.b), len(b.b)+n)
		copy(nb, b.b)
		b.b = nb
	}
}

// Write appends p.
func (b *Buffer) Write(p []byte) {
	b.b = append(b.b, p...)
}

// Len returns the number of buffered octets.
func (b *Buffer) Len() int {
	return len(b.b)
}

// Bytes returns the buffered octets without copying.
func (b *Buffer) Bytes() []byte {
	return b.b
}

// Clone returns a copy of the buffered octets.
func (b *Buffer) Clone() []byte {
	out := make([]byte, len(b.b))
	copy(out, b.b)
	return out
}

// String returns the buffered octets as a string.
func (b *Buffer) String() string {
	return string(b.b)
}

// Reset empties the buffer, keeping its storage.
func (b *Buffer) Reset() {
	b.b = b.b[:0]
}
