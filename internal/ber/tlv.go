package ber

// Header describes the identifier and length octets of an element.
type Header struct {
	// Tag is the single identifier octet.
	Tag byte
	// Offset is the stream position of the identifier octet.
	Offset int
	// HeaderLength counts the identifier and length octets.
	HeaderLength int
	// Length is the content length, or LengthIndefinite.
	Length int
}

// Class returns the tag class.
func (h Header) Class() int {
	return TagClass(h.Tag)
}

// Number returns the tag number.
func (h Header) Number() int {
	return TagNumber(h.Tag)
}

// Constructed reports whether the element is constructed.
func (h Header) Constructed() bool {
	return IsConstructed(h.Tag)
}

// Indefinite reports whether the element uses the indefinite length form.
func (h Header) Indefinite() bool {
	return h.Length == LengthIndefinite
}

// TLV is a primitive element being read. Value grows until it holds Length
// octets; the element is complete only then.
type TLV struct {
	Header
	Value Buffer
	read  int
}

// Complete reports whether the whole value has been read.
func (t *TLV) Complete() bool {
	return t.read == t.Length
}

// Remaining returns how many value octets are still expected.
func (t *TLV) Remaining() int {
	return t.Length - t.read
}

// Bytes returns a copy of the value.
func (t *TLV) Bytes() []byte {
	return t.Value.Clone()
}

// String returns the value as a string.
func (t *TLV) String() string {
	return t.Value.String()
}

// Bool decodes the value as a BOOLEAN.
func (t *TLV) Bool() (bool, error) {
	return DecodeBoolean(t.Value.Bytes())
}

// Int decodes the value as an INTEGER or ENUMERATED.
func (t *TLV) Int() (int64, error) {
	return DecodeInteger(t.Value.Bytes())
}

func (t *TLV) reset(h Header) {
	t.Header = h
	t.Value.Reset()
	t.read = 0
}

// Frame is an open constructed element on the decode stack.
type Frame struct {
	Header
	// Consumed counts the content octets read so far, including the full
	// size of closed children.
	Consumed int
	// Resume is free for the Handler to attach state restored on Close.
	Resume any
}

// Remaining returns the content octets left in a definite-length frame.
func (f *Frame) Remaining() int {
	return f.Length - f.Consumed
}

// Size returns the total encoded size of a closed frame.
func (f *Frame) Size() int {
	return f.HeaderLength + f.Consumed
}
