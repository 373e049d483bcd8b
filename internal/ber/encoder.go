package ber

// BEREncoder encodes ASN.1 values using definite-length BER. Integers use
// the minimal two's complement form and booleans encode TRUE as 0xFF, so the
// output is also valid DER for the types LDAP uses.
type BEREncoder struct {
	buf []byte
}

// NewBEREncoder creates a new BER encoder with an optional initial capacity.
func NewBEREncoder(capacity int) *BEREncoder {
	if capacity <= 0 {
		capacity = 64
	}
	return &BEREncoder{
		buf: make([]byte, 0, capacity),
	}
}

// Bytes returns the encoded bytes.
func (e *BEREncoder) Bytes() []byte {
	return e.buf
}

// Reset clears the encoder buffer for reuse.
func (e *BEREncoder) Reset() {
	e.buf = e.buf[:0]
}

// Len returns the current length of encoded data.
func (e *BEREncoder) Len() int {
	return len(e.buf)
}

// WriteTag writes a single identifier octet.
func (e *BEREncoder) WriteTag(tag byte) {
	e.buf = append(e.buf, tag)
}

// WriteLength writes a BER length value to the buffer.
// Uses short form for lengths 0-127, long form for larger values.
func (e *BEREncoder) WriteLength(length int) {
	e.buf = appendLength(e.buf, length)
}

func appendLength(buf []byte, length int) []byte {
	if length <= MaxShortFormLength {
		return append(buf, byte(length))
	}

	var tmp [8]byte
	n := 0
	for v := length; v > 0; v >>= 8 {
		n++
		tmp[len(tmp)-n] = byte(v)
	}
	buf = append(buf, LengthLongFormBit|byte(n))
	return append(buf, tmp[len(tmp)-n:]...)
}

// WriteElement writes a primitive element with the given tag and content.
func (e *BEREncoder) WriteElement(tag byte, content []byte) {
	e.WriteTag(tag)
	e.WriteLength(len(content))
	e.buf = append(e.buf, content...)
}

// WriteBoolean writes a BER-encoded boolean value.
func (e *BEREncoder) WriteBoolean(v bool) {
	e.WriteBooleanWithTag(TagBoolean, v)
}

// WriteBooleanWithTag writes a boolean under an arbitrary primitive tag.
func (e *BEREncoder) WriteBooleanWithTag(tag byte, v bool) {
	content := byte(0x00)
	if v {
		content = 0xFF
	}
	e.WriteElement(tag, []byte{content})
}

// WriteInteger writes a BER-encoded integer value.
func (e *BEREncoder) WriteInteger(v int64) {
	e.WriteElement(TagInteger, EncodeInteger(v))
}

// WriteIntegerWithTag writes an integer under an arbitrary primitive tag.
func (e *BEREncoder) WriteIntegerWithTag(tag byte, v int64) {
	e.WriteElement(tag, EncodeInteger(v))
}

// WriteEnumerated writes a BER-encoded enumerated value.
// Enumerated values are encoded identically to integers.
func (e *BEREncoder) WriteEnumerated(v int64) {
	e.WriteElement(TagEnumerated, EncodeInteger(v))
}

// WriteOctetString writes a BER-encoded octet string.
func (e *BEREncoder) WriteOctetString(v []byte) {
	e.WriteElement(TagOctetString, v)
}

// WriteString writes a string as an OCTET STRING.
func (e *BEREncoder) WriteString(s string) {
	e.WriteElement(TagOctetString, []byte(s))
}

// WriteNull writes a BER-encoded null value.
func (e *BEREncoder) WriteNull() {
	e.WriteElement(TagNull, nil)
}

// WriteOID writes an OBJECT IDENTIFIER.
func (e *BEREncoder) WriteOID(oid OID) {
	e.WriteElement(TagOID, oid.Bytes())
}

// WriteBitString writes a BIT STRING including its unused-bits octet.
func (e *BEREncoder) WriteBitString(bs BitString) {
	e.WriteElement(TagBitString, bs.Encode())
}

// WriteTaggedValue writes a context-specific tagged value.
func (e *BEREncoder) WriteTaggedValue(tagNumber int, constructed bool, value []byte) {
	e.WriteElement(MakeTag(ClassContextSpecific, constructed, tagNumber), value)
}
