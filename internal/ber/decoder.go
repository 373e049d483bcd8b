package ber

// BERDecoder reads ASN.1 values from a complete buffer. It is used for
// values that arrive already framed, such as control values and extended
// operation payloads carried inside an OCTET STRING.
type BERDecoder struct {
	data   []byte
	offset int
}

// NewBERDecoder creates a new BER decoder for the given data.
func NewBERDecoder(data []byte) *BERDecoder {
	return &BERDecoder{
		data:   data,
		offset: 0,
	}
}

// Offset returns the current read position in the data.
func (d *BERDecoder) Offset() int {
	return d.offset
}

// Remaining returns the number of bytes remaining to be read.
func (d *BERDecoder) Remaining() int {
	return len(d.data) - d.offset
}

// Reset resets the decoder to the beginning of the data.
func (d *BERDecoder) Reset() {
	d.offset = 0
}

// ReadTag reads a BER tag from the current position.
// Returns the tag class, constructed flag, and tag number.
func (d *BERDecoder) ReadTag() (class, constructed, number int, err error) {
	if d.offset >= len(d.data) {
		return 0, 0, 0, NewDecodeError(d.offset, "cannot read tag", ErrUnexpectedEOF)
	}

	tag := d.data[d.offset]
	if TagNumber(tag) == tagNumberMask {
		return 0, 0, 0, NewDecodeError(d.offset, "high tag number", ErrUnsupportedTag)
	}
	d.offset++

	return TagClass(tag), int(tag & tagConstructedMask), TagNumber(tag), nil
}

// ReadLength reads a definite BER length value from the current position.
func (d *BERDecoder) ReadLength() (int, error) {
	startOffset := d.offset

	if d.offset >= len(d.data) {
		return 0, NewDecodeError(startOffset, "cannot read length", ErrUnexpectedEOF)
	}

	first := d.data[d.offset]
	d.offset++

	// Short form: bit 8 is 0, bits 1-7 contain the length
	if first&LengthLongFormBit == 0 {
		return int(first), nil
	}

	numBytes := int(first & 0x7F)
	if numBytes == 0 {
		return 0, NewDecodeError(startOffset, "indefinite length encoding", ErrIndefiniteLength)
	}
	if numBytes > DefaultMaxLengthBytes {
		return 0, NewDecodeError(startOffset, "too many length octets", ErrMalformedLength)
	}
	if d.offset+numBytes > len(d.data) {
		return 0, NewDecodeError(startOffset, "truncated length encoding", ErrUnexpectedEOF)
	}

	length := 0
	for i := 0; i < numBytes; i++ {
		length = (length << 8) | int(d.data[d.offset])
		d.offset++
	}
	if length < 0 {
		return 0, NewDecodeError(startOffset, "length value overflow", ErrMalformedLength)
	}

	return length, nil
}

// readHeader reads a tag and a definite length and checks the tag against
// the expected class and number. A negative expected number matches any.
func (d *BERDecoder) readHeader(class, number int) (constructed int, length int, err error) {
	startOffset := d.offset

	actualClass, constructed, actualNumber, err := d.ReadTag()
	if err != nil {
		return 0, 0, err
	}
	if actualClass != class || (number >= 0 && actualNumber != number) {
		d.offset = startOffset
		return 0, 0, &TagMismatchError{
			Offset:            startOffset,
			ExpectedClass:     class,
			ExpectedNumber:    number,
			ActualClass:       actualClass,
			ActualNumber:      actualNumber,
			ActualConstructed: constructed,
		}
	}

	length, err = d.ReadLength()
	if err != nil {
		return 0, 0, err
	}
	if d.offset+length > len(d.data) {
		return 0, 0, NewDecodeError(startOffset, "truncated value", ErrUnexpectedEOF)
	}
	return constructed, length, nil
}

// readPrimitive reads a primitive element and returns its content octets.
// The returned slice aliases the decoder's buffer.
func (d *BERDecoder) readPrimitive(class, number int) ([]byte, error) {
	startOffset := d.offset
	constructed, length, err := d.readHeader(class, number)
	if err != nil {
		return nil, err
	}
	if constructed != TypePrimitive {
		d.offset = startOffset
		return nil, NewDecodeError(startOffset, "expected primitive encoding", ErrTagMismatch)
	}
	content := d.data[d.offset : d.offset+length]
	d.offset += length
	return content, nil
}

// ReadBoolean reads a BER-encoded boolean value.
func (d *BERDecoder) ReadBoolean() (bool, error) {
	return d.readBoolean(ClassUniversal, TagBoolean)
}

// ReadBooleanWithTag reads a boolean carried under a context-specific tag.
func (d *BERDecoder) ReadBooleanWithTag(tag int) (bool, error) {
	return d.readBoolean(ClassContextSpecific, tag)
}

func (d *BERDecoder) readBoolean(class, number int) (bool, error) {
	startOffset := d.offset
	content, err := d.readPrimitive(class, number)
	if err != nil {
		return false, err
	}
	value, err := DecodeBoolean(content)
	if err != nil {
		return false, NewDecodeError(startOffset, "boolean must have length 1", err)
	}
	return value, nil
}

// ReadInteger reads a BER-encoded integer value.
func (d *BERDecoder) ReadInteger() (int64, error) {
	return d.readInteger(ClassUniversal, TagInteger)
}

// ReadEnumerated reads a BER-encoded enumerated value.
func (d *BERDecoder) ReadEnumerated() (int64, error) {
	return d.readInteger(ClassUniversal, TagEnumerated)
}

// ReadIntegerWithTag reads an integer value with a specific context tag.
func (d *BERDecoder) ReadIntegerWithTag(tag int) (int64, error) {
	return d.readInteger(ClassContextSpecific, tag)
}

func (d *BERDecoder) readInteger(class, number int) (int64, error) {
	startOffset := d.offset
	content, err := d.readPrimitive(class, number)
	if err != nil {
		return 0, err
	}
	value, err := DecodeInteger(content)
	if err != nil {
		return 0, NewDecodeError(startOffset, "malformed integer", err)
	}
	return value, nil
}

// ReadOctetString reads a BER-encoded octet string. Only the primitive
// encoding is supported; LDAP forbids the constructed form.
func (d *BERDecoder) ReadOctetString() ([]byte, error) {
	return d.readOctets(ClassUniversal, TagOctetString)
}

// ReadOctetStringWithTag reads an octet string carried under a
// context-specific tag.
func (d *BERDecoder) ReadOctetStringWithTag(tag int) ([]byte, error) {
	return d.readOctets(ClassContextSpecific, tag)
}

func (d *BERDecoder) readOctets(class, number int) ([]byte, error) {
	content, err := d.readPrimitive(class, number)
	if err != nil {
		return nil, err
	}
	value := make([]byte, len(content))
	copy(value, content)
	return value, nil
}

// ReadNull reads a BER-encoded null value.
func (d *BERDecoder) ReadNull() error {
	startOffset := d.offset
	content, err := d.readPrimitive(ClassUniversal, TagNull)
	if err != nil {
		return err
	}
	if len(content) != 0 {
		return NewDecodeError(startOffset, "null must have length 0", ErrInvalidNull)
	}
	return nil
}

// ReadOID reads an OBJECT IDENTIFIER.
func (d *BERDecoder) ReadOID() (OID, error) {
	startOffset := d.offset
	content, err := d.readPrimitive(ClassUniversal, TagOID)
	if err != nil {
		return OID{}, err
	}
	oid, err := DecodeOID(content)
	if err != nil {
		return OID{}, NewDecodeError(startOffset, "malformed object identifier", err)
	}
	return oid, nil
}

// ReadBitString reads a BIT STRING.
func (d *BERDecoder) ReadBitString() (BitString, error) {
	startOffset := d.offset
	content, err := d.readPrimitive(ClassUniversal, TagBitString)
	if err != nil {
		return BitString{}, err
	}
	bs, err := DecodeBitString(content)
	if err != nil {
		return BitString{}, NewDecodeError(startOffset, "malformed bit string", err)
	}
	return bs, nil
}

// PeekTag reads a tag without advancing the offset.
func (d *BERDecoder) PeekTag() (class, constructed, number int, err error) {
	savedOffset := d.offset
	class, constructed, number, err = d.ReadTag()
	d.offset = savedOffset
	return
}

// Skip skips the current TLV (Tag-Length-Value) element.
func (d *BERDecoder) Skip() error {
	_, err := d.ReadRawValue()
	return err
}

// ReadRawValue reads the raw bytes of the current TLV element (including tag and length).
func (d *BERDecoder) ReadRawValue() ([]byte, error) {
	startOffset := d.offset

	if _, _, _, err := d.ReadTag(); err != nil {
		return nil, err
	}
	length, err := d.ReadLength()
	if err != nil {
		return nil, err
	}
	if d.offset+length > len(d.data) {
		return nil, NewDecodeError(startOffset, "truncated value", ErrUnexpectedEOF)
	}

	d.offset += length
	result := make([]byte, d.offset-startOffset)
	copy(result, d.data[startOffset:d.offset])
	return result, nil
}

// ReadTaggedValue reads a context-specific tagged value.
// Returns the tag number and the raw value bytes.
func (d *BERDecoder) ReadTaggedValue() (tagNumber int, constructed bool, value []byte, err error) {
	_, _, tagNumber, err = d.PeekTag()
	if err != nil {
		return 0, false, nil, err
	}
	form, length, err := d.readHeader(ClassContextSpecific, -1)
	if err != nil {
		return 0, false, nil, err
	}

	value = make([]byte, length)
	copy(value, d.data[d.offset:d.offset+length])
	d.offset += length

	return tagNumber, form == TypeConstructed, value, nil
}

// ExpectSequence reads and validates a SEQUENCE tag, returning the content length.
// The caller should read exactly 'length' bytes of content after this call.
func (d *BERDecoder) ExpectSequence() (length int, err error) {
	return d.expectConstructed(ClassUniversal, TagSequence)
}

func (d *BERDecoder) expectConstructed(class, number int) (int, error) {
	startOffset := d.offset
	constructed, length, err := d.readHeader(class, number)
	if err != nil {
		return 0, err
	}
	if constructed != TypeConstructed {
		d.offset = startOffset
		return 0, &TagMismatchError{
			Offset:            startOffset,
			ExpectedClass:     class,
			ExpectedNumber:    number,
			ActualClass:       class,
			ActualNumber:      number,
			ActualConstructed: constructed,
		}
	}
	return length, nil
}

// IsContextTag checks if the next tag is a context-specific tag with the given number
// without consuming it. Returns true if it matches, false otherwise.
func (d *BERDecoder) IsContextTag(num int) bool {
	class, _, number, err := d.PeekTag()
	if err != nil {
		return false
	}
	return class == ClassContextSpecific && number == num
}

// ReadSequenceContents reads the contents of a SEQUENCE into a sub-decoder.
// This is useful for parsing nested structures.
func (d *BERDecoder) ReadSequenceContents() (*BERDecoder, error) {
	length, err := d.ExpectSequence()
	if err != nil {
		return nil, err
	}
	return d.sub(length), nil
}

func (d *BERDecoder) sub(length int) *BERDecoder {
	contents := d.data[d.offset : d.offset+length]
	d.offset += length
	return NewBERDecoder(contents)
}
