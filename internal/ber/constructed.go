package ber

// Constructed elements are written in two steps. Begin writes the tag and a
// one-octet length placeholder and returns its position; End patches in the
// real length once the content is known, widening the placeholder when the
// long form is needed.
//
//	pos := enc.BeginSequence()
//	enc.WriteInteger(1)
//	enc.EndSequence(pos)

// Begin writes a constructed tag and reserves room for its length.
func (e *BEREncoder) Begin(tag byte) int {
	e.buf = append(e.buf, tag|TypeConstructed, 0)
	return len(e.buf) - 1
}

// End patches the length of the element started at pos.
func (e *BEREncoder) End(pos int) {
	contentLen := len(e.buf) - pos - 1
	if contentLen <= MaxShortFormLength {
		e.buf[pos] = byte(contentLen)
		return
	}

	var lb [9]byte
	encoded := appendLength(lb[:0], contentLen)
	extra := len(encoded) - 1
	e.buf = append(e.buf, make([]byte, extra)...)
	copy(e.buf[pos+len(encoded):], e.buf[pos+1:len(e.buf)-extra])
	copy(e.buf[pos:], encoded)
}

// BeginSequence starts a SEQUENCE.
func (e *BEREncoder) BeginSequence() int {
	return e.Begin(TagSequence)
}

// EndSequence completes a SEQUENCE started with BeginSequence.
func (e *BEREncoder) EndSequence(pos int) {
	e.End(pos)
}

// BeginSet starts a SET.
func (e *BEREncoder) BeginSet() int {
	return e.Begin(TagSet)
}

// EndSet completes a SET started with BeginSet.
func (e *BEREncoder) EndSet(pos int) {
	e.End(pos)
}

// BeginApplication starts a constructed APPLICATION element.
func (e *BEREncoder) BeginApplication(number int) int {
	return e.Begin(MakeTag(ClassApplication, true, number))
}

// BeginContext starts a constructed context-specific element.
func (e *BEREncoder) BeginContext(number int) int {
	return e.Begin(MakeTag(ClassContextSpecific, true, number))
}
