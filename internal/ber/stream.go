package ber

// Handler receives element events from a StreamDecoder. Errors returned by
// a Handler abort decoding and are passed through unchanged.
type Handler interface {
	// Open is called once the header of a constructed element is read.
	Open(f *Frame) error
	// Primitive is called once a primitive element's value is complete.
	// t and its Value are reused after the call returns.
	Primitive(t *TLV) error
	// Close is called once the content of a constructed element is
	// exhausted, innermost first.
	Close(f *Frame) error
}

// StreamOptions bounds what a StreamDecoder accepts.
type StreamOptions struct {
	// MaxLengthBytes is the maximum number of long-form length octets.
	// Zero means DefaultMaxLengthBytes.
	MaxLengthBytes int
	// MaxPDUSize limits the encoded size of an outermost element.
	// Zero means unlimited.
	MaxPDUSize int
	// MaxDepth limits the number of nested constructed elements.
	// Zero means unlimited.
	MaxDepth int
}

type streamState int

const (
	stateTag streamState = iota
	stateLength
	stateLengthOctets
	stateValue
)

const maxInt = int(^uint(0) >> 1)

// StreamDecoder is a byte-driven BER reader. Input may be split anywhere;
// the partially read element and all open constructed elements are kept
// between calls, so any chunking of the same bytes yields the same events.
//
// A StreamDecoder is not safe for concurrent use. After an error it must be
// Reset before reuse.
type StreamDecoder struct {
	opts StreamOptions

	state        streamState
	header       Header
	lengthOctets int
	tlv          TLV
	stack        Stack
	limits       []int

	offset   int
	pduStart int
}

// NewStreamDecoder creates a StreamDecoder.
func NewStreamDecoder(opts StreamOptions) *StreamDecoder {
	if opts.MaxLengthBytes <= 0 {
		opts.MaxLengthBytes = DefaultMaxLengthBytes
	}
	if opts.MaxLengthBytes > 8 {
		opts.MaxLengthBytes = 8
	}
	return &StreamDecoder{opts: opts}
}

// Offset returns the number of bytes consumed since the last Reset.
func (d *StreamDecoder) Offset() int {
	return d.offset
}

// Depth returns the number of open constructed elements.
func (d *StreamDecoder) Depth() int {
	return d.stack.Depth()
}

// InProgress reports whether an outermost element has been started but not
// completed.
func (d *StreamDecoder) InProgress() bool {
	return d.state != stateTag || !d.stack.Empty()
}

// Reset discards all partial state.
func (d *StreamDecoder) Reset() {
	d.state = stateTag
	d.header = Header{}
	d.lengthOctets = 0
	d.tlv.reset(Header{})
	d.stack.Reset()
	d.limits = d.limits[:0]
	d.offset = 0
	d.pduStart = 0
}

// Decode consumes data until one outermost element completes or data runs
// out. It returns the number of bytes consumed and whether an element
// completed. When done is true, any bytes after n belong to the next
// element and should be passed to a further call.
func (d *StreamDecoder) Decode(data []byte, h Handler) (n int, done bool, err error) {
	i := 0
	for i < len(data) {
		switch d.state {
		case stateTag:
			tag := data[i]
			if TagNumber(tag) == tagNumberMask {
				return i, false, NewDecodeError(d.offset, "high tag number", ErrUnsupportedTag)
			}
			if d.stack.Empty() {
				d.pduStart = d.offset
			}
			d.header = Header{Tag: tag, Offset: d.offset}
			d.state = stateLength
			i++
			d.offset++

		case stateLength:
			b := data[i]
			i++
			d.offset++
			switch {
			case b&LengthLongFormBit == 0:
				d.header.Length = int(b)
				done, err = d.headerDone(h)
			case b == LengthLongFormBit:
				if !IsConstructed(d.header.Tag) {
					return i, false, NewDecodeError(d.header.Offset, "indefinite length on primitive element", ErrMalformedLength)
				}
				d.header.Length = LengthIndefinite
				done, err = d.headerDone(h)
			default:
				d.lengthOctets = int(b & 0x7F)
				if d.lengthOctets > d.opts.MaxLengthBytes {
					return i, false, NewDecodeError(d.header.Offset, "too many length octets", ErrMalformedLength)
				}
				d.header.Length = 0
				d.state = stateLengthOctets
			}

		case stateLengthOctets:
			b := data[i]
			i++
			d.offset++
			if d.header.Length > maxInt>>8 {
				return i, false, NewDecodeError(d.header.Offset, "length value overflow", ErrMalformedLength)
			}
			d.header.Length = d.header.Length<<8 | int(b)
			d.lengthOctets--
			if d.lengthOctets == 0 {
				done, err = d.headerDone(h)
			}

		case stateValue:
			k := d.tlv.Remaining()
			if avail := len(data) - i; avail < k {
				k = avail
			}
			d.tlv.Value.Write(data[i : i+k])
			d.tlv.read += k
			i += k
			d.offset += k
			if d.tlv.Complete() {
				d.state = stateTag
				done, err = d.primitiveDone(h)
			}
		}

		if err != nil {
			return i, false, err
		}
		if done {
			return i, true, nil
		}
	}
	return i, false, nil
}

func (d *StreamDecoder) headerDone(h Handler) (bool, error) {
	d.header.HeaderLength = d.offset - d.header.Offset
	d.state = stateTag
	hd := d.header

	if hd.Tag == TagEndOfContents {
		return d.endOfContents(h)
	}
	if err := d.checkBounds(hd); err != nil {
		return false, err
	}

	if hd.Constructed() {
		if d.opts.MaxDepth > 0 && d.stack.Depth() >= d.opts.MaxDepth {
			return false, NewDecodeError(hd.Offset, "nesting too deep", ErrMaxDepth)
		}
		f := d.stack.Push(hd)
		d.limits = append(d.limits, d.limitFor(hd))
		if err := h.Open(f); err != nil {
			return false, err
		}
		return d.closeFrames(h)
	}

	d.tlv.reset(hd)
	if hd.Length == 0 {
		return d.primitiveDone(h)
	}
	d.tlv.Value.Grow(hd.Length)
	d.state = stateValue
	return false, nil
}

// limitFor returns the stream offset at which the content of a newly opened
// frame must end, or -1 when it is not bounded by any definite length.
func (d *StreamDecoder) limitFor(hd Header) int {
	if !hd.Indefinite() {
		return hd.Offset + hd.HeaderLength + hd.Length
	}
	if n := len(d.limits); n > 0 {
		return d.limits[n-1]
	}
	return -1
}

// checkBounds verifies that an element fits its enclosing definite-length
// element and the PDU size limit.
func (d *StreamDecoder) checkBounds(hd Header) error {
	end := hd.Offset + hd.HeaderLength
	if !hd.Indefinite() {
		end += hd.Length
	}
	if max := d.opts.MaxPDUSize; max > 0 && end-d.pduStart > max {
		return NewDecodeError(hd.Offset, "element exceeds maximum PDU size", ErrMessageTooLarge)
	}
	if n := len(d.limits); n > 0 && d.limits[n-1] >= 0 && end > d.limits[n-1] {
		return NewDecodeError(hd.Offset, "element exceeds enclosing length", ErrMalformedLength)
	}
	return nil
}

func (d *StreamDecoder) endOfContents(h Handler) (bool, error) {
	hd := d.header
	top := d.stack.Top()
	if hd.Length != 0 || top == nil || !top.Indefinite() {
		return false, NewDecodeError(hd.Offset, "unexpected end-of-contents", ErrInvalidEndOfContents)
	}
	if err := d.checkBounds(hd); err != nil {
		return false, err
	}
	top.Consumed += hd.HeaderLength
	done, err := d.popFrame(h)
	if err != nil || done {
		return done, err
	}
	return d.closeFrames(h)
}

func (d *StreamDecoder) primitiveDone(h Handler) (bool, error) {
	if err := h.Primitive(&d.tlv); err != nil {
		return false, err
	}
	parent := d.stack.Top()
	if parent == nil {
		return true, nil
	}
	parent.Consumed += d.tlv.HeaderLength + d.tlv.Length
	return d.closeFrames(h)
}

// closeFrames closes every definite-length frame whose content is complete.
func (d *StreamDecoder) closeFrames(h Handler) (bool, error) {
	for {
		top := d.stack.Top()
		if top == nil || top.Indefinite() || top.Consumed < top.Length {
			return false, nil
		}
		if top.Consumed > top.Length {
			return false, NewDecodeError(top.Offset, "content overruns element length", ErrMalformedLength)
		}
		done, err := d.popFrame(h)
		if err != nil || done {
			return done, err
		}
	}
}

func (d *StreamDecoder) popFrame(h Handler) (bool, error) {
	f := d.stack.Pop()
	d.limits = d.limits[:len(d.limits)-1]
	if err := h.Close(f); err != nil {
		return false, err
	}
	parent := d.stack.Top()
	if parent == nil {
		return true, nil
	}
	parent.Consumed += f.Size()
	return false, nil
}
