package ber

import (
	"errors"
	"fmt"
)

// Decoder errors
var (
	// ErrUnexpectedEOF is returned when the decoder encounters truncated data.
	ErrUnexpectedEOF = errors.New("ber: unexpected end of data")

	// ErrMalformedLength is returned when a length value is malformed, uses
	// more octets than allowed, or does not fit the enclosing element.
	ErrMalformedLength = errors.New("ber: malformed length")

	// ErrMessageTooLarge is returned when an outermost element exceeds the
	// configured maximum PDU size. It also matches ErrMalformedLength.
	ErrMessageTooLarge = fmt.Errorf("%w: message exceeds maximum PDU size", ErrMalformedLength)

	// ErrIndefiniteLength is returned when indefinite length encoding is encountered
	// but not supported for the current operation.
	ErrIndefiniteLength = errors.New("ber: indefinite length not supported")

	// ErrMaxDepth is returned when constructed elements nest deeper than allowed.
	ErrMaxDepth = errors.New("ber: maximum nesting depth exceeded")

	// ErrUnsupportedTag is returned for high-tag-number identifiers (number 31
	// and above), which never occur in LDAP.
	ErrUnsupportedTag = errors.New("ber: multi-octet tags are not supported")

	// ErrInvalidEndOfContents is returned when an end-of-contents marker
	// appears outside an indefinite-length element or carries content.
	ErrInvalidEndOfContents = errors.New("ber: invalid end-of-contents marker")

	// ErrInvalidBoolean is returned when a boolean value has invalid length.
	ErrInvalidBoolean = errors.New("ber: invalid boolean encoding")

	// ErrInvalidInteger is returned when an integer value is empty or does
	// not fit in 64 bits.
	ErrInvalidInteger = errors.New("ber: invalid integer encoding")

	// ErrIntegerOutOfRange is returned when an integer is outside the range
	// allowed for the field it populates.
	ErrIntegerOutOfRange = errors.New("ber: integer out of range")

	// ErrInvalidNull is returned when a null value has non-zero length.
	ErrInvalidNull = errors.New("ber: invalid null encoding")

	// ErrInvalidOID is returned for malformed object identifier encodings
	// and dotted strings.
	ErrInvalidOID = errors.New("ber: invalid object identifier")

	// ErrInvalidBitString is returned when the unused-bits octet is missing
	// or out of range.
	ErrInvalidBitString = errors.New("ber: invalid bit string encoding")

	// ErrBitIndexOutOfBounds is returned when a BitString is addressed
	// outside its bits.
	ErrBitIndexOutOfBounds = errors.New("ber: bit index out of bounds")

	// ErrTagMismatch is returned when the expected tag does not match the actual tag.
	ErrTagMismatch = errors.New("ber: tag mismatch")
)

// DecodeError provides detailed information about a decoding failure.
type DecodeError struct {
	Offset  int    // Byte offset where the error occurred
	Message string // Human-readable error description
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ber: decode error at offset %d: %s: %v", e.Offset, e.Message, e.Err)
	}
	return fmt.Sprintf("ber: decode error at offset %d: %s", e.Offset, e.Message)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a new DecodeError with the given parameters.
func NewDecodeError(offset int, message string, err error) *DecodeError {
	return &DecodeError{
		Offset:  offset,
		Message: message,
		Err:     err,
	}
}

// IntegerRangeError reports an integer outside its permitted bounds.
type IntegerRangeError struct {
	Value int64
	Min   int64
	Max   int64
}

// Error implements the error interface.
func (e *IntegerRangeError) Error() string {
	return fmt.Sprintf("ber: integer %d out of range [%d, %d]", e.Value, e.Min, e.Max)
}

// Is allows IntegerRangeError to match ErrIntegerOutOfRange with errors.Is.
func (e *IntegerRangeError) Is(target error) bool {
	return target == ErrIntegerOutOfRange
}

// TagMismatchError provides detailed information about a tag mismatch.
type TagMismatchError struct {
	Offset            int
	ExpectedClass     int
	ExpectedNumber    int
	ActualClass       int
	ActualNumber      int
	ActualConstructed int
}

// Error implements the error interface.
func (e *TagMismatchError) Error() string {
	return fmt.Sprintf("ber: tag mismatch at offset %d: expected class=%d number=%d, got class=%d number=%d constructed=%d",
		e.Offset, e.ExpectedClass, e.ExpectedNumber, e.ActualClass, e.ActualNumber, e.ActualConstructed)
}

// Is allows TagMismatchError to match ErrTagMismatch with errors.Is.
func (e *TagMismatchError) Is(target error) bool {
	return target == ErrTagMismatch
}
