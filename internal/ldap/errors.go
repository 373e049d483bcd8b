package ldap

import (
	"errors"
	"fmt"
)

// Decoding errors
var (
	// ErrUnexpectedTag is returned when a tag has no transition from the
	// current grammar state.
	ErrUnexpectedTag = errors.New("ldap: unexpected tag")
	// ErrPrematureEnd is returned when a constructed element closes before
	// its mandatory components were read.
	ErrPrematureEnd = errors.New("ldap: element ended before its mandatory components")
	// ErrSemanticViolation is returned under PolicyStrict for values that
	// RFC 4511 forbids in their context.
	ErrSemanticViolation = errors.New("ldap: semantic violation")
	// ErrDuplicateField is returned when a single-valued field is set twice.
	ErrDuplicateField = errors.New("ldap: field already set")
	// ErrInvalidValue is returned when a control or extended value cannot
	// be decoded.
	ErrInvalidValue = errors.New("ldap: invalid control or extended value")
	// ErrInvalidFilter is returned for a structurally invalid search filter.
	ErrInvalidFilter = errors.New("ldap: invalid search filter")
	// ErrInvalidUnbind is returned when an UnbindRequest carries content.
	ErrInvalidUnbind = errors.New("ldap: unbind request must be empty")
	// ErrInvalidMessage is returned by Encode for messages that cannot be
	// represented on the wire.
	ErrInvalidMessage = errors.New("ldap: invalid message")
)

// DecodeError wraps every fatal error returned by a Decoder. When the
// messageID was read before the failure, HasMessageID is set so that a
// server can answer with protocolError for that ID.
type DecodeError struct {
	// Offset is the stream offset, counted from the last Reset, where
	// decoding stopped.
	Offset       int
	MessageID    int32
	HasMessageID bool
	Err          error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.HasMessageID {
		return fmt.Sprintf("ldap: decode error at offset %d (message %d): %v", e.Offset, e.MessageID, e.Err)
	}
	return fmt.Sprintf("ldap: decode error at offset %d: %v", e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UnexpectedTagError reports a tag with no transition from State.
type UnexpectedTagError struct {
	State State
	Tag   byte
}

// Error implements the error interface.
func (e *UnexpectedTagError) Error() string {
	return fmt.Sprintf("ldap: unexpected tag 0x%02X in state %s", e.Tag, e.State)
}

// Is allows UnexpectedTagError to match ErrUnexpectedTag with errors.Is.
func (e *UnexpectedTagError) Is(target error) bool {
	return target == ErrUnexpectedTag
}

// PrematureEndError reports a constructed element closed in State.
type PrematureEndError struct {
	State State
}

// Error implements the error interface.
func (e *PrematureEndError) Error() string {
	return fmt.Sprintf("ldap: element ended in state %s before its mandatory components", e.State)
}

// Is allows PrematureEndError to match ErrPrematureEnd with errors.Is.
func (e *PrematureEndError) Is(target error) bool {
	return target == ErrPrematureEnd
}

// SemanticError reports a value that RFC 4511 forbids in its context.
type SemanticError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *SemanticError) Error() string {
	return fmt.Sprintf("ldap: %s: %s", e.Field, e.Message)
}

// Is allows SemanticError to match ErrSemanticViolation with errors.Is.
func (e *SemanticError) Is(target error) bool {
	return target == ErrSemanticViolation
}
