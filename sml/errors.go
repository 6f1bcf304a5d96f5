package sml

import "fmt"

// UnexpectedEof is returned when a payload ends before a TLV
// primitive or struct it starts could be fully read.
type UnexpectedEof struct {
	Context string
}

func (e UnexpectedEof) Error() string {
	return fmt.Sprintf("sml: unexpected end of payload while reading %s", e.Context)
}

// UnexpectedType is returned when a decoded token's SML type does not
// match what the current struct field or choice requires.
type UnexpectedType struct {
	Want string
	Got  token
}

func (e UnexpectedType) Error() string {
	return fmt.Sprintf("sml: expected %s, got %#v", e.Want, e.Got)
}

// ListLengthMismatch is returned when a list token's element count
// does not match the number of fields in the struct being decoded
// onto it.
type ListLengthMismatch struct {
	Want int
	Got  int
}

func (e ListLengthMismatch) Error() string {
	return fmt.Sprintf("sml: list length mismatch: struct has %d fields, decoded list has %d elements", e.Want, e.Got)
}

// IntegerTooWide is returned when a TLV integer primitive's length
// byte claims more raw value bytes than the 8-byte widest supported
// width can represent.
type IntegerTooWide struct {
	RawLength int
}

func (e IntegerTooWide) Error() string {
	return fmt.Sprintf("sml: integer primitive with %d raw bytes exceeds the 8-byte widest supported width", e.RawLength)
}

// UnknownMessageType is returned by the message-body choice handler
// when a message carries a type id not in the supported set. The
// surrounding list has already been consumed by the cursor, so
// framing stays in sync, but Decode fails as a whole (wrapped in
// InvalidFile) and returns no File.
type UnknownMessageType struct {
	TypeId uint32
}

func (e UnknownMessageType) Error() string {
	return fmt.Sprintf("sml: unsupported SML message type %08x", e.TypeId)
}

// MissingRequiredField is returned when a non-optional struct field
// decodes against the SML "absent" marker (an empty optional octet
// string is fine; this is for fields with no optional tag at all).
type MissingRequiredField struct {
	Field string
}

func (e MissingRequiredField) Error() string {
	return fmt.Sprintf("sml: required field %q is missing", e.Field)
}

// InvalidMessage wraps a structural decoding failure within a single
// SML message.
type InvalidMessage struct {
	Err error
}

func (e InvalidMessage) Error() string { return fmt.Sprintf("sml: invalid message: %v", e.Err) }
func (e InvalidMessage) Unwrap() error { return e.Err }

// InvalidFile wraps a structural failure at the message-bundle level:
// missing open/close bracketing, fewer than two messages, and so on.
type InvalidFile struct {
	Err error
}

func (e InvalidFile) Error() string { return fmt.Sprintf("sml: invalid SML file: %v", e.Err) }
func (e InvalidFile) Unwrap() error { return e.Err }
