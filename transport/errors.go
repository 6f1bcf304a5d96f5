package transport

import (
	"fmt"

	"gosml/buffer"
)

// InvalidEscape is returned when a run of four or more 0x1B bytes
// inside a payload is not followed by a recognised escape payload
// (another literal 1B1B1B1B, the 0x1A end marker, or a 0x01/0x02/0x03
// abort code).
type InvalidEscape struct {
	// Following holds the byte that broke the escape sequence.
	Following byte
}

func (e InvalidEscape) Error() string {
	return fmt.Sprintf("transport: invalid escape sequence, unexpected byte 0x%02x after 1b1b1b1b", e.Following)
}

// InvalidStart is returned by Finalize when the eight-byte start
// sequence (1b1b1b1b 01010101) was left partially matched when the
// byte source ran out. A short, still-matching prefix is simply more
// data to look for while bytes keep arriving; only Finalize, called
// once the caller knows no more bytes are coming, can tell a genuine
// truncation apart from that.
type InvalidStart struct{}

func (InvalidStart) Error() string { return "transport: truncated start sequence" }

// InvalidEndMarker is returned when the pad-count byte following the
// end escape sequence is out of range (spec.md §3: pp must be in
// {0,1,2,3}).
type InvalidEndMarker struct {
	PadCount byte
}

func (e InvalidEndMarker) Error() string {
	return fmt.Sprintf("transport: invalid end marker, padding count %d out of range", e.PadCount)
}

// CrcMismatch is returned when the CRC16/X.25 computed over the
// escaped wire bytes does not match the CRC transmitted on the wire.
type CrcMismatch struct {
	Expected uint16
	Actual   uint16
}

func (e CrcMismatch) Error() string {
	return fmt.Sprintf("transport: crc mismatch: expected %04x, got %04x", e.Expected, e.Actual)
}

// InvalidPadding is returned in Reject mode when the padding bytes
// stripped from the end of a frame are not all zero.
type InvalidPadding struct {
	PaddingCount        byte
	InvalidPaddingBytes bool
}

func (e InvalidPadding) Error() string {
	return fmt.Sprintf("transport: invalid padding: count=%d non_zero=%v", e.PaddingCount, e.InvalidPaddingBytes)
}

// OutOfMemory is returned when the payload, once unescaped, does not
// fit in the configured buffer (spec.md §5).
type OutOfMemory struct{}

func (OutOfMemory) Error() string { return buffer.ErrOutOfMemory.Error() }

func (OutOfMemory) Unwrap() error { return buffer.ErrOutOfMemory }

// ByteSourceError wraps an error reported by the underlying
// bytesource.Source, surfaced verbatim per spec.md §7.
type ByteSourceError struct {
	Err error
}

func (e ByteSourceError) Error() string {
	return fmt.Sprintf("transport: byte source error: %v", e.Err)
}

func (e ByteSourceError) Unwrap() error { return e.Err }
