// Package buffer provides the payload backing store the transport
// decoder accumulates unescaped bytes into (spec.md §3 "Buffer
// abstraction", §4.D). Two implementations share one interface: an
// Owned buffer that grows on the heap up to a configured maximum, and
// a Borrowed buffer that writes into a caller-supplied fixed slice and
// never allocates — the backbone of the no_alloc path spec.md §1
// requires.
package buffer

import "errors"

// ErrOutOfMemory is returned when a Buffer cannot grow (or accept)
// another byte. For an Owned buffer this means the configured maximum
// was reached; for a Borrowed buffer it means the caller-supplied
// slice is full. Either way spec.md §5 requires the frame be
// discarded and the state machine resynced, not a panic.
var ErrOutOfMemory = errors.New("buffer: out of memory")

// Buffer is the push/reset/view contract both payload stores satisfy.
type Buffer interface {
	// Push appends one byte, or reports ErrOutOfMemory.
	Push(b byte) error
	// Truncate keeps the first n bytes and drops the rest. Used to
	// strip trailing padding bytes once the frame's real length is
	// known. Truncating to a length >= the current length is a
	// no-op, never an error.
	Truncate(n int)
	// Reset empties the buffer, keeping any backing storage.
	Reset()
	// Bytes returns a read-only view of the bytes pushed so far.
	// The view is invalidated by the next Push, Truncate, or Reset
	// call.
	Bytes() []byte
	// Len reports how many bytes are currently held.
	Len() int
	// Cap reports the maximum number of bytes the buffer can ever
	// hold, or -1 if unbounded.
	Cap() int
}
