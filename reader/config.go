package reader

import (
	"gosml/buffer"
	"gosml/transport"
)

// BufferMode selects which Buffer implementation backs the payload
// store (spec.md §6 "buffer").
type BufferMode uint8

const (
	// OwnedBuffer grows on the heap up to MaxBytes (0 means
	// unbounded).
	OwnedBuffer BufferMode = iota
	// BorrowedBuffer writes into a caller-supplied fixed slice and
	// never allocates.
	BorrowedBuffer
)

// ParseMode selects what ReadNext does with a completed frame
// (spec.md §6 "parse_mode").
type ParseMode uint8

const (
	// Transport yields the raw, unescaped payload only; the sml
	// package is never invoked. This is the path to use when the
	// caller wants to parse lazily, forward the frame elsewhere, or
	// avoid the reflection-based struct decoder entirely.
	Transport ParseMode = iota
	// Parse additionally runs the payload through sml.Decode and
	// yields the resulting *sml.File.
	Parse
)

// Config configures a Reader at construction. It mirrors the
// teacher's small tagged-struct config.go shape, but is built by the
// embedding program rather than loaded from YAML (spec.md §1: CLI/
// config-file loading is out of scope for this module).
type Config struct {
	BufferMode BufferMode
	// MaxBytes bounds an OwnedBuffer; 0 means unbounded.
	MaxBytes int
	// Storage backs a BorrowedBuffer; its length is the fixed
	// capacity.
	Storage []byte

	ParseMode ParseMode

	// OnInvalidPadding controls how a frame with non-zero stripped
	// padding is treated.
	OnInvalidPadding transport.Policy
}

func (c Config) newBuffer() buffer.Buffer {
	if c.BufferMode == BorrowedBuffer {
		return buffer.NewBorrowed(c.Storage)
	}

	return buffer.NewOwned(c.MaxBytes)
}
