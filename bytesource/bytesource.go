// Package bytesource abstracts the one operation a framing decoder
// needs from its input: yield the next byte, or explain why it can't.
//
// This is the external collaborator spec.md §4.A describes. The
// decoder never buffers ahead of what it has consumed from a Source,
// so a Source is free to discard data once it has been yielded.
package bytesource

import "fmt"

// Outcome tags the result of a single Source.ReadByte call.
type Outcome uint8

const (
	// Ready means Byte holds a valid, consumed byte.
	Ready Outcome = iota
	// WouldBlock means no byte is available yet; nothing was
	// consumed and the caller should retry later.
	WouldBlock
	// Eof means the stream ended cleanly; no more bytes will ever
	// arrive.
	Eof
	// IoError means the underlying source failed; Err holds the
	// cause.
	IoError
)

func (o Outcome) String() string {
	switch o {
	case Ready:
		return "Ready"
	case WouldBlock:
		return "WouldBlock"
	case Eof:
		return "Eof"
	case IoError:
		return "IoError"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// Result is the full outcome of one ReadByte call.
type Result struct {
	Outcome Outcome
	Byte    byte
	Err     error
}

func ready(b byte) Result { return Result{Outcome: Ready, Byte: b} }
func wouldBlock() Result  { return Result{Outcome: WouldBlock} }
func eof() Result         { return Result{Outcome: Eof} }
func ioError(err error) Result {
	return Result{Outcome: IoError, Err: err}
}

// Source is implemented by anything that can yield bytes one at a
// time: blocking I/O streams, nonblocking UART peripherals, and fixed
// in-memory slices are all concrete adapters provided by this
// package. The decoder holds at most one Source and serialises all
// access to it itself; a Source implementation need not be
// goroutine-safe.
type Source interface {
	// ReadByte obtains the next byte. It must not block past the
	// point where WouldBlock would otherwise be the right answer
	// for a nonblocking source; a blocking source blocks until a
	// byte, EOF, or error is available.
	ReadByte() Result
}
