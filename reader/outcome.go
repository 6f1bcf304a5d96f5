package reader

import "gosml/sml"

// OutcomeKind tags the result of one ReadNext call (spec.md §4.G).
type OutcomeKind uint8

const (
	// WouldBlock means the byte source has no more data right now;
	// all internal state is preserved and the caller should retry
	// later.
	WouldBlock OutcomeKind = iota
	// Eof means the byte source is permanently exhausted.
	Eof
	// Message means a complete frame was decoded. Depending on
	// Config.ParseMode, either Payload or File holds the result.
	Message
	// DiscardedBytes is a non-fatal notice that junk preceding a
	// start sequence was skipped.
	DiscardedBytes
	// Aborted means the meter sent a transmission-abort escape code
	// instead of an end marker.
	Aborted
	// TransportError means framing or CRC validation failed, the
	// payload did not fit the buffer, or the byte source reported an
	// I/O error (transport.ByteSourceError). Err holds the structured
	// cause; framing has already resynced and the next ReadNext call
	// parses independently.
	TransportError
	// ParseError means the frame's payload was structurally
	// malformed SML. Err holds the structured cause; only this
	// message is affected.
	ParseError
)

func (k OutcomeKind) String() string {
	switch k {
	case WouldBlock:
		return "WouldBlock"
	case Eof:
		return "Eof"
	case Message:
		return "Message"
	case DiscardedBytes:
		return "DiscardedBytes"
	case Aborted:
		return "Aborted"
	case TransportError:
		return "TransportError"
	case ParseError:
		return "ParseError"
	default:
		return "Unknown"
	}
}

// Outcome is the return value of ReadNext.
type Outcome struct {
	Kind OutcomeKind

	// Payload holds the raw, unescaped frame payload when
	// Config.ParseMode is Transport. Valid only until the next
	// ReadNext call.
	Payload []byte
	// File holds the fully parsed message bundle when
	// Config.ParseMode is Parse.
	File *sml.File
	// TolerantPadding is set on Message when the frame's stripped
	// padding bytes were non-zero but accepted under Tolerate
	// policy.
	TolerantPadding bool

	// DiscardedCount holds the number of raw bytes skipped, for
	// DiscardedBytes.
	DiscardedCount int
	// AbortCode holds the transmission-abort code, for Aborted.
	AbortCode byte

	// Err holds the structured cause for TransportError and
	// ParseError.
	Err error
}
