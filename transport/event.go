package transport

// Policy controls how a frame whose stripped padding bytes are not
// all zero is treated (spec.md §6 on_invalid_padding).
type Policy uint8

const (
	// Reject fails a frame with non-zero padding as InvalidPadding.
	Reject Policy = iota
	// Tolerate accepts such a frame but flags it via
	// Event.TolerantPadding.
	Tolerate
)

func (p Policy) String() string {
	if p == Tolerate {
		return "Tolerate"
	}

	return "Reject"
}

// EventKind tags the non-error outcomes PushByte can report.
type EventKind uint8

const (
	// EventNone means more bytes are needed before anything can be
	// reported.
	EventNone EventKind = iota
	// EventFrame means a complete, CRC-verified frame is ready.
	// Payload is a read-only view into the decoder's internal
	// buffer, valid until the next PushByte call.
	EventFrame
	// EventDiscardedBytes is a non-fatal notice that junk preceding
	// a (possibly still-pending) start sequence was skipped.
	EventDiscardedBytes
	// EventAborted means the meter sent one of the transmission
	// abort escape codes (0x01/0x02/0x03) instead of an end marker.
	EventAborted
)

// Event is the successful (non-error) result of pushing one byte
// into a Decoder.
type Event struct {
	Kind EventKind

	// Payload holds the unescaped, de-padded payload for
	// EventFrame.
	Payload []byte
	// TolerantPadding is set on EventFrame when the stripped
	// padding bytes were non-zero but accepted under Policy
	// Tolerate.
	TolerantPadding bool

	// DiscardedCount holds the number of raw bytes skipped for
	// EventDiscardedBytes.
	DiscardedCount int

	// AbortCode holds the transmission-abort code (0x01, 0x02, or
	// 0x03) for EventAborted.
	AbortCode byte
}
