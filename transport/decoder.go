// Package transport implements the SML transport protocol version 1:
// the escape-based framing state machine described in spec.md §4.B
// together with the CRC16/X.25 engine from §4.B/§3, plus the matching
// encoder (§1: "the core defines only how to produce a
// transport-framed envelope around a pre-built payload").
//
// The escape/CRC bookkeeping and end-of-stream handling follow
// original_source/src/transport.rs, the sml-rs crate this decoder's
// framing behaviour is modelled on.
package transport

import "gosml/buffer"

type decodeState uint8

const (
	stLookingForStart decodeState = iota
	stInPayload
	stInEscChars
	stInEscPayload
)

// Decoder is the transport v1 framing state machine (spec.md §4.B).
// It owns a Buffer into which the unescaped payload of the frame
// currently being decoded accumulates; a successful Event.Payload is
// a view into that buffer valid until the next PushByte call.
//
// Decoder carries all of its state in the struct itself (spec.md §9
// "no global state"); it is not safe for concurrent use from multiple
// goroutines.
type Decoder struct {
	buf    buffer.Buffer
	policy Policy
	state  decodeState

	// LookingForStart bookkeeping.
	numDiscarded    int
	numInitSeqBytes int

	// InEscChars: count of consecutive 0x1b bytes seen so far (1..4)
	// since leaving InPayload.
	escChars int

	// InEscPayload: count of bytes read into the current 4-byte
	// escape-payload window.
	escPayloadN int

	crc    crcEngine
	crcIdx int
	rawLen int
}

// NewDecoder constructs a Decoder that accumulates payload bytes into
// buf and applies policy to non-zero padding bytes.
func NewDecoder(buf buffer.Buffer, policy Policy) *Decoder {
	d := &Decoder{buf: buf, policy: policy}
	d.resetState()
	return d
}

// Reset discards any frame currently in progress and returns to
// LookingForStart. Useful after a long idle period (spec.md §5).
func (d *Decoder) Reset() {
	d.resetState()
}

func (d *Decoder) resetState() {
	d.state = stLookingForStart
	d.numDiscarded = 0
	d.numInitSeqBytes = 0
	d.escChars = 0
	d.escPayloadN = 0
	d.buf.Reset()
	d.crcIdx = 0
	d.rawLen = 0
}

// PushByte advances the state machine by one byte. On success it
// returns an Event (possibly EventNone, meaning "need more bytes").
// On a structural error the Decoder has already reset itself to
// LookingForStart; framing for the next frame is unaffected (spec.md
// §7).
func (d *Decoder) PushByte(b byte) (Event, error) {
	d.rawLen++

	switch d.state {
	case stLookingForStart:
		return d.onLookingForStart(b)
	case stInPayload:
		return d.onInPayload(b)
	case stInEscChars:
		return d.onInEscChars(b)
	case stInEscPayload:
		return d.onInEscPayload(b)
	default:
		panic("transport: unreachable decoder state")
	}
}

// Finalize should be called once the byte source has reported Eof
// (or the caller is giving up on the stream). If a frame was left
// incomplete, its raw byte count is reported as discarded and the
// decoder is reset; discarded is 0 and err is nil if the decoder was
// already idle.
//
// A start sequence left partially matched (some but not all of the
// eight 1b1b1b1b01010101 bytes seen) is reported as InvalidStart
// rather than a bare discarded count, since those bytes were never
// junk preceding a frame — they were the beginning of one that never
// arrived.
func (d *Decoder) Finalize() (discarded int, err error) {
	if d.state == stLookingForStart && d.numDiscarded == 0 && d.numInitSeqBytes == 0 {
		return 0, nil
	}

	n := d.rawLen
	truncatedStart := d.state == stLookingForStart && d.numInitSeqBytes > 0
	d.resetState()

	if truncatedStart {
		return n, InvalidStart{}
	}

	return n, nil
}

func (d *Decoder) onLookingForStart(b byte) (Event, error) {
	// Known real-world deviation (spec.md §6): some meters emit a
	// trailing run of 0x00 bytes after the CRC. Absorb them silently
	// rather than counting them as junk.
	if b == 0x00 && d.numInitSeqBytes == 0 {
		return Event{}, nil
	}

	matches := (b == 0x1b && d.numInitSeqBytes < 4) || (b == 0x01 && d.numInitSeqBytes >= 4)
	if matches {
		d.numInitSeqBytes++
	} else {
		d.numDiscarded += 1 + d.numInitSeqBytes
		d.numInitSeqBytes = 0
	}

	if d.numInitSeqBytes != 8 {
		return Event{}, nil
	}

	discarded := d.numDiscarded
	d.numDiscarded = 0
	d.numInitSeqBytes = 0
	d.state = stInPayload
	d.buf.Reset()
	d.crc = newCRCEngine()
	d.crc.updateBytes(startSequence[:])
	d.crcIdx = 0
	d.rawLen = 8

	if discarded > 0 {
		return Event{Kind: EventDiscardedBytes, DiscardedCount: discarded}, nil
	}

	return Event{}, nil
}

var startSequence = [8]byte{0x1b, 0x1b, 0x1b, 0x1b, 0x01, 0x01, 0x01, 0x01}

func (d *Decoder) onInPayload(b byte) (Event, error) {
	if b == 0x1b {
		d.state = stInEscChars
		d.escChars = 1
		return Event{}, nil
	}

	if err := d.push(b); err != nil {
		return Event{}, err
	}

	return Event{}, nil
}

func (d *Decoder) onInEscChars(b byte) (Event, error) {
	if b != 0x1b {
		// Fewer than four consecutive 0x1b bytes are ordinary payload
		// data: store them together with b and resume the payload.
		for i := 0; i < d.escChars; i++ {
			if err := d.push(0x1b); err != nil {
				return Event{}, err
			}
		}

		if err := d.push(b); err != nil {
			return Event{}, err
		}

		d.state = stInPayload
		d.escChars = 0
		return Event{}, nil
	}

	d.escChars++
	if d.escChars < 4 {
		return Event{}, nil
	}

	// Fourth confirmed 0x1b: fold any unpushed payload bytes and the
	// four escape-introducer bytes (never stored in buf) into the
	// running CRC, then start reading the 4-byte escape payload.
	d.flushCRC()
	d.crc.updateBytes(fourEscapeBytes[:])
	d.state = stInEscPayload
	d.escPayloadN = 0
	return Event{}, nil
}

var fourEscapeBytes = [4]byte{0x1b, 0x1b, 0x1b, 0x1b}

func (d *Decoder) flushCRC() {
	bs := d.buf.Bytes()
	if d.crcIdx < len(bs) {
		d.crc.updateBytes(bs[d.crcIdx:])
	}

	d.crcIdx = len(bs)
}

func (d *Decoder) onInEscPayload(b byte) (Event, error) {
	if err := d.push(b); err != nil {
		return Event{}, err
	}

	d.escPayloadN++
	if d.escPayloadN < 4 {
		return Event{}, nil
	}

	bs := d.buf.Bytes()
	var window [4]byte
	copy(window[:], bs[len(bs)-4:])

	switch {
	case window == fourEscapeBytes:
		// An escaped literal 1b1b1b1b occurrence in the payload:
		// the four bytes just pushed ARE that literal data.
		d.state = stInPayload
		d.escPayloadN = 0
		return Event{}, nil

	case window[0] == 0x1a:
		return d.finishFrame(window[1], window[2], window[3])

	case window[0] == 0x01 || window[0] == 0x02 || window[0] == 0x03:
		code := window[0]
		d.resetState()
		return Event{Kind: EventAborted, AbortCode: code}, nil

	default:
		// The payload legitimately contained 1-3 consecutive 0x1b
		// bytes immediately followed by the real end-escape
		// sequence, so the 4-byte window we just inspected spans
		// the tail of the payload and the head of the true escape.
		// If the window's leading bytes are all 0x1b and the byte
		// right after them is the end marker, resume reading the
		// remaining bytes of the real window instead of failing.
		bytesUntilAlignment := (4 - len(bs)%4) % 4
		if bytesUntilAlignment > 0 &&
			allBytesEqual(window[:bytesUntilAlignment], 0x1b) &&
			window[bytesUntilAlignment] == 0x1a {
			d.escPayloadN = 4 - bytesUntilAlignment
			return Event{}, nil
		}

		following := window[0]
		d.resetState()
		return Event{}, InvalidEscape{Following: following}
	}
}

func (d *Decoder) finishFrame(padCount, crcLo, crcHi byte) (Event, error) {
	if padCount > 3 {
		d.resetState()
		return Event{}, InvalidEndMarker{PadCount: padCount}
	}

	bs := d.buf.Bytes()

	if len(bs)%4 != 0 || int(padCount)+4 > len(bs) {
		d.resetState()
		return Event{}, InvalidEndMarker{PadCount: padCount}
	}

	// Fold everything buffered since the last flush, excluding the
	// two trailing CRC bytes (they are not part of the CRC input),
	// into the running CRC.
	d.crc.updateBytes(bs[d.crcIdx : len(bs)-2])
	computed := d.crc.finish()
	expected := uint16(crcLo) | uint16(crcHi)<<8

	if computed != expected {
		d.resetState()
		return Event{}, CrcMismatch{Expected: expected, Actual: computed}
	}

	payloadLen := len(bs) - 4 - int(padCount)
	payload := bs[:payloadLen]
	pad := bs[payloadLen : payloadLen+int(padCount)]

	tolerant := false
	if !allBytesEqual(pad, 0x00) {
		if d.policy == Reject {
			d.resetState()
			return Event{}, InvalidPadding{PaddingCount: padCount, InvalidPaddingBytes: true}
		}

		tolerant = true
	}

	d.resetState()

	return Event{Kind: EventFrame, Payload: payload, TolerantPadding: tolerant}, nil
}

func (d *Decoder) push(b byte) error {
	if err := d.buf.Push(b); err != nil {
		d.resetState()
		return OutOfMemory{}
	}

	return nil
}

func allBytesEqual(bs []byte, v byte) bool {
	for _, b := range bs {
		if b != v {
			return false
		}
	}

	return true
}
