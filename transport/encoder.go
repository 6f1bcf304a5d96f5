package transport

import "io"

// Encode wraps payload in a transport v1 envelope: start sequence,
// escaped payload, end marker, padding, and CRC16/X.25 (spec.md §3).
// Any run of four consecutive 0x1B bytes occurring in payload is
// doubled on the wire so the decoder's InEscPayload state can tell it
// apart from a true end-of-frame escape.
//
// Modelled on original_source/src/transport.rs's encode/encode_streaming
// pair.
func Encode(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+escapedOverhead(payload)+16)
	encodeTo(&sliceWriter{out: &out}, payload)
	return out
}

// EncodeStreaming writes the same envelope as Encode, byte by byte,
// to w. It performs no heap allocation of its own beyond what w may
// do, satisfying the no_alloc path of spec.md §9.
func EncodeStreaming(payload []byte, w io.ByteWriter) error {
	bw := &byteWriterAdapter{w: w}
	encodeTo(bw, payload)
	return bw.err
}

// byteSink is the minimal interface the shared encode routine needs;
// it lets Encode and EncodeStreaming share one implementation the way
// sml-rs shares one body between encode and encode_streaming.
type byteSink interface {
	writeByte(b byte)
}

type sliceWriter struct {
	out *[]byte
}

func (s *sliceWriter) writeByte(b byte) { *s.out = append(*s.out, b) }

type byteWriterAdapter struct {
	w   io.ByteWriter
	err error
}

func (a *byteWriterAdapter) writeByte(b byte) {
	if a.err != nil {
		return
	}

	a.err = a.w.WriteByte(b)
}

// escapedOverhead returns how many extra bytes doubling adds, purely
// as a capacity hint for Encode.
func escapedOverhead(payload []byte) int {
	n := 0
	for i := 0; i+4 <= len(payload); {
		if allBytesEqual(payload[i:i+4], 0x1b) {
			n += 4
			i += 4
		} else {
			i++
		}
	}

	return n
}

func escapedLen(payload []byte) int {
	return len(payload) + escapedOverhead(payload)
}

func encodeTo(w byteSink, payload []byte) {
	crc := newCRCEngine()

	emit := func(b byte) {
		w.writeByte(b)
		crc.update(b)
	}

	for _, b := range startSequence {
		emit(b)
	}

	i := 0
	for i < len(payload) {
		if i+4 <= len(payload) && allBytesEqual(payload[i:i+4], 0x1b) {
			for k := 0; k < 4; k++ {
				emit(payload[i+k])
			}

			for k := 0; k < 4; k++ {
				emit(payload[i+k])
			}

			i += 4
			continue
		}

		emit(payload[i])
		i++
	}

	padCount := (4 - escapedLen(payload)%4) % 4
	for i := 0; i < padCount; i++ {
		emit(0x00)
	}

	for _, b := range endEscapeBytes {
		emit(b)
	}

	emit(0x1a)
	emit(byte(padCount))

	finalCRC := crc.finish()
	w.writeByte(byte(finalCRC))
	w.writeByte(byte(finalCRC >> 8))
}

var endEscapeBytes = [4]byte{0x1b, 0x1b, 0x1b, 0x1b}
