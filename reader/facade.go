// Package reader combines bytesource, transport, and sml behind the
// single ReadNext-style facade spec.md §4.G describes: "the facade
// combines A, B, and F under one operation". Grounded in the
// teacher's sml.Reader (sml/reader.go), generalised from its
// always-blocking, always-fully-parsed ReadFile into a facade that
// also supports nonblocking sources and a raw transport-only mode.
package reader

import (
	"gosml/bytesource"
	"gosml/sml"
	"gosml/transport"
)

// Reader is the combined framing + parsing facade. It carries all of
// its state in the struct itself (spec.md §9 "no global state") and
// is not safe for concurrent use.
type Reader struct {
	source bytesource.Source
	dec    *transport.Decoder
	mode   ParseMode
}

// New constructs a Reader that pulls bytes from source and decodes
// frames per cfg.
func New(source bytesource.Source, cfg Config) *Reader {
	return &Reader{
		source: source,
		dec:    transport.NewDecoder(cfg.newBuffer(), cfg.OnInvalidPadding),
		mode:   cfg.ParseMode,
	}
}

// ReadNext advances the reader until it has an Outcome to report. It
// may consume any number of bytes from the source (zero, if a
// previously buffered frame is somehow already complete, which cannot
// happen with this implementation, up to however many bytes separate
// two frames) in a single call.
func (r *Reader) ReadNext() Outcome {
	for {
		res := r.source.ReadByte()

		switch res.Outcome {
		case bytesource.WouldBlock:
			return Outcome{Kind: WouldBlock}

		case bytesource.Eof:
			return Outcome{Kind: Eof}

		case bytesource.IoError:
			return Outcome{Kind: TransportError, Err: transport.ByteSourceError{Err: res.Err}}

		case bytesource.Ready:
			if o, ok := r.pushByte(res.Byte); ok {
				return o
			}
		}
	}
}

func (r *Reader) pushByte(b byte) (Outcome, bool) {
	ev, err := r.dec.PushByte(b)
	if err != nil {
		return Outcome{Kind: TransportError, Err: err}, true
	}

	switch ev.Kind {
	case transport.EventNone:
		return Outcome{}, false

	case transport.EventDiscardedBytes:
		return Outcome{Kind: DiscardedBytes, DiscardedCount: ev.DiscardedCount}, true

	case transport.EventAborted:
		return Outcome{Kind: Aborted, AbortCode: ev.AbortCode}, true

	case transport.EventFrame:
		return r.onFrame(ev), true

	default:
		return Outcome{}, false
	}
}

func (r *Reader) onFrame(ev transport.Event) Outcome {
	if r.mode == Transport {
		return Outcome{Kind: Message, Payload: ev.Payload, TolerantPadding: ev.TolerantPadding}
	}

	f, err := sml.Decode(ev.Payload)
	if err != nil {
		return Outcome{Kind: ParseError, Err: err}
	}

	return Outcome{Kind: Message, File: f, TolerantPadding: ev.TolerantPadding}
}

// Reset discards any frame currently in progress and returns framing
// to LookingForStart. Useful after a long idle period (spec.md §5).
func (r *Reader) Reset() {
	r.dec.Reset()
}

// IntoByteSource releases the underlying Source, allowing the caller
// to reclaim it (spec.md §6 "into_byte_source (release)"). The Reader
// must not be used again afterwards.
func (r *Reader) IntoByteSource() bytesource.Source {
	s := r.source
	r.source = nil
	return s
}
