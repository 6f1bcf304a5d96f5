// Package gosml decodes the Smart Message Language (SML) as defined by
// SML v1.04 (BSI TR-03109 Annex), the binary protocol emitted by modern
// German electricity meters over an optical or wired serial link.
//
// The module is split into four layers, consumed bottom-up:
//
//   - bytesource: the abstract "give me one byte" contract the decoder
//     reads from (blocking readers, nonblocking peripherals, in-memory
//     slices).
//   - buffer: the payload backing store, either growable (heap-backed)
//     or caller-owned fixed-size.
//   - transport: the escape-based framing state machine and CRC16/X.25
//     engine that turn a raw byte stream into unescaped, integrity
//     checked payloads.
//   - sml: the recursive-descent TLV decoder and message structure
//     parser that turns an unescaped payload into a typed Message tree.
//
// reader ties all four together behind a single ReadNext-style facade
// usable in blocking, nonblocking, and streaming modes.
//
// Byte acquisition, SML encoding of application data, and OBIS/unit/
// scaler physics interpretation are explicitly out of scope; this
// module surfaces fields verbatim for a higher layer to interpret.
package gosml
