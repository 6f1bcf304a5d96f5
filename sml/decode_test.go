package sml

import (
	"bytes"
	"errors"
	"testing"
)

// The helpers below assemble raw TLV byte sequences by hand, mirroring
// the wire format cursor.token's decode logic expects. They exist
// only to drive Decode in tests; production code never needs to
// encode SML message structures (spec.md's encode symmetry is
// transport-only).

func tlOctet(data []byte) []byte {
	if len(data)+1 > 15 {
		panic("test helper: octet string too long for single-byte TL")
	}

	return append([]byte{byte(len(data) + 1)}, data...)
}

func tlAbsent() []byte { return []byte{0x01} }

func tlUint(width int, value uint64) []byte {
	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		out[i] = byte(value)
		value >>= 8
	}

	return append([]byte{byte(0x60 | (width + 1))}, out...)
}

func tlList(elems ...[]byte) []byte {
	if len(elems) > 15 {
		panic("test helper: list too long for single-byte TL")
	}

	out := []byte{byte(0x70 | len(elems))}
	for _, e := range elems {
		out = append(out, e...)
	}

	return out
}

func tlEndOfMessage() []byte { return []byte{0x00} }

func buildMessage(transactionId string, bodyTypeId uint64, bodyList []byte) []byte {
	messageBody := tlList(tlUint(2, bodyTypeId), bodyList)

	return tlList(
		tlOctet([]byte(transactionId)),
		tlUint(1, 0),
		tlUint(1, 0),
		messageBody,
		tlUint(2, 0),
		tlEndOfMessage(),
	)
}

func TestDecodeMinimalFile(t *testing.T) {
	openBody := tlList(
		tlAbsent(),
		tlAbsent(),
		tlOctet([]byte("f1")),
		tlOctet([]byte("s1")),
		tlAbsent(),
		tlAbsent(),
	)

	closeBody := tlList(tlAbsent())

	payload := append(
		buildMessage("tx0", 0x101, openBody),
		buildMessage("tx1", 0x201, closeBody)...,
	)

	f, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(f.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(f.Messages))
	}

	open, ok := f.Messages[0].MessageBody.(*OpenResponseMessageBody)
	if !ok {
		t.Fatalf("expected *OpenResponseMessageBody, got %T", f.Messages[0].MessageBody)
	}

	if !bytes.Equal(open.ReqFileId, []byte("f1")) || !bytes.Equal(open.ServerId, []byte("s1")) {
		t.Fatalf("unexpected open fields: %+v", open)
	}

	if open.Codepage != nil {
		t.Fatalf("expected absent Codepage to stay nil, got %v", open.Codepage)
	}

	if _, ok := f.Messages[1].MessageBody.(*CloseResponseMessageBody); !ok {
		t.Fatalf("expected *CloseResponseMessageBody, got %T", f.Messages[1].MessageBody)
	}
}

func TestDecodeRejectsMissingOpen(t *testing.T) {
	closeBody := tlList(tlAbsent())
	payload := append(
		buildMessage("tx0", 0x201, closeBody),
		buildMessage("tx1", 0x201, closeBody)...,
	)

	_, err := Decode(payload)

	var invalidFile InvalidFile
	if !errors.As(err, &invalidFile) {
		t.Fatalf("expected InvalidFile, got %v", err)
	}
}

func TestDecodeUnknownMessageType(t *testing.T) {
	payload := buildMessage("tx0", 0x9999, tlList(tlAbsent()))

	_, err := Decode(payload)

	var invalidFile InvalidFile
	if !errors.As(err, &invalidFile) {
		t.Fatalf("expected InvalidFile wrapping UnknownMessageType, got %v", err)
	}

	var unknown UnknownMessageType
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownMessageType in chain, got %v", err)
	}
}

func TestDecodeGetListResponseEntries(t *testing.T) {
	entry := tlList(
		tlOctet([]byte{1, 0, 1, 8, 0, 255}),
		tlAbsent(),
		tlAbsent(),
		tlUint(1, 30),
		tlUintAsSigned(1, -2),
		tlUintAsSigned(4, 12345),
		tlAbsent(),
	)

	listBody := tlList(
		tlAbsent(),
		tlOctet([]byte("srv")),
		tlAbsent(),
		tlAbsent(),
		tlList(entry),
		tlAbsent(),
		tlAbsent(),
	)

	openBody := tlList(tlAbsent(), tlAbsent(), tlOctet([]byte("f1")), tlOctet([]byte("s1")), tlAbsent(), tlAbsent())
	closeBody := tlList(tlAbsent())

	payload := append(buildMessage("tx0", 0x101, openBody),
		append(buildMessage("tx1", 0x701, listBody),
			buildMessage("tx2", 0x201, closeBody)...)...)

	f, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	body, ok := f.Messages[1].MessageBody.(*GetListResponseMessageBody)
	if !ok {
		t.Fatalf("expected *GetListResponseMessageBody, got %T", f.Messages[1].MessageBody)
	}

	if len(body.ValList) != 1 {
		t.Fatalf("expected 1 list entry, got %d", len(body.ValList))
	}

	val, ok := body.ValList[0].Value.(int32)
	if !ok || val != 12345 {
		t.Fatalf("expected Value int32(12345), got %#v", body.ValList[0].Value)
	}
}

func TestDecodeMissingRequiredFieldOnAbsentTransactionId(t *testing.T) {
	openBody := tlList(tlAbsent(), tlAbsent(), tlOctet([]byte("f1")), tlOctet([]byte("s1")), tlAbsent(), tlAbsent())

	message := tlList(
		tlAbsent(), // TransactionId has no `optional` tag: this must fail.
		tlUint(1, 0),
		tlUint(1, 0),
		tlList(tlUint(2, 0x101), openBody),
		tlUint(2, 0),
		tlEndOfMessage(),
	)

	_, err := Decode(append(message, buildMessage("tx1", 0x201, tlList(tlAbsent()))...))

	var missing MissingRequiredField
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingRequiredField, got %v", err)
	}

	if missing.Field != "TransactionId" {
		t.Fatalf("expected field name TransactionId, got %q", missing.Field)
	}
}

func TestDecodeMissingRequiredFieldOnAbsentServerId(t *testing.T) {
	openBody := tlList(tlAbsent(), tlAbsent(), tlOctet([]byte("f1")), tlAbsent(), tlAbsent(), tlAbsent())

	payload := append(
		buildMessage("tx0", 0x101, openBody),
		buildMessage("tx1", 0x201, tlList(tlAbsent()))...,
	)

	_, err := Decode(payload)

	var missing MissingRequiredField
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingRequiredField, got %v", err)
	}

	if missing.Field != "ServerId" {
		t.Fatalf("expected field name ServerId, got %q", missing.Field)
	}
}

// tlUintAsSigned encodes value using the signed TLV type (0x5) at the
// given width, for fields that are implicitly-chosen as signed.
func tlUintAsSigned(width int, value int64) []byte {
	out := make([]byte, width)
	v := value
	for i := width - 1; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}

	return append([]byte{byte(0x50 | (width + 1))}, out...)
}
