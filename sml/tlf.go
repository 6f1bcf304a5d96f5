package sml

import "errors"

var (
	errTooManyTLBytes       = errors.New("only SML type-length-fields with up to two bytes are supported")
	errUnknownTLMode        = errors.New("unknown mode for second SML tlv byte")
	errUnknownSMLType       = errors.New("unknown SML type")
	errZeroLengthOctetString = errors.New("invalid zero data length for octet string")
	errInvalidBooleanLength = errors.New("invalid data length for SML boolean")
	errUnknownNumericType   = errors.New("unsupported numeric SML type")
)

// cursor walks a fully-assembled payload (already unescaped and
// CRC-verified by the transport layer) one TLV primitive at a time.
// It never allocates beyond the slices it hands back as token
// payloads, which are views into the caller-owned payload (spec.md
// §4.C: "operates over a byte cursor over the payload", no copying
// unless the caller asks for it).
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) take(n int) ([]byte, error) {
	if c.pos+n > len(c.data) {
		return nil, UnexpectedEof{Context: "TLV primitive"}
	}

	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

type typeLengthField struct {
	dataType   uint8
	dataLength int
}

// typeLength decodes the 1- or 2-byte type-length-field header
// (spec.md §3): a continuation bit in the top bit of the first byte
// signals a second length byte, carrying four more low-order length
// bits; SML only ever uses at most two TL bytes.
func (c *cursor) typeLength() (typeLengthField, error) {
	first, err := c.take(1)
	if err != nil {
		return typeLengthField{}, err
	}

	dataType := first[0] & 0x70 >> 4
	dataLength := int(first[0] & 0x0F)
	more := first[0]&0x80 != 0

	if more {
		second, err := c.take(1)
		if err != nil {
			return typeLengthField{}, err
		}

		if second[0]&0x80 != 0 {
			return typeLengthField{}, InvalidMessage{Err: errTooManyTLBytes}
		}

		if mode := second[0] & 0x70 >> 4; mode != 0 {
			return typeLengthField{}, InvalidMessage{Err: errUnknownTLMode}
		}

		dataLength = dataLength<<4 | int(second[0]&0x0F)
	}

	return typeLengthField{dataType: dataType, dataLength: dataLength}, nil
}

// token decodes one complete TLV primitive, recursing into readList
// for nested lists.
func (c *cursor) token() (token, error) {
	tlf, err := c.typeLength()
	if err != nil {
		return nil, err
	}

	if tlf.dataType == 0 && tlf.dataLength == 0 {
		return endOfMessageToken{}, nil
	}

	switch tlf.dataType {
	case 0x0:
		return c.octetString(tlf)
	case 0x4:
		return c.boolean(tlf)
	case 0x5, 0x6:
		return c.number(tlf)
	case 0x7:
		return c.list(tlf)
	default:
		return nil, InvalidMessage{Err: errUnknownSMLType}
	}
}

func (c *cursor) octetString(tlf typeLengthField) (token, error) {
	if tlf.dataLength == 0 {
		return nil, InvalidMessage{Err: errZeroLengthOctetString}
	}

	data, err := c.take(tlf.dataLength - 1)
	if err != nil {
		return nil, err
	}

	return octetStringToken{value: data}, nil
}

func (c *cursor) boolean(tlf typeLengthField) (token, error) {
	if tlf.dataLength != 2 {
		return nil, InvalidMessage{Err: errInvalidBooleanLength}
	}

	data, err := c.take(1)
	if err != nil {
		return nil, err
	}

	return booleanToken{value: data[0] != 0x00}, nil
}

func (c *cursor) number(tlf typeLengthField) (token, error) {
	rawLen := tlf.dataLength - 1

	data, err := c.take(rawLen)
	if err != nil {
		return nil, err
	}

	width, ok := widenLength(rawLen)
	if !ok {
		return nil, IntegerTooWide{RawLength: rawLen}
	}

	switch tlf.dataType {
	case 0x5:
		switch width {
		case 1:
			return signed8Token{value: decodeSigned[int8](data, width)}, nil
		case 2:
			return signed16Token{value: decodeSigned[int16](data, width)}, nil
		case 4:
			return signed32Token{value: decodeSigned[int32](data, width)}, nil
		case 8:
			return signed64Token{value: decodeSigned[int64](data, width)}, nil
		}
	case 0x6:
		switch width {
		case 1:
			return unsigned8Token{value: decodeUnsigned[uint8](data, width)}, nil
		case 2:
			return unsigned16Token{value: decodeUnsigned[uint16](data, width)}, nil
		case 4:
			return unsigned32Token{value: decodeUnsigned[uint32](data, width)}, nil
		case 8:
			return unsigned64Token{value: decodeUnsigned[uint64](data, width)}, nil
		}
	}

	return nil, InvalidMessage{Err: errUnknownNumericType}
}

func (c *cursor) list(tlf typeLengthField) (token, error) {
	elements := make([]token, tlf.dataLength)

	for i := range elements {
		tok, err := c.token()
		if err != nil {
			return nil, err
		}

		elements[i] = tok
	}

	return listToken{value: elements}, nil
}
