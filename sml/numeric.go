package sml

import "golang.org/x/exp/constraints"

// widenLength returns the narrowest of {1,2,4,8} that data's raw byte
// count fits within. Integers are not widened to 64 bits: each decoded
// token keeps this narrowest width. dataLen is the number of raw value
// bytes (TL length minus the TL byte itself already subtracted by the
// caller).
func widenLength(dataLen int) (int, bool) {
	switch {
	case dataLen <= 1:
		return 1, true
	case dataLen <= 2:
		return 2, true
	case dataLen <= 4:
		return 4, true
	case dataLen <= 8:
		return 8, true
	default:
		return 0, false
	}
}

// decodeUnsigned zero-extends data (big-endian, shortest encoding) up
// to width bytes and interprets the result as T.
func decodeUnsigned[T constraints.Unsigned](data []byte, width int) T {
	var buf [8]byte
	copy(buf[width-len(data):width], data)

	var v T
	for _, b := range buf[:width] {
		v = v<<8 | T(b)
	}

	return v
}

// decodeSigned sign-extends data (big-endian, shortest encoding) up to
// width bytes and interprets the result as T.
func decodeSigned[T constraints.Signed](data []byte, width int) T {
	var buf [8]byte

	fill := byte(0)
	if len(data) > 0 && data[0]&0x80 != 0 {
		fill = 0xff
	}

	for i := 0; i < width-len(data); i++ {
		buf[i] = fill
	}

	copy(buf[width-len(data):width], data)

	var v int64
	for _, b := range buf[:width] {
		v = v<<8 | int64(b)
	}

	return T(v)
}
