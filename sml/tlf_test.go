package sml

import "testing"

func TestCursorOctetString(t *testing.T) {
	c := newCursor([]byte{0x04, 0xAA, 0xBB, 0xCC})

	tok, err := c.token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	os, ok := tok.(octetStringToken)
	if !ok {
		t.Fatalf("expected octetStringToken, got %#v", tok)
	}

	want := []byte{0xAA, 0xBB, 0xCC}
	if len(os.value) != len(want) {
		t.Fatalf("got %v, want %v", os.value, want)
	}

	for i := range want {
		if os.value[i] != want[i] {
			t.Fatalf("got %v, want %v", os.value, want)
		}
	}
}

func TestCursorBoolean(t *testing.T) {
	c := newCursor([]byte{0x42, 0x01})

	tok, err := c.token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	b, ok := tok.(booleanToken)
	if !ok || !b.value {
		t.Fatalf("expected true booleanToken, got %#v", tok)
	}
}

func TestCursorUnsignedWidening(t *testing.T) {
	// type 0x6 (unsigned), raw length 3 bytes -> widens to 4.
	c := newCursor([]byte{0x64, 0x01, 0x00, 0x00})

	tok, err := c.token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	u, ok := tok.(unsigned32Token)
	if !ok {
		t.Fatalf("expected unsigned32Token, got %#v", tok)
	}

	if u.value != 0x010000 {
		t.Fatalf("got %#x, want %#x", u.value, 0x010000)
	}
}

func TestCursorSignedNegative(t *testing.T) {
	// type 0x5 (signed), 1 raw byte, value -1.
	c := newCursor([]byte{0x52, 0xFF})

	tok, err := c.token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	s, ok := tok.(signed8Token)
	if !ok || s.value != -1 {
		t.Fatalf("expected signed8Token{-1}, got %#v", tok)
	}
}

func TestCursorList(t *testing.T) {
	// list of 2 octet strings.
	c := newCursor([]byte{
		0x72,
		0x02, 0x01,
		0x02, 0x02,
	})

	tok, err := c.token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	l, ok := tok.(listToken)
	if !ok || len(l.value) != 2 {
		t.Fatalf("expected 2-element list, got %#v", tok)
	}
}

func TestCursorEndOfMessage(t *testing.T) {
	c := newCursor([]byte{0x00})

	tok, err := c.token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	if _, ok := tok.(endOfMessageToken); !ok {
		t.Fatalf("expected endOfMessageToken, got %#v", tok)
	}
}

func TestCursorUnexpectedEof(t *testing.T) {
	c := newCursor([]byte{0x05})

	if _, err := c.token(); err == nil {
		t.Fatalf("expected error for truncated octet string")
	}
}

func TestWidenLength(t *testing.T) {
	cases := []struct {
		n     int
		width int
		ok    bool
	}{
		{0, 1, true},
		{1, 1, true},
		{2, 2, true},
		{3, 4, true},
		{4, 4, true},
		{5, 8, true},
		{8, 8, true},
		{9, 0, false},
	}

	for _, c := range cases {
		w, ok := widenLength(c.n)
		if ok != c.ok || (ok && w != c.width) {
			t.Fatalf("widenLength(%d) = (%d, %v), want (%d, %v)", c.n, w, ok, c.width, c.ok)
		}
	}
}
