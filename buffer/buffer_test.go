package buffer

import "testing"

func TestOwnedGrowsAndCaps(t *testing.T) {
	b := NewOwned(4)

	for i := 0; i < 4; i++ {
		if err := b.Push(byte(i)); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}

	if err := b.Push(0xFF); err != ErrOutOfMemory {
		t.Fatalf("expected ErrOutOfMemory, got %v", err)
	}

	if got := b.Bytes(); string(got) != string([]byte{0, 1, 2, 3}) {
		t.Fatalf("unexpected contents: %v", got)
	}

	b.Truncate(2)
	if b.Len() != 2 {
		t.Fatalf("expected len 2, got %d", b.Len())
	}

	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("expected empty after reset, got %d", b.Len())
	}

	if err := b.Push(9); err != nil {
		t.Fatalf("push after reset: %v", err)
	}
}

func TestOwnedUnbounded(t *testing.T) {
	b := NewOwned(0)

	if b.Cap() != -1 {
		t.Fatalf("expected unbounded cap, got %d", b.Cap())
	}

	for i := 0; i < 1000; i++ {
		if err := b.Push(byte(i)); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
}

func TestBorrowedFixedCapacity(t *testing.T) {
	storage := make([]byte, 3)
	b := NewBorrowed(storage)

	for i := 0; i < 3; i++ {
		if err := b.Push(byte(10 + i)); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}

	if err := b.Push(99); err != ErrOutOfMemory {
		t.Fatalf("expected ErrOutOfMemory, got %v", err)
	}

	if b.Cap() != 3 {
		t.Fatalf("expected cap 3, got %d", b.Cap())
	}

	b.Reset()
	if err := b.Push(1); err != nil {
		t.Fatalf("push after reset: %v", err)
	}
}

func TestTruncateIsNoopWhenLonger(t *testing.T) {
	b := NewOwned(0)
	_ = b.Push(1)
	_ = b.Push(2)

	b.Truncate(10)
	if b.Len() != 2 {
		t.Fatalf("expected len unchanged at 2, got %d", b.Len())
	}
}
