package bytesource

import (
	"bytes"
	"errors"
	"testing"
)

func TestSliceSource(t *testing.T) {
	s := FromSlice([]byte{0x01, 0x02})

	r := s.ReadByte()
	if r.Outcome != Ready || r.Byte != 0x01 {
		t.Fatalf("got %v", r)
	}

	r = s.ReadByte()
	if r.Outcome != Ready || r.Byte != 0x02 {
		t.Fatalf("got %v", r)
	}

	r = s.ReadByte()
	if r.Outcome != Eof {
		t.Fatalf("expected Eof, got %v", r)
	}

	// Eof is sticky.
	r = s.ReadByte()
	if r.Outcome != Eof {
		t.Fatalf("expected sticky Eof, got %v", r)
	}
}

func TestIoSource(t *testing.T) {
	s := FromReader(bytes.NewReader([]byte{0xAA}))

	r := s.ReadByte()
	if r.Outcome != Ready || r.Byte != 0xAA {
		t.Fatalf("got %v", r)
	}

	r = s.ReadByte()
	if r.Outcome != Eof {
		t.Fatalf("expected Eof, got %v", r)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk exploded")
}

func TestIoSourceError(t *testing.T) {
	s := FromReader(failingReader{})

	r := s.ReadByte()
	if r.Outcome != IoError || r.Err == nil {
		t.Fatalf("expected IoError, got %v", r)
	}
}

type scriptedPeripheral struct {
	steps []Result
	i     int
}

func (p *scriptedPeripheral) TryReadByte() (byte, bool, error) {
	if p.i >= len(p.steps) {
		return 0, false, ErrPeripheralClosed{}
	}

	s := p.steps[p.i]
	p.i++

	switch s.Outcome {
	case Ready:
		return s.Byte, true, nil
	case WouldBlock:
		return 0, false, nil
	case IoError:
		return 0, false, s.Err
	default:
		return 0, false, ErrPeripheralClosed{}
	}
}

func TestNonblockingSource(t *testing.T) {
	p := &scriptedPeripheral{steps: []Result{
		wouldBlock(),
		ready(0x07),
		{Outcome: IoError, Err: errors.New("bus fault")},
	}}
	s := FromPeripheral(p)

	if r := s.ReadByte(); r.Outcome != WouldBlock {
		t.Fatalf("expected WouldBlock, got %v", r)
	}

	if r := s.ReadByte(); r.Outcome != Ready || r.Byte != 0x07 {
		t.Fatalf("expected Ready(0x07), got %v", r)
	}

	if r := s.ReadByte(); r.Outcome != IoError {
		t.Fatalf("expected IoError, got %v", r)
	}

	if r := s.ReadByte(); r.Outcome != Eof {
		t.Fatalf("expected Eof after close, got %v", r)
	}
}
