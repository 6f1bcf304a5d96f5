package bytesource

// Peripheral is the shape a nonblocking UART/serial peripheral driver
// exposes: a single poll that either produces a byte, reports nothing
// is available yet, or reports the peripheral is permanently done
// (disconnected, closed). It mirrors the embedded_hal-style
// nb::Result<u8, E> contract from the original sml-rs source, adapted
// to a plain Go polling method so no extra dependency is required.
type Peripheral interface {
	// TryReadByte polls the peripheral once without blocking.
	//
	// Returns (b, true, nil) when a byte was available, (0, false,
	// nil) when none was available yet (WouldBlock), or (0, false,
	// err) when the peripheral failed or has been closed.
	TryReadByte() (b byte, ok bool, err error)
}

// ErrPeripheralClosed is returned by a Peripheral to mean "no more
// bytes will ever arrive" as opposed to "none are available right
// now".
type ErrPeripheralClosed struct{}

func (ErrPeripheralClosed) Error() string { return "peripheral closed" }

// nonblockingSource adapts a Peripheral into a Source.
type nonblockingSource struct {
	p Peripheral
}

// FromPeripheral wraps a nonblocking peripheral driver as a Source.
// ReadByte never blocks: it reports WouldBlock whenever the
// peripheral has nothing ready.
func FromPeripheral(p Peripheral) Source {
	return &nonblockingSource{p: p}
}

func (s *nonblockingSource) ReadByte() Result {
	b, ok, err := s.p.TryReadByte()

	if err != nil {
		if _, closed := err.(ErrPeripheralClosed); closed {
			return eof()
		}

		return ioError(err)
	}

	if !ok {
		return wouldBlock()
	}

	return ready(b)
}
