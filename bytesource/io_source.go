package bytesource

import (
	"errors"
	"io"
)

// ioSource adapts a blocking io.Reader into a Source. Grounded in the
// teacher's meter.go connection handling (net.Conn read loop with an
// optional deadline) generalised to any io.Reader.
type ioSource struct {
	r   io.Reader
	buf [1]byte
}

// FromReader wraps a blocking io.Reader (a file, a TCP connection, a
// serial port opened in blocking mode) as a byte Source. ReadByte
// blocks until a byte is available, io.EOF is reached, or the reader
// returns an error.
func FromReader(r io.Reader) Source {
	return &ioSource{r: r}
}

func (s *ioSource) ReadByte() Result {
	n, err := io.ReadFull(s.r, s.buf[:])

	if n == 1 {
		return ready(s.buf[0])
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return eof()
	}

	return ioError(err)
}
