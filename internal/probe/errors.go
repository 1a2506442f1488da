package probe

import (
	"errors"
	"net"
	"os"
)

var (
	// ErrTimeout means the session deadline passed without a matching reply.
	ErrTimeout = errors.New("timeout waiting for echo reply")

	// ErrEncoding means the echo request could not be built. It indicates
	// a programming error; buffers are sized from TokenSize.
	ErrEncoding = errors.New("internal error encoding echo request")
)

// TransportError is a socket failure that ends a session immediately.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the underlying failure was an I/O deadline,
// as opposed to a hard socket error.
func (e *TransportError) Timeout() bool {
	return isTimeout(e.Err)
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
