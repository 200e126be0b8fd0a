package sctp

import (
	"errors"
	"fmt"
)

// Error kinds returned to callers. Every error produced by this package
// matches exactly one of the first four with errors.Is.
var (
	// ErrInvalidArgument indicates a malformed URI, wrong scheme, out-of-range
	// port or stream, or a buffer too short for framing
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrResourceExhausted indicates the kernel ran out of memory, buffers or descriptors
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrIO indicates a resolution, socket, bind, connect, accept, send or receive failure
	ErrIO = errors.New("i/o error")

	// ErrTryAgain indicates the descriptor was not ready; the caller should retry
	ErrTryAgain = errors.New("resource temporarily unavailable")

	// ErrNotSupported indicates kernel SCTP is not available on this platform
	ErrNotSupported = errors.New("sctp not supported on this platform")

	// ErrClosed indicates the session has already been closed
	ErrClosed = errors.New("session closed")
)

// ErrWouldBlock is the non-blocking name for ErrTryAgain.
var ErrWouldBlock = ErrTryAgain

// Error represents a session error with operation context.
type Error struct {
	Op   string // operation that caused the error
	Addr string // endpoint if relevant
	Kind error  // one of the Err* kinds above
	Err  error  // underlying error, may be nil
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Err != nil {
		msg = fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	if e.Addr != "" {
		return fmt.Sprintf("sctp %s %s: %s", e.Op, e.Addr, msg)
	}
	return fmt.Sprintf("sctp %s: %s", e.Op, msg)
}

// Unwrap exposes both the kind and the underlying error to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Timeout reports whether the error is a readiness timeout.
func (e *Error) Timeout() bool {
	return e.Kind == ErrTryAgain
}

// Temporary reports whether retrying the operation may succeed.
func (e *Error) Temporary() bool {
	return e.Kind == ErrTryAgain
}

// newError creates a new Error
func newError(op, addr string, kind, err error) *Error {
	return &Error{
		Op:   op,
		Addr: addr,
		Kind: kind,
		Err:  err,
	}
}

// wrapError attaches op/addr context to err. Errors that already carry a
// kind keep it; anything else is classified by classify.
func wrapError(op, addr string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		if se.Op == op && se.Addr == addr {
			return se
		}
		return newError(op, addr, se.Kind, se.Err)
	}
	return newError(op, addr, classify(err), err)
}

// IsTryAgain reports whether err asks the caller to retry.
func IsTryAgain(err error) bool {
	return errors.Is(err, ErrTryAgain)
}
