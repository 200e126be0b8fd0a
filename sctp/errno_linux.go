//go:build linux

package sctp

import (
	"errors"

	"golang.org/x/sys/unix"
)

// classify maps a system error onto the package's error kinds.
func classify(err error) error {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return ErrIO
	}
	switch errno {
	case unix.EAGAIN, unix.EINTR:
		return ErrTryAgain
	case unix.ENOMEM, unix.ENOBUFS, unix.EMFILE, unix.ENFILE:
		return ErrResourceExhausted
	case unix.EINVAL:
		return ErrInvalidArgument
	}
	return ErrIO
}
