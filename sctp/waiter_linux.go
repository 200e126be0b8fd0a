//go:build linux

package sctp

import (
	"time"

	"golang.org/x/sys/unix"
)

// Wait blocks until fd is readable (or writable when forWrite is set) or
// ReadinessTimeout elapses. A timeout yields ErrTryAgain.
func Wait(fd int, forWrite bool) error {
	return WaitTimeout(fd, forWrite, ReadinessTimeout)
}

// WaitTimeout is Wait with an explicit bound. A negative d waits forever.
func WaitTimeout(fd int, forWrite bool, d time.Duration) error {
	events := int16(unix.POLLIN)
	if forWrite {
		events = unix.POLLOUT
	}
	fds := []unix.PollFd{{Fd: int32(fd), Events: events}}

	timeout := -1
	if d >= 0 {
		timeout = int(d / time.Millisecond)
	}

	n, err := unix.Poll(fds, timeout)
	if err != nil {
		return newError("poll", "", classify(err), err)
	}
	if n == 0 {
		return newError("poll", "", ErrTryAgain, nil)
	}
	if fds[0].Revents&unix.POLLNVAL != 0 {
		return newError("poll", "", ErrIO, unix.EBADF)
	}
	// POLLERR and POLLHUP count as ready so the next call reports them.
	if fds[0].Revents&(events|unix.POLLERR|unix.POLLHUP) == 0 {
		return newError("poll", "", ErrTryAgain, nil)
	}
	return nil
}
