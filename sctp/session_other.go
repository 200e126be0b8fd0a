//go:build !linux

package sctp

import (
	"context"
	"time"
)

// Open always fails: kernel SCTP support is Linux-only.
func Open(uri string, flags Flags) (*Session, error) {
	return OpenContext(context.Background(), uri, flags)
}

// OpenContext validates the URI, then fails with ErrNotSupported.
func OpenContext(ctx context.Context, uri string, flags Flags) (*Session, error) {
	ep, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	return nil, newError("open", ep.HostPort(), ErrNotSupported, nil)
}

func Wait(fd int, forWrite bool) error {
	return WaitTimeout(fd, forWrite, ReadinessTimeout)
}

func WaitTimeout(fd int, forWrite bool, d time.Duration) error {
	return newError("poll", "", ErrNotSupported, nil)
}

func (s *Session) Read(p []byte) (int, error) {
	return 0, newError("read", "", ErrNotSupported, nil)
}

func (s *Session) ReadMsg(p []byte) (int, uint16, error) {
	return 0, 0, newError("read", "", ErrNotSupported, nil)
}

func (s *Session) Write(p []byte) (int, error) {
	return 0, newError("write", "", ErrNotSupported, nil)
}

func (s *Session) WriteMsg(p []byte, stream uint16) (int, error) {
	return 0, newError("write", "", ErrNotSupported, nil)
}

func (s *Session) Close() error {
	return nil
}
