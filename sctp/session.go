package sctp

import (
	"net"

	"github.com/sirupsen/logrus"
)

// Flags select per-session I/O behaviour at open time.
type Flags int

const (
	// FlagNonBlock makes Read and Write return ErrTryAgain immediately
	// instead of waiting up to ReadinessTimeout for the descriptor.
	FlagNonBlock Flags = 1 << iota
)

// MsgConn is a message-oriented connection that reports the stream each
// message travels on.
type MsgConn interface {
	ReadMsg(p []byte) (n int, stream uint16, err error)
	WriteMsg(p []byte, stream uint16) (int, error)
	MaxStreams() int
}

// Session is an established SCTP association exposed as a byte-stream
// io.ReadWriteCloser. When the endpoint sets max_streams, every buffer
// passed to Write and returned from Read carries a 2-byte big-endian
// stream-id prefix.
//
// A Session is not safe for concurrent use; callers serialize access.
type Session struct {
	fd          int
	maxStreams  int
	nonBlocking bool
	endpoint    Endpoint

	localAddr  net.Addr
	remoteAddr net.Addr

	closed bool

	// oob is reused for ancillary data on every receive
	oob []byte

	logger *logrus.Entry
}

// Fd returns the raw descriptor for integration with an external event
// loop. Ownership stays with the Session.
func (s *Session) Fd() int {
	return s.fd
}

// MaxStreams returns the configured stream count; 0 means unframed.
func (s *Session) MaxStreams() int {
	return s.maxStreams
}

// NonBlocking reports whether the session was opened with FlagNonBlock.
func (s *Session) NonBlocking() bool {
	return s.nonBlocking
}

// Endpoint returns the parsed URI the session was opened with.
func (s *Session) Endpoint() Endpoint {
	return s.endpoint
}

// LocalAddr returns the local address of the association.
func (s *Session) LocalAddr() net.Addr {
	return s.localAddr
}

// RemoteAddr returns the peer address of the association.
func (s *Session) RemoteAddr() net.Addr {
	return s.remoteAddr
}

var _ MsgConn = (*Session)(nil)
