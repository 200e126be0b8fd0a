//go:build linux

package sctp

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/opd-ai/sctplink/limits"
)

var errNotification = errors.New("association notification consumed")

func newSession(fd int, ep Endpoint, flags Flags) *Session {
	return &Session{
		fd:          fd,
		maxStreams:  ep.MaxStreams,
		nonBlocking: flags&FlagNonBlock != 0,
		endpoint:    ep,
		localAddr:   localAddrOf(fd),
		remoteAddr:  remoteAddrOf(fd),
		oob:         make([]byte, rcvControlSpace),
		logger: logrus.WithFields(logrus.Fields{
			"component": "Session",
			"fd":        fd,
			"endpoint":  ep.HostPort(),
		}),
	}
}

// subscribe enables per-message receive info and, when requested, the
// association lifecycle notifications. Failures leave kernel defaults.
func (s *Session) subscribe() {
	if err := subscribeEvent(s.fd, eventDataIO, true); err != nil {
		s.logger.WithError(err).Warn("Failed to subscribe to data I/O events")
	}
	if err := enableRcvInfo(s.fd); err != nil {
		s.logger.WithError(err).Warn("Failed to enable receive info")
	}
	if !s.endpoint.Events {
		return
	}
	for _, ev := range lifecycleEvents {
		if err := subscribeEvent(s.fd, ev, true); err != nil {
			s.logger.WithError(err).WithField("event", ev).Warn("Failed to subscribe to notification")
		}
	}
}

// awaitReady rejects closed sessions and, in blocking mode, waits for the
// descriptor.
func (s *Session) awaitReady(op string, forWrite bool) error {
	if s.closed {
		return newError(op, "", ErrIO, ErrClosed)
	}
	if s.nonBlocking {
		return nil
	}
	if err := Wait(s.fd, forWrite); err != nil {
		return wrapError(op, "", err)
	}
	return nil
}

// Read implements io.Reader. In multi-stream mode p receives the stream-id
// prefix followed by the payload and must be longer than two bytes.
func (s *Session) Read(p []byte) (int, error) {
	if s.maxStreams == 0 {
		n, _, err := s.ReadMsg(p)
		return n, err
	}
	if err := limits.ValidateFramedBuffer(p); err != nil {
		return 0, newError("read", "", ErrInvalidArgument, err)
	}
	n, stream, err := s.ReadMsg(p[limits.StreamIDSize:])
	if err != nil {
		return 0, err
	}
	PutStreamID(p, stream)
	return n + limits.StreamIDSize, nil
}

// ReadMsg receives one message, or the next fragment of a message larger
// than p, and reports the stream it arrived on. A notification is consumed
// and reported as ErrTryAgain; an orderly shutdown by the peer is io.EOF.
func (s *Session) ReadMsg(p []byte) (int, uint16, error) {
	if err := s.awaitReady("read", false); err != nil {
		return 0, 0, err
	}
	if len(p) == 0 {
		return 0, 0, nil
	}

	n, oobn, flags, _, err := unix.Recvmsg(s.fd, p, s.oob, 0)
	if err != nil {
		return 0, 0, wrapError("read", "", err)
	}
	if flags&msgNotification != 0 {
		s.logNotification(p[:n])
		return 0, 0, newError("read", "", ErrTryAgain, errNotification)
	}
	if n == 0 {
		return 0, 0, io.EOF
	}

	stream, _, err := parseStreamID(s.oob[:oobn])
	if err != nil {
		s.logger.WithError(err).Debug("Ignoring malformed receive info")
	}

	s.logger.WithFields(logrus.Fields{
		"bytes":  n,
		"stream": stream,
		"eor":    flags&unix.MSG_EOR != 0,
	}).Debug("Received message")
	return n, stream, nil
}

func (s *Session) logNotification(b []byte) {
	fields := logrus.Fields{"bytes": len(b)}
	if len(b) >= 2 {
		fields["type"] = binary.NativeEndian.Uint16(b[:2])
	}
	s.logger.WithFields(fields).Debug("Consumed association notification")
}

// Write implements io.Writer. In multi-stream mode the first two bytes of
// p name the stream and the rest is sent as one message on it. On success
// the full len(p) is reported, prefix included.
func (s *Session) Write(p []byte) (int, error) {
	if s.maxStreams == 0 {
		if err := s.awaitReady("write", true); err != nil {
			return 0, err
		}
		if len(p) == 0 {
			return 0, nil
		}
		return s.send(p, nil)
	}

	stream, payload, err := SplitFrame(p)
	if err != nil {
		return 0, wrapError("write", "", err)
	}
	n, err := s.WriteMsg(payload, stream)
	if err != nil {
		return 0, err
	}
	return n + limits.StreamIDSize, nil
}

// WriteMsg sends p as one message on stream. With max_streams set the
// stream must be below it.
func (s *Session) WriteMsg(p []byte, stream uint16) (int, error) {
	if len(p) == 0 {
		return 0, newError("write", "", ErrInvalidArgument, limits.ErrMessageEmpty)
	}
	if s.maxStreams > 0 {
		if err := limits.ValidateStreamID(stream, s.maxStreams); err != nil {
			return 0, newError("write", "", ErrInvalidArgument, err)
		}
	}
	if err := s.awaitReady("write", true); err != nil {
		return 0, err
	}
	return s.send(p, marshalSndInfo(stream))
}

func (s *Session) send(p, oob []byte) (int, error) {
	n, err := unix.SendmsgN(s.fd, p, oob, nil, unix.MSG_NOSIGNAL)
	if err != nil {
		return 0, wrapError("write", "", err)
	}
	s.logger.WithFields(logrus.Fields{
		"bytes":  n,
		"framed": oob != nil,
	}).Debug("Sent message")
	return n, nil
}

// Close releases the descriptor. Release failures are logged, not
// returned. Calling Close again is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := unix.Close(s.fd); err != nil {
		s.logger.WithError(err).Warn("Failed to release descriptor")
	}
	s.fd = -1
	s.logger.Info("SCTP session closed")
	return nil
}
