// Package limits provides centralized size and range limits for SCTP sessions.
// This ensures consistent validation across the URI parser, the framed I/O
// engine, the stream demultiplexer and the command-line tool.
package limits

import (
	"errors"
	"fmt"
)

const (
	// StreamIDSize is the length of the big-endian stream identifier that
	// prefixes every buffer in multi-stream mode.
	StreamIDSize = 2

	// MaxStreams is the largest stream count SCTP_INITMSG can carry (uint16).
	MaxStreams = 65535

	// MinPort and MaxPort bound the port of an sctp:// URI.
	MinPort = 1
	MaxPort = 65535

	// ListenBacklog is the number of pending associations a listening
	// socket queues before accept.
	ListenBacklog = 100

	// DefaultMessageBuffer is the receive buffer used when the caller does
	// not choose one. It holds the largest unfragmented SCTP user message
	// on loopback.
	DefaultMessageBuffer = 64 * 1024

	// MaxMessageBuffer is the absolute maximum buffer any component allocates (1MB).
	MaxMessageBuffer = 1024 * 1024

	// MaxPendingMessages bounds each per-stream queue of the demultiplexer.
	MaxPendingMessages = 1024
)

var (
	// ErrMessageEmpty indicates an empty message was provided
	ErrMessageEmpty = errors.New("empty message")

	// ErrMessageTooLarge indicates message exceeds maximum size
	ErrMessageTooLarge = errors.New("message too large")

	// ErrOutOfRange indicates a numeric parameter is outside its valid range
	ErrOutOfRange = errors.New("value out of range")

	// ErrFrameTooShort indicates a framed buffer cannot hold a stream id and payload
	ErrFrameTooShort = errors.New("framed buffer too short")
)

// ValidateMessageSize validates a message against the specified maximum size.
// Returns an error with context including the actual and maximum sizes.
func ValidateMessageSize(message []byte, maxSize int) error {
	if len(message) == 0 {
		return ErrMessageEmpty
	}
	if len(message) > maxSize {
		return fmt.Errorf("%w: size %d exceeds limit %d", ErrMessageTooLarge, len(message), maxSize)
	}
	return nil
}

// ValidatePort checks that port lies in the open interval (0, 65536).
func ValidatePort(port int) error {
	if port < MinPort || port > MaxPort {
		return fmt.Errorf("%w: port %d not in [%d, %d]", ErrOutOfRange, port, MinPort, MaxPort)
	}
	return nil
}

// ValidateMaxStreams checks a requested stream count. Zero disables
// multi-stream framing and is valid.
func ValidateMaxStreams(n int) error {
	if n < 0 || n > MaxStreams {
		return fmt.Errorf("%w: max_streams %d not in [0, %d]", ErrOutOfRange, n, MaxStreams)
	}
	return nil
}

// ValidateStreamID checks that stream is addressable on a session
// configured for maxStreams streams.
func ValidateStreamID(stream uint16, maxStreams int) error {
	if int(stream) >= maxStreams {
		return fmt.Errorf("%w: stream %d not below max_streams %d", ErrOutOfRange, stream, maxStreams)
	}
	return nil
}

// ValidateFramedBuffer checks that buf can carry a stream-id prefix and at
// least one payload byte.
func ValidateFramedBuffer(buf []byte) error {
	if len(buf) <= StreamIDSize {
		return fmt.Errorf("%w: %d bytes, need more than %d", ErrFrameTooShort, len(buf), StreamIDSize)
	}
	return nil
}

// ValidateBufferSize checks a configured receive buffer size. Buffers must
// fit a framed message and stay below MaxMessageBuffer.
func ValidateBufferSize(size int) error {
	if size <= StreamIDSize {
		return fmt.Errorf("%w: buffer size %d must exceed %d", ErrOutOfRange, size, StreamIDSize)
	}
	if size > MaxMessageBuffer {
		return fmt.Errorf("%w: buffer size %d exceeds limit %d", ErrMessageTooLarge, size, MaxMessageBuffer)
	}
	return nil
}
