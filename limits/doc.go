// Package limits provides centralized size constants and validation functions
// for SCTP sessions. Every component that accepts a port, a stream count, a
// stream identifier or a buffer from a caller validates it here, so the
// URI parser, the framed I/O engine and the command-line tool agree on the
// same bounds.
//
// # Framing
//
// In multi-stream mode every buffer handed to Write, and every buffer filled
// by Read, starts with a StreamIDSize (2 byte) big-endian stream identifier.
// ValidateFramedBuffer rejects buffers that cannot hold the prefix plus at
// least one payload byte, since SCTP refuses empty user messages.
//
//	if err := limits.ValidateFramedBuffer(buf); err != nil {
//	    // errors.Is(err, limits.ErrFrameTooShort)
//	}
//
// # Ranges
//
//   - ValidatePort: 1..65535, the ports an sctp:// URI may name.
//   - ValidateMaxStreams: 0..65535; 0 means a single implicit stream.
//   - ValidateStreamID: the stream must be below the configured stream count.
//   - ValidateBufferSize: a receive buffer must fit a framed message and stay
//     below MaxMessageBuffer (1MB).
//
// # Error Types
//
// Errors wrap ErrOutOfRange, ErrFrameTooShort, ErrMessageEmpty or
// ErrMessageTooLarge with the offending value, so callers test them with
// errors.Is.
package limits
