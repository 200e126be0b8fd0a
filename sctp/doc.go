// Package sctp provides a message-oriented session over kernel SCTP behind a
// plain io.ReadWriteCloser.
//
// A session is described by a URI:
//
//	sctp://host:port[?listen][&max_streams=n][&reuse=1][&events]
//
// With listen the session binds, listens and accepts exactly one
// association; otherwise it connects. Options may be separated by '&' or
// '?'.
//
// Without max_streams every Read and Write carries raw payload bytes on the
// association's default stream. With max_streams=n the session negotiates n
// inbound and outbound streams and every buffer carries a 2-byte big-endian
// stream-id prefix:
//
//	server, err := sctp.Open("sctp://0.0.0.0:9000?listen&max_streams=4", 0)
//	...
//	client, err := sctp.Open("sctp://127.0.0.1:9000?max_streams=4", 0)
//	...
//	client.Write([]byte{0x00, 0x02, 'h', 'i'}) // "hi" on stream 2
//
//	buf := make([]byte, 1500)
//	n, err := server.Read(buf) // buf[:n] == {0x00, 0x02, 'h', 'i'}
//
// Read and Write never block for longer than ReadinessTimeout (100ms).
// When the descriptor is not ready they return an error matching
// ErrTryAgain and the caller retries. Sessions opened with FlagNonBlock skip
// the wait and report the kernel's would-block directly. Callers that need
// an event loop can poll the descriptor returned by Fd.
//
// Errors match one of ErrInvalidArgument, ErrResourceExhausted, ErrIO or
// ErrTryAgain with errors.Is, and unwrap to the underlying system error.
//
// Demux routes the messages of a multi-stream session to per-stream queues
// for callers that consume streams independently.
//
// Kernel SCTP is required; on other platforms Open returns ErrNotSupported.
package sctp
