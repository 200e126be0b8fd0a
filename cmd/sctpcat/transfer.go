package main

import (
	"context"
	"fmt"
	"io"

	"github.com/opd-ai/sctplink/sctp"
)

// conn is the part of a session the transfer loops need.
type conn interface {
	io.ReadWriter
	Fd() int
	MaxStreams() int
	NonBlocking() bool
}

// retry calls fn until it returns something other than ErrTryAgain or ctx
// is done.
func retry(ctx context.Context, fn func() error) error {
	for {
		err := fn()
		if !sctp.IsTryAgain(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
}

// pace waits for readiness on non-blocking sessions so that retry loops
// do not spin. Blocking sessions already wait inside Read and Write.
func pace(c conn, forWrite bool) {
	if c.NonBlocking() {
		_ = sctp.Wait(c.Fd(), forWrite)
	}
}

// readMessage reads the next message into buf, retrying while the session
// reports ErrTryAgain.
func readMessage(ctx context.Context, c conn, buf []byte) (int, error) {
	var n int
	err := retry(ctx, func() error {
		pace(c, false)
		var err error
		n, err = c.Read(buf)
		return err
	})
	return n, err
}

// writeMessage sends payload on stream, adding the stream-id prefix when
// the session is framed.
func writeMessage(ctx context.Context, c conn, stream uint16, payload []byte) error {
	buf := payload
	if c.MaxStreams() > 0 {
		buf = sctp.AppendFrame(nil, stream, payload)
	} else if stream != 0 {
		return fmt.Errorf("stream %d requested on a session without max_streams", stream)
	}

	return retry(ctx, func() error {
		pace(c, true)
		_, err := c.Write(buf)
		return err
	})
}

// printMessage writes msg to w: raw for plain sessions, one
// "stream=<id> <payload>" line for framed ones.
func printMessage(w io.Writer, framed bool, msg []byte) error {
	if !framed {
		_, err := w.Write(msg)
		return err
	}
	stream, payload, err := sctp.SplitFrame(msg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "stream=%d %s\n", stream, payload)
	return err
}
