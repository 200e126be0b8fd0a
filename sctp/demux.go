package sctp

import (
	"fmt"
	"sort"

	"github.com/eapache/queue"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/sctplink/limits"
)

// Demux separates the messages of a multi-stream connection by stream.
// Messages read while waiting for one stream are queued for the others in
// arrival order.
//
// A Demux is not safe for concurrent use.
type Demux struct {
	conn    MsgConn
	buf     []byte
	pending map[uint16]*queue.Queue
	logger  *logrus.Entry
}

// NewDemux wraps conn, which must have multi-stream framing enabled.
// bufSize bounds a single received message fragment; values <= 0 select
// limits.DefaultMessageBuffer.
func NewDemux(conn MsgConn, bufSize int) (*Demux, error) {
	if conn.MaxStreams() <= 0 {
		return nil, newError("demux", "", ErrInvalidArgument,
			fmt.Errorf("connection has no streams configured"))
	}
	if bufSize <= 0 {
		bufSize = limits.DefaultMessageBuffer
	}
	if err := limits.ValidateBufferSize(bufSize); err != nil {
		return nil, newError("demux", "", ErrInvalidArgument, err)
	}
	return &Demux{
		conn:    conn,
		buf:     make([]byte, bufSize),
		pending: make(map[uint16]*queue.Queue),
		logger: logrus.WithFields(logrus.Fields{
			"component":   "Demux",
			"max_streams": conn.MaxStreams(),
		}),
	}, nil
}

// Recv returns the next message on stream. Errors from the underlying
// connection, including ErrTryAgain, are returned as is; messages already
// queued survive them.
func (d *Demux) Recv(stream uint16) ([]byte, error) {
	if err := limits.ValidateStreamID(stream, d.conn.MaxStreams()); err != nil {
		return nil, newError("recv", "", ErrInvalidArgument, err)
	}
	if msg, ok := d.dequeue(stream); ok {
		return msg, nil
	}
	for {
		sid, msg, err := d.readOne()
		if err != nil {
			return nil, err
		}
		if sid == stream {
			return msg, nil
		}
		if err := d.enqueue(sid, msg); err != nil {
			return nil, err
		}
	}
}

// RecvAny returns a queued message from the lowest stream that has one,
// otherwise the next message read from the connection.
func (d *Demux) RecvAny() (uint16, []byte, error) {
	streams := make([]int, 0, len(d.pending))
	for sid, q := range d.pending {
		if q.Length() > 0 {
			streams = append(streams, int(sid))
		}
	}
	if len(streams) > 0 {
		sort.Ints(streams)
		sid := uint16(streams[0])
		msg, _ := d.dequeue(sid)
		return sid, msg, nil
	}
	return d.readOne()
}

// Send writes payload as one message on stream.
func (d *Demux) Send(stream uint16, payload []byte) error {
	if err := limits.ValidateStreamID(stream, d.conn.MaxStreams()); err != nil {
		return newError("send", "", ErrInvalidArgument, err)
	}
	_, err := d.conn.WriteMsg(payload, stream)
	return err
}

// Pending returns the number of queued messages for stream.
func (d *Demux) Pending(stream uint16) int {
	if q, ok := d.pending[stream]; ok {
		return q.Length()
	}
	return 0
}

func (d *Demux) readOne() (uint16, []byte, error) {
	n, sid, err := d.conn.ReadMsg(d.buf)
	if err != nil {
		return 0, nil, err
	}
	msg := make([]byte, n)
	copy(msg, d.buf[:n])
	return sid, msg, nil
}

func (d *Demux) enqueue(stream uint16, msg []byte) error {
	q, ok := d.pending[stream]
	if !ok {
		q = queue.New()
		d.pending[stream] = q
	}
	if q.Length() >= limits.MaxPendingMessages {
		d.logger.WithFields(logrus.Fields{
			"stream":  stream,
			"pending": q.Length(),
		}).Warn("Dropping message, stream queue full")
		return newError("recv", "", ErrResourceExhausted,
			fmt.Errorf("stream %d has %d pending messages", stream, q.Length()))
	}
	q.Add(msg)
	d.logger.WithFields(logrus.Fields{
		"stream":  stream,
		"bytes":   len(msg),
		"pending": q.Length(),
	}).Debug("Queued message for another stream")
	return nil
}

func (d *Demux) dequeue(stream uint16) ([]byte, bool) {
	q, ok := d.pending[stream]
	if !ok || q.Length() == 0 {
		return nil, false
	}
	return q.Remove().([]byte), true
}
