package sctp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/sctplink/limits"
)

func TestNewDemuxRequiresStreams(t *testing.T) {
	_, err := NewDemux(&mockMsgConn{streams: 0}, 0)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = NewDemux(&mockMsgConn{streams: 4}, limits.MaxMessageBuffer+1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	d, err := NewDemux(&mockMsgConn{streams: 4}, 0)
	require.NoError(t, err)
	assert.Len(t, d.buf, limits.DefaultMessageBuffer)
}

func TestDemuxRecvQueuesOtherStreams(t *testing.T) {
	conn := &mockMsgConn{
		streams: 4,
		reads: []mockMsg{
			{stream: 1, payload: []byte("one-a")},
			{stream: 3, payload: []byte("three")},
			{stream: 1, payload: []byte("one-b")},
			{stream: 2, payload: []byte("two")},
		},
	}
	d, err := NewDemux(conn, 64)
	require.NoError(t, err)

	msg, err := d.Recv(2)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), msg)

	assert.Equal(t, 2, d.Pending(1))
	assert.Equal(t, 1, d.Pending(3))
	assert.Equal(t, 0, d.Pending(0))

	msg, err = d.Recv(1)
	require.NoError(t, err)
	assert.Equal(t, []byte("one-a"), msg)

	msg, err = d.Recv(1)
	require.NoError(t, err)
	assert.Equal(t, []byte("one-b"), msg)

	msg, err = d.Recv(3)
	require.NoError(t, err)
	assert.Equal(t, []byte("three"), msg)
}

func TestDemuxRecvPropagatesTryAgain(t *testing.T) {
	conn := &mockMsgConn{
		streams: 2,
		reads: []mockMsg{
			{stream: 0, payload: []byte("zero")},
		},
	}
	d, err := NewDemux(conn, 64)
	require.NoError(t, err)

	_, err = d.Recv(1)
	assert.True(t, IsTryAgain(err))
	assert.Equal(t, 1, d.Pending(0), "message read before the error stays queued")

	msg, err := d.Recv(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("zero"), msg)
}

func TestDemuxRecvRejectsUnknownStream(t *testing.T) {
	d, err := NewDemux(&mockMsgConn{streams: 2}, 64)
	require.NoError(t, err)

	_, err = d.Recv(2)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestDemuxRecvAny(t *testing.T) {
	conn := &mockMsgConn{
		streams: 4,
		reads: []mockMsg{
			{stream: 3, payload: []byte("three")},
			{stream: 1, payload: []byte("one")},
			{stream: 0, payload: []byte("zero")},
			{stream: 2, payload: []byte("two")},
		},
	}
	d, err := NewDemux(conn, 64)
	require.NoError(t, err)

	msg, err := d.Recv(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("zero"), msg)

	sid, msg, err := d.RecvAny()
	require.NoError(t, err)
	assert.Equal(t, uint16(1), sid)
	assert.Equal(t, []byte("one"), msg)

	sid, msg, err = d.RecvAny()
	require.NoError(t, err)
	assert.Equal(t, uint16(3), sid)
	assert.Equal(t, []byte("three"), msg)

	sid, msg, err = d.RecvAny()
	require.NoError(t, err)
	assert.Equal(t, uint16(2), sid)
	assert.Equal(t, []byte("two"), msg)
}

func TestDemuxQueueBound(t *testing.T) {
	reads := make([]mockMsg, 0, limits.MaxPendingMessages+1)
	for i := 0; i <= limits.MaxPendingMessages; i++ {
		reads = append(reads, mockMsg{stream: 1, payload: []byte{byte(i)}})
	}
	d, err := NewDemux(&mockMsgConn{streams: 2, reads: reads}, 64)
	require.NoError(t, err)

	_, err = d.Recv(0)
	assert.True(t, errors.Is(err, ErrResourceExhausted))
	assert.Equal(t, limits.MaxPendingMessages, d.Pending(1))
}

func TestDemuxSend(t *testing.T) {
	conn := &mockMsgConn{streams: 4}
	d, err := NewDemux(conn, 64)
	require.NoError(t, err)

	require.NoError(t, d.Send(2, []byte("hi")))
	require.Len(t, conn.writes, 1)
	assert.Equal(t, uint16(2), conn.writes[0].stream)
	assert.Equal(t, []byte("hi"), conn.writes[0].payload)

	err = d.Send(4, []byte("out of range"))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Len(t, conn.writes, 1)
}

func TestDemuxCopiesMessages(t *testing.T) {
	conn := &mockMsgConn{
		streams: 2,
		reads: []mockMsg{
			{stream: 1, payload: []byte("first")},
			{stream: 0, payload: []byte("again")},
		},
	}
	d, err := NewDemux(conn, 64)
	require.NoError(t, err)

	_, err = d.Recv(0)
	require.NoError(t, err)

	msg, err := d.Recv(1)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), msg, "queued message must not alias the read buffer")
}
