package sctp

import "errors"

// mockMsg is one scripted result for mockMsgConn.ReadMsg.
type mockMsg struct {
	stream  uint16
	payload []byte
	err     error
}

// mockMsgConn replays scripted messages and records writes.
type mockMsgConn struct {
	streams int
	reads   []mockMsg
	writes  []mockMsg
}

func (m *mockMsgConn) ReadMsg(p []byte) (int, uint16, error) {
	if len(m.reads) == 0 {
		return 0, 0, newError("read", "", ErrTryAgain, nil)
	}
	next := m.reads[0]
	m.reads = m.reads[1:]
	if next.err != nil {
		return 0, 0, next.err
	}
	n := copy(p, next.payload)
	return n, next.stream, nil
}

func (m *mockMsgConn) WriteMsg(p []byte, stream uint16) (int, error) {
	if len(p) == 0 {
		return 0, errors.New("empty write")
	}
	buf := make([]byte, len(p))
	copy(buf, p)
	m.writes = append(m.writes, mockMsg{stream: stream, payload: buf})
	return len(p), nil
}

func (m *mockMsgConn) MaxStreams() int {
	return m.streams
}
