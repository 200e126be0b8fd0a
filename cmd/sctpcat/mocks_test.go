package main

import (
	"io"

	"github.com/opd-ai/sctplink/sctp"
)

type readResult struct {
	data []byte
	err  error
}

// mockConn replays scripted reads and records writes. Once the script is
// exhausted every read reports io.EOF.
type mockConn struct {
	reads      []readResult
	writes     [][]byte
	writeErrs  []error
	maxStreams int
}

func (m *mockConn) Read(p []byte) (int, error) {
	if len(m.reads) == 0 {
		return 0, io.EOF
	}
	r := m.reads[0]
	m.reads = m.reads[1:]
	if r.err != nil {
		return 0, r.err
	}
	return copy(p, r.data), nil
}

func (m *mockConn) Write(p []byte) (int, error) {
	if len(m.writeErrs) > 0 {
		err := m.writeErrs[0]
		m.writeErrs = m.writeErrs[1:]
		if err != nil {
			return 0, err
		}
	}
	m.writes = append(m.writes, append([]byte(nil), p...))
	return len(p), nil
}

func (m *mockConn) Fd() int           { return -1 }
func (m *mockConn) MaxStreams() int   { return m.maxStreams }
func (m *mockConn) NonBlocking() bool { return false }

var errTryAgain = &sctp.Error{Op: "read", Kind: sctp.ErrTryAgain}
