//go:build linux

package main

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func freeSCTPPort(t *testing.T) int {
	t.Helper()
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, unix.IPPROTO_SCTP)
	if err != nil {
		t.Skipf("kernel SCTP unavailable: %v", err)
	}
	defer unix.Close(fd)

	require.NoError(t, unix.Bind(fd, &unix.SockaddrInet4{Addr: [4]byte{127, 0, 0, 1}}))
	sa, err := unix.Getsockname(fd)
	require.NoError(t, err)
	return sa.(*unix.SockaddrInet4).Port
}

func TestSendRecvLoopback(t *testing.T) {
	port := freeSCTPPort(t)

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := execute(t, "recv", "--count", "1",
			fmt.Sprintf("sctp://127.0.0.1:%d?listen&reuse&max_streams=4", port))
		done <- result{out, err}
	}()

	client := fmt.Sprintf("sctp://127.0.0.1:%d?max_streams=4", port)
	deadline := time.Now().Add(5 * time.Second)
	for {
		_, err := execute(t, "send", "--stream", "2", client, "hi")
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("send: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.Equal(t, "stream=2 hi\n", res.out)
	case <-time.After(5 * time.Second):
		t.Fatal("recv did not finish")
	}
}
