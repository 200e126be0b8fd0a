//go:build linux

package sctp

import (
	"context"
	"errors"
	"net"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/opd-ai/sctplink/limits"
)

// Open establishes a session described by an sctp:// URI. In the listen
// role it blocks until a peer associates; use OpenContext to bound that.
func Open(uri string, flags Flags) (*Session, error) {
	return OpenContext(context.Background(), uri, flags)
}

// OpenContext is Open with cancellation. The context bounds name
// resolution, connect and accept; it has no effect once the session is
// returned.
func OpenContext(ctx context.Context, uri string, flags Flags) (*Session, error) {
	ep, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	logger := logrus.WithFields(logrus.Fields{
		"component":   "Establisher",
		"endpoint":    ep.HostPort(),
		"listen":      ep.Listen,
		"max_streams": ep.MaxStreams,
	})

	addrs, err := resolve(ctx, ep.Host)
	if err != nil {
		logger.WithError(err).Error("Failed to resolve hostname")
		return nil, newError("resolve", ep.HostPort(), ErrIO, err)
	}

	var fd int
	if ep.Listen {
		fd, err = acceptOne(ctx, ep, addrs[0], logger)
	} else {
		fd, err = connectAny(ctx, ep, addrs, logger)
	}
	if err != nil {
		return nil, err
	}

	s := newSession(fd, *ep, flags)
	s.subscribe()

	logger.WithFields(logrus.Fields{
		"fd":          fd,
		"local_addr":  addrString(s.localAddr),
		"remote_addr": addrString(s.remoteAddr),
		"nonblocking": s.nonBlocking,
	}).Info("SCTP session established")

	return s, nil
}

// resolve returns every candidate address for host. An empty host is the
// IPv4 wildcard.
func resolve(ctx context.Context, host string) ([]net.IPAddr, error) {
	if host == "" {
		return []net.IPAddr{{IP: net.IPv4zero}}, nil
	}
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, &net.DNSError{Err: "no addresses", Name: host, IsNotFound: true}
	}
	return addrs, nil
}

// newSocket creates a non-blocking one-to-one SCTP socket and applies the
// options that must precede association setup. Option failures are logged
// and ignored so platform differences degrade to kernel defaults.
func newSocket(family int, ep *Endpoint, logger *logrus.Entry) (int, error) {
	fd, err := unix.Socket(family, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, unix.IPPROTO_SCTP)
	if err != nil {
		return -1, newError("socket", ep.HostPort(), ErrIO, err)
	}

	if ep.Reuse {
		if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
			logger.WithError(err).Warn("Failed to set SO_REUSEADDR")
		}
	}
	if ep.MaxStreams > 0 {
		if err := setInitMsg(fd, ep.MaxStreams); err != nil {
			logger.WithError(err).Warn("Failed to configure stream count, using kernel default")
		}
	}
	return fd, nil
}

// acceptOne binds, listens and accepts a single association. The listening
// descriptor is always closed before returning.
func acceptOne(ctx context.Context, ep *Endpoint, addr net.IPAddr, logger *logrus.Entry) (int, error) {
	family, sa := sockaddr(addr, ep.Port)
	lfd, err := newSocket(family, ep, logger)
	if err != nil {
		return -1, err
	}
	defer func() {
		if err := unix.Close(lfd); err != nil {
			logger.WithError(err).Warn("Failed to close listening socket")
		}
	}()

	if err := unix.Bind(lfd, sa); err != nil {
		return -1, newError("bind", ep.HostPort(), ErrIO, err)
	}
	if err := unix.Listen(lfd, limits.ListenBacklog); err != nil {
		return -1, newError("listen", ep.HostPort(), ErrIO, err)
	}
	logger.WithField("local_addr", addrString(localAddrOf(lfd))).Info("Waiting for SCTP association")

	for {
		fd, _, err := unix.Accept4(lfd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
		if err == nil {
			return fd, nil
		}
		if !errors.Is(err, unix.EAGAIN) && !errors.Is(err, unix.EINTR) && !errors.Is(err, unix.ECONNABORTED) {
			return -1, newError("accept", ep.HostPort(), ErrIO, err)
		}
		if err := awaitContext(ctx, lfd, false); err != nil {
			return -1, newError("accept", ep.HostPort(), ErrIO, err)
		}
	}
}

// connectAny tries each candidate address in order and returns the first
// established association.
func connectAny(ctx context.Context, ep *Endpoint, addrs []net.IPAddr, logger *logrus.Entry) (int, error) {
	var lastErr error
	for _, addr := range addrs {
		fd, err := connectOne(ctx, ep, addr, logger)
		if err == nil {
			return fd, nil
		}
		lastErr = err
		logger.WithError(err).WithField("addr", addr.String()).Debug("Connect attempt failed")
		if ctx.Err() != nil {
			break
		}
	}
	return -1, lastErr
}

func connectOne(ctx context.Context, ep *Endpoint, addr net.IPAddr, logger *logrus.Entry) (int, error) {
	family, sa := sockaddr(addr, ep.Port)
	fd, err := newSocket(family, ep, logger)
	if err != nil {
		return -1, err
	}

	err = unix.Connect(fd, sa)
	if errors.Is(err, unix.EINPROGRESS) || errors.Is(err, unix.EINTR) {
		err = awaitConnect(ctx, fd)
	}
	if err != nil {
		unix.Close(fd)
		return -1, newError("connect", ep.HostPort(), ErrIO, err)
	}
	return fd, nil
}

// awaitConnect waits for a non-blocking connect to finish and reports its
// outcome from SO_ERROR.
func awaitConnect(ctx context.Context, fd int) error {
	if err := awaitContext(ctx, fd, true); err != nil {
		return err
	}
	soerr, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return err
	}
	if soerr != 0 {
		return unix.Errno(soerr)
	}
	return nil
}

// awaitContext repeats readiness waits until fd is ready, a wait fails
// for a reason other than timeout, or ctx is done.
func awaitContext(ctx context.Context, fd int, forWrite bool) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := Wait(fd, forWrite)
		if err == nil {
			return nil
		}
		if !IsTryAgain(err) {
			return err
		}
	}
}

func addrString(a net.Addr) string {
	if a == nil {
		return ""
	}
	return a.String()
}
