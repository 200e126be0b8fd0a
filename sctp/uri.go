package sctp

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/opd-ai/sctplink/limits"
)

// Scheme is the only URI scheme Open accepts.
const Scheme = "sctp"

// Recognised URI options.
const (
	OptionListen     = "listen"
	OptionMaxStreams = "max_streams"
	OptionReuse      = "reuse"
	OptionEvents     = "events"
)

// Endpoint is a parsed sctp:// URI.
type Endpoint struct {
	Host       string
	Port       int
	Listen     bool // server role: bind, listen and accept one association
	MaxStreams int  // >0 enables 2-byte stream-id framing
	Reuse      bool // SO_REUSEADDR before bind
	Events     bool // subscribe to association lifecycle notifications
}

// ParseURI parses sctp://host:port[?options]. Options are separated by '&'
// or '?' and may be bare keys or key=value pairs; unknown keys are ignored.
func ParseURI(uri string) (*Endpoint, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, newError("parse", uri, ErrInvalidArgument, err)
	}
	if u.Scheme != Scheme {
		return nil, newError("parse", uri, ErrInvalidArgument,
			fmt.Errorf("unsupported scheme %q", u.Scheme))
	}

	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		return nil, newError("parse", uri, ErrInvalidArgument, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, newError("parse", uri, ErrInvalidArgument, fmt.Errorf("invalid port %q", portStr))
	}
	if err := limits.ValidatePort(port); err != nil {
		return nil, newError("parse", uri, ErrInvalidArgument, err)
	}

	ep := &Endpoint{Host: host, Port: port}
	if err := ep.applyOptions(parseOptions(u.RawQuery)); err != nil {
		return nil, newError("parse", uri, ErrInvalidArgument, err)
	}
	return ep, nil
}

// parseOptions splits a raw query on '&' and '?' into key/value pairs.
// A bare key maps to the empty string.
func parseOptions(raw string) map[string]string {
	opts := make(map[string]string)
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '&' || r == '?'
	})
	for _, field := range fields {
		key, value, _ := strings.Cut(field, "=")
		if key == "" {
			continue
		}
		if v, err := url.QueryUnescape(value); err == nil {
			value = v
		}
		opts[key] = value
	}
	return opts
}

func (e *Endpoint) applyOptions(opts map[string]string) error {
	if v, ok := opts[OptionListen]; ok {
		e.Listen = optionEnabled(v)
	}
	if v, ok := opts[OptionReuse]; ok {
		e.Reuse = optionEnabled(v)
	}
	if v, ok := opts[OptionEvents]; ok {
		e.Events = optionEnabled(v)
	}
	if v, ok := opts[OptionMaxStreams]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid max_streams %q", v)
		}
		if err := limits.ValidateMaxStreams(n); err != nil {
			return err
		}
		e.MaxStreams = n
	}
	return nil
}

// optionEnabled treats a bare key, or any value other than an explicit
// negative, as enabled.
func optionEnabled(v string) bool {
	switch strings.ToLower(v) {
	case "0", "false", "no", "off":
		return false
	}
	return true
}

// HostPort returns the endpoint as host:port.
func (e *Endpoint) HostPort() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// Framed reports whether multi-stream framing is active.
func (e *Endpoint) Framed() bool {
	return e.MaxStreams > 0
}

// String returns the canonical URI form of the endpoint.
func (e *Endpoint) String() string {
	var opts []string
	if e.Listen {
		opts = append(opts, OptionListen)
	}
	if e.MaxStreams > 0 {
		opts = append(opts, OptionMaxStreams+"="+strconv.Itoa(e.MaxStreams))
	}
	if e.Reuse {
		opts = append(opts, OptionReuse+"=1")
	}
	if e.Events {
		opts = append(opts, OptionEvents)
	}
	s := Scheme + "://" + e.HostPort()
	if len(opts) > 0 {
		s += "?" + strings.Join(opts, "&")
	}
	return s
}
