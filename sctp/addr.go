package sctp

import (
	"net"
	"strconv"
)

// Addr implements net.Addr for SCTP endpoints.
type Addr struct {
	IP   net.IP
	Port int
	Zone string // IPv6 scoped addressing zone
}

// Network returns the network name for SCTP addresses.
// This implements net.Addr.Network().
func (a *Addr) Network() string {
	return "sctp"
}

// String returns the host:port form of the address.
// This implements net.Addr.String().
func (a *Addr) String() string {
	if a == nil {
		return "<nil>"
	}
	ip := ""
	if len(a.IP) > 0 {
		ip = a.IP.String()
	}
	if a.Zone != "" {
		ip += "%" + a.Zone
	}
	return net.JoinHostPort(ip, strconv.Itoa(a.Port))
}
