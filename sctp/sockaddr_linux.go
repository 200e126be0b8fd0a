//go:build linux

package sctp

import (
	"net"
	"strconv"

	"golang.org/x/sys/unix"
)

// sockaddr converts a resolved address into its socket family and raw form.
func sockaddr(ip net.IPAddr, port int) (int, unix.Sockaddr) {
	if ip4 := ip.IP.To4(); ip4 != nil {
		sa := &unix.SockaddrInet4{Port: port}
		copy(sa.Addr[:], ip4)
		return unix.AF_INET, sa
	}
	sa := &unix.SockaddrInet6{Port: port, ZoneId: zoneIndex(ip.Zone)}
	copy(sa.Addr[:], ip.IP.To16())
	return unix.AF_INET6, sa
}

func zoneIndex(zone string) uint32 {
	if zone == "" {
		return 0
	}
	if ifi, err := net.InterfaceByName(zone); err == nil {
		return uint32(ifi.Index)
	}
	if n, err := strconv.Atoi(zone); err == nil {
		return uint32(n)
	}
	return 0
}

func zoneName(index uint32) string {
	if index == 0 {
		return ""
	}
	if ifi, err := net.InterfaceByIndex(int(index)); err == nil {
		return ifi.Name
	}
	return strconv.Itoa(int(index))
}

// toAddr converts a raw socket address into an *Addr. It returns nil for
// families other than IPv4 and IPv6.
func toAddr(sa unix.Sockaddr) net.Addr {
	switch sa := sa.(type) {
	case *unix.SockaddrInet4:
		ip := make(net.IP, net.IPv4len)
		copy(ip, sa.Addr[:])
		return &Addr{IP: ip, Port: sa.Port}
	case *unix.SockaddrInet6:
		ip := make(net.IP, net.IPv6len)
		copy(ip, sa.Addr[:])
		return &Addr{IP: ip, Port: sa.Port, Zone: zoneName(sa.ZoneId)}
	}
	return nil
}

func localAddrOf(fd int) net.Addr {
	sa, err := unix.Getsockname(fd)
	if err != nil {
		return nil
	}
	return toAddr(sa)
}

func remoteAddrOf(fd int) net.Addr {
	sa, err := unix.Getpeername(fd)
	if err != nil {
		return nil
	}
	return toAddr(sa)
}
