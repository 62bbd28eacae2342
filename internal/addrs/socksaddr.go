// Package addrs provides the resolved-address value type behind the root
// package's Endpoint: just enough to turn a (netip.Addr, port)
// pair into the net.Addr flavors dial and listen expect, with no fqdn
// deferral or SOCKS dialing helpers.
package addrs

import (
	"net"
	"net/netip"
	"strconv"
)

// Socksaddr is an address+port pair that knows how to turn itself into the
// net.Addr flavors the standard library's dial and listen paths expect.
type Socksaddr struct {
	Addr netip.Addr
	Port uint16
}

func FromAddrPort(ap netip.AddrPort) Socksaddr {
	return Socksaddr{Addr: ap.Addr(), Port: ap.Port()}
}

func (a Socksaddr) IsValid() bool {
	return a.Addr.IsValid()
}

// Unwrap strips a 4-in-6 mapped address down to its plain IPv4 form, the
// way the kernel hands it back from an AF_INET6 socket bound to "::".
func (a Socksaddr) Unwrap() Socksaddr {
	if a.Addr.Is4In6() {
		return Socksaddr{Addr: netip.AddrFrom4(a.Addr.As4()), Port: a.Port}
	}
	return a
}

func (a Socksaddr) String() string {
	if !a.Addr.IsValid() {
		return net.JoinHostPort("", strconv.FormatUint(uint64(a.Port), 10))
	}
	return netip.AddrPortFrom(a.Addr, a.Port).String()
}

func (a Socksaddr) Network() string { return "ip" }

func (a Socksaddr) AddrPort() netip.AddrPort {
	return netip.AddrPortFrom(a.Addr, a.Port)
}

func (a Socksaddr) TCPAddr() *net.TCPAddr {
	return &net.TCPAddr{IP: a.Addr.AsSlice(), Port: int(a.Port), Zone: a.Addr.Zone()}
}

// Is4 reports whether addr holds an IPv4 address, including 4-in-6 mapped
// addresses as returned by dual-stack sockets.
func Is4(addr netip.Addr) bool {
	return addr.Is4() || addr.Is4In6()
}

// Is6 reports whether addr holds a genuine (non-mapped) IPv6 address.
func Is6(addr netip.Addr) bool {
	return addr.Is6() && !addr.Is4In6()
}

func AddrFromIP(ip net.IP) netip.Addr {
	addr, _ := netip.AddrFromSlice(ip)
	return addr.Unmap()
}
