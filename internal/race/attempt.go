package race

import (
	"context"
	"net"
	"net/netip"

	"github.com/metacubex/tfo-go"
)

// NewNetDialer returns an AttemptStarter that dials with a plain
// net.Dialer: create a socket for the endpoint's family, optionally bind
// source, and initiate a nonblocking connect via the runtime's netpoller.
func NewNetDialer(base net.Dialer) AttemptStarter {
	return func(ctx context.Context, addr netip.AddrPort, source netip.Addr) (net.Conn, error) {
		d := base
		if source.IsValid() {
			d.LocalAddr = &net.TCPAddr{IP: source.AsSlice()}
		}
		return d.DialContext(ctx, "tcp", netip.AddrPortFrom(addr.Addr(), addr.Port()).String())
	}
}

// NewTFODialer returns an AttemptStarter that uses TCP Fast Open where the
// platform supports it, falling back to a plain connect otherwise. TFO
// shortens the handshake of whichever attempt wins; it has no bearing on
// the stagger algorithm itself.
func NewTFODialer(base net.Dialer) AttemptStarter {
	d := tfo.Dialer{Dialer: base}
	return func(ctx context.Context, addr netip.AddrPort, source netip.Addr) (net.Conn, error) {
		dd := d
		if source.IsValid() {
			dd.Dialer.LocalAddr = &net.TCPAddr{IP: source.AsSlice()}
		}
		return dd.DialContext(ctx, "tcp", netip.AddrPortFrom(addr.Addr(), addr.Port()).String(), nil)
	}
}
