//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package eyeball

import "golang.org/x/sys/unix"

// probeIPv6 creates (never connects) an IPv6 stream socket and binds it to
// the loopback address to confirm the stack will actually hand out a
// usable IPv6 source address, not just accept the socket() call.
func probeIPv6() bool {
	fd, err := unix.Socket(unix.AF_INET6, unix.SOCK_STREAM, 0)
	if err != nil {
		return false
	}
	defer unix.Close(fd)

	loopback := &unix.SockaddrInet6{Port: 0}
	loopback.Addr[15] = 1 // ::1
	return unix.Bind(fd, loopback) == nil
}
