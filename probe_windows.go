//go:build windows

package eyeball

import "golang.org/x/sys/windows"

// probeIPv6 is the Windows counterpart of probeIPv6 in probe_unix.go: same
// create-bind-close check against golang.org/x/sys/windows instead of
// golang.org/x/sys/unix.
func probeIPv6() bool {
	fd, err := windows.Socket(windows.AF_INET6, windows.SOCK_STREAM, 0)
	if err != nil {
		return false
	}
	defer windows.Closesocket(fd)

	loopback := &windows.SockaddrInet6{Port: 0}
	loopback.Addr[15] = 1 // ::1
	return windows.Bind(fd, loopback) == nil
}
