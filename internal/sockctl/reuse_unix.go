//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package sockctl

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// ReuseAddr installs SO_REUSEADDR.
func ReuseAddr() Func {
	return func(network, address string, conn syscall.RawConn) error {
		return Raw(conn, func(fd uintptr) error {
			return unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
		})
	}
}

// ReusePort installs SO_REUSEPORT.
func ReusePort() Func {
	return func(network, address string, conn syscall.RawConn) error {
		return Raw(conn, func(fd uintptr) error {
			return unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
		})
	}
}
