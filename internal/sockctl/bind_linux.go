//go:build linux

package sockctl

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// BindToInterface installs a control hook that binds the socket to the
// named network interface before connect.
func BindToInterface(name string) Func {
	return func(network, address string, conn syscall.RawConn) error {
		if name == "" {
			return os.ErrInvalid
		}
		return Raw(conn, func(fd uintptr) error {
			return unix.BindToDevice(int(fd), name)
		})
	}
}
