//go:build !linux

package sockctl

import "syscall"

// BindToInterface is a no-op outside Linux. SO_BINDTODEVICE has no
// portable equivalent.
func BindToInterface(name string) Func {
	return func(network, address string, conn syscall.RawConn) error { return nil }
}
