//go:build windows

package sockctl

import "syscall"

// ReuseAddr and ReusePort are no-ops on Windows: SO_REUSEPORT has no
// direct equivalent and SO_REUSEADDR on Windows allows silent address
// hijacking, which this library does not want to opt into implicitly.
func ReuseAddr() Func {
	return func(network, address string, conn syscall.RawConn) error { return nil }
}

func ReusePort() Func {
	return func(network, address string, conn syscall.RawConn) error { return nil }
}
