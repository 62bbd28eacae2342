// Package sockctl provides small syscall.RawConn hooks installed on
// net.Dialer.Control/net.ListenConfig.Control for socket options the
// standard library doesn't expose a field for.
package sockctl

import "syscall"

// Func matches the signature net.Dialer.Control and net.ListenConfig.Control
// expect.
type Func func(network, address string, conn syscall.RawConn) error

// Append chains multiple control functions, running each in order and
// stopping at the first error, so several socket options can be stacked
// onto one net.Dialer.Control field.
func Append(existing Func, next Func) Func {
	if existing == nil {
		return next
	}
	return func(network, address string, conn syscall.RawConn) error {
		if err := existing(network, address, conn); err != nil {
			return err
		}
		return next(network, address, conn)
	}
}

// Raw runs fn against the file descriptor underlying conn, surfacing both
// the control-call error and fn's own error the way syscall.RawConn.Control
// requires.
func Raw(conn syscall.RawConn, fn func(fd uintptr) error) error {
	var fnErr error
	if err := conn.Control(func(fd uintptr) {
		fnErr = fn(fd)
	}); err != nil {
		return err
	}
	return fnErr
}
