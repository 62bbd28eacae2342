// Package eyeball implements synchronous Happy Eyeballs (RFC 6555)
// connection establishment. CreateConnection races connect attempts
// across the resolved address list so one slow or broken path, typically
// IPv6, doesn't hold up the connection.
//
// Synchronous only: no async variant. A call returns as soon as one attempt
// wins or the race fails; goroutines of the attempts that lost are canceled
// at that point and wind down on their own, closing any connection they
// still produce. Name resolution, TLS, and anything past a connected
// socket are out of scope.
package eyeball

import (
	"context"
	"net"
	"sync/atomic"
)

// Mode controls whether the Happy Eyeballs race path is used at all.
// Tri-state instead of bool so auto-detect stays distinct from an
// explicit force-on or force-off.
type Mode int32

const (
	// Auto races when, and only when, the IPv6 probe reports support.
	// This is the default.
	Auto Mode = iota
	// Always forces the race path even if the IPv6 probe fails; single
	// family/endpoint lists still fall back to a plain serial connect.
	Always
	// Never disables racing unconditionally; every call takes the plain
	// connect path.
	Never
)

// ModeFlag is a process-wide, intentionally unsynchronized mode switch.
// atomic.Int32 gives torn-free reads under concurrent use, nothing more.
type ModeFlag struct {
	v atomic.Int32
}

func (f *ModeFlag) Load() Mode   { return Mode(f.v.Load()) }
func (f *ModeFlag) Store(m Mode) { f.v.Store(int32(m)) }

// Enabled is the package-wide Happy Eyeballs feature switch, mutable by
// the caller at any time.
var Enabled = &ModeFlag{}

// Cache is the package-wide AddressCache consulted and updated by
// CreateConnection. Assign it nil or NullCache() to disable caching
// entirely; assign your own implementation of AddressCache for
// thread-safe caching.
var Cache AddressCache = NewCache(0)

// CreateConnection is the package-level entry point, backed by
// DefaultDialer. Unlike net.Dial, it takes host and port as separate
// arguments rather than a single "host:port" string.
func CreateConnection(ctx context.Context, host string, port uint16) (net.Conn, error) {
	return DefaultDialer.DialContext(ctx, host, port)
}

// DefaultDialer is the Dialer used by the package-level CreateConnection.
var DefaultDialer = &Dialer{}
