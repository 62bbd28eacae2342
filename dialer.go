package eyeball

import (
	"context"
	"net"
	"net/netip"
	"strconv"
	"time"

	"github.com/qtraffics/eyeball6555/internal/race"
	"github.com/qtraffics/eyeball6555/internal/sockctl"
	"github.com/qtraffics/eyeball6555/resolver"
	"github.com/qtraffics/qtfra/enhancements/slicelib"

	"github.com/metacubex/tfo-go"
)

// DefaultTimeout is applied when Dialer.Timeout is left at its zero value.
const DefaultTimeout = 5 * time.Second

// NoTimeout tells Dialer to run the race to exhaustion with no overall
// deadline, trying every resolved endpoint until one connects or all fail.
const NoTimeout time.Duration = -1

// Config configures a Dialer.
type Config struct {
	// Timeout is the overall race deadline. Zero applies DefaultTimeout;
	// NoTimeout disables the deadline entirely.
	Timeout time.Duration

	// SourceAddr optionally binds every attempt socket to a specific
	// local address.
	SourceAddr netip.Addr

	// Interface optionally binds every attempt socket to a named network
	// interface.
	Interface string

	// ReuseAddr installs SO_REUSEADDR on attempt sockets.
	ReuseAddr bool

	// ReusePort installs SO_REUSEPORT on attempt sockets.
	ReusePort bool

	// TFO enables TCP Fast Open attempts where the platform supports it.
	TFO bool

	// Resolver produces the candidate endpoint list. Nil uses
	// resolver.System{} (the platform resolver).
	Resolver resolver.Resolver

	// Cache overrides the package-level Cache for this Dialer only. Nil
	// falls back to the package-level Cache variable.
	Cache AddressCache

	// Family restricts connection attempts to a single address family,
	// FamilyIPv4 or FamilyIPv6. Zero races or dials across both, same as
	// leaving it unset.
	Family Family
}

// Dialer is the Happy Eyeballs connection entry point: it resolves a
// destination, decides whether racing is worthwhile, and dispatches to
// either a plain serial connect or the staggered race engine.
type Dialer struct {
	Config
}

// NewDialer builds a Dialer from the given Config.
func NewDialer(cfg Config) *Dialer {
	return &Dialer{Config: cfg}
}

func (d *Dialer) resolver() resolver.Resolver {
	if d.Resolver != nil {
		return d.Resolver
	}
	return resolver.System{}
}

func (d *Dialer) cache() AddressCache {
	c := d.Cache
	if c == nil {
		c = Cache
	}
	if c == nil {
		c = NullCache()
	}
	return c
}

func (d *Dialer) timeout() (time.Duration, bool) {
	switch {
	case d.Timeout == NoTimeout:
		return 0, false
	case d.Timeout == 0:
		return DefaultTimeout, true
	default:
		return d.Timeout, true
	}
}

func (d *Dialer) netDialer() net.Dialer {
	nd := net.Dialer{}
	if d.SourceAddr.IsValid() {
		nd.LocalAddr = &net.TCPAddr{IP: d.SourceAddr.AsSlice()}
	}
	if d.Interface != "" || d.ReuseAddr || d.ReusePort {
		var ctl sockctl.Func
		if d.ReuseAddr {
			ctl = sockctl.Append(ctl, sockctl.ReuseAddr())
		}
		if d.ReusePort {
			ctl = sockctl.Append(ctl, sockctl.ReusePort())
		}
		if d.Interface != "" {
			ctl = sockctl.Append(ctl, sockctl.BindToInterface(d.Interface))
		}
		nd.Control = ctl
	}
	return nd
}

func (d *Dialer) attemptStarter() race.AttemptStarter {
	nd := d.netDialer()
	if d.TFO {
		return race.NewTFODialer(nd)
	}
	return race.NewNetDialer(nd)
}

// DialContext resolves host:port and connects, racing candidate addresses
// when there's more than one family to race between.
func (d *Dialer) DialContext(ctx context.Context, host string, port uint16) (net.Conn, error) {
	mode := Enabled.Load()

	// Disabled, or this host can't create an IPv6 socket at all: skip our
	// own resolution entirely and hand off to the platform's own connect
	// helper, which does its own getaddrinfo internally.
	if mode == Never || (mode != Always && !ipv6Supported()) {
		return d.plainDialHostPort(ctx, host, port)
	}

	endpoints, err := d.resolve(ctx, host, port)
	if err != nil {
		return nil, err
	}

	if d.Family != 0 {
		endpoints = FilterEndpointsByFamily(endpoints, d.Family)
		if len(endpoints) == 0 {
			return nil, &ResolutionError{Host: host, Port: port, Err: errNoAddresses}
		}
	}

	if cachedAddr, ok := cacheLookupAddr(d.cache(), host, port); ok {
		endpoints = moveToFront(endpoints, cachedAddr)
	}

	// A single endpoint, or endpoints that all share one family, have
	// nothing worth racing.
	if len(endpoints) == 1 || hasSingleFamily(endpoints) {
		return d.dialSerial(ctx, endpoints)
	}

	targets := make([]netip.AddrPort, len(endpoints))
	for i, e := range endpoints {
		targets[i] = e.Addr.AddrPort()
	}

	timeout, hasDeadline := d.timeout()
	conn, err := race.Race(ctx, targets, timeout, hasDeadline, d.SourceAddr, d.attemptStarter())
	if err != nil {
		return nil, translateRaceError(err)
	}

	d.cache().Put(host, port, endpointFromConn(conn))
	return conn, nil
}

func (d *Dialer) resolve(ctx context.Context, host string, port uint16) ([]Endpoint, error) {
	records, err := d.resolver().Resolve(ctx, host, port)
	if err != nil {
		return nil, &ResolutionError{Host: host, Port: port, Err: err}
	}
	if len(records) == 0 {
		return nil, &ResolutionError{Host: host, Port: port, Err: errNoAddresses}
	}
	endpoints := make([]Endpoint, len(records))
	for i, r := range records {
		endpoints[i] = newEndpoint(netip.AddrPortFrom(r.Addr, port), r.CanonicalName)
	}
	return endpoints, nil
}

// dialSerial tries each endpoint in order, returning the first successful
// connection, for endpoint lists that aren't worth racing.
func (d *Dialer) dialSerial(ctx context.Context, endpoints []Endpoint) (net.Conn, error) {
	start := d.attemptStarter()
	var lastErr error
	for _, ep := range endpoints {
		conn, err := start(ctx, ep.Addr.AddrPort(), d.SourceAddr)
		if err == nil {
			return conn, nil
		}
		lastErr = err
	}
	return nil, &AggregateConnectError{Attempts: len(endpoints), LastErr: lastErr}
}

// plainDialHostPort hands the whole (host, port) pair to the standard
// connect path, letting its own internal resolution and family selection
// do the work instead of resolving and racing ourselves.
func (d *Dialer) plainDialHostPort(ctx context.Context, host string, port uint16) (net.Conn, error) {
	nd := d.netDialer()
	address := net.JoinHostPort(host, strconv.Itoa(int(port)))

	var conn net.Conn
	var err error
	if d.TFO {
		conn, err = (&tfo.Dialer{Dialer: nd}).DialContext(ctx, "tcp", address, nil)
	} else {
		conn, err = nd.DialContext(ctx, "tcp", address)
	}
	if err != nil {
		return nil, &AggregateConnectError{Attempts: 1, LastErr: err}
	}
	return conn, nil
}

func endpointFromConn(conn net.Conn) Endpoint {
	ap, _ := netip.ParseAddrPort(conn.RemoteAddr().String())
	return newEndpoint(ap, "")
}

func translateRaceError(err error) error {
	raceErr, ok := err.(*race.Error)
	if !ok {
		return err
	}
	if raceErr.Deadline {
		return &TimeoutError{LastErr: raceErr.LastErr}
	}
	return &AggregateConnectError{Attempts: raceErr.Attempts, LastErr: raceErr.LastErr}
}

// FilterEndpointsByFamily returns the endpoints matching family, preserving
// their relative order. Dialer uses it internally when Config.Family
// restricts a call to IPv4-only or IPv6-only; it's exported for callers who
// want the same split ahead of their own use of the resolved list.
func FilterEndpointsByFamily(endpoints []Endpoint, family Family) []Endpoint {
	return slicelib.Filter(endpoints, func(e Endpoint) bool { return e.Family == family })
}
