// Package resolver turns a hostname into the ordered address list the race
// engine consumes; it never builds addresses itself. System wraps the
// platform resolver. Stub (stub.go) is a self-contained alternative DNS
// client for callers who don't want a cgo-backed system resolver in the
// loop at all.
package resolver

import (
	"context"
	"net"
	"net/netip"
	"time"
)

// Record is one resolved address, with the name it was resolved from, in
// resolver order. It carries no port and none of the race engine's or
// cache's own bookkeeping; dialer.go adds the port and turns a []Record
// into []Endpoint.
type Record struct {
	Addr          netip.Addr
	CanonicalName string
}

// Resolver turns a (host, port) pair into an ordered list of candidate
// addresses, preserving whatever order the underlying lookup returned them
// in; nothing downstream of resolution reorders by family.
type Resolver interface {
	Resolve(ctx context.Context, host string, port uint16) ([]Record, error)
}

// System resolves through net.DefaultResolver (or Resolver, if set), i.e.
// the host OS's getaddrinfo-equivalent.
//
// Budget bounds how long this step is allowed to block independently of
// the race engine's own timeout, so a slow resolver can't silently eat the
// whole deadline before any connect attempt starts.
type System struct {
	Resolver *net.Resolver
	Budget   time.Duration // 0 uses DefaultBudget
}

const DefaultBudget = 2 * time.Second

func (s System) Resolve(ctx context.Context, host string, port uint16) ([]Record, error) {
	if addr, err := netip.ParseAddr(host); err == nil {
		return []Record{{Addr: addr}}, nil
	}

	budget := s.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}
	resolveCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	res := s.Resolver
	if res == nil {
		res = net.DefaultResolver
	}
	ipAddrs, err := res.LookupIPAddr(resolveCtx, host)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(ipAddrs))
	for _, ip := range ipAddrs {
		addr, ok := netip.AddrFromSlice(ip.IP)
		if !ok {
			continue
		}
		records = append(records, Record{Addr: addr.Unmap(), CanonicalName: host})
	}
	return records, nil
}
