package eyeball

import (
	"net/netip"

	"github.com/qtraffics/eyeball6555/internal/addrs"
)

// Family identifies the address family of a resolved Endpoint.
type Family uint8

const (
	FamilyIPv4 Family = 4
	FamilyIPv6 Family = 6
)

// Endpoint is a fully resolved connect candidate: family, socket type,
// protocol and a concrete socket address. Endpoints are produced by a
// Resolver and are immutable for the lifetime of one CreateConnection call.
// SockType and Protocol are carried even though this module only ever
// dials "tcp"/SOCK_STREAM, since callers sometimes inspect them.
type Endpoint struct {
	Family        Family
	SockType      string // always "tcp" today; kept for tuple fidelity
	Protocol      string
	CanonicalName string
	Addr          addrs.Socksaddr
}

func newEndpoint(ap netip.AddrPort, canonicalName string) Endpoint {
	fam := FamilyIPv6
	if addrs.Is4(ap.Addr()) {
		fam = FamilyIPv4
	}
	return Endpoint{
		Family:        fam,
		SockType:      "tcp",
		Protocol:      "tcp",
		CanonicalName: canonicalName,
		Addr:          addrs.FromAddrPort(ap),
	}
}

// hasSingleFamily reports whether every endpoint in the list shares the
// same address family: with only one family present there is nothing to
// race, so the entry point falls back to a plain serial connect.
func hasSingleFamily(endpoints []Endpoint) bool {
	if len(endpoints) == 0 {
		return true
	}
	first := endpoints[0].Family
	for _, e := range endpoints[1:] {
		if e.Family != first {
			return false
		}
	}
	return true
}

// moveToFront relocates the first endpoint matching addr to the head of
// the list, preserving the relative order of everything else. Used by the
// entry point to promote a cache hit to "attempted first" without
// discarding the remaining endpoints as fallbacks.
func moveToFront(endpoints []Endpoint, addr netip.Addr) []Endpoint {
	for i, e := range endpoints {
		if e.Addr.Addr == addr {
			if i == 0 {
				return endpoints
			}
			out := make([]Endpoint, 0, len(endpoints))
			out = append(out, e)
			out = append(out, endpoints[:i]...)
			out = append(out, endpoints[i+1:]...)
			return out
		}
	}
	return endpoints
}
