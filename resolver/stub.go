package resolver

import (
	"context"
	"net"
	"net/netip"
	"sync/atomic"

	"github.com/qtraffics/eyeball6555/resolver/transport"
	"github.com/qtraffics/qtfra/ex"
	"github.com/qtraffics/qtfra/threads"

	"github.com/miekg/dns"
)

// Stub is a self-contained recursive-capable DNS resolver: A/AAAA lookups
// fan out concurrently via threads.Group, over a UDP-with-TCP-fallback
// transport, with a freelru-backed response cache. It exists for callers
// who would rather not depend on the platform's getaddrinfo at all.
type Stub struct {
	Servers []string // "host:port"; defaults to 127.0.0.1:53 and [::1]:53
	Dialer  net.Dialer

	cache   *dnsCache
	queryID atomic.Uint32
}

// NewStub builds a Stub resolver with a default 1024-entry response
// cache, TTL clamped to [0, 1 hour].
func NewStub(servers ...string) (*Stub, error) {
	cache, err := newDNSCache(1024, 0, 3600)
	if err != nil {
		return nil, err
	}
	if len(servers) == 0 {
		servers = []string{"127.0.0.1:53", "[::1]:53"}
	}
	s := &Stub{Servers: servers, cache: cache}
	s.queryID.Store(uint32(dns.Id()))
	return s, nil
}

func (s *Stub) Resolve(ctx context.Context, host string, port uint16) ([]Record, error) {
	if addr, err := netip.ParseAddr(host); err == nil {
		return []Record{{Addr: addr}}, nil
	}
	fqdn := dns.Fqdn(host)

	var records4, records6 []Record
	var group threads.Group

	group.Append("a", func(ctx context.Context) error {
		recs, err := s.lookup(ctx, fqdn, dns.TypeA)
		if err != nil {
			return ex.Cause(err, "lookup A")
		}
		records4 = recs
		return nil
	})
	group.Append("aaaa", func(ctx context.Context) error {
		recs, err := s.lookup(ctx, fqdn, dns.TypeAAAA)
		if err != nil {
			return ex.Cause(err, "lookup AAAA")
		}
		records6 = recs
		return nil
	})

	err := group.Run(ctx)
	if len(records4) == 0 && len(records6) == 0 {
		return nil, err
	}
	// Resolver order: as returned by the transport, A before AAAA. Stub
	// never interleaves or sorts by family.
	records := make([]Record, 0, len(records4)+len(records6))
	records = append(records, records4...)
	records = append(records, records6...)
	return records, nil
}

func (s *Stub) lookup(ctx context.Context, fqdn string, qtype uint16) ([]Record, error) {
	message := &dns.Msg{
		MsgHdr: dns.MsgHdr{
			Id:               uint16(s.queryID.Add(1)),
			RecursionDesired: true,
		},
		Question: []dns.Question{{Name: fqdn, Qtype: qtype, Qclass: dns.ClassINET}},
	}

	response, err := s.cache.loadOrExchange(ctx, message, s.exchange)
	if err != nil {
		return nil, err
	}
	if response.Rcode != dns.RcodeSuccess {
		return nil, ex.New("dns: ", dns.RcodeToString[response.Rcode])
	}

	records := make([]Record, 0, len(response.Answer))
	for _, rr := range response.Answer {
		switch answer := rr.(type) {
		case *dns.A:
			addr, ok := netip.AddrFromSlice(answer.A)
			if ok {
				records = append(records, Record{Addr: addr.Unmap(), CanonicalName: fqdn})
			}
		case *dns.AAAA:
			addr, ok := netip.AddrFromSlice(answer.AAAA)
			if ok {
				records = append(records, Record{Addr: addr, CanonicalName: fqdn})
			}
		}
	}
	return records, nil
}

func (s *Stub) exchange(ctx context.Context, message *dns.Msg) (*dns.Msg, error) {
	var lastErr error
	for _, server := range s.Servers {
		tcp := &transport.TCPTransport{ServerAddr: server, Dialer: s.Dialer}
		udp := &transport.UDPTransport{ServerAddr: server, Dialer: s.Dialer, TCP: tcp}
		response, err := udp.Exchange(ctx, message)
		if err == nil {
			return response, nil
		}
		lastErr = err
	}
	return nil, ex.Cause(lastErr, "dns: all servers failed")
}
