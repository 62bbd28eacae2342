package resolver

import (
	"context"
	"time"

	"github.com/qtraffics/qtfra/enhancements/singleflight"

	"github.com/elastic/go-freelru"
	"github.com/miekg/dns"
)

// dnsCacheEntry and dnsCache implement a freelru-backed cache of whole DNS
// responses, TTL clamped to [minTTL, maxTTL], with singleflight coalescing
// concurrent lookups for the same question into one upstream exchange. This is a
// distinct cache from cache.go's AddressCache in the root package: this
// one remembers DNS answers, that one remembers which endpoint last won a
// race. Conflating them would mean a single slow DNS record expiring
// could needlessly discard a perfectly good winning-address memory.
type dnsCacheEntry struct {
	expire  time.Time
	message *dns.Msg
}

type dnsCache struct {
	lru            *freelru.ShardedLRU[dns.Question, dnsCacheEntry]
	minTTL, maxTTL uint32
	sf             singleflight.Group[uint32, *dns.Msg]
}

func newDNSCache(size uint32, minTTL, maxTTL uint32) (*dnsCache, error) {
	if maxTTL < minTTL {
		maxTTL = minTTL
	}
	lru, err := freelru.NewSharded[dns.Question, dnsCacheEntry](size, hashQuestion)
	if err != nil {
		return nil, err
	}
	return &dnsCache{lru: lru, minTTL: minTTL, maxTTL: maxTTL}, nil
}

func (c *dnsCache) loadOrExchange(ctx context.Context, message *dns.Msg, exchange func(ctx context.Context, message *dns.Msg) (*dns.Msg, error)) (*dns.Msg, error) {
	if len(message.Question) != 1 {
		return exchange(ctx, message)
	}
	question := message.Question[0]
	id := message.Id

	if entry, ok := c.lru.Get(question); ok {
		if ttl := uint32(time.Until(entry.expire) / time.Second); ttl > 0 {
			response := entry.message.Copy()
			response.Id = id
			overwriteTTL(response, ttl)
			return response, nil
		}
		c.lru.Remove(question)
	}

	response, err, _ := c.sf.Do(hashQuestion(question), func() (*dns.Msg, error) {
		resp, err := exchange(ctx, message)
		if err != nil || resp == nil {
			return resp, err
		}
		if resp.Rcode == dns.RcodeSuccess {
			c.store(question, resp)
		}
		return resp, nil
	})
	if err != nil || response == nil {
		return response, err
	}
	response = response.Copy()
	response.Id = id
	return response, nil
}

func (c *dnsCache) store(question dns.Question, message *dns.Msg) {
	ttl := calculateTTL(message)
	ttl = max(c.minTTL, min(c.maxTTL, ttl))
	if ttl <= 1 {
		return
	}
	c.lru.Add(question, dnsCacheEntry{expire: time.Now().Add(time.Duration(ttl) * time.Second), message: message})
}

func calculateTTL(message *dns.Msg) (ttl uint32) {
	for _, rrs := range [][]dns.RR{message.Answer, message.Ns, message.Extra} {
		for _, rr := range rrs {
			if ttl == 0 || rr.Header().Ttl < ttl {
				ttl = rr.Header().Ttl
			}
		}
	}
	return ttl
}

func overwriteTTL(message *dns.Msg, ttl uint32) {
	for _, rrs := range [][]dns.RR{message.Answer, message.Ns, message.Extra} {
		for _, rr := range rrs {
			rr.Header().Ttl = ttl
		}
	}
}
