package eyeball

import (
	"encoding/binary"
	"time"

	"github.com/elastic/go-freelru"

	"github.com/cespare/xxhash/v2"
)

// syncCache is the pluggable thread-safe AddressCache callers substitute in
// when they want locking instead of the bare-map default in cache.go.
// Backed by the same freelru sharded LRU the DNS response cache in the
// resolver package uses.
type syncCache struct {
	validity time.Duration
	lru      *freelru.ShardedLRU[cacheKey, cacheEntry]
	now      func() time.Time
}

func hashCacheKey(k cacheKey) uint32 {
	h := xxhash.New()
	_, _ = h.WriteString(k.host)
	var portBuf [2]byte
	binary.BigEndian.PutUint16(portBuf[:], k.port)
	_, _ = h.Write(portBuf[:])
	return uint32(h.Sum64())
}

// NewSyncCache returns an AddressCache safe for concurrent use by multiple
// goroutines, backed by a sharded LRU of the given capacity. Unlike
// NewCache this one does take internal locks.
func NewSyncCache(capacity uint32, validity time.Duration) (AddressCache, error) {
	if validity <= 0 {
		validity = 60 * time.Second
	}
	lru, err := freelru.NewSharded[cacheKey, cacheEntry](capacity, hashCacheKey)
	if err != nil {
		return nil, err
	}
	return &syncCache{validity: validity, lru: lru, now: time.Now}, nil
}

func (c *syncCache) Get(host string, port uint16) (Endpoint, bool) {
	key := cacheKey{host, port}
	entry, ok := c.lru.Get(key)
	if !ok {
		return Endpoint{}, false
	}
	if !c.now().Before(entry.expiresAt) {
		c.lru.Remove(key)
		return Endpoint{}, false
	}
	return entry.endpoint, true
}

func (c *syncCache) Put(host string, port uint16, endpoint Endpoint) {
	key := cacheKey{host, port}
	c.lru.Add(key, cacheEntry{endpoint: endpoint, expiresAt: c.now().Add(c.validity)})
}

func (c *syncCache) Clear() { c.lru.Purge() }

func (c *syncCache) ValidityDuration() time.Duration { return c.validity }
