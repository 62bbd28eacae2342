package eyeball

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEndpoint(addr string) Endpoint {
	return newEndpoint(netip.MustParseAddrPort(addr), "")
}

func TestDefaultCacheGetMiss(t *testing.T) {
	c := NewCache(time.Minute)
	_, ok := c.Get("example.com", 443)
	assert.False(t, ok)
}

func TestDefaultCachePutGet(t *testing.T) {
	c := NewCache(time.Minute)
	ep := testEndpoint("93.184.216.34:443")
	c.Put("example.com", 443, ep)

	got, ok := c.Get("example.com", 443)
	require.True(t, ok)
	assert.Equal(t, ep, got)
}

func TestDefaultCacheExpires(t *testing.T) {
	now := time.Now()
	dc := &defaultCache{
		validity: time.Minute,
		entries:  make(map[cacheKey]cacheEntry),
		now:      func() time.Time { return now },
	}
	dc.Put("example.com", 443, testEndpoint("93.184.216.34:443"))

	now = now.Add(2 * time.Minute)
	_, ok := dc.Get("example.com", 443)
	assert.False(t, ok, "entry should have expired")
}

func TestDefaultCachePutOverwritesAndResetsExpiry(t *testing.T) {
	now := time.Now()
	dc := &defaultCache{
		validity: time.Minute,
		entries:  make(map[cacheKey]cacheEntry),
		now:      func() time.Time { return now },
	}
	first := testEndpoint("93.184.216.34:443")
	second := testEndpoint("[2606:2800:220:1:248:1893:25c8:1946]:443")

	dc.Put("example.com", 443, first)
	original := dc.entries[cacheKey{"example.com", 443}].expiresAt

	now = now.Add(30 * time.Second)
	dc.Put("example.com", 443, second)

	entry := dc.entries[cacheKey{"example.com", 443}]
	assert.Equal(t, second, entry.endpoint)
	assert.True(t, entry.expiresAt.After(original))
}

func TestDefaultCacheClear(t *testing.T) {
	c := NewCache(time.Minute)
	c.Put("example.com", 443, testEndpoint("93.184.216.34:443"))
	c.Clear()
	_, ok := c.Get("example.com", 443)
	assert.False(t, ok)
}

func TestNewCacheDefaultValidity(t *testing.T) {
	c := NewCache(0)
	assert.Equal(t, 60*time.Second, c.ValidityDuration())
}

func TestNullCache(t *testing.T) {
	c := NullCache()
	c.Put("example.com", 443, testEndpoint("93.184.216.34:443"))
	_, ok := c.Get("example.com", 443)
	assert.False(t, ok)
	assert.Zero(t, c.ValidityDuration())
}

func TestCacheLookupAddrNilCache(t *testing.T) {
	_, ok := cacheLookupAddr(nil, "example.com", 443)
	assert.False(t, ok)
}

func TestCacheLookupAddr(t *testing.T) {
	c := NewCache(time.Minute)
	ep := testEndpoint("93.184.216.34:443")
	c.Put("example.com", 443, ep)

	addr, ok := cacheLookupAddr(c, "example.com", 443)
	require.True(t, ok)
	assert.Equal(t, ep.Addr.Addr, addr)
}
