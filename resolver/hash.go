package resolver

import (
	"hash/maphash"

	"github.com/miekg/dns"
)

// hashSeed and hashQuestion hash the cache key with maphash.Comparable
// instead of building an xxhash digest per lookup.
var hashSeed = maphash.MakeSeed()

func hashQuestion(q dns.Question) uint32 {
	return uint32(maphash.Comparable(hashSeed, q))
}
