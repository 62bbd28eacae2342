package eyeball

import "sync"

// probeState memoizes the IPv6 capability probe process-wide. A benign
// race leading to double-evaluation is harmless since the result is
// deterministic; sync.Once gives us the memoization for free and makes
// that race moot.
var probeState struct {
	once sync.Once
	ok   bool
}

// ipv6Supported reports whether the host can create an IPv6 stream socket.
// It never connects anywhere, avoiding any network traffic, and swallows
// every failure to false.
func ipv6Supported() bool {
	probeState.once.Do(func() {
		probeState.ok = probeIPv6()
	})
	return probeState.ok
}
