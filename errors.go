package eyeball

import (
	"github.com/qtraffics/qtfra/ex"
)

// errNoAddresses is wrapped into a ResolutionError when a Resolver returns
// success with zero records.
var errNoAddresses = ex.New("eyeball: resolver returned no addresses")

// ResolutionError wraps a failure from the Resolver step, surfaced
// directly to the caller.
type ResolutionError struct {
	Host string
	Port uint16
	Err  error
}

func (e *ResolutionError) Error() string {
	return ex.New("resolve ", e.Host, ": ", e.Err.Error()).Error()
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// AggregateConnectError is returned when every attempt across every
// endpoint failed. It carries the last underlying connect error
// encountered.
type AggregateConnectError struct {
	Attempts int
	LastErr  error
}

func (e *AggregateConnectError) Error() string {
	if e.LastErr == nil {
		return "eyeball: all connection attempts failed"
	}
	return ex.New("eyeball: all ", e.Attempts, " connection attempt(s) failed: ", e.LastErr.Error()).Error()
}

func (e *AggregateConnectError) Unwrap() error { return e.LastErr }

// TimeoutError is returned when the overall race deadline elapses before
// any attempt completes.
type TimeoutError struct {
	LastErr error
}

func (e *TimeoutError) Error() string {
	return "eyeball: connection attempt timed out"
}

func (e *TimeoutError) Unwrap() error { return e.LastErr }

func (e *TimeoutError) Timeout() bool { return true }
