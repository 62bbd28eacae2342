// Package transport implements the wire-level DNS exchange used by
// resolver.Stub: a UDP transport that falls back to TCP on truncation,
// both built on github.com/miekg/dns for message (de)serialization.
package transport

import (
	"context"

	"github.com/miekg/dns"
)

// Transport exchanges one DNS message for its response.
type Transport interface {
	Exchange(ctx context.Context, message *dns.Msg) (*dns.Msg, error)
}
