package transport

import (
	"context"
	"net"

	"github.com/qtraffics/qtfra/buf"

	"github.com/miekg/dns"
)

const maxUDPSize = 1232

// UDPTransport exchanges DNS messages over UDP, falling back to TCP when
// the response comes back truncated. It opens one socket per query rather
// than sharing an ID-multiplexed connection: the stub resolver here is
// meant for a handful of concurrent A/AAAA lookups per dial, not sustained
// query volume.
type UDPTransport struct {
	ServerAddr string // "host:port"
	Dialer     net.Dialer
	TCP        *TCPTransport
}

func (t *UDPTransport) Exchange(ctx context.Context, message *dns.Msg) (*dns.Msg, error) {
	response, err := t.exchangeUDP(ctx, message)
	if err != nil {
		return nil, err
	}
	if response.Truncated && t.TCP != nil {
		return t.TCP.Exchange(ctx, message)
	}
	return response, nil
}

func (t *UDPTransport) exchangeUDP(ctx context.Context, message *dns.Msg) (*dns.Msg, error) {
	conn, err := t.Dialer.DialContext(ctx, "udp", t.ServerAddr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	requestLen := message.Len()
	buffer := buf.NewSize(requestLen + 1)
	defer buffer.Free()
	rawMessage, err := message.PackBuffer(buffer.FreeBytes())
	if err != nil {
		return nil, err
	}
	if _, err := conn.Write(rawMessage); err != nil {
		return nil, err
	}

	readBuffer := buf.NewSize(maxUDPSize + 1)
	defer readBuffer.Free()
	n, err := conn.Read(readBuffer.FreeBytes())
	if err != nil {
		return nil, err
	}
	readBuffer.Truncated(n)

	response := new(dns.Msg)
	if err := response.Unpack(readBuffer.Bytes()); err != nil {
		return nil, err
	}
	return response, nil
}
