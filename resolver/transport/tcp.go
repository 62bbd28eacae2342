package transport

import (
	"context"
	"encoding/binary"
	"io"
	"net"

	"github.com/qtraffics/qtfra/buf"

	"github.com/miekg/dns"
)

// TCPTransport exchanges DNS messages over a fresh TCP connection per
// query, length-prefixed per RFC 1035 4.2.2, dialed with a plain
// net.Dialer.
type TCPTransport struct {
	ServerAddr string // "host:port"
	Dialer     net.Dialer
}

func (t *TCPTransport) Exchange(ctx context.Context, message *dns.Msg) (*dns.Msg, error) {
	conn, err := t.Dialer.DialContext(ctx, "tcp", t.ServerAddr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if _, err := writeMessage(conn, message); err != nil {
		return nil, err
	}
	return readMessage(conn)
}

func readMessage(r io.Reader) (*dns.Msg, error) {
	var length uint16
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return nil, err
	}
	if length < 12 {
		return nil, dns.ErrShortRead
	}

	buffer := buf.NewSize(int(length) + 1)
	defer buffer.Free()

	if _, err := buffer.ReadFull(r, int(length)); err != nil {
		return nil, err
	}
	message := new(dns.Msg)
	if err := message.Unpack(buffer.Bytes()); err != nil {
		return nil, err
	}
	return message, nil
}

func writeMessage(w io.Writer, message *dns.Msg) (int, error) {
	requestLen := message.Len()
	buffer := buf.NewSize(requestLen + 3)
	defer buffer.Free()

	if err := binary.Write(buffer, binary.BigEndian, uint16(requestLen)); err != nil {
		return 0, err
	}
	rawMessage, err := message.PackBuffer(buffer.FreeBytes())
	if err != nil {
		return 0, err
	}
	buffer.Truncated(2 + len(rawMessage))
	return w.Write(buffer.Bytes())
}
