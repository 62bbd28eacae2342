package addrs

import (
	"net"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAddrPort(t *testing.T) {
	sa := FromAddrPort(netip.MustParseAddrPort("1.2.3.4:443"))
	assert.True(t, sa.IsValid())
	assert.Equal(t, uint16(443), sa.Port)
}

func TestSocksaddrUnwrap4in6(t *testing.T) {
	mapped := netip.MustParseAddr("::ffff:1.2.3.4")
	require.True(t, mapped.Is4In6())

	sa := Socksaddr{Addr: mapped, Port: 80}
	unwrapped := sa.Unwrap()
	assert.True(t, unwrapped.Addr.Is4())
	assert.Equal(t, "1.2.3.4", unwrapped.Addr.String())
}

func TestSocksaddrUnwrapLeavesPlainV6Alone(t *testing.T) {
	addr := netip.MustParseAddr("2001:db8::1")
	sa := Socksaddr{Addr: addr, Port: 80}
	assert.Equal(t, sa, sa.Unwrap())
}

func TestSocksaddrString(t *testing.T) {
	sa := FromAddrPort(netip.MustParseAddrPort("1.2.3.4:443"))
	assert.Equal(t, "1.2.3.4:443", sa.String())
}

func TestSocksaddrStringInvalid(t *testing.T) {
	sa := Socksaddr{Port: 443}
	assert.Equal(t, ":443", sa.String())
}

func TestSocksaddrTCPAddr(t *testing.T) {
	sa := FromAddrPort(netip.MustParseAddrPort("1.2.3.4:443"))
	tcpAddr := sa.TCPAddr()
	assert.Equal(t, 443, tcpAddr.Port)
	assert.True(t, tcpAddr.IP.Equal(net.ParseIP("1.2.3.4")))
}

func TestIs4AndIs6(t *testing.T) {
	v4 := netip.MustParseAddr("1.2.3.4")
	v6 := netip.MustParseAddr("2001:db8::1")
	mapped := netip.MustParseAddr("::ffff:1.2.3.4")

	assert.True(t, Is4(v4))
	assert.True(t, Is4(mapped))
	assert.False(t, Is4(v6))

	assert.True(t, Is6(v6))
	assert.False(t, Is6(mapped))
	assert.False(t, Is6(v4))
}

func TestAddrFromIP(t *testing.T) {
	addr := AddrFromIP(net.ParseIP("1.2.3.4"))
	assert.True(t, addr.Is4())
	assert.Equal(t, "1.2.3.4", addr.String())
}
