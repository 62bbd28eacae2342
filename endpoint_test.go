package eyeball

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEndpointFamily(t *testing.T) {
	v4 := newEndpoint(netip.MustParseAddrPort("93.184.216.34:443"), "example.com")
	assert.Equal(t, FamilyIPv4, v4.Family)

	v6 := newEndpoint(netip.MustParseAddrPort("[2606:2800:220:1:248:1893:25c8:1946]:443"), "example.com")
	assert.Equal(t, FamilyIPv6, v6.Family)
}

func TestHasSingleFamilyTrue(t *testing.T) {
	endpoints := []Endpoint{
		testEndpoint("93.184.216.34:443"),
		testEndpoint("1.1.1.1:443"),
	}
	assert.True(t, hasSingleFamily(endpoints))
}

func TestHasSingleFamilyFalse(t *testing.T) {
	endpoints := []Endpoint{
		testEndpoint("93.184.216.34:443"),
		testEndpoint("[2606:2800:220:1:248:1893:25c8:1946]:443"),
	}
	assert.False(t, hasSingleFamily(endpoints))
}

func TestHasSingleFamilyEmpty(t *testing.T) {
	assert.True(t, hasSingleFamily(nil))
}

func TestMoveToFrontPromotesMatch(t *testing.T) {
	v4 := testEndpoint("93.184.216.34:443")
	v6 := testEndpoint("[2606:2800:220:1:248:1893:25c8:1946]:443")
	endpoints := []Endpoint{v4, v6}

	out := moveToFront(endpoints, v6.Addr.Addr)
	assert.Equal(t, []Endpoint{v6, v4}, out)
}

func TestMoveToFrontNoMatchIsUnchanged(t *testing.T) {
	v4 := testEndpoint("93.184.216.34:443")
	v6 := testEndpoint("[2606:2800:220:1:248:1893:25c8:1946]:443")
	endpoints := []Endpoint{v4, v6}

	out := moveToFront(endpoints, netip.MustParseAddr("1.1.1.1"))
	assert.Equal(t, endpoints, out)
}

func TestMoveToFrontAlreadyFirst(t *testing.T) {
	v4 := testEndpoint("93.184.216.34:443")
	v6 := testEndpoint("[2606:2800:220:1:248:1893:25c8:1946]:443")
	endpoints := []Endpoint{v4, v6}

	out := moveToFront(endpoints, v4.Addr.Addr)
	assert.Equal(t, endpoints, out)
}
