package eyeball

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolutionErrorUnwrap(t *testing.T) {
	inner := errors.New("no such host")
	err := &ResolutionError{Host: "example.invalid", Port: 443, Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "example.invalid")
}

func TestAggregateConnectErrorNilLastErr(t *testing.T) {
	err := &AggregateConnectError{Attempts: 3}
	assert.Equal(t, "eyeball: all connection attempts failed", err.Error())
}

func TestAggregateConnectErrorWithLastErr(t *testing.T) {
	inner := errors.New("connection refused")
	err := &AggregateConnectError{Attempts: 2, LastErr: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "2")
}

func TestTimeoutErrorIsTimeout(t *testing.T) {
	var err error = &TimeoutError{}
	var timeoutish interface{ Timeout() bool }
	assert.True(t, errors.As(err, &timeoutish))
	assert.True(t, timeoutish.Timeout())
}
