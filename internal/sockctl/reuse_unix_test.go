//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package sockctl

import (
	"context"
	"net"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReuseAddrInstallsOption(t *testing.T) {
	lc := net.ListenConfig{Control: ReuseAddr()}
	ln, err := lc.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	sc, ok := ln.(syscall.Conn)
	require.True(t, ok)
	_, err = sc.SyscallConn()
	require.NoError(t, err)
}

func TestReusePortInstallsOption(t *testing.T) {
	lc := net.ListenConfig{Control: ReusePort()}
	ln, err := lc.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
}
