package cache

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// unreachable returns an address nothing listens on.
func unreachable(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestKeyIsStableAndPrefixed(t *testing.T) {
	c := NewRedis(Options{Addr: "127.0.0.1:1"})
	defer c.Close()

	k1 := c.Key("http://pitchdeck.business/c/1")
	require.Equal(t, k1, c.Key("http://pitchdeck.business/c/1"))
	require.NotEqual(t, k1, c.Key("http://pitchdeck.business/c/2"))
	require.Contains(t, k1, "pitchdeck:page:")
}

func TestDownCacheIsAMiss(t *testing.T) {
	c := NewRedis(Options{Addr: unreachable(t), TTL: time.Minute})
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c.Set(ctx, "http://x/a", []byte("body"))
	_, ok := c.Get(ctx, "http://x/a")
	require.False(t, ok)
	require.Error(t, c.Ping(ctx))
}
