package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryEvictsOldest(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2, time.Minute)

	m.Set(ctx, "a", []byte("1"))
	m.Set(ctx, "b", []byte("2"))
	m.Set(ctx, "c", []byte("3"))

	_, ok := m.Get(ctx, "a")
	require.False(t, ok)
	got, ok := m.Get(ctx, "c")
	require.True(t, ok)
	require.Equal(t, []byte("3"), got)
	require.Equal(t, 2, m.Len())
}

func TestMemoryExpires(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(8, 20*time.Millisecond)
	m.Set(ctx, "a", []byte("1"))

	require.Eventually(t, func() bool {
		_, ok := m.Get(ctx, "a")
		return !ok
	}, time.Second, 5*time.Millisecond)
}
