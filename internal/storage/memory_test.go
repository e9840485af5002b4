package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryBackend_Contract(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	b := NewMemoryBackend()
	b.SetClock(clock.Now)

	runBackendContract(t, b, clock.Advance)
}

func TestScoped_DelegatesToNamespace(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	s := Scoped(b, "dev-9")

	require.NoError(t, s.Set(ctx, "userToken", "tok", time.Hour))

	v, ok, err := b.Get(ctx, "dev-9", "userToken")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok", v)

	require.NoError(t, s.Delete(ctx, "userToken"))
	_, ok, _ = s.Get(ctx, "userToken")
	require.False(t, ok)
}

func TestNewMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "users", "[]", 0))
	v, ok, err := s.Get(ctx, "users")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[]", v)
}
