package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock is shared by backends that accept SetClock.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// runBackendContract checks the behaviour every Backend must share. advance
// moves the backend's clock; pass nil when the backend uses wall time.
func runBackendContract(t *testing.T, b Backend, advance func(time.Duration)) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		v, ok, err := b.Get(ctx, "dev-1", "users")
		require.NoError(t, err)
		require.False(t, ok)
		require.Empty(t, v)
	})

	t.Run("set get overwrite", func(t *testing.T) {
		require.NoError(t, b.Set(ctx, "dev-1", "users", `[]`, 0))
		require.NoError(t, b.Set(ctx, "dev-1", "users", `[{"name":"Ann Lee"}]`, 0))

		v, ok, err := b.Get(ctx, "dev-1", "users")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, `[{"name":"Ann Lee"}]`, v)
	})

	t.Run("namespaces are isolated", func(t *testing.T) {
		require.NoError(t, b.Set(ctx, "dev-a", "userToken", "a", 0))

		_, ok, err := b.Get(ctx, "dev-b", "userToken")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("delete many and idempotent", func(t *testing.T) {
		require.NoError(t, b.Set(ctx, "dev-2", "userToken", "tok", time.Hour))
		require.NoError(t, b.Set(ctx, "dev-2", "currentUser", "{}", time.Hour))

		require.NoError(t, b.Delete(ctx, "dev-2", "userToken", "currentUser"))
		require.NoError(t, b.Delete(ctx, "dev-2", "userToken", "currentUser"))
		require.NoError(t, b.Delete(ctx, "dev-2"))

		for _, k := range []string{"userToken", "currentUser"} {
			_, ok, err := b.Get(ctx, "dev-2", k)
			require.NoError(t, err)
			require.False(t, ok, k)
		}
	})

	if advance == nil {
		return
	}

	t.Run("ttl expiry", func(t *testing.T) {
		require.NoError(t, b.Set(ctx, "dev-3", "userToken", "tok", 7*24*time.Hour))
		require.NoError(t, b.Set(ctx, "dev-3", "users", "[]", 0))

		advance(7*24*time.Hour - time.Second)
		_, ok, err := b.Get(ctx, "dev-3", "userToken")
		require.NoError(t, err)
		require.True(t, ok, "still valid just before the horizon")

		advance(time.Second)
		_, ok, err = b.Get(ctx, "dev-3", "userToken")
		require.NoError(t, err)
		require.False(t, ok, "expired at the horizon")

		_, ok, err = b.Get(ctx, "dev-3", "users")
		require.NoError(t, err)
		require.True(t, ok, "keys without ttl never expire")

		if p, isPurger := b.(Purger); isPurger {
			n, err := p.PurgeExpired(ctx)
			require.NoError(t, err)
			require.GreaterOrEqual(t, n, int64(1))
		}
	})
}
