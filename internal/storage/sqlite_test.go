package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSQLiteBackend_Contract(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "edutor.db")

	b, err := OpenSQLBackend(ctx, SQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	b.SetClock(clock.Now)

	require.NoError(t, b.Ping(ctx))
	runBackendContract(t, b, clock.Advance)
}

func TestSQLiteBackend_MigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "edutor.db")

	b, err := OpenSQLBackend(ctx, SQLite, path)
	require.NoError(t, err)
	require.NoError(t, b.Set(ctx, "dev", "users", "[]", 0))
	require.NoError(t, b.Close())

	b, err = OpenSQLBackend(ctx, SQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	v, ok, err := b.Get(ctx, "dev", "users")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[]", v)
}
