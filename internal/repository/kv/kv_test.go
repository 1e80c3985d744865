package kv

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/domain/repository"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, store repository.KVStore, prefix string) {
	t.Helper()
	ctx := context.Background()
	k1, k2, k3 := prefix+":a", prefix+":b", prefix+":missing"
	t.Cleanup(func() { _ = store.Delete(ctx, k1, k2, k3) })

	_, ok, err := store.Get(ctx, k1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, k1, []byte("one"), 0))
	require.NoError(t, store.Set(ctx, k2, []byte("two"), time.Hour))

	val, ok, err := store.Get(ctx, k1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("one"), val)

	require.NoError(t, store.Set(ctx, k1, []byte("uno"), 0))
	many, err := store.GetMany(ctx, []string{k1, k2, k3})
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{k1: []byte("uno"), k2: []byte("two")}, many)

	empty, err := store.GetMany(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, store.Delete(ctx, k1, k3))
	_, ok, err = store.Get(ctx, k1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.Get(ctx, k2)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory(), "test")
}

func TestMemory_TTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Minute))
	assert.Equal(t, 1, m.Len())

	now = now.Add(2 * time.Minute)
	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestMemory_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	buf := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", buf, 0))
	buf[0] = 'x'

	val, _, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(val))
}

func newTestSQLite(t *testing.T) *SQL {
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	store, err := NewSQL(context.Background(), db, DialectSQLite, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLite(t *testing.T) {
	exerciseStore(t, newTestSQLite(t), "test")
}

func TestSQLite_ExpiryAndPurge(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "short", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "forever", []byte("2"), 0))

	now = now.Add(time.Hour)

	_, ok, err := store.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, ok, err = store.Get(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBadger(t *testing.T) {
	store, err := NewBadger("", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exerciseStore(t, store, "test")
}

func TestRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	store := NewRedisFromClient(client, zap.NewNop())
	t.Cleanup(func() { _ = store.Close() })

	exerciseStore(t, store, "test:kv")
}
