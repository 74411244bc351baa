package store

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyNamespacing(t *testing.T) {
	assert.Equal(t, "booking:sess-1:pendingPayment", Key("sess-1", KeyPendingPayment))
	assert.Equal(t, "booking:order:abc", OrderKey("abc"))
}

func TestMemoryStoreBasics(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", "v", 0))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	require.NoError(t, s.Remove(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing an absent key is fine.
	assert.NoError(t, s.Remove(ctx, "k"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return now })

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))

	now = now.Add(59 * time.Second)
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	now = now.Add(2 * time.Second)
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreGet(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	s := NewRedisStore(rdb)

	mock.ExpectGet("k").SetVal("v")
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	mock.ExpectGet("missing").RedisNil()
	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreSetAndRemove(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	s := NewRedisStore(rdb)

	mock.ExpectSet("k", "v", time.Minute).SetVal("OK")
	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))

	mock.ExpectSet("forever", "v", 0).SetVal("OK")
	require.NoError(t, s.Set(ctx, "forever", "v", 0))

	mock.ExpectDel("k").SetVal(1)
	require.NoError(t, s.Remove(ctx, "k"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
