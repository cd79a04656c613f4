package mem

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, s SignStore) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, SignReset, "abc", "a@b.com", SignTTL))

	email, err := s.Get(ctx, SignReset, "abc")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)

	_, err = s.Get(ctx, SignVerify, "abc")
	assert.ErrorIs(t, err, ErrSignNotFound, "kinds do not share signs")

	require.NoError(t, s.Delete(ctx, SignReset, "abc"))
	_, err = s.Get(ctx, SignReset, "abc")
	assert.ErrorIs(t, err, ErrSignNotFound)
}

func TestMemorySignStore(t *testing.T) {
	testStore(t, NewMemorySignStore())
}

func TestMemorySignStore_Expiry(t *testing.T) {
	s := NewMemorySignStore()
	now := time.Now()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(context.Background(), SignVerify, "x", "a@b.com", time.Minute))

	now = now.Add(2 * time.Minute)
	_, err := s.Get(context.Background(), SignVerify, "x")
	assert.ErrorIs(t, err, ErrSignNotFound)
	assert.Empty(t, s.data)
}

func TestRedisSignStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	testStore(t, NewRedisSignStore(client))
}

func TestRedisSignStore_Expiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	s := NewRedisSignStore(client)

	require.NoError(t, s.Set(context.Background(), SignReset, "x", "a@b.com", SignTTL))
	assert.True(t, mr.Exists("user:sign:reset:x"))

	mr.FastForward(SignTTL + time.Second)
	_, err := s.Get(context.Background(), SignReset, "x")
	assert.ErrorIs(t, err, ErrSignNotFound)
}
