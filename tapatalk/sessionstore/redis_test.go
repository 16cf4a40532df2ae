package sessionstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapatalk/login-go/tapatalk"
)

// testRedis creates a Redis store backed by a disposable miniredis server.
func testRedis(t *testing.T, ttl time.Duration, opt ...Option) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	require := require.New(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	r, err := NewRedis(client, ttl, opt...)
	require.NoError(err)
	return r, mr
}

func TestNewRedis(t *testing.T) {
	t.Parallel()
	t.Run("nil-client", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		_, err := NewRedis(nil, 0)
		require.Error(err)
		assert.Truef(errors.Is(err, tapatalk.ErrNilParameter), "wanted \"%s\" but got \"%s\"", tapatalk.ErrNilParameter, err)
	})
}

func TestRedis(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("round-trip", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		r, _ := testRedis(t, 0)
		s := r.Session("session-1")
		require.NoError(s.Set(ctx, "state", "deadbeef"))
		got, err := s.Get(ctx, "state")
		require.NoError(err)
		assert.Equal("deadbeef", got)
	})
	t.Run("absent-key", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		r, _ := testRedis(t, 0)
		got, err := r.Session("session-1").Get(ctx, "state")
		require.NoError(err)
		assert.Empty(got)
	})
	t.Run("delete", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		r, _ := testRedis(t, 0)
		s := r.Session("session-1")
		require.NoError(s.Set(ctx, "state", "deadbeef"))
		require.NoError(s.Delete(ctx, "state"))
		got, err := s.Get(ctx, "state")
		require.NoError(err)
		assert.Empty(got)

		// deleting an absent key is not an error
		require.NoError(s.Delete(ctx, "state"))
	})
	t.Run("sessions-are-isolated", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		r, _ := testRedis(t, 0)
		require.NoError(r.Session("session-1").Set(ctx, "state", "one"))
		require.NoError(r.Session("session-2").Set(ctx, "state", "two"))

		got, err := r.Session("session-1").Get(ctx, "state")
		require.NoError(err)
		assert.Equal("one", got)
	})
	t.Run("entries-expire", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		r, mr := testRedis(t, time.Minute)
		s := r.Session("session-1")
		require.NoError(s.Set(ctx, "state", "deadbeef"))
		mr.FastForward(2 * time.Minute)
		got, err := s.Get(ctx, "state")
		require.NoError(err)
		assert.Empty(got)
	})
	t.Run("custom-key-prefix", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		r, mr := testRedis(t, 0, WithKeyPrefix("login:"))
		require.NoError(r.Session("session-1").Set(ctx, "state", "deadbeef"))
		got, err := mr.Get("login:session-1:state")
		require.NoError(err)
		assert.Equal("deadbeef", got)
	})
}
