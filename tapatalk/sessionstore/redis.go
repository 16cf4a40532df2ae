package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tapatalk/login-go/tapatalk"
)

// DefaultRedisKeyPrefix is prepended to every key a Redis store writes.
const DefaultRedisKeyPrefix = "tapatalk:session:"

// Redis is a session store for sharing login sessions across server
// instances. Entries carry a TTL so abandoned login attempts expire.
type Redis struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedis creates a Redis store writing through client. Entries expire ttl
// after they were last set; a ttl of zero or less means entries never expire.
// Supported options: WithKeyPrefix
func NewRedis(client redis.UniversalClient, ttl time.Duration, opt ...Option) (*Redis, error) {
	const op = "sessionstore.NewRedis"
	if client == nil {
		return nil, fmt.Errorf("%s: redis client is nil: %w", op, tapatalk.ErrNilParameter)
	}
	opts := getRedisOpts(opt...)
	if ttl < 0 {
		ttl = 0
	}
	return &Redis{
		client: client,
		prefix: opts.withKeyPrefix,
		ttl:    ttl,
	}, nil
}

// Session returns the store scoped to a single end-user session.
func (r *Redis) Session(id string) tapatalk.SessionStore {
	return &redisSession{
		client: r.client,
		prefix: r.prefix + id + ":",
		ttl:    r.ttl,
	}
}

type redisSession struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// Get implements tapatalk.SessionStore.Get, returning "" for absent or
// expired keys.
func (s *redisSession) Get(ctx context.Context, key string) (string, error) {
	const op = "redisSession.Get"
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: unable to read session key: %w", op, err)
	}
	return val, nil
}

// Set implements tapatalk.SessionStore.Set.
func (s *redisSession) Set(ctx context.Context, key string, value string) error {
	const op = "redisSession.Set"
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: unable to write session key: %w", op, err)
	}
	return nil
}

// Delete implements tapatalk.SessionStore.Delete.
func (s *redisSession) Delete(ctx context.Context, key string) error {
	const op = "redisSession.Delete"
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("%s: unable to delete session key: %w", op, err)
	}
	return nil
}
