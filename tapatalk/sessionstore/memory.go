package sessionstore

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/tapatalk/login-go/tapatalk"
)

// Memory is a process-local session store with per-entry TTL, so entries from
// abandoned login attempts eventually expire. It is concurrently safe.
type Memory struct {
	c *cache.Cache
}

// NewMemory creates a Memory store whose entries expire ttl after they were
// last set. A ttl of zero or less means entries never expire.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		return &Memory{c: cache.New(cache.NoExpiration, 0)}
	}
	return &Memory{c: cache.New(ttl, 2*ttl)}
}

// Session returns the store scoped to a single end-user session.
func (m *Memory) Session(id string) tapatalk.SessionStore {
	return &memorySession{c: m.c, id: id}
}

type memorySession struct {
	c  *cache.Cache
	id string
}

func (s *memorySession) key(key string) string {
	return s.id + ":" + key
}

// Get implements tapatalk.SessionStore.Get, returning "" for absent or
// expired keys.
func (s *memorySession) Get(ctx context.Context, key string) (string, error) {
	v, ok := s.c.Get(s.key(key))
	if !ok {
		return "", nil
	}
	return v.(string), nil
}

// Set implements tapatalk.SessionStore.Set.
func (s *memorySession) Set(ctx context.Context, key string, value string) error {
	s.c.Set(s.key(key), value, cache.DefaultExpiration)
	return nil
}

// Delete implements tapatalk.SessionStore.Delete.
func (s *memorySession) Delete(ctx context.Context, key string) error {
	s.c.Delete(s.key(key))
	return nil
}
