// pkg/memcache/sessions.go
package mem

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// SessionStore keeps short-lived, in-process values keyed by id. Entries expire after
// ttl of inactivity; Get slides the expiry forward.
type SessionStore[T any] interface {
	Set(id string, value T)
	Get(id string) (T, bool)
	Delete(id string)
	Count() int
}

type TTLSessions[T any] struct {
	c *cache.Cache
}

func NewTTLSessions[T any](ttl time.Duration) *TTLSessions[T] {
	cleanup := ttl
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &TTLSessions[T]{
		c: cache.New(ttl, cleanup),
	}
}

func (s *TTLSessions[T]) Set(id string, value T) {
	s.c.Set(id, value, cache.DefaultExpiration)
}

func (s *TTLSessions[T]) Get(id string) (T, bool) {
	var zero T
	raw, ok := s.c.Get(id)
	if !ok {
		return zero, false
	}
	value, ok := raw.(T)
	if !ok {
		return zero, false
	}
	// Replace is a no-op when a concurrent Delete already removed the entry.
	_ = s.c.Replace(id, value, cache.DefaultExpiration)
	return value, true
}

func (s *TTLSessions[T]) Delete(id string) {
	s.c.Delete(id)
}

func (s *TTLSessions[T]) Count() int {
	return s.c.ItemCount()
}
