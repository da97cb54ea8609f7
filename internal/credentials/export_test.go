package credentials

import (
	"time"

	"fittrack/internal/repository"
)

// NewStoreWithClock constructs a Store with an injected clock for external tests.
func NewStoreWithClock(sessions repository.SessionRepository, ttl time.Duration, now func() time.Time) *Store {
	return &Store{sessions: sessions, ttl: ttl, now: now}
}

// TTL exposes the store's configured ttl to external tests.
func (s *Store) TTL() time.Duration { return s.ttl }
