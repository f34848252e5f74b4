package repository

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// SessionMemory is the default in-process session store. Each session
// expires ttl after its last write, which bounds the growth of
// distinct sessions over the process lifetime.
type SessionMemory struct {
	cache *gocache.Cache
}

var _ SessionRepository = &SessionMemory{}

func NewSessionMemory(ttl time.Duration) *SessionMemory {
	return &SessionMemory{
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (s *SessionMemory) History(_ context.Context, sessionID string) ([]string, error) {
	v, ok := s.cache.Get(sessionID)
	if !ok {
		return nil, nil
	}

	turns := v.([]string)
	// Copy so callers cannot mutate the stored slice.
	out := make([]string, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *SessionMemory) SaveHistory(_ context.Context, sessionID string, turns []string) error {
	stored := make([]string, len(turns))
	copy(stored, turns)
	s.cache.Set(sessionID, stored, gocache.DefaultExpiration)
	return nil
}
