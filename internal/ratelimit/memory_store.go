package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps request timestamps in process memory. The check and the
// record happen under one lock, so it has no count-then-write race; counts
// are lost on restart and are not shared between replicas.
type MemoryStore struct {
	mu     sync.Mutex
	events map[string][]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make(map[string][]time.Time)}
}

// Consume returns the number of requests in the window including this one
// when allowed.
func (s *MemoryStore) Consume(_ context.Context, clientID, route string, limit int, window time.Duration, now time.Time) (int, bool, error) {
	key := clientID + ":" + route
	windowStart := now.Add(-window)

	s.mu.Lock()
	defer s.mu.Unlock()

	recent := s.events[key][:0]
	for _, ts := range s.events[key] {
		if ts.After(windowStart) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= limit {
		s.events[key] = recent
		return len(recent), false, nil
	}

	recent = append(recent, now)
	s.events[key] = recent
	return len(recent), true, nil
}
