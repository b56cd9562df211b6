// Package ratelimit throttles uploads per client with a sliding time window.
package ratelimit

import (
	"context"
	"log"
	"time"
)

const (
	ReasonOK                 = "ok"
	ReasonExceeded           = "rate-limit-exceeded"
	ReasonStoreNotConfigured = "store-not-configured"
	ReasonStoreError         = "store-error"
)

// Store counts accepted requests inside the trailing window and records a
// new one only when the count is below limit. Implementations decide how
// atomic the count-then-record step is.
type Store interface {
	Consume(ctx context.Context, clientID, route string, limit int, window time.Duration, now time.Time) (used int, allowed bool, err error)
}

// Decision is the outcome of one CheckAndConsume call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
	Reason     string
}

// Config holds the window for one guarded route.
type Config struct {
	Route  string
	Limit  int
	Window time.Duration
}

// Limiter gates a single route. A nil Store, or a Store that errors, lets
// every request through.
type Limiter struct {
	store  Store
	config Config
	now    func() time.Time
}

func NewLimiter(store Store, config Config) *Limiter {
	if config.Limit <= 0 {
		config.Limit = 3
	}
	if config.Window <= 0 {
		config.Window = time.Hour
	}
	return &Limiter{store: store, config: config, now: time.Now}
}

func (l *Limiter) Config() Config {
	return l.config
}

// CheckAndConsume decides whether clientID may make one more request and
// records it when allowed.
func (l *Limiter) CheckAndConsume(ctx context.Context, clientID string) Decision {
	now := l.now()
	resetAt := now.Add(l.config.Window)

	if l.store == nil {
		return Decision{Allowed: true, Limit: l.config.Limit, Remaining: l.config.Limit, ResetAt: resetAt, Reason: ReasonStoreNotConfigured}
	}

	used, allowed, err := l.store.Consume(ctx, clientID, l.config.Route, l.config.Limit, l.config.Window, now)
	if err != nil {
		log.Printf("Rate limit store error for %s on %s, allowing request: %v", clientID, l.config.Route, err)
		return Decision{Allowed: true, Limit: l.config.Limit, Remaining: l.config.Limit, ResetAt: resetAt, Reason: ReasonStoreError}
	}

	if !allowed {
		return Decision{
			Allowed:    false,
			Limit:      l.config.Limit,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: l.config.Window,
			Reason:     ReasonExceeded,
		}
	}

	return Decision{
		Allowed:   true,
		Limit:     l.config.Limit,
		Remaining: max(0, l.config.Limit-used),
		ResetAt:   resetAt,
		Reason:    ReasonOK,
	}
}
