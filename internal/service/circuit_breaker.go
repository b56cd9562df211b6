package service

import (
	"fmt"
	"sync"
	"time"
)

const (
	defaultBreakerMax      = 5
	defaultBreakerCooldown = 30 * time.Second
)

// circuitBreaker opens after max consecutive upstream failures. Once the
// cooldown has passed it lets a single trial call through: success closes
// it, failure restarts the cooldown.
type circuitBreaker struct {
	mu       sync.Mutex
	failures int
	max      int
	cooldown time.Duration
	openedAt time.Time
	trial    bool
	now      func() time.Time
}

func newCircuitBreaker(max int, cooldown time.Duration) *circuitBreaker {
	return &circuitBreaker{max: max, cooldown: cooldown, now: time.Now}
}

// allow reports an error while the breaker is open. A nil return must be
// followed by exactly one of success, failure or release.
func (b *circuitBreaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failures < b.max {
		return nil
	}
	if b.trial || b.now().Sub(b.openedAt) < b.cooldown {
		return fmt.Errorf("circuit breaker open: too many consecutive errors (%d)", b.failures)
	}
	b.trial = true
	return nil
}

func (b *circuitBreaker) success() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.trial = false
}

func (b *circuitBreaker) failure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	b.trial = false
	if b.failures >= b.max {
		b.openedAt = b.now()
	}
}

// release ends a call that said nothing about upstream health, such as one
// cancelled by the caller.
func (b *circuitBreaker) release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trial = false
}

func (b *circuitBreaker) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.trial = false
	b.openedAt = time.Time{}
}

func (b *circuitBreaker) status() (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures, b.failures >= b.max
}
