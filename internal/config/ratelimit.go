package config

import (
	"sync"
	"time"
)

type RateLimitConfig struct {
	// upload route
	Route  string
	Max    int
	Window time.Duration

	// coarse limiter applied to every route
	GlobalMax    int
	GlobalWindow time.Duration
}

var (
	rateLimitConfig *RateLimitConfig
	rateLimitOnce   sync.Once
)

func LoadRateLimitConfig() *RateLimitConfig {
	rateLimitOnce.Do(func() {
		rateLimitConfig = &RateLimitConfig{
			Route:        getEnvString("RATE_LIMIT_ROUTE", "/api/upload"),
			Max:          getEnvInt("RATE_LIMIT_MAX", 3),
			Window:       getEnvDuration("RATE_LIMIT_WINDOW", time.Hour),
			GlobalMax:    getEnvInt("RATE_LIMIT_GLOBAL_MAX", 50),
			GlobalWindow: getEnvDuration("RATE_LIMIT_GLOBAL_WINDOW", time.Minute),
		}
	})
	return rateLimitConfig
}
