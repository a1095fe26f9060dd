package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// RateLimiter throttles upgrade requests with a token bucket per client IP.
// Entries for IPs not seen within limiterIdleTTL are dropped so the map does
// not grow without bound.
type RateLimiter struct {
	mu    sync.Mutex
	perIP map[string]*ipLimiter
	rps   float64
}

type ipLimiter struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(rps float64) *RateLimiter {
	rl := &RateLimiter{
		perIP: make(map[string]*ipLimiter),
		rps:   rps,
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	entry, ok := rl.perIP[ip]
	if !ok {
		entry = &ipLimiter{
			bucket: rate.NewLimiter(rate.Limit(rl.rps), int(rl.rps)*2),
		}
		rl.perIP[ip] = entry
	}
	entry.lastSeen = time.Now()
	rl.mu.Unlock()

	return entry.bucket.Allow()
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		cutoff := time.Now().Add(-limiterIdleTTL)
		for ip, entry := range rl.perIP {
			if entry.lastSeen.Before(cutoff) {
				delete(rl.perIP, ip)
			}
		}
		rl.mu.Unlock()
	}
}
