package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Limiter implements a simple in-memory sliding window rate limiter
type Limiter struct {
	mu       sync.RWMutex
	counters map[string]*counter
	window   time.Duration
	max      int
}

type counter struct {
	count     int
	expiresAt time.Time
}

// NewLimiter creates a new rate limiter with the specified window and max requests
func NewLimiter(window time.Duration, max int) *Limiter {
	l := &Limiter{
		counters: make(map[string]*counter),
		window:   window,
		max:      max,
	}
	go l.cleanup()
	return l
}

// Allow checks if a request for the given key is allowed
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		l.counters[key] = &counter{
			count:     1,
			expiresAt: now.Add(l.window),
		}
		return true
	}

	if c.count >= l.max {
		return false
	}

	c.count++
	return true
}

// GetRemaining returns the number of remaining requests for the given key
func (l *Limiter) GetRemaining(key string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		return l.max
	}

	remaining := l.max - c.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// cleanup periodically removes expired counters
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, c := range l.counters {
			if now.After(c.expiresAt) {
				delete(l.counters, key)
			}
		}
		l.mu.Unlock()
	}
}

const defaultReportsPerMinute = 30

// ReportLimiter throttles report computation per client. A report rescans the
// activity window on every call, so one misbehaving dashboard must not be
// able to saturate the store for everyone.
type ReportLimiter struct {
	ip *Limiter
}

// NewReportLimiter creates a limiter allowing max report runs per IP per
// minute; zero or negative max falls back to the default.
func NewReportLimiter(max int) *ReportLimiter {
	if max <= 0 {
		max = defaultReportsPerMinute
	}
	return &ReportLimiter{
		ip: NewLimiter(time.Minute, max),
	}
}

// CheckReport verifies a report may be run from the given IP.
func (r *ReportLimiter) CheckReport(ip string) error {
	if !r.ip.Allow(ip) {
		return fmt.Errorf("too many reports from this IP address, please try again later")
	}
	return nil
}

// GetRemaining returns remaining report runs for the given IP.
func (r *ReportLimiter) GetRemaining(ip string) int {
	return r.ip.GetRemaining(ip)
}
