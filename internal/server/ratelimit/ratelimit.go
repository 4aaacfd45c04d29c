// Package ratelimit throttles the LLM-backed endpoints with per-client token
// buckets. Every model call costs real money and real quota; the store-only
// endpoints run under a much looser default.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// Rule is a per-route limit: requests per window with burst capacity.
type Rule struct {
	Method string
	// PathSuffix matches the end of the request path, so "/analyze"
	// covers "/jobs/analyze" regardless of mount point.
	PathSuffix string
	Limit      int
	Window     time.Duration
	Burst      int
}

// Config holds limiter settings.
type Config struct {
	Enabled       bool
	DefaultLimit  int
	DefaultWindow time.Duration
	Rules         []Rule
}

// DefaultConfig throttles the four model-backed routes tightly and leaves
// everything else on a generous per-minute default.
func DefaultConfig() *Config {
	llm := func(method, suffix string) Rule {
		return Rule{Method: method, PathSuffix: suffix, Limit: 10, Window: time.Minute, Burst: 3}
	}
	return &Config{
		Enabled:       true,
		DefaultLimit:  300,
		DefaultWindow: time.Minute,
		Rules: []Rule{
			llm("POST", "/jobs/analyze"),
			llm("POST", "/extract"),
			llm("POST", "/suggest"),
			llm("POST", "/regenerate"),
		},
	}
}

// Info reports the limit state for a checked request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type bucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
}

func (b *bucket) take() (ok bool, remaining int, retryAfter time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.lastRefill).Seconds()*b.refillRate)
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true, int(b.tokens), 0
	}
	need := (1 - b.tokens) / b.refillRate
	return false, 0, time.Duration(need * float64(time.Second))
}

// Limiter tracks one token bucket per client and matched rule.
type Limiter struct {
	config *Config

	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewLimiter creates a limiter; a nil config selects DefaultConfig.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	return &Limiter{config: config, buckets: make(map[string]*bucket)}
}

// Allow checks whether the client may hit the route now, consuming a token
// when it may.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	limit, window, burst := l.config.DefaultLimit, l.config.DefaultWindow, l.config.DefaultLimit
	key := clientID + ":default"
	for _, rule := range l.config.Rules {
		if rule.Method == method && strings.HasSuffix(path, rule.PathSuffix) {
			limit, window, burst = rule.Limit, rule.Window, rule.Burst
			if burst <= 0 {
				burst = limit
			}
			key = clientID + ":" + rule.Method + rule.PathSuffix
			break
		}
	}
	if limit <= 0 {
		return true, Info{Allowed: true}
	}

	b := l.bucket(key, limit, window, burst)
	ok, remaining, retryAfter := b.take()
	return ok, Info{Allowed: ok, Limit: limit, Remaining: remaining, RetryAfter: retryAfter}
}

func (l *Limiter) bucket(key string, limit int, window time.Duration, burst int) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}
	b := &bucket{
		capacity:   float64(burst),
		refillRate: float64(limit) / window.Seconds(),
		tokens:     float64(burst),
		lastRefill: time.Now(),
	}
	l.buckets[key] = b
	return b
}
