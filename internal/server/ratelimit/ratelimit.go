// Package ratelimit throttles expensive endpoints per client using token
// buckets from golang.org/x/time/rate.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Rule limits one method and path. Limit is the number of requests allowed
// per Window; Burst defaults to Limit.
type Rule struct {
	Method string
	Path   string
	Limit  int
	Window time.Duration
	Burst  int
}

func (r Rule) burst() int {
	if r.Burst > 0 {
		return r.Burst
	}
	return r.Limit
}

// Config holds rate limiting configuration. Requests matching no rule are
// not limited.
type Config struct {
	Enabled bool
	Rules   []Rule
	// IdleTTL is how long an unused bucket is kept.
	IdleTTL time.Duration
}

// DefaultConfig limits generation and scoring per minute.
func DefaultConfig(generatePerMinute, scorePerMinute int) Config {
	return Config{
		Enabled: true,
		IdleTTL: time.Hour,
		Rules: []Rule{
			{Method: "POST", Path: "/generate", Limit: generatePerMinute, Window: time.Minute, Burst: min(generatePerMinute, 5)},
			{Method: "POST", Path: "/score", Limit: scorePerMinute, Window: time.Minute, Burst: min(scorePerMinute, 5)},
		},
	}
}

// Info describes the outcome of Allow.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter tracks one bucket per client, method and path.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

// NewLimiter returns a Limiter for cfg.
func NewLimiter(cfg Config) *Limiter {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = time.Hour
	}
	return &Limiter{
		cfg:     cfg,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Match returns the rule for method and path, or nil.
func (l *Limiter) Match(method, path string) *Rule {
	for i := range l.cfg.Rules {
		r := &l.cfg.Rules[i]
		if r.Method == method && r.Path == path {
			return r
		}
	}
	return nil
}

// Allow consumes a token for the client when its request is limited.
func (l *Limiter) Allow(clientID, method, path string) Info {
	if l == nil || !l.cfg.Enabled {
		return Info{Allowed: true}
	}
	rule := l.Match(method, path)
	if rule == nil || rule.Limit <= 0 || rule.Window <= 0 {
		return Info{Allowed: true}
	}

	now := l.now()
	key := clientID + " " + method + " " + path

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		every := rate.Every(rule.Window / time.Duration(rule.Limit))
		b = &bucket{limiter: rate.NewLimiter(every, rule.burst())}
		l.buckets[key] = b
	}
	b.lastSeen = now

	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)

	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: max(int(math.Floor(tokens)), 0),
	}
	if !allowed {
		perSecond := float64(b.limiter.Limit())
		wait := (1 - tokens) / perSecond
		info.RetryAfter = time.Duration(math.Ceil(wait * float64(time.Second)))
	}
	return info
}

func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.cfg.IdleTTL {
		return
	}
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.cfg.IdleTTL {
			delete(l.buckets, key)
		}
	}
}

// Len reports the number of live buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
