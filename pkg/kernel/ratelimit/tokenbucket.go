package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/ripixel/fitglue-kernel/pkg/kernel/kernelerr"
)

// TokenBucket enforces a capacity/refill-rate budget per identifier,
// lazily creating a golang.org/x/time/rate.Limiter the first time an
// identifier is seen rather than hand-rolling the refill arithmetic.
type TokenBucket struct {
	capacity   int
	refillRate float64
	limiters   map[string]*rate.Limiter
	clock      func() time.Time
}

// NewTokenBucket constructs a TokenBucket with the given capacity
// (maximum tokens / burst size) and refillRate (tokens per second).
func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		limiters:   make(map[string]*rate.Limiter),
		clock:      time.Now,
	}
}

func (b *TokenBucket) limiterFor(id string) *rate.Limiter {
	l, ok := b.limiters[id]
	if !ok {
		l = rate.NewLimiter(rate.Limit(b.refillRate), b.capacity)
		b.limiters[id] = l
	}
	return l
}

// Consume attempts to take n tokens for id, succeeding iff at least n
// tokens are currently available once lazy refill is applied.
func (b *TokenBucket) Consume(id string, n int) (bool, error) {
	if n < 0 {
		return false, kernelerr.New(kernelerr.InvalidInput, "n must be non-negative")
	}
	return b.limiterFor(id).AllowN(b.clock(), n), nil
}

// Check implements Limiter by consuming a single token.
func (b *TokenBucket) Check(id string) (Decision, error) {
	now := b.clock()
	l := b.limiterFor(id)
	before := l.TokensAt(now)

	allowed := l.AllowN(now, 1)

	after := before
	if allowed {
		after = before - 1
	}
	if after < 0 {
		after = 0
	}

	return Decision{
		Allowed:      allowed,
		Remaining:    int(after),
		CurrentCount: b.capacity - int(after),
	}, nil
}

// Tokens reports the tokens currently available for id without consuming
// any.
func (b *TokenBucket) Tokens(id string) float64 {
	return b.limiterFor(id).TokensAt(b.clock())
}
