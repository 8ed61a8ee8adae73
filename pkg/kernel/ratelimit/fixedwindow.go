package ratelimit

import "time"

type fixedBucket struct {
	startMs int64
	count   int
}

// FixedWindow partitions time into windowSeconds-wide buckets keyed by
// identifier, resetting the count whenever the bucket's start time falls
// outside the current window.
type FixedWindow struct {
	maxRequests int
	windowMs    int64
	buckets     map[string]fixedBucket
	clock       func() int64
}

// NewFixedWindow constructs a FixedWindow limiter backed by the system
// clock.
func NewFixedWindow(maxRequests int, windowSeconds int64) *FixedWindow {
	return &FixedWindow{
		maxRequests: maxRequests,
		windowMs:    windowSeconds * 1000,
		buckets:     make(map[string]fixedBucket),
		clock:       func() int64 { return time.Now().UnixMilli() },
	}
}

// Check increments id's current bucket and reports whether the request is
// allowed.
func (f *FixedWindow) Check(id string) (Decision, error) {
	now := f.clock()
	b, ok := f.buckets[id]
	if !ok || now-b.startMs >= f.windowMs {
		b = fixedBucket{startMs: now, count: 0}
	}

	allowed := b.count < f.maxRequests
	if allowed {
		b.count++
	}
	f.buckets[id] = b

	remaining := f.maxRequests - b.count
	if remaining < 0 {
		remaining = 0
	}

	resetMs := b.startMs + f.windowMs - now
	var resetSeconds int64
	if resetMs > 0 {
		resetSeconds = resetSecondsFromMs(resetMs)
	}

	return Decision{
		Allowed:      allowed,
		Remaining:    remaining,
		ResetSeconds: resetSeconds,
		CurrentCount: b.count,
	}, nil
}
