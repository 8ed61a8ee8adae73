package ratelimit

import "time"

// SlidingWindow enforces maxRequests per windowSeconds per identifier,
// keeping an ordered vector of past request timestamps per id.
type SlidingWindow struct {
	maxRequests int
	windowMs    int64
	timestamps  map[string][]int64
	clock       func() int64
}

// NewSlidingWindow constructs a SlidingWindow limiter backed by the
// system clock.
func NewSlidingWindow(maxRequests int, windowSeconds int64) *SlidingWindow {
	return &SlidingWindow{
		maxRequests: maxRequests,
		windowMs:    windowSeconds * 1000,
		timestamps:  make(map[string][]int64),
		clock:       func() int64 { return time.Now().UnixMilli() },
	}
}

// Check drops expired timestamps for id, decides whether the new request
// is allowed, and (if so) records it.
func (w *SlidingWindow) Check(id string) (Decision, error) {
	return w.evaluate(id, true), nil
}

// Peek reports the Decision id would receive without recording a request.
// Its ResetSeconds counts only requests already recorded, so it is 0 when
// none are.
func (w *SlidingWindow) Peek(id string) Decision {
	return w.evaluate(id, false)
}

func (w *SlidingWindow) evaluate(id string, record bool) Decision {
	now := w.clock()
	kept := dropExpired(w.timestamps[id], now-w.windowMs, now)

	currentCount := len(kept)
	allowed := currentCount < w.maxRequests

	if record && allowed {
		kept = append(kept, now)
	}
	w.timestamps[id] = kept

	used := currentCount
	if allowed {
		used++
	}
	remaining := w.maxRequests - used
	if remaining < 0 {
		remaining = 0
	}

	var resetSeconds int64
	if len(kept) > 0 {
		resetSeconds = resetSecondsFromMs(kept[0] + w.windowMs - now)
	}

	return Decision{
		Allowed:      allowed,
		Remaining:    remaining,
		ResetSeconds: resetSeconds,
		CurrentCount: currentCount,
	}
}

// dropExpired removes timestamps at or before cutoff. Timestamps in the
// future (the clock regressed since they were recorded) are treated as
// now so no interval ever goes negative.
func dropExpired(timestamps []int64, cutoff, now int64) []int64 {
	kept := make([]int64, 0, len(timestamps))
	for _, ts := range timestamps {
		if ts > now {
			ts = now
		}
		if ts > cutoff {
			kept = append(kept, ts)
		}
	}
	return kept
}

// Reset clears all recorded state for id.
func (w *SlidingWindow) Reset(id string) {
	delete(w.timestamps, id)
}
