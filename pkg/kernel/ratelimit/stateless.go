package ratelimit

import (
	"time"

	"google.golang.org/protobuf/types/known/durationpb"
)

func msToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// CheckStateless computes a rate-limit Decision from a caller-owned
// timestamp vector (milliseconds, ascending) without retaining any state
// itself. timestamps is assumed already filtered to the current window;
// CheckStateless performs its own drop pass against nowMs regardless.
func CheckStateless(timestamps []int64, maxRequests int, windowSeconds int64, nowMs int64) Decision {
	windowMs := windowSeconds * 1000

	kept := dropExpired(timestamps, nowMs-windowMs, nowMs)

	currentCount := len(kept)
	allowed := currentCount < maxRequests

	used := currentCount
	if allowed {
		used++
	}
	remaining := maxRequests - used
	if remaining < 0 {
		remaining = 0
	}

	var resetSeconds int64
	if len(kept) > 0 {
		resetSeconds = resetSecondsFromMs(kept[0] + windowMs - nowMs)
	}

	return Decision{
		Allowed:      allowed,
		Remaining:    remaining,
		ResetSeconds: resetSeconds,
		CurrentCount: currentCount,
	}
}

// resetSecondsFromMs converts a millisecond interval to whole seconds,
// rounding up, via durationpb the way every time-carrying value record in
// this kernel's ABI layer does.
func resetSecondsFromMs(ms int64) int64 {
	if ms <= 0 {
		return 0
	}
	d := durationpb.New(msToDuration(ms))
	seconds := d.AsDuration().Seconds()
	whole := int64(seconds)
	if seconds > float64(whole) {
		whole++
	}
	return whole
}
