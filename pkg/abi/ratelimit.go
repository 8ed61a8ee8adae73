package abi

import "github.com/ripixel/fitglue-kernel/pkg/kernel/ratelimit"

var limiters = NewRegistry[ratelimit.Limiter]()

// NewLimiter constructs a limiter of the given kind and registers it
// under a fresh handle, sharing one handle space across all three
// concrete strategies behind the ratelimit.Limiter interface.
func NewLimiter(kind ratelimit.Kind, cfg ratelimit.Config) (Handle, error) {
	l, err := ratelimit.NewLimiterFromConfig(kind, cfg)
	if err != nil {
		return Handle{}, err
	}
	return limiters.New(l), nil
}

// LimiterCheck evaluates a request for id against the limiter registered
// under h.
func LimiterCheck(h Handle, id string) (ratelimit.Decision, error) {
	l, ok := limiters.Get(h)
	if !ok {
		return ratelimit.Decision{}, ErrUnknownHandle
	}
	return l.Check(id)
}

// FreeLimiter releases the limiter registered under *h and zeroes the
// handle.
func FreeLimiter(h *Handle) {
	limiters.Free(h)
}
