package ratelimit

import "github.com/ripixel/fitglue-kernel/pkg/kernel/kernelerr"

// NewLimiterFromConfig constructs the concrete limiter kind requires
// behind the narrow Limiter interface, the same "pick the right concrete
// adapter behind one interface" shape used elsewhere in this kernel's
// ambient stack for swappable backends.
func NewLimiterFromConfig(kind Kind, cfg Config) (Limiter, error) {
	switch kind {
	case KindSlidingWindow:
		if cfg.MaxRequests <= 0 || cfg.WindowSeconds <= 0 {
			return nil, kernelerr.New(kernelerr.InvalidInput, "sliding_window requires MaxRequests > 0 and WindowSeconds > 0")
		}
		return NewSlidingWindow(cfg.MaxRequests, cfg.WindowSeconds), nil
	case KindTokenBucket:
		if cfg.Capacity <= 0 || cfg.RefillRate <= 0 {
			return nil, kernelerr.New(kernelerr.InvalidInput, "token_bucket requires Capacity > 0 and RefillRate > 0")
		}
		return NewTokenBucket(cfg.Capacity, cfg.RefillRate), nil
	case KindFixedWindow:
		if cfg.MaxRequests <= 0 || cfg.WindowSeconds <= 0 {
			return nil, kernelerr.New(kernelerr.InvalidInput, "fixed_window requires MaxRequests > 0 and WindowSeconds > 0")
		}
		return NewFixedWindow(cfg.MaxRequests, cfg.WindowSeconds), nil
	default:
		return nil, kernelerr.Newf(kernelerr.InvalidInput, "unknown limiter kind %q", kind)
	}
}
