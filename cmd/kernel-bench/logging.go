package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// componentHandler wraps a slog.Handler to prepend [component] to the
// message, the same remap bootstrap.InitLogger applies upstream for
// Cloud-Logging-compatible output, adapted here for a plain CLI harness
// with no GCP destination.
type componentHandler struct {
	slog.Handler
}

func (h *componentHandler) Handle(ctx context.Context, r slog.Record) error {
	var component string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "component" {
			component = a.Value.String()
			return false
		}
		return true
	})

	if component != "" {
		newRecord := slog.NewRecord(r.Time, r.Level, fmt.Sprintf("[%s] %s", component, r.Message), r.PC)
		r.Attrs(func(a slog.Attr) bool {
			if a.Key != "component" {
				newRecord.AddAttrs(a)
			}
			return true
		})
		r = newRecord
	}
	return h.Handler.Handle(ctx, r)
}

// slogHandlerOptions remaps the standard level/message keys to severity/
// message, matching bootstrap.GetSlogHandlerOptions's Cloud-Logging shape.
func slogHandlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.MessageKey {
				return slog.Attr{Key: "message", Value: a.Value}
			}
			if a.Key == slog.LevelKey {
				return slog.Attr{Key: "severity", Value: a.Value}
			}
			return a
		},
	}
}

// levelFromEnv reads KERNEL_LOG_LEVEL, defaulting to info, the same
// flags-plus-env convention fit-inspect/bootstrap.LoadConfig use instead
// of a config file.
func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("KERNEL_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stderr, slogHandlerOptions(levelFromEnv()))
	return slog.New(&componentHandler{Handler: handler})
}
