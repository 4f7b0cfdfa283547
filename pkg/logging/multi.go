package logging

import (
	"context"
	"errors"
	"log/slog"
)

// TeeHandler fans every record out to several handlers, each filtering by
// its own level. Open uses it to copy console logs into a file.
type TeeHandler []slog.Handler

// NewTeeHandler returns a handler writing to all of handlers.
func NewTeeHandler(handlers ...slog.Handler) TeeHandler {
	return TeeHandler(handlers)
}

// Enabled reports whether any handler accepts level.
func (t TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes a copy of r to every handler enabled for its level. A failing
// handler does not stop the others; their errors are joined.
func (t TeeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (t TeeHandler) WithGroup(name string) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (t TeeHandler) each(fn func(slog.Handler) slog.Handler) TeeHandler {
	out := make(TeeHandler, len(t))
	for i, h := range t {
		out[i] = fn(h)
	}
	return out
}
