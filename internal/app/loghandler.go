package app

import (
	"context"
	"log/slog"
)

// teeHandler writes every record to each of its sinks that accepts the record's level.
// A failing sink does not stop the others from receiving the record.
type teeHandler struct {
	sinks []slog.Handler
}

func newTeeHandler(sinks ...slog.Handler) *teeHandler {
	return &teeHandler{sinks: sinks}
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sink := range h.sinks {
		if sink.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (h *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, sink := range h.sinks {
		if sink.Enabled(ctx, record.Level) {
			_ = sink.Handle(ctx, record.Clone())
		}
	}

	return nil
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(sink slog.Handler) slog.Handler { return sink.WithAttrs(attrs) })
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return h.derive(func(sink slog.Handler) slog.Handler { return sink.WithGroup(name) })
}

func (h *teeHandler) derive(fn func(slog.Handler) slog.Handler) *teeHandler {
	sinks := make([]slog.Handler, len(h.sinks))
	for i, sink := range h.sinks {
		sinks[i] = fn(sink)
	}

	return &teeHandler{sinks: sinks}
}
