// Package log builds the process logger: slog with JSON output plus
// attributes accumulated on the request context.
package log

import (
	"context"
	"log/slog"
	"os"
)

type slogFieldKey struct{}

var slogFields slogFieldKey

// contextHandler augments every record with the attributes stored on
// the context via AppendCtx.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

// AppendCtx attaches an attribute to the context. Every record logged
// with that context carries it, which is how the request id reaches
// log lines deep in handlers.
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	if v, ok := parent.Value(slogFields).([]slog.Attr); ok {
		return context.WithValue(parent, slogFields, append(v, attr))
	}
	return context.WithValue(parent, slogFields, []slog.Attr{attr})
}

// New returns the process logger writing JSON to stderr. Nil options
// default to debug level.
func New(options *slog.HandlerOptions) *slog.Logger {
	if options == nil {
		options = &slog.HandlerOptions{Level: slog.LevelDebug}
	}
	return slog.New(contextHandler{Handler: slog.NewJSONHandler(os.Stderr, options)})
}

// NullLogger discards every record. Used in tests.
func NullLogger() *slog.Logger {
	return slog.New(contextHandler{Handler: slog.DiscardHandler})
}
