// Package env provides a structure for managing application-wide dependencies.
package env

import (
	"context"
	"log/slog"

	"github.com/Parker-ink/foodgram-project-react/internal/config"
	"github.com/Parker-ink/foodgram-project-react/internal/database"
	"github.com/Parker-ink/foodgram-project-react/internal/filestore"
	"github.com/Parker-ink/foodgram-project-react/internal/log"
	"github.com/Parker-ink/foodgram-project-react/internal/relation"
	"github.com/Parker-ink/foodgram-project-react/internal/shopping"
	"github.com/Parker-ink/foodgram-project-react/internal/view"

	recipepkg "github.com/Parker-ink/foodgram-project-react/internal/recipe"
)

// Env holds the per-process dependencies handlers reach through the
// request context.
type Env struct {
	Logger    *slog.Logger
	Database  database.Store
	FileStore filestore.FileStoreInterface
	Config    config.Config

	Composer   *recipepkg.Composer
	Toggler    *relation.Toggler
	Aggregator *shopping.Aggregator
	Projector  *view.Projector
}

// New wires the domain services over the given store.
func New(logger *slog.Logger, store database.Store, fs filestore.FileStoreInterface, conf config.Config) *Env {
	if logger == nil {
		logger = log.NullLogger()
	}
	toggler := relation.NewToggler(store)
	return &Env{
		Logger:     logger,
		Database:   store,
		FileStore:  fs,
		Config:     conf,
		Composer:   recipepkg.NewComposer(store),
		Toggler:    toggler,
		Aggregator: shopping.NewAggregator(store),
		Projector:  view.NewProjector(store, toggler),
	}
}

type envKeyType struct{}

var envKey envKeyType

// WithCtx injects the Env into a context.
func WithCtx(ctx context.Context, e *Env) context.Context {
	return context.WithValue(ctx, envKey, e)
}

// EnvFromCtx extracts the Env from a context. Returns a null Env when
// absent so callers can always log.
func EnvFromCtx(ctx context.Context) *Env {
	if e, ok := ctx.Value(envKey).(*Env); ok {
		return e
	}
	return &Env{Logger: log.NullLogger()}
}
