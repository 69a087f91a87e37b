// Package cli assembles engines and sources from command-line options,
// keeping the cobra commands thin.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/config"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/espalier/pkg/adapters/redis"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// Options carries the flags shared by the engine-backed commands.
type Options struct {
	// Dir is the catalog directory (Loam repository).
	Dir string

	// ContextsPath optionally seeds an in-memory context source from a
	// YAML/JSON file of post snapshots.
	ContextsPath string

	// RedisAddr optionally wraps the context source in a Redis cache.
	RedisAddr string

	// Origin feeds calendar UID generation.
	Origin string

	Debug bool
}

// NewEngine initializes an engine with standard CLI conventions.
func NewEngine(opts Options, logger *slog.Logger) (*espalier.Engine, error) {
	engineOpts := []espalier.Option{
		espalier.WithLogger(logger),
	}
	if opts.Debug {
		engineOpts = append(engineOpts, espalier.WithLifecycleHooks(debugHooks(logger)))
	}
	if opts.Origin != "" {
		engineOpts = append(engineOpts, espalier.WithOrigin(opts.Origin))
	}

	source, err := buildSource(opts)
	if err != nil {
		return nil, err
	}
	if source != nil {
		engineOpts = append(engineOpts, espalier.WithSource(source))
	}

	engine, err := espalier.New(opts.Dir, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// buildSource assembles the context source chain: seeded memory store,
// optionally behind a Redis cache. Returns nil when no contexts are
// configured.
func buildSource(opts Options) (ports.PostContextSource, error) {
	if opts.ContextsPath == "" && opts.RedisAddr == "" {
		return nil, nil
	}

	mem := memory.NewSource()
	if opts.ContextsPath != "" {
		posts, err := config.LoadContexts(opts.ContextsPath)
		if err != nil {
			return nil, err
		}
		ctx := context.Background()
		for i := range posts {
			if err := mem.Put(ctx, &posts[i]); err != nil {
				return nil, fmt.Errorf("failed to seed context %d: %w", posts[i].ID, err)
			}
		}
	}

	if opts.RedisAddr == "" {
		return mem, nil
	}

	client := backend.NewClient(&backend.Options{Addr: opts.RedisAddr})
	return redisAdapter.NewFromClient(client, mem), nil
}

// debugHooks logs every resolution decision.
func debugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnItemResolved: func(_ context.Context, e *domain.ItemEvent) {
			logger.Debug("item resolved", "item", e.ItemID, "kind", e.Kind, "context", e.Context)
		},
		OnItemSkipped: func(_ context.Context, e *domain.ItemEvent) {
			logger.Debug("item skipped", "item", e.ItemID, "kind", e.Kind, "reason", e.Reason)
		},
	}
}
