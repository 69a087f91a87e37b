package espalier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/loam"

	"github.com/aretw0/espalier/internal/resolve"
	loamAdapter "github.com/aretw0/espalier/pkg/adapters/loam"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/registry"
)

// Engine is the high-level entry point for the Espalier library.
// It wraps the internal resolution policy and provides a simplified API for
// consumers.
type Engine struct {
	policy  *resolve.Policy
	catalog ports.ActionCatalog
	source  ports.PostContextSource

	policyOpts []resolve.PolicyOption
	logger     *slog.Logger
	Name       string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCatalog injects a custom action catalog, bypassing the default Loam
// initialization.
func WithCatalog(c ports.ActionCatalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithSource attaches a post context source used by Render when a post ID
// is given instead of an inline snapshot.
func WithSource(s ports.PostContextSource) Option {
	return func(e *Engine) {
		e.source = s
	}
}

// WithRuleEvaluator sets the host's row-level visibility rule evaluator.
func WithRuleEvaluator(eval ports.RuleEvaluator) Option {
	return func(e *Engine) {
		e.policyOpts = append(e.policyOpts, resolve.WithRuleEvaluator(eval))
	}
}

// WithClock injects the clock used for calendar descriptors.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.policyOpts = append(e.policyOpts, resolve.WithClock(clock))
	}
}

// WithOrigin sets the origin suffix for generated calendar UIDs.
func WithOrigin(origin string) Option {
	return func(e *Engine) {
		e.policyOpts = append(e.policyOpts, resolve.WithOrigin(origin))
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.policyOpts = append(e.policyOpts, resolve.WithLifecycleHooks(hooks))
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Espalier Engine.
// By default, it uses a Loam repository at the given path as the action
// catalog. If WithCatalog is provided, repoPath can be empty and Loam is
// skipped.
func New(repoPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	// Apply options first to check if a catalog is provided
	for _, opt := range opts {
		opt(eng)
	}

	// If no catalog was injected, initialize the default Loam adapter
	if eng.catalog == nil {
		if repoPath == "" {
			return nil, fmt.Errorf("repoPath is required when no custom catalog is provided")
		}

		absPath, err := filepath.Abs(repoPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}

		eng.Name = filepath.Base(absPath)

		// Strict mode keeps numeric frontmatter types consistent across
		// Loam's JSON and YAML codecs. ReadOnly avoids Loam's sandbox
		// behavior in dev mode: the engine never writes to the catalog.
		repo, err := loam.Init(absPath,
			loam.WithStrict(true),
			loam.WithReadOnly(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize loam: %w", err)
		}

		typedRepo := loam.NewTypedRepository[loamAdapter.ItemMetadata](repo)
		eng.catalog = loamAdapter.New(typedRepo)
	} else if repoPath != "" {
		// A custom catalog still gets a descriptive label from the path.
		eng.Name = filepath.Base(repoPath)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("catalog", eng.Name)
	}

	policyOpts := append([]resolve.PolicyOption{resolve.WithLogger(eng.logger)}, eng.policyOpts...)
	eng.policy = resolve.NewPolicy(policyOpts...)

	return eng, nil
}

// Resolve computes the render descriptor for a single item. ok=false means
// the item is hidden in the given context.
func (e *Engine) Resolve(ctx context.Context, item domain.ActionItem, rc domain.RenderContext, post *domain.PostContext) (domain.Descriptor, bool) {
	return e.policy.Resolve(ctx, item, rc, post)
}

// Compose resolves an explicit item list into render nodes, dropping hidden
// items and preserving the authored order.
func (e *Engine) Compose(ctx context.Context, items []domain.ActionItem, rc domain.RenderContext, post *domain.PostContext) []domain.RenderNode {
	return e.policy.Compose(ctx, items, rc, post)
}

// Render resolves the configured catalog against a post context. post may
// be nil: post-dependent items then stay hidden in the live context and
// degrade to placeholders in preview.
func (e *Engine) Render(ctx context.Context, rc domain.RenderContext, post *domain.PostContext) ([]domain.RenderNode, error) {
	items, err := e.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog list failed: %w", err)
	}
	return e.policy.Compose(ctx, items, rc, post), nil
}

// RenderPost is Render with the context looked up in the configured source.
// A missing record renders like a nil context rather than failing.
func (e *Engine) RenderPost(ctx context.Context, rc domain.RenderContext, postID int64) ([]domain.RenderNode, error) {
	var post *domain.PostContext
	if e.source != nil {
		fetched, err := e.source.Fetch(ctx, postID)
		switch {
		case err == nil:
			post = fetched
		case errors.Is(err, domain.ErrContextNotFound):
			e.logger.Debug("no context record", "post_id", postID)
		default:
			return nil, fmt.Errorf("context fetch failed: %w", err)
		}
	}
	return e.Render(ctx, rc, post)
}

// Inspect returns the configured action items for visualization or
// introspection tools.
func (e *Engine) Inspect(ctx context.Context) ([]domain.ActionItem, error) {
	return e.catalog.List(ctx)
}

// Watch returns a channel that signals when the underlying catalog changes.
// Returns an error if the catalog does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan struct{}, error) {
	if w, ok := e.catalog.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current catalog does not support watching")
}

// Registry exposes the kind handler registry so hosts can register custom
// action kinds.
func (e *Engine) Registry() *registry.Registry {
	return e.policy.Registry()
}

// Catalog returns the underlying action catalog used by the engine.
func (e *Engine) Catalog() ports.ActionCatalog {
	return e.catalog
}

// Source returns the configured post context source, if any.
func (e *Engine) Source() ports.PostContextSource {
	return e.source
}
