// Package resolve implements the action resolution policy: the decision
// table mapping (action kind, render context, post context, permissions) to
// a render descriptor. Each kind is handled by its own pure handler
// registered in a registry, so every kind's contract stays independently
// testable.
package resolve

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/registry"
)

// Policy is the core decision engine. It is stateless between calls: every
// descriptor is computed fresh from the inputs.
type Policy struct {
	registry  *registry.Registry
	evaluator ports.RuleEvaluator
	clock     ports.Clock
	origin    string
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
}

// PolicyOption configures a Policy.
type PolicyOption func(*Policy)

// WithRuleEvaluator injects the host's row-level rule evaluator.
func WithRuleEvaluator(eval ports.RuleEvaluator) PolicyOption {
	return func(p *Policy) {
		p.evaluator = eval
	}
}

// WithClock injects the clock feeding calendar descriptor construction.
func WithClock(clock ports.Clock) PolicyOption {
	return func(p *Policy) {
		p.clock = clock
	}
}

// WithOrigin sets the origin suffix for generated calendar UIDs.
func WithOrigin(origin string) PolicyOption {
	return func(p *Policy) {
		p.origin = origin
	}
}

// WithLogger sets a structured logger. Default: discard.
func WithLogger(logger *slog.Logger) PolicyOption {
	return func(p *Policy) {
		p.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) PolicyOption {
	return func(p *Policy) {
		p.hooks = hooks
	}
}

// WithRegistry replaces the handler registry. The built-in handlers are
// still registered first, so hosts can override individual kinds.
func WithRegistry(reg *registry.Registry) PolicyOption {
	return func(p *Policy) {
		p.registry = reg
	}
}

// NewPolicy creates a policy with all built-in kind handlers registered.
func NewPolicy(opts ...PolicyOption) *Policy {
	p := &Policy{
		registry: registry.NewRegistry(),
		clock:    time.Now,
		origin:   "localhost",
	}
	registerBuiltins(p.registry)
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p
}

// Registry exposes the handler registry so hosts can register custom kinds.
func (p *Policy) Registry() *registry.Registry {
	return p.registry
}

// Resolve computes the descriptor for one item. ok=false means the item is
// not rendered at all. Resolution never fails: malformed configuration
// downgrades to a container, never an error.
func (p *Policy) Resolve(ctx context.Context, item domain.ActionItem, rc domain.RenderContext, post *domain.PostContext) (domain.Descriptor, bool) {
	// Row-level directive: an unconditional hide wins in both contexts, so
	// authors can park configured rows without deleting them.
	if item.Visibility.Directive == domain.DirectiveHide && len(item.Visibility.Rules) == 0 {
		p.skipped(ctx, item, rc, domain.SkipDirective)
		return domain.Descriptor{}, false
	}

	live := rc == domain.ContextLive

	// Conditional rules are decided by the host's evaluator, live only.
	// A nil evaluator or an evaluation error fails open.
	if live && len(item.Visibility.Rules) > 0 && p.evaluator != nil {
		visible, err := p.evaluator(ctx, item.Visibility.Rules, post)
		if err != nil {
			p.logger.Warn("visibility rule evaluation failed, keeping item visible",
				"item", item.ID, "err", err)
		} else if !visible {
			p.skipped(ctx, item, rc, domain.SkipDirective)
			return domain.Descriptor{}, false
		}
	}

	if item.Kind.PostDependent() && post == nil {
		if live {
			p.skipped(ctx, item, rc, domain.SkipNoContext)
			return domain.Descriptor{}, false
		}
		// Preview must show every configured item; without context the
		// item degrades to a non-interactive placeholder.
		desc := domain.Container(defaultDisplay(item))
		p.resolved(ctx, item, rc)
		return desc, true
	}

	handler, known := p.registry.Lookup(item.Kind)
	if !known {
		// Configuration skew: a newer host configured a kind this engine
		// does not implement. Render a placeholder rather than failing.
		p.logger.Debug("unrecognized action kind", "item", item.ID, "kind", item.Kind)
		desc := domain.Container(defaultDisplay(item))
		p.resolved(ctx, item, rc)
		return desc, true
	}

	desc, ok := handler(registry.Request{
		Item:    item,
		Context: rc,
		Post:    post,
		Now:     p.clock(),
		Origin:  p.origin,
	})
	if !ok {
		p.skipped(ctx, item, rc, domain.SkipIneligible)
		return domain.Descriptor{}, false
	}

	p.resolved(ctx, item, rc)
	return desc, true
}

func (p *Policy) resolved(ctx context.Context, item domain.ActionItem, rc domain.RenderContext) {
	if p.hooks.OnItemResolved == nil {
		return
	}
	p.hooks.OnItemResolved(ctx, &domain.ItemEvent{
		Timestamp: p.clock(),
		Type:      domain.EventItemResolved,
		ItemID:    item.ID,
		Kind:      item.Kind,
		Context:   rc,
	})
}

func (p *Policy) skipped(ctx context.Context, item domain.ActionItem, rc domain.RenderContext, reason string) {
	if p.hooks.OnItemSkipped == nil {
		return
	}
	p.hooks.OnItemSkipped(ctx, &domain.ItemEvent{
		Timestamp: p.clock(),
		Type:      domain.EventItemSkipped,
		ItemID:    item.ID,
		Kind:      item.Kind,
		Context:   rc,
		Reason:    reason,
	})
}

// defaultDisplay is the item-level text/icon pair.
func defaultDisplay(item domain.ActionItem) domain.Display {
	return domain.Display{Label: item.Label, Icon: item.Icon}
}

// activeDisplay is the alternate pair for toggleable kinds, falling back to
// the default pair when no active variant is configured.
func activeDisplay(item domain.ActionItem) *domain.Display {
	d := domain.Display{Label: item.ActiveLabel, Icon: item.ActiveIcon}
	if d.Label == "" {
		d.Label = item.Label
	}
	if d.Icon == "" {
		d.Icon = item.Icon
	}
	return &d
}
