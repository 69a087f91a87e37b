package ports

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
)

// Resolver is the core decision engine: configuration in, descriptors out.
// It is stateless; adapters (HTTP, MCP, CLI) hold no engine state between
// calls.
type Resolver interface {
	// Resolve computes the descriptor for a single item.
	// ok is false when the item must not be rendered at all.
	Resolve(ctx context.Context, item domain.ActionItem, rc domain.RenderContext, post *domain.PostContext) (domain.Descriptor, bool)

	// Compose resolves an ordered item list into renderable nodes,
	// attaching tooltip attributes and popup specs.
	Compose(ctx context.Context, items []domain.ActionItem, rc domain.RenderContext, post *domain.PostContext) []domain.RenderNode
}
