package ports

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
)

// ActionCatalog defines how the engine retrieves the configured action list.
// This decouples the storage layer (Loam, YAML file, memory) from resolution.
type ActionCatalog interface {
	// Get retrieves one item by ID.
	// Returns domain.ErrItemNotFound if the ID is unknown.
	Get(ctx context.Context, id string) (domain.ActionItem, error)

	// List returns all configured items in their authored order.
	List(ctx context.Context) ([]domain.ActionItem, error)
}

// Watchable defines an interface for catalogs that can notify about backend
// changes. Typically used for hot-reload in dev mode.
type Watchable interface {
	// Watch returns a channel that is signaled when the catalog changes.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
