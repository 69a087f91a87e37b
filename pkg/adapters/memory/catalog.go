package memory

import (
	"context"
	"sync"

	"github.com/aretw0/espalier/pkg/domain"
)

// Catalog implements ports.ActionCatalog over a fixed, ordered item list.
type Catalog struct {
	items []domain.ActionItem
	index map[string]int
	mu    sync.RWMutex
}

// NewCatalog creates a catalog from the provided items. Authored order is
// preserved; later duplicates replace earlier ones in place.
func NewCatalog(items ...domain.ActionItem) *Catalog {
	c := &Catalog{index: make(map[string]int)}
	for _, item := range items {
		if pos, ok := c.index[item.ID]; ok {
			c.items[pos] = item
			continue
		}
		c.index[item.ID] = len(c.items)
		c.items = append(c.items, item)
	}
	return c
}

// Get retrieves one item by ID.
func (c *Catalog) Get(ctx context.Context, id string) (domain.ActionItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pos, ok := c.index[id]
	if !ok {
		return domain.ActionItem{}, domain.ErrItemNotFound
	}
	return c.items[pos], nil
}

// List returns all items in authored order.
func (c *Catalog) List(ctx context.Context) ([]domain.ActionItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.ActionItem, len(c.items))
	copy(out, c.items)
	return out, nil
}
