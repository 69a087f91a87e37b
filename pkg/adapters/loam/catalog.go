// Package loam adapts the Loam document library to the action catalog port.
// Each action is one frontmatter file in the repository; the file name
// doubles as the item ID when the frontmatter does not set one.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/espalier/pkg/domain"
)

// Catalog adapts a Loam repository to the ActionCatalog interface.
type Catalog struct {
	Repo *loam.TypedRepository[ItemMetadata]
}

// New creates a new Loam catalog adapter.
func New(repo *loam.TypedRepository[ItemMetadata]) *Catalog {
	return &Catalog{
		Repo: repo,
	}
}

// Get retrieves one action item by ID.
// We trust Loam to find the file (e.g. follow.md) even if we ask for
// "follow".
func (c *Catalog) Get(ctx context.Context, id string) (domain.ActionItem, error) {
	doc, err := c.Repo.Get(ctx, id)
	if err != nil {
		return domain.ActionItem{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	return buildItem(doc.ID, doc.Data), nil
}

// List returns every action in the repository, sorted by the frontmatter
// order field (unordered items last, by ID). Duplicate IDs across files are
// a configuration error.
func (c *Catalog) List(ctx context.Context) ([]domain.ActionItem, error) {
	docs, err := c.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	type entry struct {
		item  domain.ActionItem
		order *int
	}

	seen := make(map[string]string)
	entries := make([]entry, 0, len(docs))

	for _, doc := range docs {
		item := buildItem(doc.ID, doc.Data)

		// Collision Detection
		if existingPath, ok := seen[item.ID]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", item.ID, existingPath, doc.ID)
		}
		seen[item.ID] = doc.ID

		entries = append(entries, entry{item: item, order: doc.Data.Order})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.order != nil && b.order != nil:
			if *a.order != *b.order {
				return *a.order < *b.order
			}
			return a.item.ID < b.item.ID
		case a.order != nil:
			return true
		case b.order != nil:
			return false
		default:
			return a.item.ID < b.item.ID
		}
	})

	items := make([]domain.ActionItem, len(entries))
	for i, e := range entries {
		items[i] = e.item
	}
	return items, nil
}

// Watch implements ports.Watchable.
func (c *Catalog) Watch(ctx context.Context) (<-chan struct{}, error) {
	// Watch all relevant files (recursive) using the doublestar pattern
	// supported by Loam.
	events, err := c.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan struct{}, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				// Coalesce: a pending signal already covers this change.
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()

	return ch, nil
}

func buildItem(docID string, meta ItemMetadata) domain.ActionItem {
	item := meta.ActionItem
	if item.ID == "" {
		item.ID = docID
	}
	item.ID = trimExtension(item.ID)
	return item
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
