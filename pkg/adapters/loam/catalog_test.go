package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/internal/testutils"
	"github.com/aretw0/espalier/pkg/domain"
)

func TestCatalog_GetAndList(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t, loam.WithVersioning(false))

	testutils.SeedActions(t, repo, map[string]string{
		"follow.md": `---
kind: follow_post
label: Follow
active_label: Following
order: 1
tooltip:
  text: Get updates
  enabled: true
---
`,
		"website.md": `---
kind: link
label: Website
order: 2
link:
  url: https://example.org
  external: true
---
`,
		"share.md": `---
kind: share_post
label: Share
---
`,
	})

	ctx := context.Background()
	catalog := New(loam.NewTypedRepository[ItemMetadata](repo))

	t.Run("Get Normalizes File IDs", func(t *testing.T) {
		item, err := catalog.Get(ctx, "follow")
		require.NoError(t, err)
		assert.Equal(t, "follow", item.ID)
		assert.Equal(t, domain.KindFollowPost, item.Kind)
		assert.Equal(t, "Following", item.ActiveLabel)
		assert.True(t, item.Tooltip.Enabled)
		assert.Equal(t, "Get updates", item.Tooltip.Text)
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := catalog.Get(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("List Sorts Ordered First", func(t *testing.T) {
		items, err := catalog.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 3)

		assert.Equal(t, "follow", items[0].ID)
		assert.Equal(t, "website", items[1].ID)
		// No order field: sorts after the ordered items.
		assert.Equal(t, "share", items[2].ID)

		assert.True(t, items[1].Link.External)
	})
}

func TestCatalog_DuplicateIDs(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t, loam.WithVersioning(false))

	testutils.SeedActions(t, repo, map[string]string{
		"one.md": `---
id: clash
kind: link
---
`,
		"two.md": `---
id: clash
kind: back_to_top
---
`,
	})

	catalog := New(loam.NewTypedRepository[ItemMetadata](repo))
	_, err := catalog.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}
