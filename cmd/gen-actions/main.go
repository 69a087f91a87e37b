package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/loam"

	loamAdapter "github.com/aretw0/espalier/pkg/adapters/loam"
	"github.com/aretw0/espalier/pkg/domain"
)

func main() {
	targetDir := "examples/starter-catalog"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	// Ensure dir exists
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		panic(err)
	}

	fmt.Printf("Generating starter catalog in: %s\n", targetDir)

	// Init Loam (No Versioning = pure file generation)
	repo, err := loam.Init(targetDir, loam.WithVersioning(false))
	if err != nil {
		panic(err)
	}

	typedRepo := loam.NewTypedRepository[loamAdapter.ItemMetadata](repo)
	ctx := context.TODO()

	// 1. Website link (context-free)
	websiteMeta := loamAdapter.ItemMetadata{
		ActionItem: domain.ActionItem{
			ID:    "website",
			Kind:  domain.KindLink,
			Label: "Website",
			Icon:  "globe",
			Link:  domain.LinkConfig{URL: "https://example.com", External: true},
		},
		Order: orderOf(10),
	}
	err = typedRepo.Save(ctx, &loam.DocumentModel[loamAdapter.ItemMetadata]{
		ID:      "website",
		Content: "Primary website link.",
		Data:    websiteMeta,
	})
	check(err)

	// 2. Follow (post-dependent, with paired tooltip)
	followMeta := loamAdapter.ItemMetadata{
		ActionItem: domain.ActionItem{
			ID:          "follow",
			Kind:        domain.KindFollowPost,
			Label:       "Follow",
			ActiveLabel: "Following",
			Icon:        "bell",
			ActiveIcon:  "bell-ring",
			Tooltip: domain.Tooltip{
				Enabled:       true,
				Text:          "Get notified about updates",
				ActiveEnabled: true,
				ActiveText:    "You are subscribed",
			},
		},
		Order: orderOf(20),
	}
	err = typedRepo.Save(ctx, &loam.DocumentModel[loamAdapter.ItemMetadata]{
		ID:      "follow",
		Content: "Subscribes the visitor to post updates.",
		Data:    followMeta,
	})
	check(err)

	// 3. Delete (post-dependent, needs a nonce at render time)
	deleteMeta := loamAdapter.ItemMetadata{
		ActionItem: domain.ActionItem{
			ID:    "delete",
			Kind:  domain.KindDeletePost,
			Label: "Delete",
			Icon:  "trash",
		},
		Order: orderOf(30),
	}
	err = typedRepo.Save(ctx, &loam.DocumentModel[loamAdapter.ItemMetadata]{
		ID:      "delete",
		Content: "Removes the post. Only rendered for authorized visitors.",
		Data:    deleteMeta,
	})
	check(err)

	fmt.Println("Done. Verify contents in", targetDir)
}

func orderOf(n int) *int {
	return &n
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
