/*
Package espalier is a deterministic action resolution engine: it maps a
configured list of action items plus a post context snapshot to concrete
render descriptors (links, toggles, popup triggers, calendar files).

It separates the action configuration (the catalog) from the per-post state
(the context) and from side-effects (the host executes actions, the engine
only describes them).

# Concept

A site author configures an ordered list of actions: follow this post, add
it to a calendar, buy the product, edit it. What each action renders as
depends on who is looking and on the state of the post: an unpublished post
shows "Publish" instead of "Unpublish", a visitor without delete permission
never sees "Delete", the authoring preview shows everything. Espalier is
that decision table as a library. Resolution is pure and deterministic:
given the same item, context, and post snapshot, the descriptor is always
reproducible, and no resolver performs I/O.

# Key Features

  - Deterministic Resolution: same inputs, same descriptor, every time.
  - Hexagonal Architecture: core policy is decoupled from adapters
    (catalog storage, context sources, HTTP, MCP).
  - Closed Kind Set: unknown action kinds degrade to inert placeholders
    instead of failing the whole list.
  - Preview Safety: the authoring preview renders every configured item
    and never triggers live effects.

# Usage

Initialize the engine with the default filesystem catalog (Loam) or inject
a custom one.

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/espalier"
		"github.com/aretw0/espalier/pkg/domain"
	)

	func main() {
		// Initialize Engine with default settings (reads from ./actions)
		eng, err := espalier.New("./actions")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()

		// Resolve the catalog against a post snapshot
		post := &domain.PostContext{
			ID:     42,
			Status: domain.StatusPublish,
			Link:   "https://example.com/places/42",
		}
		nodes, err := eng.Render(ctx, domain.ContextLive, post)
		if err != nil {
			log.Fatal(err)
		}

		for _, node := range nodes {
			log.Println(node.Item.ID, node.Descriptor.Href)
		}
	}
*/
package espalier
