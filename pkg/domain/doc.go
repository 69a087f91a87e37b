/*
Package domain contains the core domain models for the Espalier engine.

It defines the entities of the action-resolution pipeline: configured Action
Items, the read-only Post Context they are resolved against, and the Render
Descriptors the engine emits. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - ActionItem: One configured, user-facing action row in a list.
  - PostContext: Permissions and state of the post the list is attached to.
  - Descriptor: How one item should be presented and what its activation does.
  - RenderNode: A fully composed item (descriptor + tooltip + popup spec).
*/
package domain
