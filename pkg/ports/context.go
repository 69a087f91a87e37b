package ports

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
)

// PostContextSource supplies the read-only post record an action list is
// resolved against. The engine performs no network I/O itself: a source may
// wrap an HTTP client, a cache, or an in-memory fixture, and the engine
// treats every failure mode identically to "no context yet".
type PostContextSource interface {
	// Fetch retrieves the context record for a post.
	// Returns domain.ErrContextNotFound if no record exists.
	Fetch(ctx context.Context, postID int64) (*domain.PostContext, error)
}

// AuthorContextSource is implemented by sources that can resolve a record
// by the author owning its post. The follow-author action URL carries a
// user_id instead of a post_id, so the action endpoint needs this lookup
// to find the record holding the nonce.
type AuthorContextSource interface {
	// FetchByAuthor retrieves a context record for a post owned by the
	// given author. When the author owns several posts the lowest post ID
	// wins, keeping the lookup deterministic.
	// Returns domain.ErrContextNotFound if no record matches.
	FetchByAuthor(ctx context.Context, authorID int64) (*domain.PostContext, error)
}

// ContextWriter is implemented by sources that can be seeded or refreshed.
type ContextWriter interface {
	// Put stores (or replaces) the record for its post ID.
	Put(ctx context.Context, record *domain.PostContext) error

	// Delete removes the record for a post.
	Delete(ctx context.Context, postID int64) error
}
