// Package memory provides in-memory adapters: a post context source and an
// action catalog. Both are safe for concurrent use and intended for tests,
// the CLI, and as seeds behind caching layers.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/espalier/pkg/domain"
)

// Source implements ports.PostContextSource and ports.ContextWriter in
// memory.
type Source struct {
	data map[int64]*domain.PostContext
	mu   sync.RWMutex
}

// NewSource creates an empty in-memory source.
func NewSource() *Source {
	return &Source{
		data: make(map[int64]*domain.PostContext),
	}
}

// Put stores a copy of the record under its post ID.
func (s *Source) Put(ctx context.Context, record *domain.PostContext) error {
	copied := cloneContext(record)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[record.ID] = copied
	return nil
}

// Fetch retrieves the record for a post.
func (s *Source) Fetch(ctx context.Context, postID int64) (*domain.PostContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.data[postID]
	if !ok {
		return nil, domain.ErrContextNotFound
	}

	// Copy on read so the caller can't mutate stored state by pointer.
	return cloneContext(record), nil
}

// FetchByAuthor retrieves the record for the author's lowest-numbered post.
func (s *Source) FetchByAuthor(ctx context.Context, authorID int64) (*domain.PostContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var match *domain.PostContext
	for _, record := range s.data {
		if record.AuthorID != authorID {
			continue
		}
		if match == nil || record.ID < match.ID {
			match = record
		}
	}
	if match == nil {
		return nil, domain.ErrContextNotFound
	}
	return cloneContext(match), nil
}

// Delete removes the record for a post.
func (s *Source) Delete(ctx context.Context, postID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, postID)
	return nil
}

func cloneContext(record *domain.PostContext) *domain.PostContext {
	copied := *record
	if record.Nonces != nil {
		copied.Nonces = make(map[string]string, len(record.Nonces))
		for k, v := range record.Nonces {
			copied.Nonces[k] = v
		}
	}
	if record.EditSteps != nil {
		copied.EditSteps = make([]domain.EditStep, len(record.EditSteps))
		copy(copied.EditSteps, record.EditSteps)
	}
	return &copied
}
