// Package redis provides a caching post context source backed by Redis.
// It decorates another source: reads go through the cache, writes pass
// through to the upstream and invalidate the cached entry.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// ErrReadOnlyUpstream is returned by Put/Delete when the decorated source
// does not accept writes.
var ErrReadOnlyUpstream = errors.New("upstream context source is read-only")

const defaultTTL = 5 * time.Minute

// Source implements ports.PostContextSource with a Redis read-through cache.
type Source struct {
	client   *backend.Client
	upstream ports.PostContextSource
	ttl      time.Duration
	prefix   string
}

// Option configures a Source.
type Option func(*Source)

// WithTTL sets the cache entry lifetime. Default: 5 minutes.
func WithTTL(ttl time.Duration) Option {
	return func(s *Source) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix. Default: "espalier:ctx:".
func WithPrefix(prefix string) Option {
	return func(s *Source) {
		s.prefix = prefix
	}
}

// NewFromClient creates a caching source over an existing Redis client.
func NewFromClient(client *backend.Client, upstream ports.PostContextSource, opts ...Option) *Source {
	s := &Source{
		client:   client,
		upstream: upstream,
		ttl:      defaultTTL,
		prefix:   "espalier:ctx:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) key(postID int64) string {
	return s.prefix + strconv.FormatInt(postID, 10)
}

// Fetch returns the cached record when present, otherwise delegates to the
// upstream and caches the result. Cache write failures are not fatal: the
// upstream record is still returned.
func (s *Source) Fetch(ctx context.Context, postID int64) (*domain.PostContext, error) {
	raw, err := s.client.Get(ctx, s.key(postID)).Bytes()
	if err == nil {
		var record domain.PostContext
		if err := json.Unmarshal(raw, &record); err == nil {
			return &record, nil
		}
		// Corrupt entry: fall through to the upstream and overwrite it.
	} else if !errors.Is(err, backend.Nil) {
		return nil, fmt.Errorf("redis error reading context cache: %w", err)
	}

	record, err := s.upstream.Fetch(ctx, postID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(record); err == nil {
		s.client.Set(ctx, s.key(postID), payload, s.ttl)
	}
	return record, nil
}

// FetchByAuthor forwards author lookups to the upstream. Author-keyed
// results are never cached: the post ID they resolve to can change as the
// author publishes, so only post-keyed entries live in Redis.
func (s *Source) FetchByAuthor(ctx context.Context, authorID int64) (*domain.PostContext, error) {
	byAuthor, ok := s.upstream.(ports.AuthorContextSource)
	if !ok {
		return nil, domain.ErrContextNotFound
	}
	return byAuthor.FetchByAuthor(ctx, authorID)
}

// Put forwards to the upstream writer and drops the cached entry.
func (s *Source) Put(ctx context.Context, record *domain.PostContext) error {
	writer, ok := s.upstream.(ports.ContextWriter)
	if !ok {
		return ErrReadOnlyUpstream
	}
	if err := writer.Put(ctx, record); err != nil {
		return err
	}
	return s.Invalidate(ctx, record.ID)
}

// Delete forwards to the upstream writer and drops the cached entry.
func (s *Source) Delete(ctx context.Context, postID int64) error {
	writer, ok := s.upstream.(ports.ContextWriter)
	if !ok {
		return ErrReadOnlyUpstream
	}
	if err := writer.Delete(ctx, postID); err != nil {
		return err
	}
	return s.Invalidate(ctx, postID)
}

// Invalidate removes the cached entry for a post.
func (s *Source) Invalidate(ctx context.Context, postID int64) error {
	if err := s.client.Del(ctx, s.key(postID)).Err(); err != nil {
		return fmt.Errorf("redis error invalidating context cache: %w", err)
	}
	return nil
}
