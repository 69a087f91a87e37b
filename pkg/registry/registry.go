package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/aretw0/espalier/pkg/domain"
)

// Request carries everything a kind handler may consult. Handlers never
// mutate it.
type Request struct {
	Item    domain.ActionItem
	Context domain.RenderContext
	Post    *domain.PostContext

	// Now and Origin feed the calendar codec.
	Now    time.Time
	Origin string
}

// Live reports whether runtime eligibility gates apply. The authoring
// preview shows every configured item regardless of eligibility.
func (r Request) Live() bool {
	return r.Context == domain.ContextLive
}

// HandlerFunc resolves one action kind into a descriptor.
// ok=false hides the item; handlers only return false in the live context.
type HandlerFunc func(req Request) (domain.Descriptor, bool)

// Registry manages the available kind handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[domain.ActionKind]HandlerFunc
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[domain.ActionKind]HandlerFunc),
	}
}

// Register adds a handler for a kind.
// If a handler for the same kind exists, it is overwritten. This lets hosts
// override a built-in or teach the engine a custom kind.
func (r *Registry) Register(kind domain.ActionKind, fn HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[kind] = fn
}

// Lookup returns the handler for a kind, or false when the kind is unknown.
// Callers render unknown kinds as non-interactive containers.
func (r *Registry) Lookup(kind domain.ActionKind) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.handlers[kind]
	return fn, ok
}

// Kinds returns the registered kinds in sorted order, for introspection.
func (r *Registry) Kinds() []domain.ActionKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]domain.ActionKind, 0, len(r.handlers))
	for k := range r.handlers {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
