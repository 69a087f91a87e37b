package ports

import "time"

// Rect is an element bounding box in document coordinates.
type Rect struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// Viewport abstracts the host's layout surface so popup geometry can be
// computed and tested without a real browser environment.
type Viewport interface {
	// Bounds returns the bounding box of an element, false if it is absent.
	Bounds(id string) (Rect, bool)

	// MinWidth returns the styled minimum width of an element, 0 if none.
	MinWidth(id string) float64

	// Viewport returns the visible viewport size.
	Viewport() Size

	// Document returns the full document size.
	Document() Size

	// ScrollY returns the vertical scroll offset of the viewport.
	ScrollY() float64

	// Contains reports whether descendantID is inside ancestorID's subtree.
	// Used to classify pointer-down targets for dismissal.
	Contains(ancestorID, descendantID string) bool

	// Observe registers fn to run after any geometry-affecting change
	// (ancestor scroll, window resize, panel content-size change).
	// The returned cancel deterministically removes the registration.
	Observe(fn func()) (cancel func())

	// Schedule runs fn once layout has settled after the current render
	// pass, so bounding boxes read inside fn are not stale.
	// The returned cancel drops the callback if it has not run yet.
	Schedule(fn func()) (cancel func())
}

// History abstracts host navigation history for the go-back effect.
type History interface {
	Back()
}

// Scroller abstracts host scrolling for the back-to-top and
// scroll-to-section effects.
type Scroller interface {
	// ToTop scrolls the window to the top, smoothly.
	ToTop()

	// ToElement scrolls the named element into view, smoothly.
	// Returns false (a no-op) if the element is absent.
	ToElement(id string) bool
}

// Clock supplies the current instant. Production code uses time.Now;
// tests inject a fixed value for deterministic DTSTAMP/UID output.
type Clock func() time.Time
