package popup

import (
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/espalier/pkg/ports"
)

// State is the lifecycle position of a panel.
type State string

const (
	StateClosed State = "closed"
	StateOpen   State = "open"
)

// Panel drives one floating panel through its open/close lifecycle and keeps
// its geometry anchored to the trigger element. All listener registrations
// are scoped to the open lifetime: Close tears every one of them down, and a
// reposition computed before a Close never commits.
type Panel struct {
	mu sync.Mutex

	view      ports.Viewport
	triggerID string
	panelID   string
	logger    *slog.Logger

	onUpdate func(Geometry)
	onClose  func()

	state   State
	epoch   uint64
	lastKey string
	cancels []func()
}

// PanelOption configures a Panel.
type PanelOption func(*Panel)

// WithLogger sets a structured logger. Default: discard.
func WithLogger(logger *slog.Logger) PanelOption {
	return func(p *Panel) {
		p.logger = logger
	}
}

// OnUpdate registers the callback receiving committed geometry changes.
func OnUpdate(fn func(Geometry)) PanelOption {
	return func(p *Panel) {
		p.onUpdate = fn
	}
}

// OnClose registers a callback fired when the panel leaves the open state.
func OnClose(fn func()) PanelOption {
	return func(p *Panel) {
		p.onClose = fn
	}
}

// NewPanel creates a closed panel anchored to triggerID, positioning panelID.
func NewPanel(view ports.Viewport, triggerID, panelID string, opts ...PanelOption) *Panel {
	p := &Panel{
		view:      view,
		triggerID: triggerID,
		panelID:   panelID,
		state:     StateClosed,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p
}

// State returns the current lifecycle state.
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Open transitions closed -> open, registers geometry listeners, and
// schedules the first reposition for after layout settles. Opening an
// already-open panel is a no-op.
func (p *Panel) Open() {
	p.mu.Lock()
	if p.state == StateOpen {
		p.mu.Unlock()
		return
	}
	p.state = StateOpen
	p.epoch++
	p.lastKey = ""
	epoch := p.epoch

	cancelObserve := p.view.Observe(func() {
		p.reposition(epoch)
	})
	cancelSchedule := p.view.Schedule(func() {
		p.reposition(epoch)
	})
	p.cancels = append(p.cancels, cancelObserve, cancelSchedule)
	p.mu.Unlock()
}

// Close transitions open -> closed and tears down every listener registered
// while open. Closing a closed panel is a no-op.
func (p *Panel) Close() {
	p.mu.Lock()
	if p.state != StateOpen {
		p.mu.Unlock()
		return
	}
	p.state = StateClosed
	p.epoch++
	cancels := p.cancels
	p.cancels = nil
	onClose := p.onClose
	p.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	if onClose != nil {
		onClose()
	}
}

// PointerDown dismisses the panel when the press lands outside both the
// trigger and the panel subtree.
func (p *Panel) PointerDown(targetID string) {
	if p.State() != StateOpen {
		return
	}
	if p.view.Contains(p.triggerID, targetID) || p.view.Contains(p.panelID, targetID) {
		return
	}
	p.Close()
}

// Escape dismisses the panel on an Escape key press while open.
func (p *Panel) Escape() {
	p.Close()
}

// Reposition forces a recompute outside of the observed triggers, e.g. right
// after the host re-renders the panel content.
func (p *Panel) Reposition() {
	p.mu.Lock()
	epoch := p.epoch
	open := p.state == StateOpen
	p.mu.Unlock()
	if open {
		p.reposition(epoch)
	}
}

// reposition recomputes geometry for the given epoch and commits it only if
// the panel is still open in that epoch and the geometry actually changed.
func (p *Panel) reposition(epoch uint64) {
	trigger, ok := p.view.Bounds(p.triggerID)
	if !ok {
		p.logger.Debug("reposition skipped, trigger element missing", "trigger", p.triggerID)
		return
	}
	panelBox, ok := p.view.Bounds(p.panelID)
	if !ok {
		p.logger.Debug("reposition skipped, panel element missing", "panel", p.panelID)
		return
	}

	geo := Compute(
		trigger,
		panelBox,
		p.view.MinWidth(p.panelID),
		p.view.Document(),
		p.view.Viewport(),
		p.view.ScrollY(),
	)

	p.mu.Lock()
	if p.state != StateOpen || p.epoch != epoch {
		// Closed (or reopened) while we were measuring; drop the result.
		p.mu.Unlock()
		return
	}
	if geo.key() == p.lastKey {
		p.mu.Unlock()
		return
	}
	p.lastKey = geo.key()
	onUpdate := p.onUpdate
	p.mu.Unlock()

	if onUpdate != nil {
		onUpdate(geo)
	}
}
