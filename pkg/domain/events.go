package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventItemResolved EventType = "item_resolved"
	EventItemSkipped  EventType = "item_skipped"
)

// ItemEvent describes the outcome of resolving a single action item.
type ItemEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Type      EventType     `json:"type"`
	ItemID    string        `json:"item_id"`
	Kind      ActionKind    `json:"kind"`
	Context   RenderContext `json:"context"`
	// Reason explains a skip: "directive", "no_context", "ineligible".
	Reason string `json:"reason,omitempty"`
}

// Skip reasons reported on EventItemSkipped.
const (
	SkipDirective  = "directive"
	SkipNoContext  = "no_context"
	SkipIneligible = "ineligible"
)

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnItemResolved func(context.Context, *ItemEvent)
	OnItemSkipped  func(context.Context, *ItemEvent)
}
