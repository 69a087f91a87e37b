// Package popup positions the auxiliary floating panels opened by the edit
// and share actions. Geometry is recomputed from bounding boxes supplied by
// an injected ports.Viewport, so the math is testable without a browser.
package popup

import (
	"fmt"

	"github.com/aretw0/espalier/pkg/ports"
)

// Geometry is the computed placement of a panel in document coordinates.
// It is ephemeral: recomputed on every trigger and never persisted.
type Geometry struct {
	Top   float64 `json:"top"`
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

const (
	// fallbackMaxWidth caps the panel width when it styles no min-width.
	fallbackMaxWidth = 340
	// viewportGutter is subtracted from the viewport when applying the cap.
	viewportGutter = 40
	// edgeGutter is the snap distance from document edges after clamping.
	edgeGutter = 10
	// centerTolerance avoids side flapping for dead-centered triggers.
	centerTolerance = 1
)

// Compute derives panel geometry from the trigger and panel boxes.
//
//   - Width: the trigger width, or the panel's styled min-width (falling
//     back to min(340, viewport-40)) when that is larger.
//   - Side: right-aligned when the trigger center sits right of the document
//     center, left-aligned otherwise; then clamped to keep a 10px gutter.
//   - Vertical: below the trigger, flipped above when the panel would
//     overflow the viewport bottom and there is room above.
func Compute(trigger, panel ports.Rect, minWidth float64, doc, view ports.Size, scrollY float64) Geometry {
	if minWidth <= 0 {
		minWidth = fallbackMaxWidth
		if limit := view.Width - viewportGutter; limit < minWidth {
			minWidth = limit
		}
	}
	width := trigger.Width
	if minWidth > width {
		width = minWidth
	}

	triggerCenter := trigger.Left + trigger.Width/2
	left := trigger.Left
	if triggerCenter > doc.Width/2+centerTolerance {
		left = trigger.Left + trigger.Width - width
	}
	if left < 0 {
		left = edgeGutter
	}
	if left+width > doc.Width {
		left = doc.Width - width - edgeGutter
	}

	top := trigger.Top + trigger.Height
	viewBottom := scrollY + view.Height
	if top+panel.Height > viewBottom && trigger.Top-panel.Height >= scrollY {
		top = trigger.Top - panel.Height
	}

	return Geometry{Top: top, Left: left, Width: width}
}

// key serializes the geometry for change detection. Unchanged geometry must
// not trigger a visual update.
func (g Geometry) key() string {
	return fmt.Sprintf("%.2f:%.2f:%.2f", g.Top, g.Left, g.Width)
}
