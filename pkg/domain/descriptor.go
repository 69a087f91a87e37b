package domain

// Shape is the interactive element shape a descriptor requests.
type Shape string

const (
	// ShapeLink is a navigational anchor.
	ShapeLink Shape = "link"
	// ShapeContainer is a non-interactive wrapper.
	ShapeContainer Shape = "container"
)

// EffectType categorizes the client-side side effect of activating an item.
type EffectType string

const (
	EffectNone        EffectType = "none"
	EffectScrollTop   EffectType = "scroll_top"
	EffectHistoryBack EffectType = "history_back"
	EffectScrollTo    EffectType = "scroll_to"
	EffectOpenPopup   EffectType = "open_popup"
	// EffectDelegate hands activation to a host-registered handler
	// (one-click cart, add-on selection). The default is always prevented.
	EffectDelegate EffectType = "delegate"
)

// PopupKind names the auxiliary panel an open_popup effect targets.
type PopupKind string

const (
	PopupEdit  PopupKind = "edit"
	PopupShare PopupKind = "share"
)

// Effect is the opaque activation side effect carried by a descriptor.
// Type discriminates which of the optional fields is meaningful.
type Effect struct {
	Type EffectType `json:"type"`
	// Target is the element ID for scroll_to, or the handler name for delegate.
	Target string    `json:"target,omitempty"`
	Popup  PopupKind `json:"popup,omitempty"`
}

// Display is one text/icon pair shown on the rendered item.
type Display struct {
	Label string `json:"label,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// Descriptor is the engine's output for one visible item. Descriptors are
// recomputed fresh on every render pass and hold no state.
type Descriptor struct {
	Shape    Shape  `json:"shape"`
	Href     string `json:"href,omitempty"`
	External bool   `json:"external,omitempty"`
	NoFollow bool   `json:"no_follow,omitempty"`

	// CSS state modifiers.
	Active       bool `json:"active,omitempty"`
	Intermediate bool `json:"intermediate,omitempty"`

	// Confirm is a confirmation prompt shown before activation (delete only).
	Confirm string `json:"confirm,omitempty"`
	// Download is the suggested filename for downloadable hrefs.
	Download string `json:"download,omitempty"`
	// Class is a fixed marker class required by the host for this kind.
	Class string `json:"class,omitempty"`
	// Data holds extra data-* attributes (product IDs, add-on IDs).
	Data map[string]string `json:"data,omitempty"`

	// Variant marks a sub-variant of the kind (e.g. the cart
	// "select options" route), which tooltip selection keys off.
	Variant string `json:"variant,omitempty"`

	Effect Effect `json:"effect"`

	Display Display `json:"display"`
	// ActiveDisplay is the alternate pair for toggleable kinds; nil otherwise.
	ActiveDisplay *Display `json:"active_display,omitempty"`

	// Tooltip maps attribute names to hover-hint text, per the scheme
	// selected for the kind. Schemes are mutually exclusive.
	Tooltip map[string]string `json:"tooltip,omitempty"`
}

// VariantSelectOptions marks the non-one-click cart route that links to the
// post and swaps in the "select options" display pair.
const VariantSelectOptions = "select_options"

// Container returns the degenerate non-interactive descriptor. Unrecognized
// kinds and un-buildable items (missing dates, no edit steps) resolve to it.
func Container(display Display) Descriptor {
	return Descriptor{
		Shape:   ShapeContainer,
		Effect:  Effect{Type: EffectNone},
		Display: display,
	}
}

// PopupSpec asks the host to mount an auxiliary floating panel for an item.
type PopupSpec struct {
	Kind PopupKind `json:"kind"`
	// Steps is the panel body for the edit popup; empty for share.
	Steps []EditStep `json:"steps,omitempty"`
}

// RenderNode is one fully composed entry of the rendered list.
type RenderNode struct {
	Item       ActionItem `json:"item"`
	Descriptor Descriptor `json:"descriptor"`
	Popup      *PopupSpec `json:"popup,omitempty"`
}
