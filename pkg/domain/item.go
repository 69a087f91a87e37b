package domain

// VisibilityDirective is the row-level show/hide switch on an item.
const (
	DirectiveShow = "show"
	DirectiveHide = "hide"
)

// VisibilityRule is one conditional clause attached to a row directive.
// Rules are opaque to the engine; an injected RuleEvaluator decides them.
type VisibilityRule struct {
	Field string `json:"field" yaml:"field" mapstructure:"field"`
	Op    string `json:"op" yaml:"op" mapstructure:"op"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty" mapstructure:"value"`
}

// Visibility holds the row-level directive plus its optional rule list.
type Visibility struct {
	Directive string           `json:"directive,omitempty" yaml:"directive,omitempty" mapstructure:"directive"`
	Rules     []VisibilityRule `json:"rules,omitempty" yaml:"rules,omitempty" mapstructure:"rules"`
}

// Tooltip holds the hover-hint texts and their enable flags.
type Tooltip struct {
	Text          string `json:"text,omitempty" yaml:"text,omitempty" mapstructure:"text"`
	Enabled       bool   `json:"enabled,omitempty" yaml:"enabled,omitempty" mapstructure:"enabled"`
	ActiveText    string `json:"active_text,omitempty" yaml:"active_text,omitempty" mapstructure:"active_text"`
	ActiveEnabled bool   `json:"active_enabled,omitempty" yaml:"active_enabled,omitempty" mapstructure:"active_enabled"`
}

// LinkConfig configures the static-link kind.
type LinkConfig struct {
	URL      string `json:"url,omitempty" yaml:"url,omitempty" mapstructure:"url"`
	External bool   `json:"external,omitempty" yaml:"external,omitempty" mapstructure:"external"`
	NoFollow bool   `json:"no_follow,omitempty" yaml:"no_follow,omitempty" mapstructure:"no_follow"`
}

// CalendarConfig configures the two calendar-export kinds.
// Start and End are free-text dates; unparseable values downgrade the item
// to a non-interactive container rather than failing the render.
type CalendarConfig struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty" mapstructure:"location"`
	Timezone    string `json:"timezone,omitempty" yaml:"timezone,omitempty" mapstructure:"timezone"`
	Start       string `json:"start,omitempty" yaml:"start,omitempty" mapstructure:"start"`
	End         string `json:"end,omitempty" yaml:"end,omitempty" mapstructure:"end"`
}

// CartConfig carries the "select options" overrides for the add-to-cart kind.
// The sub-variant sources its text, icon and tooltip from these dedicated
// fields instead of the item-level ones.
type CartConfig struct {
	SelectText           string `json:"select_text,omitempty" yaml:"select_text,omitempty" mapstructure:"select_text"`
	SelectIcon           string `json:"select_icon,omitempty" yaml:"select_icon,omitempty" mapstructure:"select_icon"`
	SelectTooltip        string `json:"select_tooltip,omitempty" yaml:"select_tooltip,omitempty" mapstructure:"select_tooltip"`
	SelectTooltipEnabled bool   `json:"select_tooltip_enabled,omitempty" yaml:"select_tooltip_enabled,omitempty" mapstructure:"select_tooltip_enabled"`
}

// ActionItem is one configured action row. Items are immutable from the
// engine's perspective: the resolver only ever reads them.
type ActionItem struct {
	ID   string     `json:"id" yaml:"id" mapstructure:"id"`
	Kind ActionKind `json:"kind" yaml:"kind" mapstructure:"kind"`

	Label       string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	ActiveLabel string `json:"active_label,omitempty" yaml:"active_label,omitempty" mapstructure:"active_label"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty" mapstructure:"icon"`
	ActiveIcon  string `json:"active_icon,omitempty" yaml:"active_icon,omitempty" mapstructure:"active_icon"`

	Tooltip Tooltip `json:"tooltip,omitempty" yaml:"tooltip,omitempty" mapstructure:"tooltip"`

	// Kind-specific configuration. Only the block matching Kind is read.
	Link         LinkConfig     `json:"link,omitempty" yaml:"link,omitempty" mapstructure:"link"`
	ScrollTarget string         `json:"scroll_target,omitempty" yaml:"scroll_target,omitempty" mapstructure:"scroll_target"`
	Calendar     CalendarConfig `json:"calendar,omitempty" yaml:"calendar,omitempty" mapstructure:"calendar"`
	Cart         CartConfig     `json:"cart,omitempty" yaml:"cart,omitempty" mapstructure:"cart"`
	AddonID      string         `json:"addon_id,omitempty" yaml:"addon_id,omitempty" mapstructure:"addon_id"`

	// Visual overrides, passed through to the host untouched.
	Color       string `json:"color,omitempty" yaml:"color,omitempty" mapstructure:"color"`
	ActiveColor string `json:"active_color,omitempty" yaml:"active_color,omitempty" mapstructure:"active_color"`

	Visibility Visibility `json:"visibility,omitempty" yaml:"visibility,omitempty" mapstructure:"visibility"`
}
