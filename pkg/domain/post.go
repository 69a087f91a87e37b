package domain

// Post statuses the policy distinguishes.
const (
	StatusPublish     = "publish"
	StatusUnpublished = "unpublished"
)

// Permissions are the authoritative capability flags for the current viewer.
// Invariant: when a PostContext is present the engine never re-derives these.
type Permissions struct {
	Delete  bool `json:"delete,omitempty" yaml:"delete,omitempty" mapstructure:"delete"`
	Publish bool `json:"publish,omitempty" yaml:"publish,omitempty" mapstructure:"publish"`
	Edit    bool `json:"edit,omitempty" yaml:"edit,omitempty" mapstructure:"edit"`
}

// FollowState describes a follow relationship (post or author).
// Requested marks a follow that is pending approval.
type FollowState struct {
	Following bool `json:"following,omitempty" yaml:"following,omitempty" mapstructure:"following"`
	Requested bool `json:"requested,omitempty" yaml:"requested,omitempty" mapstructure:"requested"`
}

// Product describes cart eligibility for the post's product.
type Product struct {
	Enabled  bool  `json:"enabled,omitempty" yaml:"enabled,omitempty" mapstructure:"enabled"`
	OneClick bool  `json:"one_click,omitempty" yaml:"one_click,omitempty" mapstructure:"one_click"`
	ID       int64 `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
}

// PromoteState describes the promotion lifecycle of the post.
// Pending marks a purchased promotion that has not gone live yet.
type PromoteState struct {
	Promotable bool   `json:"promotable,omitempty" yaml:"promotable,omitempty" mapstructure:"promotable"`
	Active     bool   `json:"active,omitempty" yaml:"active,omitempty" mapstructure:"active"`
	Pending    bool   `json:"pending,omitempty" yaml:"pending,omitempty" mapstructure:"pending"`
	Link       string `json:"link,omitempty" yaml:"link,omitempty" mapstructure:"link"`
}

// EditStep is one step of a multi-step edit flow.
type EditStep struct {
	Label string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	URL   string `json:"url" yaml:"url" mapstructure:"url"`
}

// PostContext is the read-only record of the post an action list is attached
// to. It is supplied whole or not at all: absence forces every post-dependent
// item to degrade (hidden live, container in preview). The engine treats
// "not supplied" and "not yet loaded" identically.
type PostContext struct {
	ID       int64  `json:"id" yaml:"id" mapstructure:"id"`
	AuthorID int64  `json:"author_id,omitempty" yaml:"author_id,omitempty" mapstructure:"author_id"`
	Status   string `json:"status,omitempty" yaml:"status,omitempty" mapstructure:"status"`
	Link     string `json:"link,omitempty" yaml:"link,omitempty" mapstructure:"link"`

	Editable    bool        `json:"editable,omitempty" yaml:"editable,omitempty" mapstructure:"editable"`
	Permissions Permissions `json:"permissions,omitempty" yaml:"permissions,omitempty" mapstructure:"permissions"`

	// TimelineDisabled suppresses both follow kinds regardless of state.
	TimelineDisabled bool        `json:"timeline_disabled,omitempty" yaml:"timeline_disabled,omitempty" mapstructure:"timeline_disabled"`
	Follow           FollowState `json:"follow,omitempty" yaml:"follow,omitempty" mapstructure:"follow"`
	AuthorFollow     FollowState `json:"author_follow,omitempty" yaml:"author_follow,omitempty" mapstructure:"author_follow"`

	Product   Product      `json:"product,omitempty" yaml:"product,omitempty" mapstructure:"product"`
	MapLink   string       `json:"map_link,omitempty" yaml:"map_link,omitempty" mapstructure:"map_link"`
	StatsLink string       `json:"stats_link,omitempty" yaml:"stats_link,omitempty" mapstructure:"stats_link"`
	Promote   PromoteState `json:"promote,omitempty" yaml:"promote,omitempty" mapstructure:"promote"`
	EditSteps []EditStep   `json:"edit_steps,omitempty" yaml:"edit_steps,omitempty" mapstructure:"edit_steps"`

	// Endpoint is the host-resolved base URL for constructed action URLs.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" mapstructure:"endpoint"`

	// Nonces maps action names to their one-time tokens.
	Nonces map[string]string `json:"nonces,omitempty" yaml:"nonces,omitempty" mapstructure:"nonces"`
}

// Nonce returns the token registered for an action name, or "".
func (p *PostContext) Nonce(action string) string {
	if p == nil || p.Nonces == nil {
		return ""
	}
	return p.Nonces[action]
}
