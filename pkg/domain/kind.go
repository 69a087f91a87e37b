package domain

// ActionKind identifies the behavior of a configured action row.
// The set is closed: configurations produced by newer hosts may carry kinds
// this engine does not know, and those resolve to a plain container.
type ActionKind string

// Context-free kinds. These resolve without a post record.
const (
	KindNone           ActionKind = "none"
	KindLink           ActionKind = "link"
	KindBackToTop      ActionKind = "back_to_top"
	KindGoBack         ActionKind = "go_back"
	KindScrollTo       ActionKind = "scroll_to_section"
	KindGoogleCalendar ActionKind = "google_calendar"
	KindICalendar      ActionKind = "icalendar"
)

// Post-dependent kinds. In the live context these are hidden whenever no
// post record is supplied.
const (
	KindDeletePost    ActionKind = "delete_post"
	KindPublishPost   ActionKind = "publish_post"
	KindUnpublishPost ActionKind = "unpublish_post"
	KindEditPost      ActionKind = "edit_post"
	KindSharePost     ActionKind = "share_post"
	KindFollowPost    ActionKind = "follow_post"
	KindFollowAuthor  ActionKind = "follow_author"
	KindShowOnMap     ActionKind = "show_on_map"
	KindViewStats     ActionKind = "view_stats"
	KindAddToCart     ActionKind = "add_to_cart"
	KindPromotePost   ActionKind = "promote_post"
	KindSelectAddon   ActionKind = "select_addon"
)

var contextFree = map[ActionKind]bool{
	KindNone:           true,
	KindLink:           true,
	KindBackToTop:      true,
	KindGoBack:         true,
	KindScrollTo:       true,
	KindGoogleCalendar: true,
	KindICalendar:      true,
}

// PostDependent reports whether resolving this kind requires a post record.
// Unrecognized kinds are treated as post-dependent: they come from newer
// host configurations that almost certainly reference post state.
func (k ActionKind) PostDependent() bool {
	return !contextFree[k]
}

// RenderContext distinguishes the authoring preview from the live page.
type RenderContext string

const (
	// ContextPreview renders every configured item regardless of runtime
	// eligibility, so authors can see what they configured.
	ContextPreview RenderContext = "preview"
	// ContextLive applies visibility directives and eligibility checks.
	ContextLive RenderContext = "live"
)
