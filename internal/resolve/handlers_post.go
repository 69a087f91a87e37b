package resolve

import (
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/registry"
)

// deleteConfirm is the prompt attached to the delete action only.
const deleteConfirm = "Are you sure you want to delete this post?"

func resolveDeletePost(req registry.Request) (domain.Descriptor, bool) {
	pc := req.Post
	if pc == nil {
		return domain.Container(defaultDisplay(req.Item)), true
	}
	if req.Live() && !pc.Permissions.Delete {
		return domain.Descriptor{}, false
	}
	return domain.Descriptor{
		Shape:   domain.ShapeLink,
		Href:    actionURL(pc.Endpoint, ActionDeletePost, paramPostID, pc.ID, pc.Nonce(ActionDeletePost)),
		Confirm: deleteConfirm,
		Effect:  domain.Effect{Type: domain.EffectNone},
		Display: defaultDisplay(req.Item),
	}, true
}

func resolvePublishPost(req registry.Request) (domain.Descriptor, bool) {
	pc := req.Post
	if pc == nil {
		return domain.Container(defaultDisplay(req.Item)), true
	}
	if req.Live() && (!pc.Permissions.Publish || pc.Status != domain.StatusUnpublished) {
		return domain.Descriptor{}, false
	}
	return domain.Descriptor{
		Shape:   domain.ShapeLink,
		Href:    actionURL(pc.Endpoint, ActionRepublish, paramPostID, pc.ID, pc.Nonce(ActionRepublish)),
		Effect:  domain.Effect{Type: domain.EffectNone},
		Display: defaultDisplay(req.Item),
	}, true
}

func resolveUnpublishPost(req registry.Request) (domain.Descriptor, bool) {
	pc := req.Post
	if pc == nil {
		return domain.Container(defaultDisplay(req.Item)), true
	}
	if req.Live() && (!pc.Permissions.Publish || pc.Status != domain.StatusPublish) {
		return domain.Descriptor{}, false
	}
	return domain.Descriptor{
		Shape:   domain.ShapeLink,
		Href:    actionURL(pc.Endpoint, ActionUnpublish, paramPostID, pc.ID, pc.Nonce(ActionUnpublish)),
		Effect:  domain.Effect{Type: domain.EffectNone},
		Display: defaultDisplay(req.Item),
	}, true
}

// resolveEditPost branches on the number of edit steps: a popup for several,
// a direct link for exactly one, a plain container for none.
func resolveEditPost(req registry.Request) (domain.Descriptor, bool) {
	pc := req.Post
	if pc == nil {
		return domain.Container(defaultDisplay(req.Item)), true
	}
	if req.Live() && !pc.Editable {
		return domain.Descriptor{}, false
	}
	switch {
	case len(pc.EditSteps) > 1:
		return domain.Descriptor{
			Shape:   domain.ShapeLink,
			Href:    placeholderURL,
			Effect:  domain.Effect{Type: domain.EffectOpenPopup, Popup: domain.PopupEdit},
			Display: defaultDisplay(req.Item),
		}, true
	case len(pc.EditSteps) == 1:
		return domain.Descriptor{
			Shape:   domain.ShapeLink,
			Href:    pc.EditSteps[0].URL,
			Effect:  domain.Effect{Type: domain.EffectNone},
			Display: defaultDisplay(req.Item),
		}, true
	default:
		return domain.Container(defaultDisplay(req.Item)), true
	}
}

func resolveSharePost(req registry.Request) (domain.Descriptor, bool) {
	return domain.Descriptor{
		Shape:   domain.ShapeLink,
		Href:    placeholderURL,
		Effect:  domain.Effect{Type: domain.EffectOpenPopup, Popup: domain.PopupShare},
		Display: defaultDisplay(req.Item),
	}, true
}

func resolveFollowPost(req registry.Request) (domain.Descriptor, bool) {
	pc := req.Post
	if pc == nil {
		return domain.Container(defaultDisplay(req.Item)), true
	}
	if req.Live() && pc.TimelineDisabled {
		return domain.Descriptor{}, false
	}
	return domain.Descriptor{
		Shape:         domain.ShapeLink,
		Href:          actionURL(pc.Endpoint, ActionFollowPost, paramPostID, pc.ID, pc.Nonce(ActionFollowPost)),
		Active:        pc.Follow.Following,
		Intermediate:  pc.Follow.Requested,
		Effect:        domain.Effect{Type: domain.EffectNone},
		Display:       defaultDisplay(req.Item),
		ActiveDisplay: activeDisplay(req.Item),
	}, true
}

func resolveFollowAuthor(req registry.Request) (domain.Descriptor, bool) {
	pc := req.Post
	if pc == nil {
		return domain.Container(defaultDisplay(req.Item)), true
	}
	if req.Live() && (pc.TimelineDisabled || pc.AuthorID == 0) {
		return domain.Descriptor{}, false
	}
	return domain.Descriptor{
		Shape:         domain.ShapeLink,
		Href:          actionURL(pc.Endpoint, ActionFollowAuthor, paramUserID, pc.AuthorID, pc.Nonce(ActionFollowAuthor)),
		Active:        pc.AuthorFollow.Following,
		Intermediate:  pc.AuthorFollow.Requested,
		Effect:        domain.Effect{Type: domain.EffectNone},
		Display:       defaultDisplay(req.Item),
		ActiveDisplay: activeDisplay(req.Item),
	}, true
}

func resolveShowOnMap(req registry.Request) (domain.Descriptor, bool) {
	pc := req.Post
	if pc == nil {
		return domain.Container(defaultDisplay(req.Item)), true
	}
	if req.Live() && pc.MapLink == "" {
		return domain.Descriptor{}, false
	}
	href := pc.MapLink
	if href == "" {
		href = placeholderURL
	}
	return domain.Descriptor{
		Shape:   domain.ShapeLink,
		Href:    href,
		Effect:  domain.Effect{Type: domain.EffectNone},
		Display: defaultDisplay(req.Item),
	}, true
}

func resolveViewStats(req registry.Request) (domain.Descriptor, bool) {
	pc := req.Post
	if pc == nil {
		return domain.Container(defaultDisplay(req.Item)), true
	}
	if req.Live() && pc.StatsLink == "" {
		return domain.Descriptor{}, false
	}
	href := pc.StatsLink
	if href == "" {
		href = placeholderURL
	}
	return domain.Descriptor{
		Shape:   domain.ShapeLink,
		Href:    href,
		Effect:  domain.Effect{Type: domain.EffectNone},
		Display: defaultDisplay(req.Item),
	}, true
}

func resolvePromotePost(req registry.Request) (domain.Descriptor, bool) {
	pc := req.Post
	if pc == nil {
		return domain.Container(defaultDisplay(req.Item)), true
	}
	if req.Live() && !pc.Promote.Promotable {
		return domain.Descriptor{}, false
	}
	href := pc.Promote.Link
	if href == "" {
		href = placeholderURL
	}
	return domain.Descriptor{
		Shape:         domain.ShapeLink,
		Href:          href,
		Active:        pc.Promote.Active,
		Intermediate:  pc.Promote.Pending,
		Effect:        domain.Effect{Type: domain.EffectNone},
		Display:       defaultDisplay(req.Item),
		ActiveDisplay: activeDisplay(req.Item),
	}, true
}
