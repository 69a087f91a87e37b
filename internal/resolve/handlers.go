package resolve

import (
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/registry"
)

// registerBuiltins wires the closed kind enumeration into the registry.
func registerBuiltins(reg *registry.Registry) {
	// Context-free kinds.
	reg.Register(domain.KindNone, resolveNone)
	reg.Register(domain.KindLink, resolveLink)
	reg.Register(domain.KindBackToTop, resolveBackToTop)
	reg.Register(domain.KindGoBack, resolveGoBack)
	reg.Register(domain.KindScrollTo, resolveScrollTo)
	reg.Register(domain.KindGoogleCalendar, resolveGoogleCalendar)
	reg.Register(domain.KindICalendar, resolveICalendar)

	// Post-dependent kinds.
	reg.Register(domain.KindDeletePost, resolveDeletePost)
	reg.Register(domain.KindPublishPost, resolvePublishPost)
	reg.Register(domain.KindUnpublishPost, resolveUnpublishPost)
	reg.Register(domain.KindEditPost, resolveEditPost)
	reg.Register(domain.KindSharePost, resolveSharePost)
	reg.Register(domain.KindFollowPost, resolveFollowPost)
	reg.Register(domain.KindFollowAuthor, resolveFollowAuthor)
	reg.Register(domain.KindShowOnMap, resolveShowOnMap)
	reg.Register(domain.KindViewStats, resolveViewStats)
	reg.Register(domain.KindAddToCart, resolveAddToCart)
	reg.Register(domain.KindPromotePost, resolvePromotePost)
	reg.Register(domain.KindSelectAddon, resolveSelectAddon)
}

func resolveNone(req registry.Request) (domain.Descriptor, bool) {
	return domain.Container(defaultDisplay(req.Item)), true
}

// resolveLink takes href, target and rel verbatim from the configuration.
func resolveLink(req registry.Request) (domain.Descriptor, bool) {
	return domain.Descriptor{
		Shape:    domain.ShapeLink,
		Href:     req.Item.Link.URL,
		External: req.Item.Link.External,
		NoFollow: req.Item.Link.NoFollow,
		Effect:   domain.Effect{Type: domain.EffectNone},
		Display:  defaultDisplay(req.Item),
	}, true
}

func resolveBackToTop(req registry.Request) (domain.Descriptor, bool) {
	return domain.Descriptor{
		Shape:   domain.ShapeLink,
		Href:    placeholderURL,
		Effect:  domain.Effect{Type: domain.EffectScrollTop},
		Display: defaultDisplay(req.Item),
	}, true
}

// resolveGoBack suppresses the history side effect in the authoring preview,
// where navigating away would drop the editor's session.
func resolveGoBack(req registry.Request) (domain.Descriptor, bool) {
	effect := domain.Effect{Type: domain.EffectHistoryBack}
	if !req.Live() {
		effect = domain.Effect{Type: domain.EffectNone}
	}
	return domain.Descriptor{
		Shape:   domain.ShapeLink,
		Href:    placeholderURL,
		Effect:  effect,
		Display: defaultDisplay(req.Item),
	}, true
}

// resolveScrollTo emits a scroll effect targeting the configured element.
// The effect is a no-op at activation time if the element is absent.
func resolveScrollTo(req registry.Request) (domain.Descriptor, bool) {
	return domain.Descriptor{
		Shape:   domain.ShapeLink,
		Href:    placeholderURL,
		Effect:  domain.Effect{Type: domain.EffectScrollTo, Target: req.Item.ScrollTarget},
		Display: defaultDisplay(req.Item),
	}, true
}
