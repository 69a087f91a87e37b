package resolve

import (
	"strconv"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/registry"
)

// Host-delegated handler names for the delegate effect.
const (
	delegateAddToCart   = "add_to_cart"
	delegateSelectAddon = "select_addon"
)

// addonMarkerClass is the fixed class the host's add-on picker binds to.
const addonMarkerClass = "select-addon-trigger"

// resolveAddToCart branches on the one-click product flag. One-click always
// wins when set: it carries the product ID and delegates activation to the
// host's cart handler. The non-one-click route links to the post itself and
// swaps in the "select options" display pair.
func resolveAddToCart(req registry.Request) (domain.Descriptor, bool) {
	pc := req.Post
	if pc == nil {
		return domain.Container(defaultDisplay(req.Item)), true
	}
	if req.Live() && !pc.Product.Enabled {
		return domain.Descriptor{}, false
	}

	if pc.Product.OneClick {
		return domain.Descriptor{
			Shape: domain.ShapeLink,
			Href:  placeholderURL,
			Data: map[string]string{
				"product-id": strconv.FormatInt(pc.Product.ID, 10),
			},
			Effect:  domain.Effect{Type: domain.EffectDelegate, Target: delegateAddToCart},
			Display: defaultDisplay(req.Item),
		}, true
	}

	display := domain.Display{
		Label: req.Item.Cart.SelectText,
		Icon:  req.Item.Cart.SelectIcon,
	}
	if display.Label == "" {
		display.Label = req.Item.Label
	}
	if display.Icon == "" {
		display.Icon = req.Item.Icon
	}
	href := pc.Link
	if href == "" {
		href = placeholderURL
	}
	return domain.Descriptor{
		Shape:   domain.ShapeLink,
		Href:    href,
		Variant: domain.VariantSelectOptions,
		Effect:  domain.Effect{Type: domain.EffectNone},
		Display: display,
	}, true
}

// resolveSelectAddon always prevents the default activation and delegates
// to the host's add-on picker.
func resolveSelectAddon(req registry.Request) (domain.Descriptor, bool) {
	return domain.Descriptor{
		Shape: domain.ShapeLink,
		Href:  placeholderURL,
		Class: addonMarkerClass,
		Data: map[string]string{
			"id": req.Item.AddonID,
		},
		Effect:        domain.Effect{Type: domain.EffectDelegate, Target: delegateSelectAddon},
		Display:       defaultDisplay(req.Item),
		ActiveDisplay: activeDisplay(req.Item),
	}, true
}
