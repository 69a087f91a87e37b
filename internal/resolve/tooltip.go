package resolve

import "github.com/aretw0/espalier/pkg/domain"

// Tooltip attribute names. Three mutually exclusive conventions exist, and
// no item ever emits attributes from more than one of them.
const (
	attrTooltipInactive = "tooltip-inactive"
	attrTooltipActive   = "tooltip-active"
	attrTooltip         = "data-tooltip"
	attrTooltipDefault  = "data-tooltip-default"
	attrTooltipToggled  = "data-tooltip-active"
)

// tooltipAttrs selects the attribute convention for an item:
//
//  1. Follow kinds carry separate inactive/active attributes, each gated by
//     its own enable flag.
//  2. The add-on kind mirrors the normal text into a default attribute so
//     the host can restore it after deselection.
//  3. Everything else carries a single data-tooltip; the cart
//     "select options" sub-variant sources it from its dedicated fields.
func tooltipAttrs(item domain.ActionItem, desc domain.Descriptor) map[string]string {
	attrs := make(map[string]string)

	switch {
	case item.Kind == domain.KindFollowPost || item.Kind == domain.KindFollowAuthor:
		if item.Tooltip.Enabled && item.Tooltip.Text != "" {
			attrs[attrTooltipInactive] = item.Tooltip.Text
		}
		if item.Tooltip.ActiveEnabled && item.Tooltip.ActiveText != "" {
			attrs[attrTooltipActive] = item.Tooltip.ActiveText
		}

	case item.Kind == domain.KindSelectAddon:
		if item.Tooltip.Enabled && item.Tooltip.Text != "" {
			attrs[attrTooltip] = item.Tooltip.Text
			attrs[attrTooltipDefault] = item.Tooltip.Text
		}
		if item.Tooltip.ActiveEnabled && item.Tooltip.ActiveText != "" {
			attrs[attrTooltipToggled] = item.Tooltip.ActiveText
		}

	case desc.Variant == domain.VariantSelectOptions:
		if item.Cart.SelectTooltipEnabled && item.Cart.SelectTooltip != "" {
			attrs[attrTooltip] = item.Cart.SelectTooltip
		}

	default:
		if item.Tooltip.Enabled && item.Tooltip.Text != "" {
			attrs[attrTooltip] = item.Tooltip.Text
		}
	}

	if len(attrs) == 0 {
		return nil
	}
	return attrs
}
