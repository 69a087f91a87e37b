package resolve

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
)

// Compose resolves an ordered item list into renderable nodes: descriptor,
// tooltip attributes, and the popup spec for items whose activation opens an
// auxiliary panel. Hidden items are dropped, preserving the authored order
// of the rest.
func (p *Policy) Compose(ctx context.Context, items []domain.ActionItem, rc domain.RenderContext, post *domain.PostContext) []domain.RenderNode {
	nodes := make([]domain.RenderNode, 0, len(items))
	for _, item := range items {
		desc, ok := p.Resolve(ctx, item, rc, post)
		if !ok {
			continue
		}
		desc.Tooltip = tooltipAttrs(item, desc)

		node := domain.RenderNode{
			Item:       item,
			Descriptor: desc,
		}
		if desc.Effect.Type == domain.EffectOpenPopup {
			node.Popup = popupSpec(desc.Effect.Popup, post)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// popupSpec builds the auxiliary panel request. The edit panel body is the
// post's edit steps; the share panel body is host-provided.
func popupSpec(kind domain.PopupKind, post *domain.PostContext) *domain.PopupSpec {
	spec := &domain.PopupSpec{Kind: kind}
	if kind == domain.PopupEdit && post != nil {
		spec.Steps = post.EditSteps
	}
	return spec
}
