package espalier

import (
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// EffectExecutor applies a descriptor's activation effect to the host
// surfaces. Hosts that render nodes themselves can use it to honor the
// scroll and history effects without re-implementing the dispatch.
//
// Either surface may be nil; effects needing a missing surface are
// reported as unhandled.
type EffectExecutor struct {
	Scroller ports.Scroller
	History  ports.History
}

// Apply runs the side effect and reports whether it was handled.
// open_popup and delegate stay with the host (the popup state machine and
// the registered delegate own those), as does a scroll_to whose target
// element is absent.
func (x EffectExecutor) Apply(effect domain.Effect) bool {
	switch effect.Type {
	case domain.EffectScrollTop:
		if x.Scroller == nil {
			return false
		}
		x.Scroller.ToTop()
		return true
	case domain.EffectHistoryBack:
		if x.History == nil {
			return false
		}
		x.History.Back()
		return true
	case domain.EffectScrollTo:
		if x.Scroller == nil {
			return false
		}
		return x.Scroller.ToElement(effect.Target)
	}
	return false
}
