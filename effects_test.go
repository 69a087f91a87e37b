package espalier_test

import (
	"testing"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/domain"
)

type fakeScroller struct {
	topCalls  int
	known     map[string]bool
	backCalls int
}

func (f *fakeScroller) ToTop() { f.topCalls++ }

func (f *fakeScroller) ToElement(id string) bool {
	return f.known[id]
}

func (f *fakeScroller) Back() { f.backCalls++ }

func TestEffectExecutor(t *testing.T) {
	t.Run("Scroll Top", func(t *testing.T) {
		host := &fakeScroller{}
		x := espalier.EffectExecutor{Scroller: host, History: host}
		if !x.Apply(domain.Effect{Type: domain.EffectScrollTop}) {
			t.Fatal("expected scroll_top to be handled")
		}
		if host.topCalls != 1 {
			t.Errorf("expected one ToTop call, got %d", host.topCalls)
		}
	})

	t.Run("History Back", func(t *testing.T) {
		host := &fakeScroller{}
		x := espalier.EffectExecutor{Scroller: host, History: host}
		if !x.Apply(domain.Effect{Type: domain.EffectHistoryBack}) {
			t.Fatal("expected history_back to be handled")
		}
		if host.backCalls != 1 {
			t.Errorf("expected one Back call, got %d", host.backCalls)
		}
	})

	t.Run("Scroll To Known And Absent Targets", func(t *testing.T) {
		host := &fakeScroller{known: map[string]bool{"faq": true}}
		x := espalier.EffectExecutor{Scroller: host}
		if !x.Apply(domain.Effect{Type: domain.EffectScrollTo, Target: "faq"}) {
			t.Error("expected scroll to a present element to be handled")
		}
		if x.Apply(domain.Effect{Type: domain.EffectScrollTo, Target: "ghost"}) {
			t.Error("expected scroll to an absent element to be a no-op")
		}
	})

	t.Run("Host Owned Effects Unhandled", func(t *testing.T) {
		host := &fakeScroller{}
		x := espalier.EffectExecutor{Scroller: host, History: host}
		for _, effect := range []domain.Effect{
			{Type: domain.EffectNone},
			{Type: domain.EffectOpenPopup, Popup: domain.PopupShare},
			{Type: domain.EffectDelegate, Target: "add-to-cart"},
		} {
			if x.Apply(effect) {
				t.Errorf("expected %q to stay with the host", effect.Type)
			}
		}
	})

	t.Run("Nil Surfaces", func(t *testing.T) {
		var x espalier.EffectExecutor
		if x.Apply(domain.Effect{Type: domain.EffectScrollTop}) {
			t.Error("expected scroll_top without a scroller to be unhandled")
		}
		if x.Apply(domain.Effect{Type: domain.EffectHistoryBack}) {
			t.Error("expected history_back without history to be unhandled")
		}
	})
}
