package registry

import (
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
)

func TestRegistry_KindsSorted(t *testing.T) {
	r := NewRegistry()
	noop := func(req Request) (domain.Descriptor, bool) {
		return domain.Descriptor{}, true
	}

	// Registration order deliberately scrambled.
	r.Register(domain.KindScrollTo, noop)
	r.Register(domain.KindBackToTop, noop)
	r.Register(domain.KindLink, noop)

	want := []domain.ActionKind{domain.KindBackToTop, domain.KindLink, domain.KindScrollTo}
	got := r.Kinds()
	if len(got) != len(want) {
		t.Fatalf("expected %d kinds, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kinds[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistry_RegisterOverrides(t *testing.T) {
	r := NewRegistry()
	r.Register(domain.KindLink, func(req Request) (domain.Descriptor, bool) {
		return domain.Descriptor{Shape: domain.ShapeContainer}, true
	})
	r.Register(domain.KindLink, func(req Request) (domain.Descriptor, bool) {
		return domain.Descriptor{Shape: domain.ShapeLink}, true
	})

	fn, ok := r.Lookup(domain.KindLink)
	if !ok {
		t.Fatal("expected handler for link")
	}
	desc, _ := fn(Request{})
	if desc.Shape != domain.ShapeLink {
		t.Errorf("expected the later registration to win, got shape %q", desc.Shape)
	}
	if got := len(r.Kinds()); got != 1 {
		t.Errorf("expected a single registered kind, got %d", got)
	}
}
