package resolve

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

func fullContext() *domain.PostContext {
	return &domain.PostContext{
		ID:       88,
		AuthorID: 12,
		Status:   domain.StatusPublish,
		Link:     "https://example.com/places/88",
		Editable: true,
		Permissions: domain.Permissions{
			Delete:  true,
			Publish: true,
			Edit:    true,
		},
		Product:   domain.Product{Enabled: true, ID: 7},
		MapLink:   "https://example.com/places/88?map=1",
		StatsLink: "https://example.com/stats/88",
		Promote:   domain.PromoteState{Promotable: true, Link: "https://example.com/promote/88"},
		EditSteps: []domain.EditStep{
			{Label: "General", URL: "https://example.com/edit/88?step=general"},
			{Label: "Pricing", URL: "https://example.com/edit/88?step=pricing"},
			{Label: "Gallery", URL: "https://example.com/edit/88?step=gallery"},
		},
		Endpoint: "https://example.com/actions",
		Nonces: map[string]string{
			ActionDeletePost:   "nonce-delete",
			ActionRepublish:    "nonce-republish",
			ActionUnpublish:    "nonce-unpublish",
			ActionFollowPost:   "nonce-follow",
			ActionFollowAuthor: "nonce-follow-user",
		},
	}
}

func item(kind domain.ActionKind) domain.ActionItem {
	return domain.ActionItem{ID: "i-" + string(kind), Kind: kind, Label: "Label", Icon: "icon"}
}

func TestPolicy_VisibilityGate(t *testing.T) {
	p := NewPolicy()
	ctx := context.Background()

	t.Run("PostDependent Hidden Live Without Context", func(t *testing.T) {
		for _, kind := range []domain.ActionKind{
			domain.KindDeletePost, domain.KindPublishPost, domain.KindUnpublishPost,
			domain.KindEditPost, domain.KindSharePost, domain.KindFollowPost,
			domain.KindFollowAuthor, domain.KindShowOnMap, domain.KindViewStats,
			domain.KindAddToCart, domain.KindPromotePost, domain.KindSelectAddon,
		} {
			if _, ok := p.Resolve(ctx, item(kind), domain.ContextLive, nil); ok {
				t.Errorf("kind %s should be hidden live without post context", kind)
			}
		}
	})

	t.Run("PostDependent Visible In Preview Without Context", func(t *testing.T) {
		desc, ok := p.Resolve(ctx, item(domain.KindDeletePost), domain.ContextPreview, nil)
		if !ok {
			t.Fatalf("preview must show every configured item")
		}
		if desc.Shape != domain.ShapeContainer {
			t.Errorf("expected container placeholder, got %s", desc.Shape)
		}
	})

	t.Run("Unconditional Hide Wins In Both Contexts", func(t *testing.T) {
		hidden := item(domain.KindLink)
		hidden.Visibility.Directive = domain.DirectiveHide

		if _, ok := p.Resolve(ctx, hidden, domain.ContextLive, nil); ok {
			t.Errorf("hide directive must hide in live context")
		}
		if _, ok := p.Resolve(ctx, hidden, domain.ContextPreview, nil); ok {
			t.Errorf("hide directive must hide in preview too")
		}
	})

	t.Run("Ineligible In Live Visible In Preview", func(t *testing.T) {
		pc := fullContext()
		pc.Permissions.Delete = false

		if _, ok := p.Resolve(ctx, item(domain.KindDeletePost), domain.ContextLive, pc); ok {
			t.Errorf("delete without permission should be hidden live")
		}
		if _, ok := p.Resolve(ctx, item(domain.KindDeletePost), domain.ContextPreview, pc); !ok {
			t.Errorf("preview must ignore eligibility")
		}
	})

	t.Run("Unrecognized Kind Resolves To Container", func(t *testing.T) {
		odd := domain.ActionItem{ID: "x", Kind: "reverse_auction", Label: "??"}
		desc, ok := p.Resolve(ctx, odd, domain.ContextLive, fullContext())
		if !ok {
			t.Fatalf("unknown kind must not hide the item once context exists")
		}
		if desc.Shape != domain.ShapeContainer || desc.Effect.Type != domain.EffectNone {
			t.Errorf("unknown kind must be an inert container, got %+v", desc)
		}
	})
}

func TestPolicy_RuleEvaluation(t *testing.T) {
	ctx := context.Background()
	ruled := item(domain.KindLink)
	ruled.Visibility = domain.Visibility{
		Directive: domain.DirectiveHide,
		Rules:     []domain.VisibilityRule{{Field: "status", Op: "==", Value: "publish"}},
	}

	t.Run("Evaluator Decides", func(t *testing.T) {
		p := NewPolicy(WithRuleEvaluator(func(context.Context, []domain.VisibilityRule, *domain.PostContext) (bool, error) {
			return false, nil
		}))
		if _, ok := p.Resolve(ctx, ruled, domain.ContextLive, nil); ok {
			t.Errorf("item should be hidden when the evaluator says so")
		}
	})

	t.Run("Evaluator Error Fails Open", func(t *testing.T) {
		p := NewPolicy(WithRuleEvaluator(func(context.Context, []domain.VisibilityRule, *domain.PostContext) (bool, error) {
			return false, errors.New("boom")
		}))
		if _, ok := p.Resolve(ctx, ruled, domain.ContextLive, nil); !ok {
			t.Errorf("a broken rule must not hide configured content")
		}
	})

	t.Run("No Evaluator Fails Open", func(t *testing.T) {
		p := NewPolicy()
		if _, ok := p.Resolve(ctx, ruled, domain.ContextLive, nil); !ok {
			t.Errorf("rules without an evaluator must leave the item visible")
		}
	})

	t.Run("Preview Skips Rules", func(t *testing.T) {
		p := NewPolicy(WithRuleEvaluator(func(context.Context, []domain.VisibilityRule, *domain.PostContext) (bool, error) {
			t.Fatalf("evaluator must not run in preview")
			return false, nil
		}))
		if _, ok := p.Resolve(ctx, ruled, domain.ContextPreview, nil); !ok {
			t.Errorf("preview should show the ruled item")
		}
	})
}

func TestPolicy_PostActions(t *testing.T) {
	p := NewPolicy()
	ctx := context.Background()

	t.Run("Delete Builds Action URL With Confirm", func(t *testing.T) {
		desc, ok := p.Resolve(ctx, item(domain.KindDeletePost), domain.ContextLive, fullContext())
		if !ok {
			t.Fatalf("expected visible descriptor")
		}
		if desc.Shape != domain.ShapeLink {
			t.Errorf("expected link shape")
		}
		if !strings.Contains(desc.Href, "action=user.posts.delete_post") {
			t.Errorf("missing action name in URL: %s", desc.Href)
		}
		if !strings.Contains(desc.Href, "post_id=88") {
			t.Errorf("missing post id in URL: %s", desc.Href)
		}
		if !strings.Contains(desc.Href, "_wpnonce=nonce-delete") {
			t.Errorf("missing nonce in URL: %s", desc.Href)
		}
		if desc.Confirm == "" {
			t.Errorf("delete must carry a confirmation prompt")
		}
	})

	t.Run("Publish Hidden When Already Published", func(t *testing.T) {
		pc := fullContext() // Status == publish
		if _, ok := p.Resolve(ctx, item(domain.KindPublishPost), domain.ContextLive, pc); ok {
			t.Errorf("publish should hide on an already published post")
		}
	})

	t.Run("Publish Visible When Unpublished", func(t *testing.T) {
		pc := fullContext()
		pc.Status = domain.StatusUnpublished
		desc, ok := p.Resolve(ctx, item(domain.KindPublishPost), domain.ContextLive, pc)
		if !ok {
			t.Fatalf("expected visible descriptor")
		}
		if !strings.Contains(desc.Href, "action=user.posts.republish_post") {
			t.Errorf("unexpected URL: %s", desc.Href)
		}
	})

	t.Run("Unpublish Mirrors Publish Gate", func(t *testing.T) {
		desc, ok := p.Resolve(ctx, item(domain.KindUnpublishPost), domain.ContextLive, fullContext())
		if !ok {
			t.Fatalf("unpublish should show on a published post")
		}
		if !strings.Contains(desc.Href, "action=user.posts.unpublish_post") {
			t.Errorf("unexpected URL: %s", desc.Href)
		}

		pc := fullContext()
		pc.Status = domain.StatusUnpublished
		if _, ok := p.Resolve(ctx, item(domain.KindUnpublishPost), domain.ContextLive, pc); ok {
			t.Errorf("unpublish should hide on an unpublished post")
		}
	})

	t.Run("Edit With Multiple Steps Opens Popup", func(t *testing.T) {
		desc, ok := p.Resolve(ctx, item(domain.KindEditPost), domain.ContextLive, fullContext())
		if !ok {
			t.Fatalf("expected visible descriptor")
		}
		if desc.Href != "#" {
			t.Errorf("popup trigger must not navigate, got href %q", desc.Href)
		}
		if desc.Effect.Type != domain.EffectOpenPopup || desc.Effect.Popup != domain.PopupEdit {
			t.Errorf("expected open edit popup effect, got %+v", desc.Effect)
		}
	})

	t.Run("Edit With Single Step Links Directly", func(t *testing.T) {
		pc := fullContext()
		pc.EditSteps = pc.EditSteps[:1]
		desc, _ := p.Resolve(ctx, item(domain.KindEditPost), domain.ContextLive, pc)
		if desc.Href != pc.EditSteps[0].URL {
			t.Errorf("expected direct link to the only step, got %q", desc.Href)
		}
		if desc.Effect.Type != domain.EffectNone {
			t.Errorf("single-step edit must not open a popup")
		}
	})

	t.Run("Edit With No Steps Is A Container", func(t *testing.T) {
		pc := fullContext()
		pc.EditSteps = nil
		desc, _ := p.Resolve(ctx, item(domain.KindEditPost), domain.ContextLive, pc)
		if desc.Shape != domain.ShapeContainer {
			t.Errorf("expected container, got %s", desc.Shape)
		}
	})

	t.Run("Follow Post Carries Toggle State", func(t *testing.T) {
		pc := fullContext()
		pc.Follow = domain.FollowState{Following: true}

		followItem := item(domain.KindFollowPost)
		followItem.ActiveLabel = "Following"

		desc, ok := p.Resolve(ctx, followItem, domain.ContextLive, pc)
		if !ok {
			t.Fatalf("expected visible descriptor")
		}
		if !desc.Active {
			t.Errorf("followed post must resolve active")
		}
		if desc.ActiveDisplay == nil || desc.ActiveDisplay.Label != "Following" {
			t.Errorf("missing active display pair: %+v", desc.ActiveDisplay)
		}
		if !strings.Contains(desc.Href, "action=user.follow_post") {
			t.Errorf("unexpected URL: %s", desc.Href)
		}

		pc.Follow = domain.FollowState{Requested: true}
		desc, _ = p.Resolve(ctx, followItem, domain.ContextLive, pc)
		if !desc.Intermediate {
			t.Errorf("requested follow must resolve intermediate")
		}
	})

	t.Run("Follow Kinds Hidden When Timeline Disabled", func(t *testing.T) {
		pc := fullContext()
		pc.TimelineDisabled = true
		if _, ok := p.Resolve(ctx, item(domain.KindFollowPost), domain.ContextLive, pc); ok {
			t.Errorf("follow post should hide with timeline disabled")
		}
		if _, ok := p.Resolve(ctx, item(domain.KindFollowAuthor), domain.ContextLive, pc); ok {
			t.Errorf("follow author should hide with timeline disabled")
		}
	})

	t.Run("Follow Author Uses User Param And Requires Author", func(t *testing.T) {
		desc, ok := p.Resolve(ctx, item(domain.KindFollowAuthor), domain.ContextLive, fullContext())
		if !ok {
			t.Fatalf("expected visible descriptor")
		}
		if !strings.Contains(desc.Href, "user_id=12") {
			t.Errorf("expected user id param, got %s", desc.Href)
		}

		pc := fullContext()
		pc.AuthorID = 0
		if _, ok := p.Resolve(ctx, item(domain.KindFollowAuthor), domain.ContextLive, pc); ok {
			t.Errorf("follow author should hide without an author id")
		}
	})

	t.Run("Precomputed Link Kinds", func(t *testing.T) {
		pc := fullContext()

		desc, _ := p.Resolve(ctx, item(domain.KindShowOnMap), domain.ContextLive, pc)
		if desc.Href != pc.MapLink {
			t.Errorf("show on map should link to the map link")
		}

		desc, _ = p.Resolve(ctx, item(domain.KindViewStats), domain.ContextLive, pc)
		if desc.Href != pc.StatsLink {
			t.Errorf("view stats should link to the stats link")
		}

		pc.MapLink = ""
		if _, ok := p.Resolve(ctx, item(domain.KindShowOnMap), domain.ContextLive, pc); ok {
			t.Errorf("show on map should hide without a map link")
		}
	})

	t.Run("Promote Branches On Promotion State", func(t *testing.T) {
		pc := fullContext()
		pc.Promote.Active = true
		desc, _ := p.Resolve(ctx, item(domain.KindPromotePost), domain.ContextLive, pc)
		if !desc.Active {
			t.Errorf("active promotion must resolve active")
		}

		pc.Promote = domain.PromoteState{Promotable: true, Pending: true, Link: "x"}
		desc, _ = p.Resolve(ctx, item(domain.KindPromotePost), domain.ContextLive, pc)
		if !desc.Intermediate {
			t.Errorf("pending promotion must resolve intermediate")
		}

		pc.Promote = domain.PromoteState{}
		if _, ok := p.Resolve(ctx, item(domain.KindPromotePost), domain.ContextLive, pc); ok {
			t.Errorf("non-promotable post should hide the promote action")
		}
	})
}

func TestPolicy_Cart(t *testing.T) {
	p := NewPolicy()
	ctx := context.Background()

	t.Run("OneClick Delegates With Product ID", func(t *testing.T) {
		pc := fullContext()
		pc.Product = domain.Product{Enabled: true, OneClick: true, ID: 7}

		desc, ok := p.Resolve(ctx, item(domain.KindAddToCart), domain.ContextLive, pc)
		if !ok {
			t.Fatalf("expected visible descriptor")
		}
		if desc.Effect.Type != domain.EffectDelegate {
			t.Errorf("one-click must delegate to the host handler")
		}
		if desc.Data["product-id"] != "7" {
			t.Errorf("missing product id data attribute: %v", desc.Data)
		}
	})

	t.Run("Select Options Links To Post", func(t *testing.T) {
		pc := fullContext()
		pc.Product = domain.Product{Enabled: true, OneClick: false, ID: 7}

		cartItem := item(domain.KindAddToCart)
		cartItem.Cart.SelectText = "Select options"
		cartItem.Cart.SelectIcon = "icon-options"

		desc, ok := p.Resolve(ctx, cartItem, domain.ContextLive, pc)
		if !ok {
			t.Fatalf("expected visible descriptor")
		}
		if desc.Href != pc.Link {
			t.Errorf("expected link to the post, got %q", desc.Href)
		}
		if desc.Display.Label != "Select options" || desc.Display.Icon != "icon-options" {
			t.Errorf("expected select-options display pair, got %+v", desc.Display)
		}
		if desc.Variant != domain.VariantSelectOptions {
			t.Errorf("missing select options variant marker")
		}
	})

	t.Run("Disabled Product Hides Live", func(t *testing.T) {
		pc := fullContext()
		pc.Product.Enabled = false
		if _, ok := p.Resolve(ctx, item(domain.KindAddToCart), domain.ContextLive, pc); ok {
			t.Errorf("cart action should hide for an ineligible product")
		}
	})

	t.Run("Select Addon Delegates With Marker Class", func(t *testing.T) {
		addonItem := item(domain.KindSelectAddon)
		addonItem.AddonID = "addon-3"

		desc, ok := p.Resolve(ctx, addonItem, domain.ContextLive, fullContext())
		if !ok {
			t.Fatalf("expected visible descriptor")
		}
		if desc.Class != addonMarkerClass {
			t.Errorf("missing marker class, got %q", desc.Class)
		}
		if desc.Data["id"] != "addon-3" {
			t.Errorf("missing data id attribute: %v", desc.Data)
		}
		if desc.Effect.Type != domain.EffectDelegate {
			t.Errorf("add-on selection must delegate")
		}
	})
}

func TestPolicy_ContextFree(t *testing.T) {
	p := NewPolicy()
	ctx := context.Background()

	t.Run("Static Link Verbatim", func(t *testing.T) {
		linkItem := item(domain.KindLink)
		linkItem.Link = domain.LinkConfig{URL: "https://example.org", External: true, NoFollow: true}

		desc, _ := p.Resolve(ctx, linkItem, domain.ContextLive, nil)
		if desc.Href != "https://example.org" || !desc.External || !desc.NoFollow {
			t.Errorf("link config must pass through verbatim: %+v", desc)
		}
	})

	t.Run("GoBack Suppressed In Preview", func(t *testing.T) {
		desc, _ := p.Resolve(ctx, item(domain.KindGoBack), domain.ContextLive, nil)
		if desc.Effect.Type != domain.EffectHistoryBack {
			t.Errorf("expected history back effect live")
		}
		desc, _ = p.Resolve(ctx, item(domain.KindGoBack), domain.ContextPreview, nil)
		if desc.Effect.Type != domain.EffectNone {
			t.Errorf("go-back effect must be suppressed in preview")
		}
	})

	t.Run("ScrollTo Targets Configured Section", func(t *testing.T) {
		scrollItem := item(domain.KindScrollTo)
		scrollItem.ScrollTarget = "reviews"
		desc, _ := p.Resolve(ctx, scrollItem, domain.ContextLive, nil)
		if desc.Effect.Type != domain.EffectScrollTo || desc.Effect.Target != "reviews" {
			t.Errorf("unexpected effect: %+v", desc.Effect)
		}
	})

	t.Run("Calendar With Bad Start Degrades", func(t *testing.T) {
		calItem := item(domain.KindGoogleCalendar)
		calItem.Calendar.Start = "not a date"
		desc, ok := p.Resolve(ctx, calItem, domain.ContextLive, nil)
		if !ok || desc.Shape != domain.ShapeContainer {
			t.Errorf("bad start date must degrade to container, got %+v", desc)
		}
	})

	t.Run("Calendar Links When Parseable", func(t *testing.T) {
		calItem := item(domain.KindGoogleCalendar)
		calItem.Calendar = domain.CalendarConfig{Title: "Open day", Start: "2026-05-01 10:00"}
		desc, _ := p.Resolve(ctx, calItem, domain.ContextLive, nil)
		if desc.Shape != domain.ShapeLink || !strings.Contains(desc.Href, "calendar.google.com") {
			t.Errorf("expected google calendar link, got %+v", desc)
		}

		icsItem := item(domain.KindICalendar)
		icsItem.Calendar = calItem.Calendar
		desc, _ = p.Resolve(ctx, icsItem, domain.ContextLive, nil)
		if !strings.HasPrefix(desc.Href, "data:text/calendar;base64,") {
			t.Errorf("expected data URL, got %q", desc.Href)
		}
		if desc.Download != "Open day.ics" {
			t.Errorf("unexpected download filename %q", desc.Download)
		}
	})
}

func TestPolicy_Hooks(t *testing.T) {
	var resolved, skipped []string
	p := NewPolicy(WithLifecycleHooks(domain.LifecycleHooks{
		OnItemResolved: func(_ context.Context, ev *domain.ItemEvent) {
			resolved = append(resolved, ev.ItemID)
		},
		OnItemSkipped: func(_ context.Context, ev *domain.ItemEvent) {
			skipped = append(skipped, ev.ItemID+":"+ev.Reason)
		},
	}))

	items := []domain.ActionItem{
		item(domain.KindLink),
		item(domain.KindDeletePost), // no context: skipped live
	}
	p.Compose(context.Background(), items, domain.ContextLive, nil)

	if len(resolved) != 1 || resolved[0] != "i-link" {
		t.Errorf("unexpected resolved events: %v", resolved)
	}
	if len(skipped) != 1 || skipped[0] != "i-delete_post:no_context" {
		t.Errorf("unexpected skipped events: %v", skipped)
	}
}

var _ ports.Resolver = (*Policy)(nil)
