package observability

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/aretw0/espalier/pkg/domain"
)

func TestMetricsHooks(t *testing.T) {
	m := NewMetrics()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnItemResolved(ctx, &domain.ItemEvent{Kind: domain.KindLink, Context: domain.ContextLive})
	hooks.OnItemResolved(ctx, &domain.ItemEvent{Kind: domain.KindLink, Context: domain.ContextLive})
	hooks.OnItemSkipped(ctx, &domain.ItemEvent{Kind: domain.KindDeletePost, Reason: domain.SkipNoContext})

	if got := testutil.ToFloat64(m.itemsResolved.WithLabelValues("link", "live")); got != 2 {
		t.Errorf("expected 2 resolved, got %v", got)
	}
	if got := testutil.ToFloat64(m.itemsSkipped.WithLabelValues("delete_post", "no_context")); got != 1 {
		t.Errorf("expected 1 skipped, got %v", got)
	}
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest("/render", "POST", "200", 0.01)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "espalier_http_requests_total") {
		t.Errorf("request counter missing from exposition:\n%s", body)
	}
}
