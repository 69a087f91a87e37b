// Package http exposes the resolution engine over a JSON API: a render
// endpoint for action lists, the action endpoint resolved URLs point at,
// catalog inspection, SSE reload events, and Prometheus metrics.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/observability"
	"github.com/aretw0/espalier/pkg/ports"
)

// Engine defines the interface for the resolution core.
type Engine interface {
	Compose(ctx context.Context, items []domain.ActionItem, rc domain.RenderContext, post *domain.PostContext) []domain.RenderNode
	Inspect(ctx context.Context) ([]domain.ActionItem, error)
}

// Server wires the engine and its sources into HTTP handlers.
type Server struct {
	engine  Engine
	source  ports.PostContextSource
	watch   ports.Watchable
	metrics *observability.Metrics
	logger  *slog.Logger
}

// Option configures the server.
type Option func(*Server)

// WithSource attaches the post context source used by post_id renders and
// by nonce verification on the action endpoint.
func WithSource(source ports.PostContextSource) Option {
	return func(s *Server) {
		s.source = source
	}
}

// WithWatchable enables the SSE reload stream.
func WithWatchable(w ports.Watchable) Option {
	return func(s *Server) {
		s.watch = w
	}
}

// WithMetrics serves /metrics and instruments every request.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets a structured logger. Default: discard.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{engine: engine}
	for _, opt := range opts {
		opt(server)
	}
	if server.logger == nil {
		server.logger = logging.NewNop()
	}

	r := chi.NewRouter()
	if server.metrics != nil {
		r.Use(server.instrument)
		r.Method("GET", "/metrics", server.metrics.Handler())
	}

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Post("/render", server.Render)
	r.Get("/actions", server.InvokeAction)
	r.Get("/catalog", server.GetCatalog)
	r.Get("/events", server.SubscribeEvents)
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Espalier API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// RenderRequest is the POST /render body.
type RenderRequest struct {
	Context string              `json:"context"`
	PostID  *int64              `json:"post_id"`
	Post    *domain.PostContext `json:"post"`
	Actions []domain.ActionItem `json:"actions"`
}

// RenderResponse is the POST /render reply.
type RenderResponse struct {
	Nodes []domain.RenderNode `json:"nodes"`
	Count int                 `json:"count"`
}

// Render handles the POST /render request.
func (s *Server) Render(w http.ResponseWriter, r *http.Request) {
	var body RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("render: invalid request body", "err", err)
		return
	}

	rc := domain.ContextLive
	if strings.EqualFold(body.Context, string(domain.ContextPreview)) {
		rc = domain.ContextPreview
	}

	items := body.Actions
	if items == nil {
		var err error
		items, err = s.engine.Inspect(r.Context())
		if err != nil {
			http.Error(w, fmt.Sprintf("Catalog error: %v", err), http.StatusInternalServerError)
			s.logger.Error("render: catalog list failed", "err", err)
			return
		}
	}

	post := body.Post
	if post == nil && body.PostID != nil && s.source != nil {
		fetched, err := s.source.Fetch(r.Context(), *body.PostID)
		switch {
		case err == nil:
			post = fetched
		case errors.Is(err, domain.ErrContextNotFound):
			// Missing context is a normal state: post-dependent items
			// simply stay hidden in the live context.
			s.logger.Debug("render: no context record", "post_id", *body.PostID)
		default:
			http.Error(w, fmt.Sprintf("Context error: %v", err), http.StatusInternalServerError)
			s.logger.Error("render: context fetch failed", "err", err, "post_id", *body.PostID)
			return
		}
	}

	nodes := s.engine.Compose(r.Context(), items, rc, post)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(RenderResponse{Nodes: nodes, Count: len(nodes)}); err != nil {
		s.logger.Error("render: response encode failed", "err", err)
	}
}

// InvokeAction handles the GET /actions request: the endpoint the engine's
// generated action URLs point at. The server only verifies the request and
// acknowledges it; executing the state change is the host's job.
func (s *Server) InvokeAction(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("vx") != "1" {
		http.Error(w, "Unsupported protocol version", http.StatusBadRequest)
		return
	}
	action := q.Get("action")
	if action == "" {
		http.Error(w, "Missing action", http.StatusBadRequest)
		return
	}
	nonce := q.Get("_wpnonce")
	if nonce == "" {
		http.Error(w, "Missing nonce", http.StatusBadRequest)
		return
	}
	if s.source == nil {
		http.Error(w, "No context source configured", http.StatusNotImplemented)
		return
	}

	// Follow-author URLs identify their record by user_id; every other
	// action family carries post_id.
	var record *domain.PostContext
	var err error
	switch {
	case q.Get("post_id") != "":
		postID, perr := strconv.ParseInt(q.Get("post_id"), 10, 64)
		if perr != nil {
			http.Error(w, "Malformed post_id", http.StatusBadRequest)
			return
		}
		record, err = s.source.Fetch(r.Context(), postID)
	case q.Get("user_id") != "":
		userID, perr := strconv.ParseInt(q.Get("user_id"), 10, 64)
		if perr != nil {
			http.Error(w, "Malformed user_id", http.StatusBadRequest)
			return
		}
		byAuthor, ok := s.source.(ports.AuthorContextSource)
		if !ok {
			http.Error(w, "Context source cannot resolve users", http.StatusNotImplemented)
			return
		}
		record, err = byAuthor.FetchByAuthor(r.Context(), userID)
	default:
		http.Error(w, "Missing post_id or user_id", http.StatusBadRequest)
		return
	}
	if err != nil {
		if errors.Is(err, domain.ErrContextNotFound) {
			http.Error(w, "Unknown context", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Context error: %v", err), http.StatusInternalServerError)
		s.logger.Error("actions: context fetch failed", "err", err, "action", action)
		return
	}

	if record.Nonce(action) != nonce {
		s.logger.Warn("actions: nonce verification failed", "action", action, "post_id", record.ID)
		http.Error(w, "Nonce verification failed", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "accepted",
		"action":  action,
		"post_id": record.ID,
	})
}

// GetCatalog handles the GET /catalog request.
func (s *Server) GetCatalog(w http.ResponseWriter, r *http.Request) {
	items, err := s.engine.Inspect(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Catalog error: %v", err), http.StatusInternalServerError)
		s.logger.Error("catalog: list failed", "err", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(items); err != nil {
		s.logger.Error("catalog: response encode failed", "err", err)
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"app":         "espalier-http",
		"version":     strings.TrimSpace(espalier.Version),
		"api_version": apiVersion,
	})
}

// SubscribeEvents handles the GET /events request (SSE). Each subscriber
// gets its own catalog watcher; the stream carries a "reload" datum per
// backend change.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	if s.watch == nil {
		http.Error(w, "Watching not supported", http.StatusNotImplemented)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	events, err := s.watch.Watch(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Watch error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: reload\n\n")
			flusher.Flush()
		}
	}
}

// instrument records request counts and latency per route.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		s.metrics.ObserveRequest(path, r.Method, strconv.Itoa(rec.status), time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps SSE working through the middleware.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
