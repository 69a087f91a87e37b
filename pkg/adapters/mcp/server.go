// Package mcp exposes the resolution engine as an MCP server, so agent
// tooling can inspect a site's configured actions and dry-run renders.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// RenderResponse aligns with the OpenAPI schema and provides a unified structure across adapters.
type RenderResponse struct {
	Nodes []domain.RenderNode `json:"nodes" jsonschema_description:"Resolved render nodes in authored order"`
	Count int                 `json:"count" jsonschema_description:"Number of visible nodes"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	Compose(ctx context.Context, items []domain.ActionItem, rc domain.RenderContext, post *domain.PostContext) []domain.RenderNode
	Inspect(ctx context.Context) ([]domain.ActionItem, error)
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	source    ports.PostContextSource
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. source may be nil; renders
// then run without post context unless the caller inlines one.
func NewServer(engine Engine, source ports.PostContextSource) *Server {
	s := &Server{
		engine:    engine,
		source:    source,
		mcpServer: server.NewMCPServer("espalier-mcp", strings.TrimSpace(espalier.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: render_actions
	renderTool := mcp.NewTool("render_actions",
		mcp.WithDescription("Resolve the configured action list into render nodes. Defaults to the live context against the given post."),
		mcp.WithString("context", mcp.Description("Render context: 'live' (default) or 'preview'")),
		mcp.WithNumber("post_id", mcp.Description("Post to resolve against (looked up in the context source)")),
		mcp.WithString("post", mcp.Description("Inline post context snapshot, as a JSON object or encoded string (overrides post_id)")),
		mcp.WithString("actions", mcp.Description("JSON array of action items (overrides the configured catalog)")),
		mcp.WithOutputSchema[RenderResponse](),
	)
	s.mcpServer.AddTool(renderTool, mcp.NewStructuredToolHandler(s.handleRenderActions))

	// TOOL: inspect_catalog
	s.mcpServer.AddTool(mcp.NewTool("inspect_catalog",
		mcp.WithDescription("Get the configured action items for introspection."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		items, err := s.engine.Inspect(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("inspect failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(items)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleRenderActions(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RenderResponse, error) {
	rc := domain.ContextLive
	if rcStr, ok := args["context"].(string); ok && strings.EqualFold(rcStr, string(domain.ContextPreview)) {
		rc = domain.ContextPreview
	}

	var items []domain.ActionItem
	if actStr, ok := args["actions"].(string); ok && actStr != "" {
		if err := json.Unmarshal([]byte(actStr), &items); err != nil {
			return RenderResponse{}, fmt.Errorf("invalid actions payload: %w", err)
		}
	} else {
		var err error
		items, err = s.engine.Inspect(ctx)
		if err != nil {
			return RenderResponse{}, fmt.Errorf("catalog list failed: %w", err)
		}
	}

	var post *domain.PostContext
	switch v := args["post"].(type) {
	case string:
		if v != "" {
			post = &domain.PostContext{}
			if err := json.Unmarshal([]byte(v), post); err != nil {
				return RenderResponse{}, fmt.Errorf("invalid post payload: %w", err)
			}
		}
	case map[string]any:
		// Inline definition
		post = &domain.PostContext{}
		if err := mapstructure.Decode(v, post); err != nil {
			return RenderResponse{}, fmt.Errorf("failed to decode inline post: %w", err)
		}
	}
	if post == nil {
		if postID, ok := args["post_id"].(float64); ok && s.source != nil {
			fetched, err := s.source.Fetch(ctx, int64(postID))
			if err != nil && !errors.Is(err, domain.ErrContextNotFound) {
				return RenderResponse{}, fmt.Errorf("context fetch failed: %w", err)
			}
			post = fetched
		}
	}

	nodes := s.engine.Compose(ctx, items, rc, post)
	return RenderResponse{Nodes: nodes, Count: len(nodes)}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: espalier://catalog
	s.mcpServer.AddResource(mcp.NewResource("espalier://catalog", "Configured Action Items",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		items, err := s.engine.Inspect(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect catalog: %w", err)
		}
		jsonBytes, _ := json.Marshal(items)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "espalier://catalog",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
