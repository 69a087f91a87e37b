package espalier

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
)

// Previewer writes a human-readable summary of a resolved action list.
// This allows for easy testing and integration with different frontends
// (plain CLI, TUI, etc).
type Previewer struct {
	Output   io.Writer
	Renderer ContentRenderer
}

// ContentRenderer is a function that transforms the markdown summary before
// outputting it. This allows for TUI rendering (markdown to ANSI) without
// coupling the core package.
type ContentRenderer func(string) (string, error)

// NewPreviewer creates a new Previewer.
// The caller must set Output (use os.Stdout).
func NewPreviewer() *Previewer {
	return &Previewer{}
}

// Preview resolves the catalog in the given context and writes the summary.
func (p *Previewer) Preview(ctx context.Context, engine *Engine, rc domain.RenderContext, post *domain.PostContext) error {
	if p.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	nodes, err := engine.Render(ctx, rc, post)
	if err != nil {
		return fmt.Errorf("render error: %w", err)
	}

	output := Summarize(nodes, rc)
	if p.Renderer != nil {
		rendered, err := p.Renderer(output)
		if err == nil {
			output = rendered
		}
	}

	_, err = fmt.Fprintln(p.Output, strings.TrimSpace(output))
	return err
}

// Summarize renders nodes as a markdown document, one bullet per visible
// item.
func Summarize(nodes []domain.RenderNode, rc domain.RenderContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Actions (%s)\n\n", rc)
	if len(nodes) == 0 {
		b.WriteString("_No visible actions._\n")
		return b.String()
	}

	for _, node := range nodes {
		label := node.Descriptor.Display.Label
		if label == "" {
			label = node.Item.ID
		}
		fmt.Fprintf(&b, "- **%s** `%s`", label, node.Item.Kind)

		switch {
		case node.Descriptor.Shape == domain.ShapeContainer:
			b.WriteString(" (container)")
		case node.Descriptor.Effect.Type != domain.EffectNone:
			fmt.Fprintf(&b, " -> %s", node.Descriptor.Effect.Type)
		case node.Descriptor.Href != "":
			fmt.Fprintf(&b, " -> %s", node.Descriptor.Href)
		}

		if node.Descriptor.Active {
			b.WriteString(" [active]")
		}
		if node.Descriptor.Intermediate {
			b.WriteString(" [pending]")
		}
		if node.Popup != nil {
			fmt.Fprintf(&b, " (opens %s popup, %d steps)", node.Popup.Kind, len(node.Popup.Steps))
		}
		b.WriteString("\n")
	}

	return b.String()
}
