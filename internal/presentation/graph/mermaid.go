// Package graph renders the configured action list as a Mermaid diagram,
// for docs and quick visual inspection of a catalog.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
)

// GenerateMermaid produces Mermaid flowchart syntax from an action list.
// It applies semantic shapes per kind family:
//   - Popups (edit/share): [[Subroutine]]
//   - Calendar kinds: [/Parallelogram/]
//   - Plain containers (none): [Rectangle]
//   - Everything else: rounded (Link-ish)
//
// Post-dependent kinds are additionally styled with a dashed class.
func GenerateMermaid(items []domain.ActionItem) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    list((actions))\n")

	var postDependent []string

	for _, item := range items {
		safeID := sanitizeMermaidID(item.ID)

		label := item.Label
		if label == "" {
			label = item.ID
		}
		label = fmt.Sprintf("%s<br/><i>%s</i>", escapeMermaidText(label), item.Kind)

		opener, closer := "(", ")"
		switch item.Kind {
		case domain.KindEditPost, domain.KindSharePost:
			opener, closer = "[[", "]]" // Subroutine
		case domain.KindGoogleCalendar, domain.KindICalendar:
			opener, closer = "[/", "/]" // Parallelogram
		case domain.KindNone:
			opener, closer = "[", "]" // Rectangle
		}

		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label, closer)
		fmt.Fprintf(&sb, "    list --> %s\n", safeID)

		if item.Kind.PostDependent() {
			postDependent = append(postDependent, safeID)
		}
	}

	if len(postDependent) > 0 {
		sb.WriteString("    classDef postdep stroke-dasharray: 5 5\n")
		fmt.Fprintf(&sb, "    class %s postdep\n", strings.Join(postDependent, ","))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	replacer := strings.NewReplacer(
		"-", "_",
		".", "_",
		"/", "_",
		" ", "_",
	)
	safe := replacer.Replace(id)
	if safe == "" {
		safe = "item"
	}
	return "a_" + safe
}

func escapeMermaidText(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}
