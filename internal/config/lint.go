package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/calendar"
	"github.com/aretw0/espalier/pkg/domain"
)

// Lint checks a document for configuration mistakes that the resolution
// engine would otherwise paper over at render time (unknown kinds become
// containers, bad dates degrade to containers). knownKinds is the set of
// kinds the host's registry implements.
func Lint(doc *Document, knownKinds []domain.ActionKind) error {
	known := make(map[domain.ActionKind]bool, len(knownKinds))
	for _, k := range knownKinds {
		known[k] = true
	}

	var problems []string
	seen := make(map[string]bool)

	for i, item := range doc.Actions {
		where := item.ID
		if where == "" {
			where = fmt.Sprintf("#%d", i)
			problems = append(problems, fmt.Sprintf("action %s: missing id", where))
		} else if seen[item.ID] {
			problems = append(problems, fmt.Sprintf("action %q: duplicate id", item.ID))
		}
		seen[item.ID] = true

		if item.Kind == "" {
			problems = append(problems, fmt.Sprintf("action %q: missing kind", where))
			continue
		}
		if len(knownKinds) > 0 && !known[item.Kind] {
			problems = append(problems, fmt.Sprintf("action %q: unknown kind %q renders as a placeholder", where, item.Kind))
			continue
		}

		switch item.Kind {
		case domain.KindLink:
			if item.Link.URL == "" {
				problems = append(problems, fmt.Sprintf("action %q: link kind without a url", where))
			}
		case domain.KindScrollTo:
			if item.ScrollTarget == "" {
				problems = append(problems, fmt.Sprintf("action %q: scroll kind without a target section", where))
			}
		case domain.KindGoogleCalendar, domain.KindICalendar:
			event := calendar.Event{
				Title: item.Calendar.Title,
				Start: item.Calendar.Start,
				End:   item.Calendar.End,
			}
			if _, err := calendar.GoogleURL(event); errors.Is(err, calendar.ErrInvalidStart) {
				problems = append(problems, fmt.Sprintf("action %q: calendar start date %q is unparseable", where, item.Calendar.Start))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("found %d problems:\n- %s", len(problems), strings.Join(problems, "\n- "))
	}
	return nil
}
