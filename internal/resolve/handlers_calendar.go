package resolve

import (
	"time"

	"github.com/aretw0/espalier/pkg/calendar"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/registry"
)

func calendarEvent(req registry.Request) calendar.Event {
	cfg := req.Item.Calendar
	ev := calendar.Event{
		Title:       cfg.Title,
		Description: cfg.Description,
		Location:    cfg.Location,
		Timezone:    cfg.Timezone,
		Start:       cfg.Start,
		End:         cfg.End,
	}
	if ev.Title == "" {
		ev.Title = req.Item.Label
	}
	if req.Post != nil {
		ev.URL = req.Post.Link
	}
	return ev
}

// resolveGoogleCalendar links to the public calendar template URL, or
// degrades to a container when the start date does not parse.
func resolveGoogleCalendar(req registry.Request) (domain.Descriptor, bool) {
	href, err := calendar.GoogleURL(calendarEvent(req))
	if err != nil {
		return domain.Container(defaultDisplay(req.Item)), true
	}
	return domain.Descriptor{
		Shape:    domain.ShapeLink,
		Href:     href,
		External: true,
		Effect:   domain.Effect{Type: domain.EffectNone},
		Display:  defaultDisplay(req.Item),
	}, true
}

// resolveICalendar links to a base64 data URL carrying the VEVENT payload,
// with the download filename for the host's download affordance.
func resolveICalendar(req registry.Request) (domain.Descriptor, bool) {
	file, err := calendar.ICS(calendarEvent(req),
		calendar.WithClock(func() time.Time { return req.Now }),
		calendar.WithOrigin(req.Origin),
	)
	if err != nil {
		return domain.Container(defaultDisplay(req.Item)), true
	}
	return domain.Descriptor{
		Shape:    domain.ShapeLink,
		Href:     file.Data,
		Download: file.Filename,
		Effect:   domain.Effect{Type: domain.EffectNone},
		Display:  defaultDisplay(req.Item),
	}, true
}
