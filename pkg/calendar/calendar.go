// Package calendar converts configured event fields into a Google Calendar
// URL and an iCalendar payload. Both codecs are pure: malformed start dates
// yield ErrInvalidStart rather than panicking, and an end before start is
// silently clamped to the start.
package calendar

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Event is the input to both codecs. Start and End are free-text dates as
// authored in the block configuration.
type Event struct {
	Title       string
	Description string
	Location    string
	Timezone    string
	URL         string
	Start       string
	End         string
}

// ErrInvalidStart marks a missing or unparseable start date. Callers render
// the item as a non-interactive container instead of a link.
var ErrInvalidStart = errors.New("calendar: start date is missing or unparseable")

const renderEndpoint = "https://calendar.google.com/calendar/render"

// stampLayout is the compact UTC instant format both codecs emit.
const stampLayout = "20060102T150405"

// layouts accepted for authored dates, most specific first.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// window validates the start and resolves the end, clamping a missing,
// unparseable or earlier end to the start.
func window(e Event) (time.Time, time.Time, error) {
	start, ok := parseDate(e.Start)
	if !ok {
		return time.Time{}, time.Time{}, ErrInvalidStart
	}
	end, ok := parseDate(e.End)
	if !ok || end.Before(start) {
		end = start
	}
	return start, end, nil
}

func stamp(t time.Time) string {
	return t.UTC().Format(stampLayout)
}

// stripTags removes HTML markup from authored rich-text descriptions.
func stripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// GoogleURL builds the public calendar "render" URL for the event.
// All parameters are percent-encoded; Description is stripped of HTML.
func GoogleURL(e Event) (string, error) {
	start, end, err := window(e)
	if err != nil {
		return "", err
	}

	v := url.Values{}
	v.Set("action", "TEMPLATE")
	v.Set("text", e.Title)
	v.Set("dates", stamp(start)+"/"+stamp(end))
	if details := strings.TrimSpace(stripTags(e.Description)); details != "" {
		v.Set("details", details)
	}
	if e.Location != "" {
		v.Set("location", e.Location)
	}
	if e.Timezone != "" {
		v.Set("ctz", e.Timezone)
	}

	return renderEndpoint + "?" + v.Encode(), nil
}
