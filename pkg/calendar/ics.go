package calendar

import (
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
	"time"

	"github.com/aretw0/espalier/pkg/ports"
)

// File is a downloadable iCalendar payload: a base64 data URL plus the
// filename the host should suggest for the download.
type File struct {
	Data     string `json:"data"`
	Filename string `json:"filename"`
}

// ICSOption configures the non-deterministic inputs of the codec.
type ICSOption func(*icsCodec)

type icsCodec struct {
	clock  ports.Clock
	origin string
}

// WithClock injects the instant used for DTSTAMP. Default: time.Now.
func WithClock(clock ports.Clock) ICSOption {
	return func(c *icsCodec) {
		c.clock = clock
	}
}

// WithOrigin sets the origin suffix of generated UIDs. Default: "localhost".
func WithOrigin(origin string) ICSOption {
	return func(c *icsCodec) {
		c.origin = origin
	}
}

var (
	filenamePattern = regexp.MustCompile(`[^\w\s-]`)
	locationPattern = regexp.MustCompile(`[\\;\r\n]`)
	breakPattern    = regexp.MustCompile(`\r\n|\r|\n`)
)

// ICS builds the VEVENT payload for the event. Identical inputs produce
// identical output except for DTSTAMP and the clock-independent UID's origin
// suffix; tests compare structure rather than bytes.
func ICS(e Event, opts ...ICSOption) (*File, error) {
	start, end, err := window(e)
	if err != nil {
		return nil, err
	}

	codec := &icsCodec{clock: time.Now, origin: "localhost"}
	for _, opt := range opts {
		opt(codec)
	}

	// Description: strip markup, then encode line breaks as the literal
	// two-character "\n" escape required by the format.
	description := breakPattern.ReplaceAllString(stripTags(e.Description), `\n`)
	location := locationPattern.ReplaceAllString(e.Location, "")

	stem := strings.TrimSpace(filenamePattern.ReplaceAllString(e.Title, ""))
	if stem == "" {
		stem = "event"
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"LOCATION:" + location,
		"DESCRIPTION:" + description,
		"DTSTART:" + stamp(start),
		"DTEND:" + stamp(end),
		"SUMMARY:" + e.Title,
		"URL:" + e.URL,
		"DTSTAMP:" + stamp(codec.clock()),
		"UID:" + codec.uid(e, start, end),
		"END:VEVENT",
		"END:VCALENDAR",
	}

	payload := strings.Join(lines, "\r\n")
	return &File{
		Data:     "data:text/calendar;base64," + base64.StdEncoding.EncodeToString([]byte(payload)),
		Filename: stem + ".ics",
	}, nil
}

// uid derives a stable identifier from the event identity plus the
// configured origin, so re-imports of the same event deduplicate.
func (c *icsCodec) uid(e Event, start, end time.Time) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s|%s", e.Title, stamp(start), stamp(end), e.URL)
	return fmt.Sprintf("%x@%s", h.Sum64(), c.origin)
}
