package calendar

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestGoogleURL(t *testing.T) {
	t.Run("Rejects Missing Start", func(t *testing.T) {
		_, err := GoogleURL(Event{Title: "Launch"})
		if !errors.Is(err, ErrInvalidStart) {
			t.Fatalf("expected ErrInvalidStart, got %v", err)
		}
	})

	t.Run("Rejects Unparseable Start", func(t *testing.T) {
		_, err := GoogleURL(Event{Title: "Launch", Start: "next tuesday"})
		if !errors.Is(err, ErrInvalidStart) {
			t.Fatalf("expected ErrInvalidStart, got %v", err)
		}
	})

	t.Run("Formats Range", func(t *testing.T) {
		raw, err := GoogleURL(Event{
			Title: "Launch",
			Start: "2026-03-14 09:30:00",
			End:   "2026-03-14 11:00:00",
		})
		if err != nil {
			t.Fatalf("GoogleURL failed: %v", err)
		}

		parsed, err := url.Parse(raw)
		if err != nil {
			t.Fatalf("output is not a valid URL: %v", err)
		}
		q := parsed.Query()
		if q.Get("action") != "TEMPLATE" {
			t.Errorf("expected action=TEMPLATE, got %q", q.Get("action"))
		}
		if q.Get("dates") != "20260314T093000/20260314T110000" {
			t.Errorf("unexpected dates param: %q", q.Get("dates"))
		}
		if q.Get("text") != "Launch" {
			t.Errorf("unexpected text param: %q", q.Get("text"))
		}
	})

	t.Run("Clamps Earlier End To Start", func(t *testing.T) {
		raw, err := GoogleURL(Event{
			Title: "Launch",
			Start: "2026-03-14",
			End:   "2026-03-01",
		})
		if err != nil {
			t.Fatalf("GoogleURL failed: %v", err)
		}
		parsed, _ := url.Parse(raw)
		if got := parsed.Query().Get("dates"); got != "20260314T000000/20260314T000000" {
			t.Errorf("end was not clamped to start: %q", got)
		}
	})

	t.Run("Strips HTML From Details", func(t *testing.T) {
		raw, err := GoogleURL(Event{
			Title:       "Launch",
			Start:       "2026-03-14",
			Description: "<p>Doors open <b>early</b></p>",
		})
		if err != nil {
			t.Fatalf("GoogleURL failed: %v", err)
		}
		parsed, _ := url.Parse(raw)
		if got := parsed.Query().Get("details"); got != "Doors open early" {
			t.Errorf("expected tags stripped, got %q", got)
		}
	})

	t.Run("Optional Params Omitted When Empty", func(t *testing.T) {
		raw, err := GoogleURL(Event{Title: "Launch", Start: "2026-03-14"})
		if err != nil {
			t.Fatalf("GoogleURL failed: %v", err)
		}
		parsed, _ := url.Parse(raw)
		q := parsed.Query()
		for _, key := range []string{"details", "location", "ctz"} {
			if _, present := q[key]; present {
				t.Errorf("param %q should be omitted when empty", key)
			}
		}
	})
}

func decodePayload(t *testing.T, f *File) string {
	t.Helper()
	const prefix = "data:text/calendar;base64,"
	if !strings.HasPrefix(f.Data, prefix) {
		t.Fatalf("unexpected data URL prefix: %q", f.Data[:40])
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(f.Data, prefix))
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	return string(decoded)
}

func TestICS(t *testing.T) {
	fixed := func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	}

	t.Run("Rejects Missing Start", func(t *testing.T) {
		_, err := ICS(Event{Title: "Launch"})
		if !errors.Is(err, ErrInvalidStart) {
			t.Fatalf("expected ErrInvalidStart, got %v", err)
		}
	})

	t.Run("Block Structure", func(t *testing.T) {
		f, err := ICS(Event{
			Title: "Launch",
			Start: "2026-03-14 09:30:00",
			End:   "2026-03-14 11:00:00",
		}, WithClock(fixed))
		if err != nil {
			t.Fatalf("ICS failed: %v", err)
		}

		payload := decodePayload(t, f)
		if !strings.HasPrefix(payload, "BEGIN:VCALENDAR") {
			t.Errorf("payload must start with BEGIN:VCALENDAR")
		}
		if !strings.HasSuffix(payload, "END:VCALENDAR") {
			t.Errorf("payload must end with END:VCALENDAR")
		}
		if !strings.Contains(payload, "DTSTART:20260314T093000") {
			t.Errorf("missing 14-digit DTSTART, payload:\n%s", payload)
		}
		if !strings.Contains(payload, "DTEND:20260314T110000") {
			t.Errorf("missing 14-digit DTEND, payload:\n%s", payload)
		}
		if !strings.Contains(payload, "DTSTAMP:20260102T030405") {
			t.Errorf("DTSTAMP did not use injected clock, payload:\n%s", payload)
		}
		lines := strings.Split(payload, "\r\n")
		if len(lines) != 13 {
			t.Errorf("expected 13 CRLF-joined lines, got %d", len(lines))
		}
	})

	t.Run("Clamps Earlier End To Start", func(t *testing.T) {
		f, err := ICS(Event{Title: "Launch", Start: "2026-03-14", End: "2026-02-01"}, WithClock(fixed))
		if err != nil {
			t.Fatalf("ICS failed: %v", err)
		}
		payload := decodePayload(t, f)
		if !strings.Contains(payload, "DTEND:20260314T000000") {
			t.Errorf("end was not clamped to start:\n%s", payload)
		}
	})

	t.Run("Filename Sanitized", func(t *testing.T) {
		f, err := ICS(Event{Title: "Grand Opening: 50% off!", Start: "2026-03-14"}, WithClock(fixed))
		if err != nil {
			t.Fatalf("ICS failed: %v", err)
		}
		if f.Filename != "Grand Opening 50 off.ics" {
			t.Errorf("unexpected filename: %q", f.Filename)
		}
	})

	t.Run("Filename Falls Back To Event", func(t *testing.T) {
		f, err := ICS(Event{Title: "***", Start: "2026-03-14"}, WithClock(fixed))
		if err != nil {
			t.Fatalf("ICS failed: %v", err)
		}
		if f.Filename != "event.ics" {
			t.Errorf("unexpected filename: %q", f.Filename)
		}
	})

	t.Run("Description Breaks Escaped", func(t *testing.T) {
		f, err := ICS(Event{
			Title:       "Launch",
			Start:       "2026-03-14",
			Description: "line one\r\nline two\nline three",
		}, WithClock(fixed))
		if err != nil {
			t.Fatalf("ICS failed: %v", err)
		}
		payload := decodePayload(t, f)
		if !strings.Contains(payload, `DESCRIPTION:line one\nline two\nline three`) {
			t.Errorf("line breaks were not escaped:\n%s", payload)
		}
	})

	t.Run("UID Stable For Same Event", func(t *testing.T) {
		ev := Event{Title: "Launch", Start: "2026-03-14", URL: "https://example.com/p/1"}
		first, err := ICS(ev, WithClock(fixed), WithOrigin("example.com"))
		if err != nil {
			t.Fatalf("ICS failed: %v", err)
		}
		second, err := ICS(ev, WithClock(fixed), WithOrigin("example.com"))
		if err != nil {
			t.Fatalf("ICS failed: %v", err)
		}
		// With a fixed clock the whole payload is deterministic; with wall
		// clock only DTSTAMP may differ, which the structure checks above
		// already tolerate.
		if first.Data != second.Data {
			t.Errorf("identical inputs and clock must produce identical payloads")
		}
		payload := decodePayload(t, first)
		if !strings.Contains(payload, "@example.com") {
			t.Errorf("UID missing origin suffix:\n%s", payload)
		}
	})
}
