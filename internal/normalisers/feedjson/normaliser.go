// Package feedjson normalises raw harvester records into canonical events.
//
// The harvester and its predecessors used several field-naming conventions
// over time. Each canonical field resolves through a fixed alias-priority
// list: the first present alias wins, regardless of which other aliases the
// record carries. A record whose start cannot be resolved is dropped
// silently; one bad record never aborts the rest of the document.
package feedjson

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/veldt-labs/eventscope/internal/core/domain"
	"github.com/veldt-labs/eventscope/internal/logger"
)

// Alias-priority tables, one per canonical field. Order is the contract:
// it must be applied identically no matter which subset is present.
var (
	titleAliases       = []string{"title", "name", "summary"}
	urlAliases         = []string{"url", "link"}
	startAliases       = []string{"start_utc", "start", "startDate", "start_time", "dtstart"}
	endAliases         = []string{"end_utc", "end", "endDate", "end_time", "dtend"}
	cityAliases        = []string{"city", "town", "locality"}
	stateAliases       = []string{"state", "region", "province"}
	countryAliases     = []string{"country", "country_name"}
	venueAliases       = []string{"venue", "location", "place"}
	sourceAliases      = []string{"source", "feed", "provider"}
	descriptionAliases = []string{"description", "summary", "details"}
)

// timeLayouts are tried in order for string-valued timestamps.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normaliser converts harvester JSON documents into canonical events.
type Normaliser struct{}

// New creates a new feed JSON normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise maps every raw record in the document to a canonical Event.
// Records without a resolvable start are excluded. Output preserves the
// input's relative order; no deduplication happens here.
func (n *Normaliser) Normalise(doc *domain.RawDocument) []domain.Event {
	if doc == nil {
		return nil
	}

	fallbackSource := doc.Meta.SourceLabel()
	events := make([]domain.Event, 0, len(doc.Events))
	dropped := 0

	for _, raw := range doc.Events {
		event, ok := normaliseRecord(raw, fallbackSource)
		if !ok {
			dropped++
			continue
		}
		events = append(events, event)
	}

	if dropped > 0 {
		logger.Debug("Normalise: dropped %d of %d records without a usable start",
			dropped, len(doc.Events))
	}

	return events
}

// normaliseRecord resolves one raw record. ok is false when the record has
// no resolvable start and therefore never becomes an Event.
func normaliseRecord(raw domain.RawEvent, fallbackSource string) (domain.Event, bool) {
	start, ok := resolveTime(raw, startAliases)
	if !ok {
		return domain.Event{}, false
	}

	event := domain.Event{
		ID:          uuid.New().String(),
		Title:       resolveString(raw, titleAliases),
		URL:         resolveString(raw, urlAliases),
		Start:       start,
		City:        resolveString(raw, cityAliases),
		State:       resolveString(raw, stateAliases),
		Country:     resolveString(raw, countryAliases),
		Venue:       resolveString(raw, venueAliases),
		Source:      resolveString(raw, sourceAliases),
		Description: resolveString(raw, descriptionAliases),
	}

	if end, ok := resolveTime(raw, endAliases); ok {
		event.End = end
	}
	if event.Title == "" {
		event.Title = domain.UntitledEvent
	}
	if event.URL == "" {
		event.URL = domain.PlaceholderURL
	}
	if event.Source == "" {
		// Record-level source always wins; the metadata source list is a
		// fallback, not a merge.
		event.Source = fallbackSource
	}

	return event, true
}

// resolveString returns the first alias present with a non-blank string value.
func resolveString(raw domain.RawEvent, aliases []string) string {
	for _, alias := range aliases {
		if s := raw.String(alias); s != "" {
			return s
		}
	}
	return ""
}

// resolveTime returns the first alias that parses to a timestamp.
func resolveTime(raw domain.RawEvent, aliases []string) (time.Time, bool) {
	for _, alias := range aliases {
		v, ok := raw[alias]
		if !ok || v == nil {
			continue
		}
		if t, ok := parseTimestamp(v); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseTimestamp accepts RFC3339-ish strings, date-only strings and numeric
// epochs (seconds, or milliseconds when implausibly large for seconds).
func parseTimestamp(v any) (time.Time, bool) {
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false

	case float64:
		return epochToTime(val)

	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return epochToTime(f)

	case int64:
		return epochToTime(float64(val))

	case int:
		return epochToTime(float64(val))

	default:
		return time.Time{}, false
	}
}

// epochToTime interprets a numeric timestamp. Values past the year 9999 in
// seconds are treated as milliseconds.
func epochToTime(f float64) (time.Time, bool) {
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	const maxSeconds = 253402300799 // 9999-12-31T23:59:59Z
	if f > maxSeconds {
		return time.UnixMilli(int64(f)), true
	}
	return time.Unix(int64(f), 0), true
}
