package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RawEvent is one untrusted event record as produced by the harvester.
// It has no guaranteed shape; fields are drawn from a known set of
// historical aliases and resolved during normalisation.
type RawEvent map[string]any

// String returns the value of a key as a trimmed string, or "" when the
// key is absent, not a string, or blank.
func (r RawEvent) String(key string) string {
	v, ok := r[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// Meta is the harvester's metadata block. It travels with the document and
// is passed through to the presenter untouched.
type Meta struct {
	// Sources names the feed kinds the harvester consulted.
	Sources []string `json:"sources,omitempty"`

	// HarvestedAt is the harvester's run timestamp (its ts_utc field).
	HarvestedAt string `json:"ts_utc,omitempty"`

	// Keywords, City, State, Country and WindowDays echo the harvester's
	// search configuration.
	Keywords   []string `json:"keywords,omitempty"`
	City       string   `json:"city,omitempty"`
	State      string   `json:"state,omitempty"`
	Country    string   `json:"country,omitempty"`
	WindowDays int      `json:"window_days,omitempty"`

	// Count is the number of events the harvester wrote.
	Count int `json:"count,omitempty"`

	// Notes records harvester-side problems (fetch failures, budget
	// exhaustion). Shown to the user when there is nothing else to show.
	Notes []string `json:"notes,omitempty"`
}

// SourceLabel joins the feed source names into one display string.
func (m Meta) SourceLabel() string {
	return strings.Join(m.Sources, ", ")
}

// RawDocument is the decoded harvester artifact before normalisation.
type RawDocument struct {
	Meta   Meta       `json:"meta"`
	Events []RawEvent `json:"events"`
	Notes  []string   `json:"notes,omitempty"`
}

// AllNotes merges top-level and meta notes, top-level first.
func (d *RawDocument) AllNotes() []string {
	if len(d.Notes) == 0 {
		return d.Meta.Notes
	}
	if len(d.Meta.Notes) == 0 {
		return d.Notes
	}
	merged := make([]string, 0, len(d.Notes)+len(d.Meta.Notes))
	merged = append(merged, d.Notes...)
	return append(merged, d.Meta.Notes...)
}

// EmptyDocument returns a document with no events and no metadata.
// It stands in for a document that could not be obtained at all, so the
// pipeline sees a valid empty working set instead of an error.
func EmptyDocument() *RawDocument {
	return &RawDocument{}
}

// ParseDocument decodes a harvester artifact. Shape deviations inside the
// document (missing events key, events not an array, malformed meta) are
// coerced to their empty values, never surfaced as errors. Only input that
// is not JSON at all fails.
func ParseDocument(data []byte) (*RawDocument, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	doc := &RawDocument{}
	if raw, ok := top["meta"]; ok {
		// Best effort: a malformed meta block degrades to empty metadata.
		_ = json.Unmarshal(raw, &doc.Meta)
	}
	if raw, ok := top["notes"]; ok {
		_ = json.Unmarshal(raw, &doc.Notes)
	}
	if raw, ok := top["events"]; ok {
		var entries []json.RawMessage
		if err := json.Unmarshal(raw, &entries); err == nil {
			for _, entry := range entries {
				var ev RawEvent
				// A non-object entry is one bad record, not a bad document.
				if err := json.Unmarshal(entry, &ev); err != nil {
					continue
				}
				doc.Events = append(doc.Events, ev)
			}
		}
	}
	return doc, nil
}
