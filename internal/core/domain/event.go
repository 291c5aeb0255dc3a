package domain

import (
	"fmt"
	"strings"
	"time"
)

// UntitledEvent is the display title for events that arrive without one.
const UntitledEvent = "Untitled event"

// PlaceholderURL is the non-navigable sentinel used when an event has no link.
const PlaceholderURL = "#"

// Event is the canonical event record after normalisation.
// It is immutable once produced: filtering and grouping only select and
// partition events, they never modify them.
type Event struct {
	// ID is a unique identifier assigned during normalisation.
	ID string `json:"id"`

	// Title is the human-readable title. Never empty; defaults to
	// UntitledEvent when the raw record carried none.
	Title string `json:"title"`

	// URL is a link to the event page, or PlaceholderURL when absent.
	URL string `json:"url"`

	// Start is when the event begins. Every Event has a resolvable Start;
	// raw records without one never become Events.
	Start time.Time `json:"start"`

	// End is when the event finishes. Zero when the feed did not say.
	End time.Time `json:"end,omitzero"`

	// City, State, Country and Venue are free-text location fields.
	// Any subset may be empty.
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Venue   string `json:"venue,omitempty"`

	// Source labels where the record came from. When the record itself
	// carried no source, this holds the document's feed sources joined
	// into one display string.
	Source string `json:"source,omitempty"`

	// Description is free text used for search matching only.
	Description string `json:"description,omitempty"`
}

// HasEnd reports whether the event has a known end time.
func (e Event) HasEnd() bool {
	return !e.End.IsZero()
}

// SearchBlob builds the case-folded text the query filter matches against.
// Absent fields are skipped rather than coerced to placeholder text.
func (e Event) SearchBlob() string {
	fields := []string{e.Title, e.City, e.State, e.Country, e.Venue, e.Description}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Location renders the location fields as a single display string.
func (e Event) Location() string {
	parts := make([]string, 0, 4)
	for _, f := range []string{e.Venue, e.City, e.State, e.Country} {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, ", ")
}

// MonthKey identifies a calendar-month bucket in local wall-clock terms.
type MonthKey struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// MonthKeyOf returns the bucket key for an instant, evaluated in local time.
func MonthKeyOf(t time.Time) MonthKey {
	local := t.Local()
	return MonthKey{Year: local.Year(), Month: local.Month()}
}

// Before reports whether k sorts before other chronologically.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// String renders the key as "January 2024".
func (k MonthKey) String() string {
	return fmt.Sprintf("%s %d", k.Month, k.Year)
}

// Group is one calendar-month bucket of events, ordered by ascending start.
type Group struct {
	Key    MonthKey `json:"key"`
	Events []Event  `json:"events"`
}
