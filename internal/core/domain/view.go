package domain

// EmptyState distinguishes why a view has nothing to show.
// The presenter decides how to word it; the core only guarantees the two
// empty cases are distinguishable.
type EmptyState int

const (
	// EmptyNone means the view has at least one group to display.
	EmptyNone EmptyState = iota

	// EmptyNoData means normalisation produced zero events: the harvester
	// has not delivered usable data yet.
	EmptyNoData

	// EmptyNoMatches means the working set is non-empty but the temporal
	// and text filters left nothing.
	EmptyNoMatches
)

// String returns the string representation of the empty state.
func (s EmptyState) String() string {
	switch s {
	case EmptyNone:
		return "none"
	case EmptyNoData:
		return "no_data"
	case EmptyNoMatches:
		return "no_matches"
	default:
		return "unknown"
	}
}

// View is one render-ready derivation of the working set for a given
// query and reference time. It is a pure function of those inputs plus
// the immutable normalised event set.
type View struct {
	// Groups holds the month buckets in ascending chronological order.
	Groups []Group `json:"groups"`

	// TotalEvents is the size of the normalised working set.
	TotalEvents int `json:"total_events"`

	// MatchedEvents counts events that survived both filters.
	MatchedEvents int `json:"matched_events"`

	// Query echoes the text filter that produced this view.
	Query string `json:"query,omitempty"`

	// Notes carries the harvester's notes for empty-state display.
	Notes []string `json:"notes,omitempty"`

	// Empty classifies why Groups is empty, if it is.
	Empty EmptyState `json:"-"`
}
