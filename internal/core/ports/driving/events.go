package driving

import (
	"context"
	"time"

	"github.com/veldt-labs/eventscope/internal/core/domain"
)

// EventService is the driving port for the normalisation, filtering and
// grouping pipeline. Load runs once per document; View is cheap and pure
// and is re-run on every query change.
type EventService interface {
	// Load fetches the document, normalises it and retains the working
	// set. A document that cannot be obtained at all loads as an empty
	// working set rather than failing.
	Load(ctx context.Context) error

	// LoadDocument replaces the working set from an already-decoded
	// document. A nil document is treated as empty.
	LoadDocument(doc *domain.RawDocument)

	// View derives the render-ready month groups for a query and
	// reference time. A zero now means time.Now. Output is a pure
	// function of (working set, query, now).
	View(query string, now time.Time) *domain.View

	// Meta returns the metadata block of the loaded document.
	Meta() domain.Meta

	// Loaded reports whether a document has been loaded.
	Loaded() bool
}
