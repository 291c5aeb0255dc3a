package driven

import "context"

// FetchResult is one successfully obtained harvester artifact.
type FetchResult struct {
	// URI is the location the document was actually read from.
	URI string

	// Data is the raw JSON artifact.
	Data []byte
}

// DocumentFetcher obtains the harvester artifact from one of a fixed list
// of candidate locations. Which candidates exist and in what order they
// are tried is the adapter's concern, not the core's.
type DocumentFetcher interface {
	// Fetch returns the first document that can be obtained.
	// When no candidate yields a document it returns
	// domain.ErrDocumentUnavailable; callers treat that as an empty
	// working set, never a crash.
	Fetch(ctx context.Context) (*FetchResult, error)
}
