package cli

import (
	"context"
	"testing"

	"github.com/veldt-labs/eventscope/internal/adapters/driven/config/file"
	"github.com/veldt-labs/eventscope/internal/connectors/ics"
	"github.com/veldt-labs/eventscope/internal/core/ports/driven"
	"github.com/veldt-labs/eventscope/internal/core/services"
)

// testArtifact is a small harvester artifact with far-future events so
// the temporal filter keeps them regardless of when the tests run.
const testArtifact = `{
  "meta": {"sources": ["ics"], "count": 2},
  "events": [
    {"title": "Riverside Market", "start": "2100-04-12T10:00:00Z", "city": "Ghent"},
    {"title": "Craft Fair", "start": "2100-05-03T09:00:00Z"}
  ]
}`

// staticFetcher serves a fixed artifact payload.
type staticFetcher struct {
	data []byte
	err  error
}

func (f *staticFetcher) Fetch(_ context.Context) (*driven.FetchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &driven.FetchResult{URI: "static://test", Data: f.data}, nil
}

// withArtifact wires an event service over the given artifact payload
// and returns a cleanup that unwires it.
func withArtifact(t *testing.T, artifact string) func() {
	t.Helper()
	eventService = services.NewFeedService(&staticFetcher{data: []byte(artifact)}, nil)
	return func() {
		eventService = nil
	}
}

// setupTestServices wires test doubles into the package-level services
// and returns a cleanup that unwires them.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	store, err := file.NewConfigStore(t.TempDir())
	if err != nil {
		t.Fatalf("config store: %v", err)
	}

	Wire(services.NewFeedService(&staticFetcher{data: []byte(testArtifact)}, nil), ics.New(), store)

	return func() {
		Wire(nil, nil, nil)
	}
}
