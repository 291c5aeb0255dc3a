package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-labs/eventscope/internal/core/domain"
	"github.com/veldt-labs/eventscope/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockFetcher implements driven.DocumentFetcher for testing.
type mockFetcher struct {
	result   *driven.FetchResult
	fetchErr error
	calls    int
}

func (m *mockFetcher) Fetch(_ context.Context) (*driven.FetchResult, error) {
	m.calls++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.result, nil
}

// mockSnapshotStore implements driven.SnapshotStore for testing.
type mockSnapshotStore struct {
	saved  []*driven.Snapshot
	latest *driven.Snapshot
}

func (m *mockSnapshotStore) Save(_ context.Context, snap *driven.Snapshot) error {
	m.saved = append(m.saved, snap)
	return nil
}

func (m *mockSnapshotStore) Load(_ context.Context, uri string) (*driven.Snapshot, error) {
	if m.latest != nil && m.latest.URI == uri {
		return m.latest, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockSnapshotStore) Latest(_ context.Context) (*driven.Snapshot, error) {
	if m.latest == nil {
		return nil, domain.ErrNotFound
	}
	return m.latest, nil
}

func (m *mockSnapshotStore) Close() error {
	return nil
}

// --- Test helpers ---

func mustStart(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func upcomingEvent(title, start string) domain.Event {
	ts, _ := time.Parse(time.RFC3339, start)
	return domain.Event{ID: title, Title: title, URL: domain.PlaceholderURL, Start: ts}
}

func artifactJSON(t *testing.T, doc *domain.RawDocument) []byte {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

// --- Filter tests ---

func TestFilterUpcoming_InclusiveBoundary(t *testing.T) {
	now := mustStart(t, "2024-03-15T10:00:00Z")

	atNow := domain.Event{Title: "at now", Start: now}
	justBefore := domain.Event{Title: "just before", Start: now.Add(-time.Microsecond)}
	later := domain.Event{Title: "later", Start: now.Add(time.Hour)}

	kept := FilterUpcoming([]domain.Event{justBefore, atNow, later}, now)

	require.Len(t, kept, 2)
	assert.Equal(t, "at now", kept[0].Title)
	assert.Equal(t, "later", kept[1].Title)
}

func TestFilterUpcoming_NoEndCutoff(t *testing.T) {
	now := mustStart(t, "2024-03-15T10:00:00Z")

	// An already-started event is excluded even if its end is in the
	// future; only the start gates.
	running := domain.Event{Title: "running", Start: now.Add(-time.Hour), End: now.Add(time.Hour)}
	farAhead := domain.Event{Title: "far ahead", Start: now.AddDate(10, 0, 0)}

	kept := FilterUpcoming([]domain.Event{running, farAhead}, now)

	require.Len(t, kept, 1)
	assert.Equal(t, "far ahead", kept[0].Title)
}

func TestFilterByQuery_CaseInsensitiveSubstring(t *testing.T) {
	events := []domain.Event{{Title: "DevCon Berlin", Start: time.Now()}}

	assert.Len(t, FilterByQuery(events, "berlin"), 1)
	assert.Len(t, FilterByQuery(events, "DEVCON"), 1)
	// Containment is over the whole blob, so a span crossing the word
	// boundary still matches.
	assert.Len(t, FilterByQuery(events, "con ber"), 1)
	assert.Len(t, FilterByQuery(events, "berlin dev"), 0, "reordered terms must not match")
	assert.Len(t, FilterByQuery(events, "dev con"), 0, "terms are not tokenised")
}

func TestFilterByQuery_BlankQueryPassesAll(t *testing.T) {
	events := []domain.Event{
		upcomingEvent("One", "2024-01-01T00:00:00Z"),
		upcomingEvent("Two", "2024-02-01T00:00:00Z"),
	}

	assert.Len(t, FilterByQuery(events, ""), 2)
	assert.Len(t, FilterByQuery(events, "   \t"), 2)
}

func TestFilterByQuery_MatchesAcrossFields(t *testing.T) {
	events := []domain.Event{
		{Title: "Faire", City: "Portland", State: "Oregon", Start: time.Now()},
		{Title: "Expo", Venue: "Armory Hall", Description: "Tesla coils live", Start: time.Now()},
	}

	assert.Len(t, FilterByQuery(events, "oregon"), 1)
	assert.Len(t, FilterByQuery(events, "tesla"), 1)
	assert.Len(t, FilterByQuery(events, "armory"), 1)
	assert.Len(t, FilterByQuery(events, "zeppelin"), 0)
}

func TestFilterByQuery_AbsentFieldsSkipped(t *testing.T) {
	// Absent fields are not coerced to placeholder text, so a query for
	// the placeholder must not match.
	events := []domain.Event{{Title: "Solo", URL: domain.PlaceholderURL, Start: time.Now()}}

	assert.Len(t, FilterByQuery(events, "untitled"), 0)
}

// --- Grouper tests ---

func TestGroupByMonth_OrderAndPartition(t *testing.T) {
	events := []domain.Event{
		upcomingEvent("mid March", "2024-03-15T12:00:00Z"),
		upcomingEvent("January", "2024-01-10T12:00:00Z"),
		upcomingEvent("early March", "2024-03-02T12:00:00Z"),
	}

	groups := GroupByMonth(events)

	require.Len(t, groups, 2)
	assert.Equal(t, domain.MonthKeyOf(events[1].Start), groups[0].Key)
	assert.Equal(t, domain.MonthKeyOf(events[0].Start), groups[1].Key)

	require.Len(t, groups[1].Events, 2)
	assert.Equal(t, "early March", groups[1].Events[0].Title)
	assert.Equal(t, "mid March", groups[1].Events[1].Title)
}

func TestGroupByMonth_StableOnEqualStarts(t *testing.T) {
	events := []domain.Event{
		upcomingEvent("first seen", "2024-03-02T12:00:00Z"),
		upcomingEvent("second seen", "2024-03-02T12:00:00Z"),
	}

	groups := GroupByMonth(events)

	require.Len(t, groups, 1)
	assert.Equal(t, "first seen", groups[0].Events[0].Title)
	assert.Equal(t, "second seen", groups[0].Events[1].Title)
}

func TestGroupByMonth_DoesNotMutateInput(t *testing.T) {
	events := []domain.Event{
		upcomingEvent("b", "2024-02-01T00:00:00Z"),
		upcomingEvent("a", "2024-01-01T00:00:00Z"),
	}

	_ = GroupByMonth(events)

	assert.Equal(t, "b", events[0].Title)
	assert.Equal(t, "a", events[1].Title)
}

func TestGroupByMonth_Empty(t *testing.T) {
	assert.Empty(t, GroupByMonth(nil))
}

// --- Service tests ---

func TestFeedService_LoadAndView(t *testing.T) {
	doc := &domain.RawDocument{
		Meta: domain.Meta{Sources: []string{"ics"}},
		Events: []domain.RawEvent{
			{"title": "Future fair", "start": "2099-06-01T10:00:00Z"},
			{"title": "Ancient history", "start": "1999-06-01T10:00:00Z"},
		},
	}
	fetcher := &mockFetcher{result: &driven.FetchResult{URI: "https://example.com/events.json", Data: artifactJSON(t, doc)}}
	service := NewFeedService(fetcher, nil)

	require.NoError(t, service.Load(context.Background()))
	require.True(t, service.Loaded())
	assert.Equal(t, []string{"ics"}, service.Meta().Sources)

	view := service.View("", mustStart(t, "2024-01-01T00:00:00Z"))
	assert.Equal(t, 2, view.TotalEvents)
	assert.Equal(t, 1, view.MatchedEvents)
	require.Len(t, view.Groups, 1)
	assert.Equal(t, "Future fair", view.Groups[0].Events[0].Title)
	assert.Equal(t, domain.EmptyNone, view.Empty)
}

func TestFeedService_View_Idempotent(t *testing.T) {
	service := NewFeedService(nil, nil)
	service.LoadDocument(&domain.RawDocument{
		Events: []domain.RawEvent{
			{"title": "DevCon Berlin", "start": "2099-03-15T10:00:00Z"},
			{"title": "Maker Faire", "start": "2099-01-10T10:00:00Z"},
		},
	})

	now := mustStart(t, "2024-01-01T00:00:00Z")
	first, err := json.Marshal(service.View("dev", now))
	require.NoError(t, err)
	second, err := json.Marshal(service.View("dev", now))
	require.NoError(t, err)

	// Byte-identical apart from the uuids assigned at load time, which
	// are stable across views of the same working set.
	assert.Equal(t, string(first), string(second))
}

func TestFeedService_EmptyStates(t *testing.T) {
	service := NewFeedService(nil, nil)
	now := mustStart(t, "2024-01-01T00:00:00Z")

	// events: [] -> no data yet.
	service.LoadDocument(&domain.RawDocument{Meta: domain.Meta{Notes: []string{"harvest pending"}}})
	view := service.View("", now)
	assert.Equal(t, domain.EmptyNoData, view.Empty)
	assert.Equal(t, []string{"harvest pending"}, view.Notes)

	// All events in the past -> no matches, distinct from no data.
	service.LoadDocument(&domain.RawDocument{
		Events: []domain.RawEvent{{"title": "Gone", "start": "1999-01-01T00:00:00Z"}},
	})
	view = service.View("", now)
	assert.Equal(t, domain.EmptyNoMatches, view.Empty)
	assert.Equal(t, 1, view.TotalEvents)
	assert.Zero(t, view.MatchedEvents)
}

func TestFeedService_Load_UnavailableDocument(t *testing.T) {
	fetcher := &mockFetcher{fetchErr: domain.ErrDocumentUnavailable}
	service := NewFeedService(fetcher, nil)

	// "No document" is a valid input producing an empty working set.
	require.NoError(t, service.Load(context.Background()))
	assert.True(t, service.Loaded())

	view := service.View("", time.Time{})
	assert.Equal(t, domain.EmptyNoData, view.Empty)
}

func TestFeedService_Load_SnapshotFallback(t *testing.T) {
	doc := &domain.RawDocument{
		Events: []domain.RawEvent{{"title": "Cached event", "start": "2099-06-01T10:00:00Z"}},
	}
	snapshots := &mockSnapshotStore{latest: &driven.Snapshot{
		URI:       "https://example.com/events.json",
		Data:      artifactJSON(t, doc),
		FetchedAt: time.Now(),
	}}
	fetcher := &mockFetcher{fetchErr: domain.ErrDocumentUnavailable}
	service := NewFeedService(fetcher, snapshots)

	require.NoError(t, service.Load(context.Background()))

	view := service.View("", mustStart(t, "2024-01-01T00:00:00Z"))
	assert.Equal(t, 1, view.MatchedEvents)
}

func TestFeedService_Load_SavesSnapshot(t *testing.T) {
	doc := &domain.RawDocument{
		Events: []domain.RawEvent{{"title": "Fresh", "start": "2099-06-01T10:00:00Z"}},
	}
	snapshots := &mockSnapshotStore{}
	fetcher := &mockFetcher{result: &driven.FetchResult{URI: "https://example.com/events.json", Data: artifactJSON(t, doc)}}
	service := NewFeedService(fetcher, snapshots)

	require.NoError(t, service.Load(context.Background()))

	require.Len(t, snapshots.saved, 1)
	assert.Equal(t, "https://example.com/events.json", snapshots.saved[0].URI)
}

func TestFeedService_Load_MalformedDocument(t *testing.T) {
	fetcher := &mockFetcher{result: &driven.FetchResult{URI: "x", Data: []byte("<html>not json</html>")}}
	service := NewFeedService(fetcher, nil)

	err := service.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestFeedService_ShapeTolerantDocument(t *testing.T) {
	// events present but not an array: treated as an empty list.
	doc, err := domain.ParseDocument([]byte(`{"meta":{"sources":["ics"]},"events":"oops"}`))
	require.NoError(t, err)

	service := NewFeedService(nil, nil)
	service.LoadDocument(doc)

	view := service.View("", time.Time{})
	assert.Equal(t, domain.EmptyNoData, view.Empty)
}
