package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/veldt-labs/eventscope/internal/core/domain"
	"github.com/veldt-labs/eventscope/internal/core/ports/driven"
	"github.com/veldt-labs/eventscope/internal/core/ports/driving"
	"github.com/veldt-labs/eventscope/internal/logger"
	"github.com/veldt-labs/eventscope/internal/normalisers/feedjson"
)

// Ensure FeedService implements the interface.
var _ driving.EventService = (*FeedService)(nil)

// FeedService runs the normalisation, filtering and grouping pipeline.
// Load normalises the document once into an immutable working set; View
// re-derives the visible groups from that set on every query change
// without touching the raw input again.
type FeedService struct {
	fetcher    driven.DocumentFetcher
	snapshots  driven.SnapshotStore
	normaliser *feedjson.Normaliser

	mu      sync.RWMutex
	loaded  bool
	meta    domain.Meta
	notes   []string
	working []domain.Event
}

// NewFeedService creates a new feed service.
// The snapshot store is optional (can be nil); without it, a failed fetch
// simply yields an empty working set.
func NewFeedService(fetcher driven.DocumentFetcher, snapshots driven.SnapshotStore) *FeedService {
	return &FeedService{
		fetcher:    fetcher,
		snapshots:  snapshots,
		normaliser: feedjson.New(),
	}
}

// Load fetches the harvester artifact, decodes it and retains the
// normalised working set. An unavailable document degrades to the last
// snapshot when one exists, and to an empty working set otherwise.
func (s *FeedService) Load(ctx context.Context) error {
	logger.Section("Document Load")

	data, uri, err := s.obtainDocument(ctx)
	if err != nil {
		logger.Warn("No document available: %v", err)
		s.LoadDocument(domain.EmptyDocument())
		return nil
	}

	doc, err := domain.ParseDocument(data)
	if err != nil {
		// Not JSON at all: a fetch-boundary failure, not a data problem.
		return err
	}

	if s.snapshots != nil && uri != "" {
		snap := &driven.Snapshot{URI: uri, Data: data, FetchedAt: time.Now()}
		if err := s.snapshots.Save(ctx, snap); err != nil {
			logger.Warn("Snapshot save failed: %v", err)
		}
	}

	s.LoadDocument(doc)
	return nil
}

// obtainDocument tries the live fetcher first and falls back to the most
// recent snapshot.
func (s *FeedService) obtainDocument(ctx context.Context) (data []byte, uri string, err error) {
	if s.fetcher != nil {
		result, fetchErr := s.fetcher.Fetch(ctx)
		if fetchErr == nil {
			logger.Info("Fetched document from %s (%d bytes)", result.URI, len(result.Data))
			return result.Data, result.URI, nil
		}
		if !errors.Is(fetchErr, domain.ErrDocumentUnavailable) {
			return nil, "", fetchErr
		}
		logger.Warn("All fetch candidates failed: %v", fetchErr)
	}

	if s.snapshots != nil {
		snap, snapErr := s.snapshots.Latest(ctx)
		if snapErr == nil {
			logger.Info("Using snapshot of %s from %s", snap.URI, snap.FetchedAt.Format(time.RFC3339))
			return snap.Data, "", nil
		}
	}

	return nil, "", domain.ErrDocumentUnavailable
}

// LoadDocument replaces the working set from an already-decoded document.
func (s *FeedService) LoadDocument(doc *domain.RawDocument) {
	if doc == nil {
		doc = domain.EmptyDocument()
	}

	events := s.normaliser.Normalise(doc)
	logger.Info("Working set: %d events from %d raw records", len(events), len(doc.Events))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.meta = doc.Meta
	s.notes = doc.AllNotes()
	s.working = events
}

// View derives the month-grouped upcoming events matching the query.
// It never mutates the working set; running it twice with the same inputs
// produces identical output.
func (s *FeedService) View(query string, now time.Time) *domain.View {
	if now.IsZero() {
		now = time.Now()
	}

	s.mu.RLock()
	working := s.working
	notes := s.notes
	s.mu.RUnlock()

	upcoming := FilterUpcoming(working, now)
	matched := FilterByQuery(upcoming, query)

	view := &domain.View{
		Groups:        GroupByMonth(matched),
		TotalEvents:   len(working),
		MatchedEvents: len(matched),
		Query:         strings.TrimSpace(query),
		Notes:         notes,
	}

	switch {
	case len(working) == 0:
		view.Empty = domain.EmptyNoData
	case len(matched) == 0:
		view.Empty = domain.EmptyNoMatches
	default:
		view.Empty = domain.EmptyNone
	}

	logger.Debug("View: query=%q matched=%d/%d groups=%d state=%s",
		view.Query, view.MatchedEvents, view.TotalEvents, len(view.Groups), view.Empty)

	return view
}

// Meta returns the metadata block of the loaded document.
func (s *FeedService) Meta() domain.Meta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta
}

// Loaded reports whether a document has been loaded.
func (s *FeedService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// FilterUpcoming retains events whose start is at or after now.
// The boundary is inclusive: an event starting exactly at now is kept.
// No end-of-window cutoff is applied.
func FilterUpcoming(events []domain.Event, now time.Time) []domain.Event {
	kept := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if !e.Start.Before(now) {
			kept = append(kept, e)
		}
	}
	return kept
}

// FilterByQuery retains events whose searchable text contains the
// case-folded query as a contiguous substring. A blank query keeps
// everything. No tokenising, ranking or fuzzy matching.
func FilterByQuery(events []domain.Event, query string) []domain.Event {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return events
	}

	kept := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if strings.Contains(e.SearchBlob(), needle) {
			kept = append(kept, e)
		}
	}
	return kept
}

// GroupByMonth sorts events by ascending start (stable, so equal starts
// keep their relative order) and partitions them into calendar-month
// buckets. Buckets appear in the order their first event appears after
// sorting, which is ascending chronological order.
func GroupByMonth(events []domain.Event) []domain.Group {
	sorted := make([]domain.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	groups := make([]domain.Group, 0)
	for _, e := range sorted {
		key := domain.MonthKeyOf(e.Start)
		if n := len(groups); n > 0 && groups[n-1].Key == key {
			groups[n-1].Events = append(groups[n-1].Events, e)
			continue
		}
		groups = append(groups, domain.Group{Key: key, Events: []domain.Event{e}})
	}
	return groups
}
