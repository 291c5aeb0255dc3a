// Package ics harvests calendar feeds into the artifact document the
// event pipeline consumes. It mirrors the hosted harvester's behaviour:
// strict timeouts, fail-fast per feed, per-feed failures recorded as
// notes, and a (title, start) deduplication pass over the merged feeds.
package ics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"golang.org/x/time/rate"

	"github.com/veldt-labs/eventscope/internal/core/domain"
	"github.com/veldt-labs/eventscope/internal/logger"
)

const (
	requestTimeout = 12 * time.Second
	userAgent      = "eventscope/1.0"
)

// Options configures one harvest run.
type Options struct {
	// Feeds are the ICS feed URLs to pull.
	Feeds []string

	// Keywords, City, State and Country describe the search and are
	// echoed into the artifact's metadata block.
	Keywords []string
	City     string
	State    string
	Country  string

	// WindowDays bounds the lookahead; events starting more than
	// WindowDays ahead (or more than a day in the past) are skipped.
	WindowDays int

	// Now anchors the window. Zero means time.Now.
	Now time.Time
}

// Harvester pulls ICS feeds and produces a harvester artifact document.
type Harvester struct {
	client  *http.Client
	limiter *rate.Limiter
}

// New creates a new ICS harvester.
func New() *Harvester {
	return &Harvester{
		client:  &http.Client{Timeout: requestTimeout},
		limiter: rate.NewLimiter(rate.Limit(2), 4),
	}
}

// Harvest fetches every feed and merges the results into one document.
// Individual feed failures become notes; they never abort the run.
func (h *Harvester) Harvest(ctx context.Context, opts Options) *domain.RawDocument {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	windowDays := opts.WindowDays
	if windowDays <= 0 {
		windowDays = 180
	}

	logger.Section("ICS Harvest")
	logger.Info("Feeds: %d, window: %d days", len(opts.Feeds), windowDays)

	doc := &domain.RawDocument{
		Meta: domain.Meta{
			HarvestedAt: now.UTC().Format(time.RFC3339),
			Keywords:    opts.Keywords,
			City:        opts.City,
			State:       opts.State,
			Country:     opts.Country,
			WindowDays:  windowDays,
		},
	}
	if len(opts.Feeds) > 0 {
		doc.Meta.Sources = []string{"ics"}
	}

	cutoffStart := now.Add(-24 * time.Hour)
	cutoffEnd := now.AddDate(0, 0, windowDays)

	for _, url := range opts.Feeds {
		records, err := h.harvestFeed(ctx, url, cutoffStart, cutoffEnd)
		if err != nil {
			doc.Notes = append(doc.Notes, fmt.Sprintf("ICS error: %s :: %v", url, err))
			logger.Warn("Feed failed: %s: %v", url, err)
			continue
		}
		doc.Events = append(doc.Events, records...)
	}

	doc.Events = dedupe(doc.Events)
	doc.Meta.Count = len(doc.Events)
	logger.Info("Harvested %d events", len(doc.Events))

	return doc
}

// harvestFeed fetches and parses one ICS feed into raw event records.
func (h *Harvester) harvestFeed(ctx context.Context, url string, cutoffStart, cutoffEnd time.Time) ([]domain.RawEvent, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := h.get(ctx, url)
	if err != nil {
		return nil, err
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	records := make([]domain.RawEvent, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		record, ok := recordFromVEvent(ve, url, cutoffStart, cutoffEnd)
		if !ok {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (h *Harvester) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// recordFromVEvent converts a VEVENT into the artifact's record shape.
// Events with no parseable start, or outside the harvest window, are
// skipped. ok is false for skipped events.
func recordFromVEvent(ve *ical.VEvent, feedURL string, cutoffStart, cutoffEnd time.Time) (domain.RawEvent, bool) {
	start, err := ve.GetStartAt()
	if err != nil || start.IsZero() {
		return nil, false
	}
	if start.Before(cutoffStart) || start.After(cutoffEnd) {
		return nil, false
	}

	record := domain.RawEvent{
		"source":     "ics",
		"source_url": feedURL,
		"start":      start.UTC().Format(time.RFC3339),
	}

	if end, err := ve.GetEndAt(); err == nil && !end.IsZero() {
		record["end"] = end.UTC().Format(time.RFC3339)
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil && p.Value != "" {
		record["title"] = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil && p.Value != "" {
		record["description"] = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil && p.Value != "" {
		record["location"] = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil && p.Value != "" {
		record["uid"] = p.Value
	}

	return record, true
}

// dedupe drops records sharing a (title, start) pair, keeping the first.
func dedupe(records []domain.RawEvent) []domain.RawEvent {
	seen := make(map[string]bool, len(records))
	unique := make([]domain.RawEvent, 0, len(records))
	for _, r := range records {
		key := strings.ToLower(r.String("title")) + "\x00" + r.String("start")
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, r)
	}
	return unique
}
