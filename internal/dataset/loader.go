package dataset

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/ogd"
)

// Snapshot is one immutable view of the cached dataset. It is replaced
// as a whole on refresh; readers never see a partially updated state.
type Snapshot struct {
	Records     []models.CountRecord
	Years       []int
	RefreshedAt time.Time
	FetchErrors []string
	Anomalies   []models.Anomaly
}

// Loader fetches hourly counts from the OGD portal and keeps the most
// recent good snapshot, falling back to the sqlite cache when the
// portal is unreachable.
type Loader struct {
	client *ogd.Client
	store  *Store

	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewLoader creates a loader over a portal client and a cache store.
func NewLoader(client *ogd.Client, store *Store) *Loader {
	return &Loader{client: client, store: store}
}

// Refresh downloads the given years, replaces the cache year by year
// and swaps in a new snapshot. Years that fail to download keep their
// previously cached rows; the combined fetch errors are carried in the
// snapshot. Refresh fails only when nothing could be fetched and the
// cache is empty.
func (l *Loader) Refresh(ctx context.Context, years []int) (*Snapshot, error) {
	var merr *multierror.Error
	var fetchErrors []string

	for _, year := range years {
		records, err := l.client.FetchYear(ctx, year)
		if err != nil {
			log.Printf("Refresh: year %d kept from cache: %v", year, err)
			merr = multierror.Append(merr, err)
			fetchErrors = append(fetchErrors, err.Error())
			continue
		}
		if err := l.store.ReplaceYear(year, records); err != nil {
			return nil, fmt.Errorf("failed to cache year %d: %w", year, err)
		}
	}

	records, err := l.store.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 && merr.ErrorOrNil() != nil {
		return nil, fmt.Errorf("no cached data available: %w", merr)
	}

	refreshedAt := time.Now()
	if err := l.store.SetRefreshedAt(refreshedAt); err != nil {
		return nil, err
	}

	snap := buildSnapshot(records, refreshedAt, fetchErrors)
	l.mu.Lock()
	l.snapshot = snap
	l.mu.Unlock()

	log.Printf("Refresh: %d records across %d years (%d fetch errors, %d anomalies)",
		len(snap.Records), len(snap.Years), len(snap.FetchErrors), len(snap.Anomalies))
	return snap, nil
}

// Warm loads the snapshot from the sqlite cache without touching the
// portal, so a restarted server can serve immediately.
func (l *Loader) Warm() (*Snapshot, error) {
	records, err := l.store.LoadAll()
	if err != nil {
		return nil, err
	}
	refreshedAt, err := l.store.RefreshedAt()
	if err != nil {
		return nil, err
	}

	snap := buildSnapshot(records, refreshedAt, nil)
	l.mu.Lock()
	l.snapshot = snap
	l.mu.Unlock()
	return snap, nil
}

// Snapshot returns the current dataset view. It is nil until Warm or
// Refresh has run.
func (l *Loader) Snapshot() *Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshot
}

// Status summarizes the current snapshot for the dataset endpoint.
func (l *Loader) Status() models.DatasetStatus {
	snap := l.Snapshot()
	if snap == nil {
		return models.DatasetStatus{}
	}

	status := models.DatasetStatus{
		Years:       snap.Years,
		RecordCount: len(snap.Records),
		RefreshedAt: snap.RefreshedAt,
		FetchErrors: snap.FetchErrors,
		Anomalies:   snap.Anomalies,
	}
	if len(snap.Records) > 0 {
		status.FirstRecord = snap.Records[0].Timestamp
		status.LastRecord = snap.Records[len(snap.Records)-1].Timestamp
	}
	return status
}

func buildSnapshot(records []models.CountRecord, refreshedAt time.Time, fetchErrors []string) *Snapshot {
	yearSet := make(map[int]bool)
	for _, r := range records {
		yearSet[r.Timestamp.Year()] = true
	}
	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	return &Snapshot{
		Records:     records,
		Years:       years,
		RefreshedAt: refreshedAt,
		FetchErrors: fetchErrors,
		Anomalies:   ogd.FindAnomalies(records),
	}
}
