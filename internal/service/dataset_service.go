package service

import (
	"context"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/dataset"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
)

// DatasetService exposes cache refresh and status operations.
type DatasetService struct {
	loader *dataset.Loader
	years  []int
}

// NewDatasetService creates a new dataset service
func NewDatasetService(loader *dataset.Loader, years []int) *DatasetService {
	return &DatasetService{loader: loader, years: years}
}

// Refresh re-downloads the configured years and swaps in the new
// snapshot. Per-year fetch failures keep the cached rows for that year.
func (s *DatasetService) Refresh(ctx context.Context) (models.DatasetStatus, error) {
	if _, err := s.loader.Refresh(ctx, s.years); err != nil {
		return models.DatasetStatus{}, err
	}
	return s.loader.Status(), nil
}

// Status returns the current snapshot summary.
func (s *DatasetService) Status() models.DatasetStatus {
	return s.loader.Status()
}

// Anomalies returns the data-integrity findings of the current snapshot.
func (s *DatasetService) Anomalies() []models.Anomaly {
	snap := s.loader.Snapshot()
	if snap == nil {
		return nil
	}
	return snap.Anomalies
}
