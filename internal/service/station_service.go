package service

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/spatial"
)

// Reference point for derived station geometry: Zürich main station.
const (
	cityCenterLat = 47.3779
	cityCenterLon = 8.5403
)

// StationService serves the station and vehicle-class metadata. The
// metadata file is read once at startup and immutable afterwards.
type StationService struct {
	stations []models.StationInfo
	classes  map[int]string
}

// NewStationService loads the metadata document from disk.
func NewStationService(path string) (*StationService, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	var file models.MetadataFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse metadata file %s: %w", path, err)
	}

	svc := &StationService{classes: make(map[int]string)}
	for idStr, label := range file.Classes {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid class id %q in metadata", idStr)
		}
		svc.classes[id] = label
	}

	for id, st := range file.Stations {
		st.ID = id
		svc.stations = append(svc.stations, models.StationInfo{
			StationMetadata:        st,
			DistanceToCenterMeters: spatial.HaversineDistance(cityCenterLat, cityCenterLon, st.Latitude, st.Longitude),
			BearingFromCenterDeg:   spatial.Bearing(cityCenterLat, cityCenterLon, st.Latitude, st.Longitude),
		})
	}
	sort.Slice(svc.stations, func(i, j int) bool { return svc.stations[i].ID < svc.stations[j].ID })

	return svc, nil
}

// Stations returns all stations with derived geometry.
func (s *StationService) Stations() []models.StationInfo {
	return s.stations
}

// Classes returns the class ID to label mapping, preferring the
// metadata file and falling back to the built-in table.
func (s *StationService) Classes() []models.VehicleClassInfo {
	var classes []models.VehicleClassInfo
	for _, id := range models.ClassIDs() {
		label, ok := s.classes[id]
		if !ok {
			label = models.ClassLabel(id)
		}
		classes = append(classes, models.VehicleClassInfo{
			ID:       id,
			Label:    label,
			Category: models.ClassCategory(id),
		})
	}
	return classes
}
