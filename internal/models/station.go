package models

// LaneDescriptor identifies one monitored traffic lane of a station.
type LaneDescriptor struct {
	ID        string `json:"id"`
	Direction string `json:"direction"`
}

// StationMetadata describes a counting station. Loaded once at startup
// from the metadata file and read-only afterwards.
type StationMetadata struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
	Lanes     []LaneDescriptor `json:"lanes"`
}

// MetadataFile is the on-disk metadata document: stations keyed by
// station ID plus the class ID to label mapping.
type MetadataFile struct {
	Stations map[string]StationMetadata `json:"stations"`
	Classes  map[string]string          `json:"classes"`
}

// StationInfo is the metadata endpoint's view of a station, enriched
// with derived geometry.
type StationInfo struct {
	StationMetadata
	DistanceToCenterMeters float64 `json:"distance_to_center_meters"`
	BearingFromCenterDeg   float64 `json:"bearing_from_center_deg"`
}
