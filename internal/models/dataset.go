package models

import "time"

// Anomaly is a data-integrity finding raised during dataset validation.
type Anomaly struct {
	Timestamp time.Time `json:"timestamp"`
	ClassID   int       `json:"class_id"`
	Lane      string    `json:"lane,omitempty"`
	Reason    string    `json:"reason"`
}

// DatasetStatus describes the currently cached dataset snapshot.
type DatasetStatus struct {
	Years       []int     `json:"years"`
	RecordCount int       `json:"record_count"`
	FirstRecord time.Time `json:"first_record,omitempty"`
	LastRecord  time.Time `json:"last_record,omitempty"`
	RefreshedAt time.Time `json:"refreshed_at,omitempty"`
	FetchErrors []string  `json:"fetch_errors,omitempty"`
	Anomalies   []Anomaly `json:"anomalies,omitempty"`
}

// TrafficSummary holds the dashboard KPI tiles for one filter selection.
type TrafficSummary struct {
	TotalVehicles    int64   `json:"total_vehicles"`
	AvgDailyTraffic  float64 `json:"avg_daily_traffic"` // DTV
	MedianDailyTotal float64 `json:"median_daily_total"`
	BusiestDayTotal  float64 `json:"busiest_day_total"`
	QuietestDayTotal float64 `json:"quietest_day_total"`
	PeakHour         int     `json:"peak_hour"` // 0-23
	DaysWithData     int     `json:"days_with_data"`
}

// Gap is a contiguous run of missing counting intervals.
type Gap struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Hours float64   `json:"hours"`
	IsDST bool      `json:"is_dst"` // spring clock change, not a real outage
}

// YearCoverage summarizes data completeness for one calendar year.
type YearCoverage struct {
	Year          int       `json:"year"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	ExpectedHours int       `json:"expected_hours"`
	ActualHours   int       `json:"actual_hours"`
	Completeness  float64   `json:"completeness"` // percent
	GapHours      float64   `json:"gap_hours"`
	GapDays       float64   `json:"gap_days"`
}

// GapReport is the full data-quality view: every gap plus per-year
// completeness statistics.
type GapReport struct {
	Gaps         []Gap          `json:"gaps"`
	Yearly       []YearCoverage `json:"yearly"`
	TotalMissing int            `json:"total_missing"`
}
