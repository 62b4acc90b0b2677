package models

import "time"

// Record status values as published by the OGD portal
const (
	StatusProvisional = "provisional" // "provisorisch" in the feed
	StatusFinalized   = "finalized"   // "bereinigt" in the feed
)

// CountRecord is one hourly counting interval for a single
// (station, lane, direction, vehicle class) combination.
// The timestamp is the start of the interval in local standard time.
type CountRecord struct {
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	StationID string    `json:"station_id" db:"station_id"`
	Lane      string    `json:"lane" db:"lane"`
	Direction string    `json:"direction" db:"direction"`
	ClassID   int       `json:"class_id" db:"class_id"`
	Count     int       `json:"count" db:"count"`
	Status    string    `json:"status" db:"status"`
}

// Day returns the calendar day of the counting interval.
func (r CountRecord) Day() time.Time {
	y, m, d := r.Timestamp.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.Timestamp.Location())
}

// WeekdayIndex returns the weekday of the interval with Monday = 0.
func (r CountRecord) WeekdayIndex() int {
	return WeekdayIndex(r.Timestamp)
}

// WeekdayIndex maps a time to the fixed Monday-first weekday ordering
// used everywhere in the dashboard (0 = Monday .. 6 = Sunday).
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// German weekday labels, Monday first.
var (
	WeekdayShortNames = []string{"Mo", "Di", "Mi", "Do", "Fr", "Sa", "So"}
	WeekdayNames      = []string{"Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag", "Sonntag"}
)
