// Package filter applies user-selected criteria to count records:
// logical AND across dimensions, logical OR within a dimension's
// selected set. Pure transformation, no side effects.
package filter

import (
	"errors"
	"time"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
)

// ErrInvalidRange is returned when the date range has start after end.
// Surfaced to the user as a validation message, never retried.
var ErrInvalidRange = errors.New("invalid date range: start after end")

// Apply returns the subset of records satisfying every active
// criterion. An empty result is valid and returned as an empty slice,
// never nil, so callers can distinguish "no data" from "not filtered".
func Apply(records []models.CountRecord, c models.FilterCriteria) ([]models.CountRecord, error) {
	if c.HasRange() && c.Start.After(c.End) {
		return nil, ErrInvalidRange
	}

	classes := intSet(c.Classes)
	directions := stringSet(c.Directions)
	lanes := stringSet(c.Lanes)
	weekdays := intSet(c.Weekdays)

	filtered := make([]models.CountRecord, 0, len(records))
	for _, r := range records {
		if !inRange(r, c) {
			continue
		}
		if classes != nil && !classes[r.ClassID] {
			continue
		}
		if directions != nil && !directions[r.Direction] {
			continue
		}
		if lanes != nil && !lanes[r.Lane] {
			continue
		}
		if weekdays != nil && !weekdays[r.WeekdayIndex()] {
			continue
		}
		filtered = append(filtered, r)
	}

	return filtered, nil
}

// inRange checks the inclusive calendar-day range. Bounds compare by
// wall-clock date so the feed's UTC offset cannot shift a record across
// a day boundary; the end bound covers the whole end day.
func inRange(r models.CountRecord, c models.FilterCriteria) bool {
	day := dateKey(r.Timestamp)
	if !c.Start.IsZero() && day < dateKey(c.Start) {
		return false
	}
	if !c.End.IsZero() && day > dateKey(c.End) {
		return false
	}
	return true
}

func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

func intSet(values []int) map[int]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[int]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func stringSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
