// Package aggregate computes grouped summaries over filtered count
// records: calendar and categorical bucket sums, profiles, the
// weekday x hour pattern matrix, trends, KPIs and gap analysis. All
// functions are pure; value semantics follow the dashboard's rule that
// a calendar bucket without measured intervals is a gap (nil), never a
// fabricated zero.
package aggregate

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
)

// ErrEmptyInput is returned when aggregation is requested over zero
// records, allowing the caller to render a "no data for selection"
// state instead of an empty chart.
var ErrEmptyInput = errors.New("no records to aggregate")

// Fixed categorical order for category buckets, busiest first as in the
// dashboard's category views.
var categoryOrder = []string{
	"Personenwagen",
	"Lieferwagen",
	"Lastwagen",
	"Motorrad",
	"Bus/Trolleybus",
	"Unbekannt",
}

// ByBucket sums counts per bucket over the records' own time span.
func ByBucket(records []models.CountRecord, mode models.BucketMode) (models.AggregatedSeries, error) {
	return ByBucketRange(records, mode, time.Time{}, time.Time{})
}

// ByBucketRange sums counts per bucket. For calendar modes every bucket
// between start and end (or the records' span when the bounds are zero)
// appears in the output; buckets without measured intervals carry a nil
// value. Point order is chronological for calendar modes and fixed
// categorical otherwise.
func ByBucketRange(records []models.CountRecord, mode models.BucketMode, start, end time.Time) (models.AggregatedSeries, error) {
	if len(records) == 0 {
		return models.AggregatedSeries{}, ErrEmptyInput
	}

	sums := make(map[string]float64)
	for _, r := range records {
		sums[bucketKey(r, mode)] += float64(r.Count)
	}

	keys, err := orderedKeys(records, mode, start, end)
	if err != nil {
		return models.AggregatedSeries{}, err
	}

	series := models.AggregatedSeries{Bucket: mode, Points: make([]models.SeriesPoint, 0, len(keys))}
	for _, k := range keys {
		p := models.SeriesPoint{Key: k}
		if v, ok := sums[k]; ok {
			p.Value = models.Float64Ptr(v)
		}
		series.Points = append(series.Points, p)
	}

	return series, nil
}

func bucketKey(r models.CountRecord, mode models.BucketMode) string {
	switch mode {
	case models.BucketDay:
		return r.Timestamp.Format("2006-01-02")
	case models.BucketWeek:
		return weekKey(r.Timestamp)
	case models.BucketMonth:
		return r.Timestamp.Format("2006-01")
	case models.BucketWeekday:
		return models.WeekdayShortNames[r.WeekdayIndex()]
	case models.BucketHour:
		return fmt.Sprintf("%02d", r.Timestamp.Hour())
	case models.BucketClass:
		return models.ClassLabel(r.ClassID)
	case models.BucketCategory:
		return models.ClassCategory(r.ClassID)
	case models.BucketDirection:
		return r.Direction
	case models.BucketLane:
		return r.Lane
	case models.BucketYear:
		return fmt.Sprintf("%d", r.Timestamp.Year())
	default:
		return ""
	}
}

// weekKey formats the ISO week of a timestamp, e.g. "2020-W07".
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func orderedKeys(records []models.CountRecord, mode models.BucketMode, start, end time.Time) ([]string, error) {
	switch mode {
	case models.BucketDay, models.BucketWeek, models.BucketMonth, models.BucketYear:
		first, last := spanOf(records, start, end)
		return calendarKeys(mode, first, last), nil
	case models.BucketHour:
		keys := make([]string, 24)
		for h := 0; h < 24; h++ {
			keys[h] = fmt.Sprintf("%02d", h)
		}
		return keys, nil
	case models.BucketWeekday:
		return append([]string(nil), models.WeekdayShortNames...), nil
	case models.BucketClass:
		keys := make([]string, 0, 12)
		for _, id := range models.ClassIDs() {
			keys = append(keys, models.ClassLabel(id))
		}
		return keys, nil
	case models.BucketCategory:
		return append([]string(nil), categoryOrder...), nil
	case models.BucketDirection, models.BucketLane:
		return distinctKeys(records, mode), nil
	default:
		return nil, fmt.Errorf("unknown bucket mode %q", mode)
	}
}

// spanOf picks the aggregation span: explicit bounds when given,
// otherwise the records' own first and last interval.
func spanOf(records []models.CountRecord, start, end time.Time) (time.Time, time.Time) {
	first, last := records[0].Timestamp, records[0].Timestamp
	for _, r := range records[1:] {
		if r.Timestamp.Before(first) {
			first = r.Timestamp
		}
		if r.Timestamp.After(last) {
			last = r.Timestamp
		}
	}
	if !start.IsZero() {
		first = start
	}
	if !end.IsZero() {
		last = end
	}
	return first, last
}

func calendarKeys(mode models.BucketMode, first, last time.Time) []string {
	var keys []string
	seen := make(map[string]bool)

	fy, fm, fd := first.Date()
	ly, lm, ld := last.Date()
	day := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	stop := time.Date(ly, lm, ld, 0, 0, 0, 0, time.UTC)

	for !day.After(stop) {
		var k string
		switch mode {
		case models.BucketDay:
			k = day.Format("2006-01-02")
		case models.BucketWeek:
			k = weekKey(day)
		case models.BucketMonth:
			k = day.Format("2006-01")
		case models.BucketYear:
			k = fmt.Sprintf("%d", day.Year())
		}
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
		day = day.AddDate(0, 0, 1)
	}

	return keys
}

func distinctKeys(records []models.CountRecord, mode models.BucketMode) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, r := range records {
		k := bucketKey(r, mode)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// dailyTotals sums counts per calendar day, keyed "2006-01-02".
func dailyTotals(records []models.CountRecord) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range records {
		totals[r.Timestamp.Format("2006-01-02")] += float64(r.Count)
	}
	return totals
}
