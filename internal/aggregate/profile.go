package aggregate

import (
	"fmt"
	"sort"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
)

// GroupDimension selects the grouping of a profile: one series per
// distinct value of the dimension.
type GroupDimension string

const (
	GroupDirection GroupDimension = "direction"
	GroupYear      GroupDimension = "year"
	GroupWeekday   GroupDimension = "weekday"
	GroupCategory  GroupDimension = "category"
)

func groupKey(r models.CountRecord, dim GroupDimension) (string, error) {
	switch dim {
	case GroupDirection:
		return r.Direction, nil
	case GroupYear:
		return fmt.Sprintf("%d", r.Timestamp.Year()), nil
	case GroupWeekday:
		return models.WeekdayShortNames[r.WeekdayIndex()], nil
	case GroupCategory:
		return models.ClassCategory(r.ClassID), nil
	default:
		return "", fmt.Errorf("unknown group dimension %q", dim)
	}
}

// groupOrder returns the deterministic series order for a dimension:
// fixed Monday-first for weekdays, fixed category order, sorted
// otherwise.
func groupOrder(dim GroupDimension, present map[string]bool) []string {
	var keys []string
	switch dim {
	case GroupWeekday:
		for _, name := range models.WeekdayShortNames {
			if present[name] {
				keys = append(keys, name)
			}
		}
	case GroupCategory:
		for _, name := range categoryOrder {
			if present[name] {
				keys = append(keys, name)
			}
		}
	default:
		for k := range present {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}
	return keys
}

// HourlyProfile computes the mean vehicles per hour-of-day, one series
// per group. The mean is taken over the distinct counting intervals in
// each (group, hour) cell, so a class or lane split does not inflate
// the denominator. Hours never measured in a group stay nil.
func HourlyProfile(records []models.CountRecord, dim GroupDimension) ([]models.AggregatedSeries, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	type cell struct {
		group string
		hour  int
	}
	sums := make(map[cell]float64)
	intervals := make(map[cell]map[int64]bool)
	present := make(map[string]bool)

	for _, r := range records {
		g, err := groupKey(r, dim)
		if err != nil {
			return nil, err
		}
		present[g] = true
		c := cell{group: g, hour: r.Timestamp.Hour()}
		sums[c] += float64(r.Count)
		if intervals[c] == nil {
			intervals[c] = make(map[int64]bool)
		}
		intervals[c][r.Timestamp.Unix()] = true
	}

	var result []models.AggregatedSeries
	for _, g := range groupOrder(dim, present) {
		series := models.AggregatedSeries{Bucket: models.BucketHour, Name: g, Points: make([]models.SeriesPoint, 0, 24)}
		for h := 0; h < 24; h++ {
			p := models.SeriesPoint{Key: fmt.Sprintf("%02d", h)}
			c := cell{group: g, hour: h}
			if n := len(intervals[c]); n > 0 {
				p.Value = models.Float64Ptr(sums[c] / float64(n))
			}
			series.Points = append(series.Points, p)
		}
		result = append(result, series)
	}

	return result, nil
}

// WeekdayProfile computes the mean vehicles per day for each weekday,
// one series per group. Daily totals are built first so the mean is a
// real average daily traffic figure, not a mean over raw rows.
func WeekdayProfile(records []models.CountRecord, dim GroupDimension) ([]models.AggregatedSeries, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	type dayCell struct{ group, day string }
	totals := make(map[dayCell]float64)
	weekdayOf := make(map[string]int)
	present := make(map[string]bool)

	for _, r := range records {
		g, err := groupKey(r, dim)
		if err != nil {
			return nil, err
		}
		present[g] = true
		day := r.Timestamp.Format("2006-01-02")
		totals[dayCell{group: g, day: day}] += float64(r.Count)
		weekdayOf[day] = r.WeekdayIndex()
	}

	type wdCell struct {
		group   string
		weekday int
	}
	perWeekday := make(map[wdCell][]float64)
	for c, total := range totals {
		perWeekday[wdCell{group: c.group, weekday: weekdayOf[c.day]}] = append(
			perWeekday[wdCell{group: c.group, weekday: weekdayOf[c.day]}], total)
	}

	var result []models.AggregatedSeries
	for _, g := range groupOrder(dim, present) {
		series := models.AggregatedSeries{Bucket: models.BucketWeekday, Name: g, Points: make([]models.SeriesPoint, 0, 7)}
		for wd := 0; wd < 7; wd++ {
			p := models.SeriesPoint{Key: models.WeekdayShortNames[wd]}
			if values := perWeekday[wdCell{group: g, weekday: wd}]; len(values) > 0 {
				p.Value = models.Float64Ptr(Mean(values))
			}
			series.Points = append(series.Points, p)
		}
		result = append(result, series)
	}

	return result, nil
}
