package aggregate

import (
	"sort"
	"time"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
)

// significantGapHours separates real outages from single missing
// intervals in the per-year statistics.
const significantGapHours = 1

// AnalyzeGaps finds contiguous runs of missing counting intervals in
// the record set and summarizes data completeness per year. The spring
// clock change leaves a regular one-hour hole at 02:00 in late March;
// those gaps are marked IsDST and excluded from the outage statistics.
func AnalyzeGaps(records []models.CountRecord) (models.GapReport, error) {
	if len(records) == 0 {
		return models.GapReport{}, ErrEmptyInput
	}

	hours := distinctHours(records)
	first, last := hours[0], hours[len(hours)-1]

	present := make(map[int64]bool, len(hours))
	for _, h := range hours {
		present[h.Unix()] = true
	}

	var gaps []models.Gap
	var missing int
	var open *models.Gap
	for t := first; !t.After(last); t = t.Add(time.Hour) {
		if present[t.Unix()] {
			if open != nil {
				gaps = append(gaps, *open)
				open = nil
			}
			continue
		}
		missing++
		if open == nil {
			open = &models.Gap{Start: t, End: t, Hours: 1}
		} else {
			open.End = t
			open.Hours++
		}
	}
	if open != nil {
		gaps = append(gaps, *open)
	}
	for i := range gaps {
		gaps[i].IsDST = isDSTGap(gaps[i])
	}

	return models.GapReport{
		Gaps:         gaps,
		Yearly:       yearlyCoverage(hours, gaps),
		TotalMissing: missing,
	}, nil
}

// isDSTGap matches the heuristic used by the dashboard: a gap of at
// most one hour starting at 02:00 in March is the spring clock change.
func isDSTGap(g models.Gap) bool {
	return g.Start.Month() == time.March && g.Start.Hour() == 2 && g.Hours <= 1
}

func distinctHours(records []models.CountRecord) []time.Time {
	seen := make(map[int64]time.Time)
	for _, r := range records {
		seen[r.Timestamp.Unix()] = r.Timestamp
	}
	hours := make([]time.Time, 0, len(seen))
	for _, t := range seen {
		hours = append(hours, t)
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Before(hours[j]) })
	return hours
}

func yearlyCoverage(hours []time.Time, gaps []models.Gap) []models.YearCoverage {
	type span struct {
		first, last time.Time
		actual      int
	}
	perYear := make(map[int]*span)
	for _, t := range hours {
		y := t.Year()
		s, ok := perYear[y]
		if !ok {
			perYear[y] = &span{first: t, last: t, actual: 1}
			continue
		}
		if t.Before(s.first) {
			s.first = t
		}
		if t.After(s.last) {
			s.last = t
		}
		s.actual++
	}

	var years []int
	for y := range perYear {
		years = append(years, y)
	}
	sort.Ints(years)

	var result []models.YearCoverage
	for _, y := range years {
		s := perYear[y]
		expected := int(s.last.Sub(s.first)/time.Hour) + 1

		var gapHours float64
		for _, g := range gaps {
			if g.Start.Year() == y && g.Hours > significantGapHours && !g.IsDST {
				gapHours += g.Hours
			}
		}

		cov := models.YearCoverage{
			Year:          y,
			Start:         s.first,
			End:           s.last,
			ExpectedHours: expected,
			ActualHours:   s.actual,
			GapHours:      gapHours,
			GapDays:       gapHours / 24,
		}
		if expected > 0 {
			cov.Completeness = 100 * float64(s.actual) / float64(expected)
		}
		result = append(result, cov)
	}

	return result
}
