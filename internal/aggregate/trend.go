package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
)

// minMonthCoverage is the share of a month's days that must carry data
// before its average enters the monthly trend. Months mostly lost to an
// outage would otherwise distort the trend.
const minMonthCoverage = 0.9

// minWeekDays is the number of measured days an ISO week needs before
// its average is reported; shorter weeks stay nil.
const minWeekDays = 5

// MonthlyTrend computes the average daily traffic per month, one series
// per direction. Months with less than 90% day coverage carry a nil
// value. Keys are "YYYY-MM" in chronological order over the full span.
func MonthlyTrend(records []models.CountRecord) ([]models.AggregatedSeries, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	type cell struct{ direction, month string }
	perDay := make(map[cell]map[string]float64)
	directions := make(map[string]bool)

	for _, r := range records {
		month := r.Timestamp.Format("2006-01")
		day := r.Timestamp.Format("2006-01-02")
		c := cell{direction: r.Direction, month: month}
		if perDay[c] == nil {
			perDay[c] = make(map[string]float64)
		}
		perDay[c][day] += float64(r.Count)
		directions[r.Direction] = true
	}

	first, last := spanOf(records, time.Time{}, time.Time{})
	months := calendarKeys(models.BucketMonth, first, last)

	var dirs []string
	for d := range directions {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	var result []models.AggregatedSeries
	for _, dir := range dirs {
		series := models.AggregatedSeries{Bucket: models.BucketMonth, Name: dir, Points: make([]models.SeriesPoint, 0, len(months))}
		for _, month := range months {
			p := models.SeriesPoint{Key: month}
			days := perDay[cell{direction: dir, month: month}]
			if len(days) > 0 && coverage(month, len(days)) >= minMonthCoverage {
				var totals []float64
				for _, t := range days {
					totals = append(totals, t)
				}
				p.Value = models.Float64Ptr(Mean(totals))
			}
			series.Points = append(series.Points, p)
		}
		result = append(result, series)
	}

	return result, nil
}

func coverage(month string, daysWithData int) float64 {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return 0
	}
	daysInMonth := t.AddDate(0, 1, -1).Day()
	return float64(daysWithData) / float64(daysInMonth)
}

// WeeklyAverages computes the average daily traffic per ISO calendar
// week, one series per year with keys "KW01".."KW52". Week 53 days roll
// into week 1 of the following year, matching the dashboard's year-end
// handling; weeks with fewer than five measured days stay nil.
func WeeklyAverages(records []models.CountRecord) ([]models.AggregatedSeries, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	type cell struct{ year, week int }
	perDay := make(map[cell]map[string]float64)
	years := make(map[int]bool)

	for _, r := range records {
		year, week := r.Timestamp.ISOWeek()
		if week == 53 {
			year, week = year+1, 1
		}
		day := r.Timestamp.Format("2006-01-02")
		c := cell{year: year, week: week}
		if perDay[c] == nil {
			perDay[c] = make(map[string]float64)
		}
		perDay[c][day] += float64(r.Count)
		years[year] = true
	}

	var yearList []int
	for y := range years {
		yearList = append(yearList, y)
	}
	sort.Ints(yearList)

	var result []models.AggregatedSeries
	for _, year := range yearList {
		series := models.AggregatedSeries{Bucket: models.BucketWeek, Name: fmt.Sprintf("%d", year), Points: make([]models.SeriesPoint, 0, 52)}
		for week := 1; week <= 52; week++ {
			p := models.SeriesPoint{Key: fmt.Sprintf("KW%02d", week)}
			if days := perDay[cell{year: year, week: week}]; len(days) >= minWeekDays {
				var totals []float64
				for _, t := range days {
					totals = append(totals, t)
				}
				p.Value = models.Float64Ptr(Mean(totals))
			}
			series.Points = append(series.Points, p)
		}
		result = append(result, series)
	}

	return result, nil
}

// YearlyComparison computes the average daily traffic and the total per
// year, one series pair per direction, for the year-over-year view.
func YearlyComparison(records []models.CountRecord) (dtv, totals []models.AggregatedSeries, err error) {
	if len(records) == 0 {
		return nil, nil, ErrEmptyInput
	}

	type cell struct {
		direction string
		year      int
	}
	perDay := make(map[cell]map[string]float64)
	sums := make(map[cell]float64)
	directions := make(map[string]bool)
	years := make(map[int]bool)

	for _, r := range records {
		c := cell{direction: r.Direction, year: r.Timestamp.Year()}
		day := r.Timestamp.Format("2006-01-02")
		if perDay[c] == nil {
			perDay[c] = make(map[string]float64)
		}
		perDay[c][day] += float64(r.Count)
		sums[c] += float64(r.Count)
		directions[r.Direction] = true
		years[r.Timestamp.Year()] = true
	}

	var dirs []string
	for d := range directions {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	var yearList []int
	for y := range years {
		yearList = append(yearList, y)
	}
	sort.Ints(yearList)

	for _, dir := range dirs {
		dtvSeries := models.AggregatedSeries{Bucket: models.BucketYear, Name: dir}
		totalSeries := models.AggregatedSeries{Bucket: models.BucketYear, Name: dir}
		for _, year := range yearList {
			key := fmt.Sprintf("%d", year)
			c := cell{direction: dir, year: year}

			dtvPoint := models.SeriesPoint{Key: key}
			totalPoint := models.SeriesPoint{Key: key}
			if days := perDay[c]; len(days) > 0 {
				var dayTotals []float64
				for _, t := range days {
					dayTotals = append(dayTotals, t)
				}
				dtvPoint.Value = models.Float64Ptr(Mean(dayTotals))
				totalPoint.Value = models.Float64Ptr(sums[c])
			}
			dtvSeries.Points = append(dtvSeries.Points, dtvPoint)
			totalSeries.Points = append(totalSeries.Points, totalPoint)
		}
		dtv = append(dtv, dtvSeries)
		totals = append(totals, totalSeries)
	}

	return dtv, totals, nil
}
