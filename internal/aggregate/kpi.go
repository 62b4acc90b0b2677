package aggregate

import (
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
)

// Summary computes the dashboard KPI tiles for one filtered record set:
// total vehicles, average and median daily traffic, the daily extremes,
// the busiest hour of the day, and the number of days with data.
func Summary(records []models.CountRecord) (models.TrafficSummary, error) {
	if len(records) == 0 {
		return models.TrafficSummary{}, ErrEmptyInput
	}

	hourly := make([]float64, 24)
	for _, r := range records {
		hourly[r.Timestamp.Hour()] += float64(r.Count)
	}

	peakHour := 0
	for h := 1; h < 24; h++ {
		if hourly[h] > hourly[peakHour] {
			peakHour = h
		}
	}

	days := dailyTotals(records)
	var totals []float64
	for _, t := range days {
		totals = append(totals, t)
	}

	return models.TrafficSummary{
		TotalVehicles:    int64(Sum(totals)),
		AvgDailyTraffic:  Mean(totals),
		MedianDailyTotal: Median(totals),
		BusiestDayTotal:  Max(totals),
		QuietestDayTotal: Min(totals),
		PeakHour:         peakHour,
		DaysWithData:     len(days),
	}, nil
}
