package aggregate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/aggregate"
)

func TestSummary(t *testing.T) {
	day1 := time.Date(2023, 1, 2, 0, 0, 0, 0, zurich)
	day2 := time.Date(2023, 1, 3, 0, 0, 0, 0, zurich)
	records := append(fullDay(day1, "Richtung Bucheggplatz", 2, 10), fullDay(day2, "Richtung Bucheggplatz", 2, 20)...)
	// Make 17:00 the busiest hour of the day.
	records = append(records, record(day1.Add(17*time.Hour), "Richtung Hardbrücke", 2, 500))

	s, err := aggregate.Summary(records)

	require.NoError(t, err)
	assert.Equal(t, int64(240+480+500), s.TotalVehicles)
	assert.Equal(t, 17, s.PeakHour)
	assert.Equal(t, 2, s.DaysWithData)
	// Daily totals are 740 and 480.
	assert.InDelta(t, 610.0, s.AvgDailyTraffic, 1e-9)
	assert.InDelta(t, 610.0, s.MedianDailyTotal, 1e-9)
	assert.InDelta(t, 740.0, s.BusiestDayTotal, 1e-9)
	assert.InDelta(t, 480.0, s.QuietestDayTotal, 1e-9)
}

func TestSummaryEmptyInput(t *testing.T) {
	_, err := aggregate.Summary(nil)
	assert.ErrorIs(t, err, aggregate.ErrEmptyInput)
}
