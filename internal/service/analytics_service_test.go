package service_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/aggregate"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/database"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/dataset"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/filter"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/service"
)

var zurich = time.FixedZone("CET", 3600)

// warmLoader seeds an in-memory cache with records and warms a loader
// from it.
func warmLoader(t *testing.T, records []models.CountRecord) *dataset.Loader {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	store := dataset.NewStore(db)
	perYear := make(map[int][]models.CountRecord)
	for _, r := range records {
		perYear[r.Timestamp.Year()] = append(perYear[r.Timestamp.Year()], r)
	}
	for year, rs := range perYear {
		require.NoError(t, store.ReplaceYear(year, rs))
	}

	loader := dataset.NewLoader(nil, store)
	_, err = loader.Warm()
	require.NoError(t, err)
	return loader
}

func fixture() []models.CountRecord {
	var records []models.CountRecord
	day := time.Date(2023, 1, 2, 0, 0, 0, 0, zurich) // a Monday
	for d := 0; d < 8; d++ {
		for h := 0; h < 24; h++ {
			ts := day.AddDate(0, 0, d).Add(time.Duration(h) * time.Hour)
			records = append(records,
				models.CountRecord{Timestamp: ts, StationID: "Zch_Rosengartenbruecke", Lane: "1", Direction: "Richtung Bucheggplatz", ClassID: 2, Count: 100, Status: models.StatusFinalized},
				models.CountRecord{Timestamp: ts, StationID: "Zch_Rosengartenbruecke", Lane: "3", Direction: "Richtung Hardbrücke", ClassID: 4, Count: 20, Status: models.StatusFinalized},
			)
		}
	}
	return records
}

func TestAnalyticsServiceNoDataset(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	svc := service.NewAnalyticsService(dataset.NewLoader(nil, dataset.NewStore(db)))

	_, err = svc.Summary(models.FilterCriteria{})
	assert.ErrorIs(t, err, service.ErrNoDataset)
}

func TestAnalyticsServiceSummary(t *testing.T) {
	svc := service.NewAnalyticsService(warmLoader(t, fixture()))

	s, err := svc.Summary(models.FilterCriteria{})

	require.NoError(t, err)
	assert.Equal(t, int64(8*24*120), s.TotalVehicles)
	assert.Equal(t, 8, s.DaysWithData)
	assert.InDelta(t, 24*120, s.AvgDailyTraffic, 1e-9)
}

func TestAnalyticsServiceSummaryFiltered(t *testing.T) {
	svc := service.NewAnalyticsService(warmLoader(t, fixture()))

	s, err := svc.Summary(models.FilterCriteria{Directions: []string{"Richtung Hardbrücke"}})

	require.NoError(t, err)
	assert.Equal(t, int64(8*24*20), s.TotalVehicles)
}

func TestAnalyticsServiceSummaryInvalidRange(t *testing.T) {
	svc := service.NewAnalyticsService(warmLoader(t, fixture()))

	_, err := svc.Summary(models.FilterCriteria{
		Start: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, filter.ErrInvalidRange)
}

func TestAnalyticsServiceSummaryEmptySelection(t *testing.T) {
	svc := service.NewAnalyticsService(warmLoader(t, fixture()))

	_, err := svc.Summary(models.FilterCriteria{Classes: []int{9}})

	assert.ErrorIs(t, err, aggregate.ErrEmptyInput)
}

func TestAnalyticsServiceSeriesModes(t *testing.T) {
	svc := service.NewAnalyticsService(warmLoader(t, fixture()))

	line, err := svc.Series(models.FilterCriteria{}, models.BucketDay)
	require.NoError(t, err)
	assert.Equal(t, models.ChartLine, line.Kind)
	require.Len(t, line.Series, 1)
	assert.Len(t, line.Series[0].Points, 8)

	bar, err := svc.Series(models.FilterCriteria{}, models.BucketWeekday)
	require.NoError(t, err)
	assert.Equal(t, models.ChartBar, bar.Kind)
	assert.Equal(t, "Wochentag", bar.XAxis.Title)
}

func TestAnalyticsServiceProfilesAndHeatmap(t *testing.T) {
	svc := service.NewAnalyticsService(warmLoader(t, fixture()))

	profile, err := svc.HourlyProfile(models.FilterCriteria{}, aggregate.GroupDirection)
	require.NoError(t, err)
	require.Len(t, profile.Series, 2)
	assert.Len(t, profile.Series[0].Points, 24)

	heatmap, err := svc.Heatmap(models.FilterCriteria{})
	require.NoError(t, err)
	require.NotNil(t, heatmap.Matrix)
	assert.InDelta(t, 8*24*120, heatmap.Matrix.GrandTotal(), 1e-9)
}

func TestAnalyticsServiceClassShares(t *testing.T) {
	svc := service.NewAnalyticsService(warmLoader(t, fixture()))

	byClass, err := svc.ClassShares(models.FilterCriteria{}, "class")
	require.NoError(t, err)
	assert.Equal(t, models.ChartHBar, byClass.Kind)
	require.Len(t, byClass.Series, 2)
	// Ascending by share: Lieferwagen before Personenwagen.
	assert.Equal(t, "Lieferwagen", byClass.Series[0].Name)

	_, err = svc.ClassShares(models.FilterCriteria{}, "bogus")
	assert.Error(t, err)
}

func TestAnalyticsServiceDirectionSplit(t *testing.T) {
	svc := service.NewAnalyticsService(warmLoader(t, fixture()))

	donut, err := svc.DirectionSplit(models.FilterCriteria{})

	require.NoError(t, err)
	assert.Equal(t, models.ChartDonut, donut.Kind)
	assert.Len(t, donut.Series, 2)
}

func TestAnalyticsServiceRecentWindow(t *testing.T) {
	svc := service.NewAnalyticsService(warmLoader(t, fixture()))

	recent, err := svc.Recent()

	require.NoError(t, err)
	assert.Equal(t, models.ChartLine, recent.Kind)
	// Personenwagen and Lieferwagen are present, Lastwagen has no data
	// yet still gets a series with nil points.
	require.Len(t, recent.Series, 3)
	assert.Equal(t, "Personenwagen", recent.Series[0].Name)
	assert.Nil(t, recent.Series[2].Points[0].Value)
	// Window anchored on the newest record: 7*24 hours + the anchor.
	assert.Len(t, recent.Series[0].Points, 7*24+1)
}

func TestAnalyticsServiceGaps(t *testing.T) {
	svc := service.NewAnalyticsService(warmLoader(t, fixture()))

	report, err := svc.Gaps()

	require.NoError(t, err)
	assert.Empty(t, report.Gaps)
	require.Len(t, report.Yearly, 1)
	assert.InDelta(t, 100.0, report.Yearly[0].Completeness, 1e-9)
}
