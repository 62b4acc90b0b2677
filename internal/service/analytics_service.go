package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/aggregate"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/chart"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/dataset"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/filter"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
)

// ErrNoDataset is returned while the loader has neither warmed from the
// cache nor completed a refresh.
var ErrNoDataset = errors.New("dataset not loaded")

// recentWindow is the span of the "last 7 days" chart.
const recentWindow = 7 * 24 * time.Hour

// recentCategories are the vehicle categories shown in the recent view.
var recentCategories = []string{"Personenwagen", "Lieferwagen", "Lastwagen"}

// AnalyticsService runs the filter -> aggregate -> chart pipeline on
// the current dataset snapshot. Every call is a pure function of the
// snapshot and the criteria; no cross-call state.
type AnalyticsService struct {
	loader *dataset.Loader
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(loader *dataset.Loader) *AnalyticsService {
	return &AnalyticsService{loader: loader}
}

// filtered applies the criteria to the current snapshot.
func (s *AnalyticsService) filtered(c models.FilterCriteria) ([]models.CountRecord, error) {
	snap := s.loader.Snapshot()
	if snap == nil {
		return nil, ErrNoDataset
	}
	return filter.Apply(snap.Records, c)
}

// Summary computes the KPI tiles for one filter selection.
func (s *AnalyticsService) Summary(c models.FilterCriteria) (models.TrafficSummary, error) {
	records, err := s.filtered(c)
	if err != nil {
		return models.TrafficSummary{}, err
	}
	return aggregate.Summary(records)
}

// Series builds a bucketed sum chart for the requested mode.
func (s *AnalyticsService) Series(c models.FilterCriteria, mode models.BucketMode) (models.ChartSpec, error) {
	records, err := s.filtered(c)
	if err != nil {
		return models.ChartSpec{}, err
	}

	series, err := aggregate.ByBucketRange(records, mode, c.Start, c.End)
	if err != nil {
		return models.ChartSpec{}, err
	}

	switch mode {
	case models.BucketDay, models.BucketWeek, models.BucketMonth:
		series.Name = "Fahrzeuge"
		return chart.Line([]models.AggregatedSeries{series}, nil, "Verkehrsaufkommen", axisTitle(mode), "Fahrzeuge"), nil
	default:
		return chart.Bar(series, seriesTitle(mode), axisTitle(mode), "Fahrzeuge"), nil
	}
}

// HourlyProfile builds the average day-course chart grouped by the
// given dimension.
func (s *AnalyticsService) HourlyProfile(c models.FilterCriteria, dim aggregate.GroupDimension) (models.ChartSpec, error) {
	records, err := s.filtered(c)
	if err != nil {
		return models.ChartSpec{}, err
	}

	series, err := aggregate.HourlyProfile(records, dim)
	if err != nil {
		return models.ChartSpec{}, err
	}
	return chart.Line(series, nil, "Tagesverlauf", "Uhrzeit", "Ø Fahrzeuge/Stunde"), nil
}

// WeekdayProfile builds the average week-course chart grouped by the
// given dimension.
func (s *AnalyticsService) WeekdayProfile(c models.FilterCriteria, dim aggregate.GroupDimension) (models.ChartSpec, error) {
	records, err := s.filtered(c)
	if err != nil {
		return models.ChartSpec{}, err
	}

	series, err := aggregate.WeekdayProfile(records, dim)
	if err != nil {
		return models.ChartSpec{}, err
	}
	return chart.GroupedBar(series, nil, "Wochenverlauf", "Wochentag", "Ø Fahrzeuge/Tag"), nil
}

// Heatmap builds the weekday x hour traffic pattern heatmap.
func (s *AnalyticsService) Heatmap(c models.FilterCriteria) (models.ChartSpec, error) {
	records, err := s.filtered(c)
	if err != nil {
		return models.ChartSpec{}, err
	}

	matrix, err := aggregate.WeekdayHourMatrix(records)
	if err != nil {
		return models.ChartSpec{}, err
	}
	return chart.Heatmap(matrix, "Verkehrsmuster: Stunde × Wochentag"), nil
}

// ClassShares builds the percentage distribution of vehicle classes or
// rolled-up categories.
func (s *AnalyticsService) ClassShares(c models.FilterCriteria, level string) (models.ChartSpec, error) {
	records, err := s.filtered(c)
	if err != nil {
		return models.ChartSpec{}, err
	}

	switch level {
	case "category":
		series, err := aggregate.ByBucket(records, models.BucketCategory)
		if err != nil {
			return models.ChartSpec{}, err
		}
		return chart.ShareBar(series, chart.CategoryColors, "Fahrzeugkategorien (%)"), nil
	case "", "class":
		series, err := aggregate.ByBucket(records, models.BucketClass)
		if err != nil {
			return models.ChartSpec{}, err
		}
		return chart.ShareBar(series, chart.ClassColors, "Fahrzeugklassen (%)"), nil
	default:
		return models.ChartSpec{}, fmt.Errorf("unknown share level %q", level)
	}
}

// DirectionSplit builds the direction share donut.
func (s *AnalyticsService) DirectionSplit(c models.FilterCriteria) (models.ChartSpec, error) {
	records, err := s.filtered(c)
	if err != nil {
		return models.ChartSpec{}, err
	}

	series, err := aggregate.ByBucket(records, models.BucketDirection)
	if err != nil {
		return models.ChartSpec{}, err
	}
	return chart.Donut(series, "Richtungsvergleich"), nil
}

// MonthlyTrend builds the per-direction monthly DTV trend.
func (s *AnalyticsService) MonthlyTrend(c models.FilterCriteria) (models.ChartSpec, error) {
	records, err := s.filtered(c)
	if err != nil {
		return models.ChartSpec{}, err
	}

	series, err := aggregate.MonthlyTrend(records)
	if err != nil {
		return models.ChartSpec{}, err
	}
	return chart.GroupedBar(series, nil, "Monatlicher Verkehrstrend (Ø Tagesverkehr)", "", "Ø Fahrzeuge/Tag"), nil
}

// WeeklyTrend builds the per-year calendar week averages.
func (s *AnalyticsService) WeeklyTrend(c models.FilterCriteria) (models.ChartSpec, error) {
	records, err := s.filtered(c)
	if err != nil {
		return models.ChartSpec{}, err
	}

	series, err := aggregate.WeeklyAverages(records)
	if err != nil {
		return models.ChartSpec{}, err
	}
	return chart.Line(series, nil, "Jahresverlauf (Wochendurchschnitt)", "Kalenderwoche", "Ø Fahrzeuge/Tag"), nil
}

// YearlyComparison builds the year-over-year DTV and totals charts.
func (s *AnalyticsService) YearlyComparison(c models.FilterCriteria) (dtv, totals models.ChartSpec, err error) {
	records, err := s.filtered(c)
	if err != nil {
		return models.ChartSpec{}, models.ChartSpec{}, err
	}

	dtvSeries, totalSeries, err := aggregate.YearlyComparison(records)
	if err != nil {
		return models.ChartSpec{}, models.ChartSpec{}, err
	}
	dtv = chart.GroupedBar(dtvSeries, nil, "Jahresvergleich (Ø Tagesverkehr)", "", "Ø Fahrzeuge/Tag")
	totals = chart.GroupedBar(totalSeries, nil, "Jahresvergleich (Gesamtanzahl)", "", "Fahrzeuge gesamt")
	return dtv, totals, nil
}

// Recent builds the last-7-days hourly chart for the main vehicle
// categories. The window is anchored on the newest record of the full
// dataset, independent of the user's filter.
func (s *AnalyticsService) Recent() (models.ChartSpec, error) {
	snap := s.loader.Snapshot()
	if snap == nil {
		return models.ChartSpec{}, ErrNoDataset
	}
	if len(snap.Records) == 0 {
		return models.ChartSpec{}, aggregate.ErrEmptyInput
	}

	newest := snap.Records[len(snap.Records)-1].Timestamp
	cutoff := newest.Add(-recentWindow)

	type cell struct {
		ts       int64
		category string
	}
	sums := make(map[cell]float64)
	stamps := make(map[int64]time.Time)
	for _, r := range snap.Records {
		if r.Timestamp.Before(cutoff) {
			continue
		}
		cat := models.ClassCategory(r.ClassID)
		if !isRecentCategory(cat) {
			continue
		}
		sums[cell{ts: r.Timestamp.Unix(), category: cat}] += float64(r.Count)
		stamps[r.Timestamp.Unix()] = r.Timestamp
	}
	if len(sums) == 0 {
		return models.ChartSpec{}, aggregate.ErrEmptyInput
	}

	ordered := make([]int64, 0, len(stamps))
	for ts := range stamps {
		ordered = append(ordered, ts)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	var series []models.AggregatedSeries
	for _, cat := range recentCategories {
		one := models.AggregatedSeries{Bucket: models.BucketHour, Name: cat}
		for _, ts := range ordered {
			p := models.SeriesPoint{Key: stamps[ts].Format("2006-01-02T15:04")}
			if v, ok := sums[cell{ts: ts, category: cat}]; ok {
				p.Value = models.Float64Ptr(v)
			}
			one.Points = append(one.Points, p)
		}
		series = append(series, one)
	}

	return chart.Line(series, chart.CategoryColors, "Letzte 7 Tage (Stundenwerte)", "Datum/Zeit", "Fahrzeuge/Stunde"), nil
}

// Gaps runs the data-quality analysis over the full snapshot.
func (s *AnalyticsService) Gaps() (models.GapReport, error) {
	snap := s.loader.Snapshot()
	if snap == nil {
		return models.GapReport{}, ErrNoDataset
	}
	return aggregate.AnalyzeGaps(snap.Records)
}

func isRecentCategory(cat string) bool {
	for _, c := range recentCategories {
		if c == cat {
			return true
		}
	}
	return false
}

func axisTitle(mode models.BucketMode) string {
	switch mode {
	case models.BucketDay:
		return "Datum"
	case models.BucketWeek:
		return "Kalenderwoche"
	case models.BucketMonth:
		return "Monat"
	case models.BucketWeekday:
		return "Wochentag"
	case models.BucketHour:
		return "Uhrzeit"
	case models.BucketClass:
		return "Fahrzeugklasse"
	case models.BucketCategory:
		return "Kategorie"
	case models.BucketDirection:
		return "Richtung"
	case models.BucketLane:
		return "Fahrstreifen"
	case models.BucketYear:
		return "Jahr"
	default:
		return ""
	}
}

func seriesTitle(mode models.BucketMode) string {
	return "Verkehrsaufkommen nach " + axisTitle(mode)
}
