// Package chart maps aggregated series and matrices to declarative
// chart descriptions. Specs are plain values with no dependency on a
// rendering framework; identical input always yields byte-identical
// output.
package chart

import (
	"sort"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
)

// Line builds a multi-series line chart. Series keep their input order;
// colors follow the given categorical map, or the direction palette by
// index when colors is nil.
func Line(series []models.AggregatedSeries, colors map[string]string, title, xTitle, yTitle string) models.ChartSpec {
	return withSeries(models.ChartLine, series, colors, title, xTitle, yTitle)
}

// GroupedBar builds a grouped bar chart, one bar group per bucket key.
func GroupedBar(series []models.AggregatedSeries, colors map[string]string, title, xTitle, yTitle string) models.ChartSpec {
	return withSeries(models.ChartGroupedBar, series, colors, title, xTitle, yTitle)
}

func withSeries(kind models.ChartKind, series []models.AggregatedSeries, colors map[string]string, title, xTitle, yTitle string) models.ChartSpec {
	spec := models.ChartSpec{
		Kind:  kind,
		Title: title,
		XAxis: models.Axis{Title: xTitle},
		YAxis: models.Axis{Title: yTitle},
	}
	if len(series) > 0 {
		spec.XAxis.Categories = keysOf(series[0])
	}
	for i, s := range series {
		color := DefaultSeriesColor
		if colors != nil {
			color = colorFor(colors, s.Name)
		} else if len(series) <= len(DirectionColors) {
			color = DirectionColors[i]
		}
		spec.Series = append(spec.Series, models.ChartSeries{
			Name:   s.Name,
			Color:  color,
			Points: s.Points,
		})
	}
	return spec
}

// Bar builds a single-series bar chart from one aggregated series.
func Bar(series models.AggregatedSeries, title, xTitle, yTitle string) models.ChartSpec {
	return models.ChartSpec{
		Kind:  models.ChartBar,
		Title: title,
		XAxis: models.Axis{Title: xTitle, Categories: keysOf(series)},
		YAxis: models.Axis{Title: yTitle},
		Series: []models.ChartSeries{
			{Name: string(series.Bucket), Color: DefaultSeriesColor, Points: series.Points},
		},
	}
}

// ShareBar builds the horizontal percentage-share bar used for the
// class and category distributions: one bar per key, ascending by
// share, values in percent of the series total.
func ShareBar(series models.AggregatedSeries, colors map[string]string, title string) models.ChartSpec {
	total := series.Total()

	var bars []models.ChartSeries
	for _, p := range series.Points {
		if p.Value == nil || total == 0 {
			continue
		}
		share := *p.Value / total * 100
		bars = append(bars, models.ChartSeries{
			Name:  p.Key,
			Color: colorFor(colors, p.Key),
			Points: []models.SeriesPoint{
				{Key: p.Key, Value: models.Float64Ptr(share)},
			},
		})
	}
	sortByShare(bars)

	return models.ChartSpec{
		Kind:   models.ChartHBar,
		Title:  title,
		XAxis:  models.Axis{Title: "Anteil (%)"},
		YAxis:  models.Axis{Categories: namesOf(bars)},
		Series: bars,
	}
}

// Donut builds the direction split donut chart.
func Donut(series models.AggregatedSeries, title string) models.ChartSpec {
	var slices []models.ChartSeries
	i := 0
	for _, p := range series.Points {
		if p.Value == nil {
			continue
		}
		color := DefaultSeriesColor
		if i < len(DirectionColors) {
			color = DirectionColors[i]
		}
		slices = append(slices, models.ChartSeries{
			Name:   p.Key,
			Color:  color,
			Points: []models.SeriesPoint{{Key: p.Key, Value: p.Value}},
		})
		i++
	}

	return models.ChartSpec{
		Kind:   models.ChartDonut,
		Title:  title,
		Series: slices,
	}
}

// Heatmap builds the weekday x hour pattern heatmap.
func Heatmap(m models.Matrix, title string) models.ChartSpec {
	return models.ChartSpec{
		Kind:       models.ChartHeatmap,
		Title:      title,
		XAxis:      models.Axis{Title: "Stunde", Categories: m.ColLabels},
		YAxis:      models.Axis{Title: "Wochentag", Categories: m.RowLabels},
		Matrix:     &m,
		ColorScale: HeatmapScale,
	}
}

func keysOf(series models.AggregatedSeries) []string {
	keys := make([]string, 0, len(series.Points))
	for _, p := range series.Points {
		keys = append(keys, p.Key)
	}
	return keys
}

func namesOf(series []models.ChartSeries) []string {
	names := make([]string, 0, len(series))
	for _, s := range series {
		names = append(names, s.Name)
	}
	return names
}

// sortByShare orders bars ascending by value, ties broken by name so
// equal shares cannot reorder between runs.
func sortByShare(bars []models.ChartSeries) {
	sort.SliceStable(bars, func(i, j int) bool {
		iv, jv := *bars[i].Points[0].Value, *bars[j].Points[0].Value
		if iv != jv {
			return iv < jv
		}
		return bars[i].Name < bars[j].Name
	})
}
