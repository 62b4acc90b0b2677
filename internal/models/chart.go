package models

// ChartKind identifies the renderer-side chart type.
type ChartKind string

const (
	ChartLine       ChartKind = "line"
	ChartBar        ChartKind = "bar"
	ChartGroupedBar ChartKind = "grouped_bar"
	ChartHBar       ChartKind = "hbar"
	ChartDonut      ChartKind = "donut"
	ChartHeatmap    ChartKind = "heatmap"
)

// Axis describes one chart axis. Categories is set for categorical axes
// and fixes the render order.
type Axis struct {
	Title      string   `json:"title,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// ChartSeries is one named, colored data series of a chart.
type ChartSeries struct {
	Name   string        `json:"name"`
	Color  string        `json:"color,omitempty"`
	Points []SeriesPoint `json:"points"`
}

// ChartSpec is a declarative, framework-free chart description. It is a
// plain value: building it twice from the same aggregates yields
// byte-identical JSON.
type ChartSpec struct {
	Kind       ChartKind     `json:"kind"`
	Title      string        `json:"title,omitempty"`
	XAxis      Axis          `json:"x_axis"`
	YAxis      Axis          `json:"y_axis"`
	Series     []ChartSeries `json:"series,omitempty"`
	Matrix     *Matrix       `json:"matrix,omitempty"`      // heatmap payload
	ColorScale string        `json:"color_scale,omitempty"` // heatmap continuous scale
}
