package chart

// Fixed color encodings for the categorical dimensions. These mirror
// the dashboard's established palette; determinism of the chart specs
// depends on them never being derived at runtime.

// ClassColors maps vehicle class labels to their chart color.
var ClassColors = map[string]string{
	"Personenwagen":              "#3498db",
	"Lieferwagen":                "#2ecc71",
	"Motorrad":                   "#e74c3c",
	"Lastwagen":                  "#9b59b6",
	"Bus":                        "#f39c12",
	"Trolleybus":                 "#1abc9c",
	"Sattelzug":                  "#e67e22",
	"Lastenzug":                  "#8e44ad",
	"Personenwagen mit Anhänger": "#5dade2",
	"Lieferwagen mit Anhänger":   "#58d68d",
	"Lieferwagen mit Auflieger":  "#27ae60",
	"Unbekannt":                  "#95a5a6",
}

// CategoryColors maps rolled-up vehicle categories to their color.
var CategoryColors = map[string]string{
	"Personenwagen":  "#3498db",
	"Lieferwagen":    "#2ecc71",
	"Motorrad":       "#e74c3c",
	"Lastwagen":      "#9b59b6",
	"Bus/Trolleybus": "#f39c12",
	"Unbekannt":      "#95a5a6",
}

// DirectionColors is the two-direction palette, applied in series order.
var DirectionColors = []string{"#3498db", "#e74c3c"}

// DefaultSeriesColor is used for dimensions without a fixed encoding.
const DefaultSeriesColor = "#2c3e50"

// HeatmapScale is the continuous color scale of the pattern heatmap.
const HeatmapScale = "YlOrRd"

// colorFor looks up a categorical color with a stable fallback.
func colorFor(colors map[string]string, name string) string {
	if c, ok := colors[name]; ok {
		return c
	}
	return DefaultSeriesColor
}
