package models

// BucketMode is the calendar or categorical dimension used to group
// records for aggregation.
type BucketMode string

const (
	BucketDay       BucketMode = "day"
	BucketWeek      BucketMode = "week"
	BucketMonth     BucketMode = "month"
	BucketWeekday   BucketMode = "weekday"
	BucketHour      BucketMode = "hour"
	BucketClass     BucketMode = "class"
	BucketCategory  BucketMode = "category"
	BucketDirection BucketMode = "direction"
	BucketLane      BucketMode = "lane"
	BucketYear      BucketMode = "year"
)

// SeriesPoint is one (bucket key, metric) pair. Value is nil when the
// bucket lies inside the requested range but no interval was measured,
// so charts can render a gap instead of a false zero.
type SeriesPoint struct {
	Key   string   `json:"key"`
	Value *float64 `json:"value"`
}

// AggregatedSeries is an ordered sequence of bucket values. Point order
// follows chronological or fixed categorical ordering, never map order.
type AggregatedSeries struct {
	Bucket BucketMode    `json:"bucket"`
	Name   string        `json:"name,omitempty"` // group label for grouped series
	Points []SeriesPoint `json:"points"`
}

// Total sums all non-nil point values.
func (s AggregatedSeries) Total() float64 {
	var sum float64
	for _, p := range s.Points {
		if p.Value != nil {
			sum += *p.Value
		}
	}
	return sum
}

// Matrix is a 2D cross-tabulation, row-major. For the weekday x hour
// pattern view rows are Monday..Sunday and columns 00..23; cells with
// no measured interval hold an explicit zero.
type Matrix struct {
	RowLabels []string    `json:"row_labels"`
	ColLabels []string    `json:"col_labels"`
	Values    [][]float64 `json:"values"`
}

// GrandTotal sums every cell of the matrix.
func (m Matrix) GrandTotal() float64 {
	var sum float64
	for _, row := range m.Values {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

// Float64Ptr returns a pointer to v, for building nullable series points.
func Float64Ptr(v float64) *float64 { return &v }
