package aggregate

import (
	"fmt"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
)

// WeekdayHourMatrix cross-tabulates summed counts into a 7x24 grid,
// rows Monday..Sunday, columns 00..23. Cells without measured intervals
// hold an explicit zero; the grand total always equals the sum of the
// input counts.
func WeekdayHourMatrix(records []models.CountRecord) (models.Matrix, error) {
	if len(records) == 0 {
		return models.Matrix{}, ErrEmptyInput
	}

	values := make([][]float64, 7)
	for i := range values {
		values[i] = make([]float64, 24)
	}
	for _, r := range records {
		values[r.WeekdayIndex()][r.Timestamp.Hour()] += float64(r.Count)
	}

	cols := make([]string, 24)
	for h := 0; h < 24; h++ {
		cols[h] = fmt.Sprintf("%02d", h)
	}

	return models.Matrix{
		RowLabels: append([]string(nil), models.WeekdayShortNames...),
		ColLabels: cols,
		Values:    values,
	}, nil
}
