package ogd

import (
	"fmt"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
)

// FindAnomalies scans freshly loaded records for data-integrity
// violations. Anomalous records are reported, never silently dropped:
// the quality view surfaces them to the operator.
func FindAnomalies(records []models.CountRecord) []models.Anomaly {
	var anomalies []models.Anomaly
	for _, r := range records {
		if !models.ClassValidAt(r.ClassID, r.Timestamp) {
			anomalies = append(anomalies, models.Anomaly{
				Timestamp: r.Timestamp,
				ClassID:   r.ClassID,
				Lane:      r.Lane,
				Reason:    fmt.Sprintf("class %d before its introduction on %s", r.ClassID, models.Class11ValidFrom.Format("2006-01-02")),
			})
		}
	}
	return anomalies
}
