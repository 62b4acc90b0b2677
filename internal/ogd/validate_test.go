package ogd_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/ogd"
)

func TestFindAnomaliesTrolleybusBeforeIntroduction(t *testing.T) {
	zurich := time.FixedZone("CET", 3600)
	records := []models.CountRecord{
		{Timestamp: time.Date(2020, 1, 15, 8, 0, 0, 0, zurich), ClassID: 11, Lane: "1", Count: 3},
		{Timestamp: time.Date(2020, 3, 1, 8, 0, 0, 0, zurich), ClassID: 11, Lane: "1", Count: 3},
		{Timestamp: time.Date(2020, 1, 15, 8, 0, 0, 0, zurich), ClassID: 10, Lane: "1", Count: 5},
	}

	anomalies := ogd.FindAnomalies(records)

	require.Len(t, anomalies, 1)
	assert.Equal(t, 11, anomalies[0].ClassID)
	assert.Equal(t, 15, anomalies[0].Timestamp.Day())
	assert.Contains(t, anomalies[0].Reason, "2020-02-19")
}

func TestFindAnomaliesIntroductionDayIsValid(t *testing.T) {
	// Feed timestamps carry +01:00; the introduction day itself must not
	// be flagged even though midnight local is before midnight UTC.
	zurich := time.FixedZone("CET", 3600)
	records := []models.CountRecord{
		{Timestamp: time.Date(2020, 2, 19, 0, 0, 0, 0, zurich), ClassID: 11, Count: 1},
	}

	assert.Empty(t, ogd.FindAnomalies(records))
}

func TestFindAnomaliesCleanInput(t *testing.T) {
	records := []models.CountRecord{
		{Timestamp: time.Date(2023, 1, 2, 8, 0, 0, 0, time.UTC), ClassID: 2, Count: 100},
	}

	assert.Nil(t, ogd.FindAnomalies(records))
}
