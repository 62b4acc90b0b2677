package ogd_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/ogd"
)

const csvHeader = "Datum,Standort,Richtung,Fahrstreifen,Klasse.ID,Klasse.Text,Anzahl,Status\n"

func TestParseCSV(t *testing.T) {
	data := csvHeader +
		"2023-01-02T08:00+0100,Zch_Rosengartenbruecke,Richtung Bucheggplatz,1,2,Personenwagen,120,bereinigt\n" +
		"2023-01-02T09:00+0100,Zch_Rosengartenbruecke,Richtung Hardbrücke,3,4,Lieferwagen,15,provisorisch\n"

	records, err := ogd.ParseCSV(strings.NewReader(data))

	require.NoError(t, err)
	require.Len(t, records, 2)

	r := records[0]
	assert.Equal(t, "Zch_Rosengartenbruecke", r.StationID)
	assert.Equal(t, "Richtung Bucheggplatz", r.Direction)
	assert.Equal(t, "1", r.Lane)
	assert.Equal(t, 2, r.ClassID)
	assert.Equal(t, 120, r.Count)
	assert.Equal(t, models.StatusFinalized, r.Status)
	assert.Equal(t, 8, r.Timestamp.Hour())
	_, offset := r.Timestamp.Zone()
	assert.Equal(t, 3600, offset)

	assert.Equal(t, models.StatusProvisional, records[1].Status)
}

func TestParseCSVStripsBOM(t *testing.T) {
	data := "\ufeff" + csvHeader +
		"2023-01-02T08:00+0100,Zch_Rosengartenbruecke,Richtung Bucheggplatz,1,2,Personenwagen,120,bereinigt\n"

	records, err := ogd.ParseCSV(strings.NewReader(data))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Timestamp.IsZero())
}

func TestParseCSVDropsRowsWithoutCount(t *testing.T) {
	data := csvHeader +
		"2023-01-02T08:00+0100,Zch_Rosengartenbruecke,Richtung Bucheggplatz,1,2,Personenwagen,,provisorisch\n" +
		"2023-01-02T09:00+0100,Zch_Rosengartenbruecke,Richtung Bucheggplatz,1,2,Personenwagen,42,provisorisch\n"

	records, err := ogd.ParseCSV(strings.NewReader(data))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 42, records[0].Count)
}

func TestParseCSVFractionalCountTruncates(t *testing.T) {
	data := csvHeader +
		"2023-01-02T08:00+0100,Zch_Rosengartenbruecke,Richtung Bucheggplatz,1,2,Personenwagen,12.7,provisorisch\n"

	records, err := ogd.ParseCSV(strings.NewReader(data))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 12, records[0].Count)
}

func TestParseCSVRejectsNegativeCount(t *testing.T) {
	data := csvHeader +
		"2023-01-02T08:00+0100,Zch_Rosengartenbruecke,Richtung Bucheggplatz,1,2,Personenwagen,-5,provisorisch\n"

	_, err := ogd.ParseCSV(strings.NewReader(data))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative count")
}

func TestParseCSVRejectsBadTimestamp(t *testing.T) {
	data := csvHeader +
		"02.01.2023 08:00,Zch_Rosengartenbruecke,Richtung Bucheggplatz,1,2,Personenwagen,5,provisorisch\n"

	_, err := ogd.ParseCSV(strings.NewReader(data))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timestamp")
}

func TestParseCSVMissingRequiredColumn(t *testing.T) {
	data := "Datum,Standort,Anzahl\n2023-01-02T08:00+0100,x,5\n"

	_, err := ogd.ParseCSV(strings.NewReader(data))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Richtung")
}

func TestParseCSVAcceptsRFC3339Timestamps(t *testing.T) {
	data := csvHeader +
		"2023-01-02T08:00:00+01:00,Zch_Rosengartenbruecke,Richtung Bucheggplatz,1,2,Personenwagen,5,bereinigt\n"

	records, err := ogd.ParseCSV(strings.NewReader(data))

	require.NoError(t, err)
	require.Len(t, records, 1)
	expected := time.Date(2023, 1, 2, 8, 0, 0, 0, time.FixedZone("", 3600))
	assert.True(t, records[0].Timestamp.Equal(expected))
}
