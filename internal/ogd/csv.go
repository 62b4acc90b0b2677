package ogd

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
)

// Timestamp layouts seen in the feed, e.g. "2025-01-01T00:00+0100".
var timestampLayouts = []string{
	"2006-01-02T15:04-0700",
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
}

// ParseCSV decodes one yearly OGD count file. Rows without a measured
// count (empty "Anzahl") are dropped: a missing interval must surface
// as a gap downstream, not as a zero.
func ParseCSV(r io.Reader) ([]models.CountRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		// The portal serves UTF-8 with a BOM on the first column.
		cols[strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")] = i
	}
	for _, required := range []string{"Datum", "Richtung", "Anzahl"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("csv header missing column %q", required)
		}
	}

	var records []models.CountRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d: %w", line+1, err)
		}
		line++

		rec, ok, err := parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		if ok {
			records = append(records, rec)
		}
	}

	return records, nil
}

func parseRow(cols map[string]int, row []string) (models.CountRecord, bool, error) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	countStr := field("Anzahl")
	if countStr == "" {
		return models.CountRecord{}, false, nil
	}
	count, err := strconv.Atoi(countStr)
	if err != nil {
		// Provisional files occasionally carry fractional counts.
		f, ferr := strconv.ParseFloat(countStr, 64)
		if ferr != nil {
			return models.CountRecord{}, false, fmt.Errorf("invalid count %q", countStr)
		}
		count = int(f)
	}
	if count < 0 {
		return models.CountRecord{}, false, fmt.Errorf("negative count %d", count)
	}

	ts, err := parseTimestamp(field("Datum"))
	if err != nil {
		return models.CountRecord{}, false, err
	}

	classID := 0
	if s := field("Klasse.ID"); s != "" {
		classID, err = strconv.Atoi(s)
		if err != nil {
			return models.CountRecord{}, false, fmt.Errorf("invalid class id %q", s)
		}
	}

	return models.CountRecord{
		Timestamp: ts,
		StationID: field("Standort"),
		Lane:      field("Fahrstreifen"),
		Direction: field("Richtung"),
		ClassID:   classID,
		Count:     count,
		Status:    normalizeStatus(field("Status")),
	}, true, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func normalizeStatus(s string) string {
	switch strings.ToLower(s) {
	case "bereinigt", models.StatusFinalized:
		return models.StatusFinalized
	default:
		return models.StatusProvisional
	}
}
