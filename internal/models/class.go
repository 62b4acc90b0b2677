package models

import "time"

// ClassUnknownLabel is the label applied to class IDs outside the
// published 0-11 range.
const ClassUnknownLabel = "Unbekannt"

// Class11ValidFrom is the first counting interval for which class 11
// (Trolleybus) appears in the feed. Earlier occurrences are data
// integrity anomalies.
var Class11ValidFrom = time.Date(2020, 2, 19, 0, 0, 0, 0, time.UTC)

// classLabels maps the 12 published vehicle class IDs to their OGD labels.
var classLabels = map[int]string{
	0:  "Unbekannt",
	1:  "Motorrad",
	2:  "Personenwagen",
	3:  "Personenwagen mit Anhänger",
	4:  "Lieferwagen",
	5:  "Lieferwagen mit Anhänger",
	6:  "Lieferwagen mit Auflieger",
	7:  "Lastwagen",
	8:  "Lastenzug",
	9:  "Sattelzug",
	10: "Bus",
	11: "Trolleybus",
}

// classCategories rolls the detailed classes up into the categories
// shown in the dashboard's category views.
var classCategories = map[string]string{
	"Motorrad":                   "Motorrad",
	"Personenwagen":              "Personenwagen",
	"Personenwagen mit Anhänger": "Personenwagen",
	"Lieferwagen":                "Lieferwagen",
	"Lieferwagen mit Anhänger":   "Lieferwagen",
	"Lieferwagen mit Auflieger":  "Lieferwagen",
	"Lastwagen":                  "Lastwagen",
	"Sattelzug":                  "Lastwagen",
	"Lastenzug":                  "Lastwagen",
	"Bus":                        "Bus/Trolleybus",
	"Trolleybus":                 "Bus/Trolleybus",
	"Unbekannt":                  "Unbekannt",
}

// VehicleClassInfo is the metadata endpoint's view of one vehicle class.
type VehicleClassInfo struct {
	ID       int    `json:"id"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

// ClassIDs lists the valid class IDs in ascending order.
func ClassIDs() []int {
	ids := make([]int, 0, len(classLabels))
	for i := 0; i <= 11; i++ {
		ids = append(ids, i)
	}
	return ids
}

// ClassLabel returns the label for a class ID. IDs outside 0-11 label
// as "Unbekannt" rather than failing.
func ClassLabel(id int) string {
	if label, ok := classLabels[id]; ok {
		return label
	}
	return ClassUnknownLabel
}

// ClassCategory returns the rolled-up category for a class ID.
func ClassCategory(id int) string {
	if cat, ok := classCategories[ClassLabel(id)]; ok {
		return cat
	}
	return ClassUnknownLabel
}

// ClassValidAt reports whether a class ID may legally appear in a record
// with the given timestamp. The comparison is on the local calendar date
// so that the cutoff does not shift with the feed's UTC offset.
func ClassValidAt(id int, t time.Time) bool {
	if id != 11 {
		return true
	}
	y, m, d := t.Date()
	cy, cm, cd := Class11ValidFrom.Date()
	local := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	cutoff := time.Date(cy, cm, cd, 0, 0, 0, 0, time.UTC)
	return !local.Before(cutoff)
}
