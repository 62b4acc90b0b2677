package models

import "time"

// FilterCriteria represents the user-selected filter state of the
// dashboard. An empty set for any dimension means "all"; a zero Start
// or End leaves that side of the date range open.
type FilterCriteria struct {
	Start      time.Time `json:"start,omitempty"`
	End        time.Time `json:"end,omitempty"` // inclusive calendar day
	Classes    []int     `json:"classes,omitempty"`
	Directions []string  `json:"directions,omitempty"`
	Lanes      []string  `json:"lanes,omitempty"`
	Weekdays   []int     `json:"weekdays,omitempty"` // 0 = Monday .. 6 = Sunday
}

// HasRange reports whether both range bounds are set.
func (c FilterCriteria) HasRange() bool {
	return !c.Start.IsZero() && !c.End.IsZero()
}
