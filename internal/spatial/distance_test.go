package spatial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/spatial"
)

func TestHaversineDistance(t *testing.T) {
	// Zürich HB to the Rosengartenbrücke, roughly 2.2 km.
	d := spatial.HaversineDistance(47.3779, 8.5403, 47.39399, 8.52427)
	assert.InDelta(t, 2200, d, 300)

	assert.Zero(t, spatial.HaversineDistance(47.3779, 8.5403, 47.3779, 8.5403))
}

func TestBearing(t *testing.T) {
	// Due north along a meridian.
	assert.InDelta(t, 0, spatial.Bearing(47.0, 8.5, 48.0, 8.5), 1e-9)
	// Due east on the equator.
	assert.InDelta(t, 90, spatial.Bearing(0, 8.5, 0, 9.5), 1e-9)
	// HB to the bridge points north-northwest.
	b := spatial.Bearing(47.3779, 8.5403, 47.39399, 8.52427)
	assert.Greater(t, b, 300.0)
	assert.Less(t, b, 340.0)
}
