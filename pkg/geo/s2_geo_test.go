package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCovered(t *testing.T) {
	lats := []float64{-7.565837, -7.566063, -7.566406}
	lons := []float64{110.831586, 110.832379, 110.833232}

	rect := BoundingRect(lats, lons)

	assert.True(t, IsCovered(rect, -7.566, 110.832, 0))
	// ~ 110 m south of the box
	assert.False(t, IsCovered(rect, -7.5674, 110.832, 50))
	assert.True(t, IsCovered(rect, -7.5674, 110.832, 500))
}

func TestIsCoveredMargin(t *testing.T) {
	lats := []float64{-7.565837, -7.566063, -7.566406}
	lons := []float64{110.831586, 110.832379, 110.833232}
	rect := BoundingRect(lats, lons)

	// 100 m due south of the lowest node, longitude inside the box
	lat, lon := -7.56730532, 110.832
	assert.InDelta(t, 100.0, greatCircleMeters(-7.566406, lon, lat, lon), 0.01)

	assert.True(t, IsCovered(rect, lat, lon, 100.5))
	assert.False(t, IsCovered(rect, lat, lon, 99.5))

	// ~100 m west of the box
	westLon := 110.830679
	assert.False(t, IsCovered(rect, -7.566, westLon, 50))
	assert.True(t, IsCovered(rect, -7.566, westLon, 150))
}

func TestIsCoveredEmptyRect(t *testing.T) {
	rect := BoundingRect(nil, nil)
	assert.False(t, IsCovered(rect, 0, 0, 1000))
}
