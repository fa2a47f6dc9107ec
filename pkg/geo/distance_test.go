package geo

import (
	"math"
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
)

func TestCalculateGreatCircleDistance(t *testing.T) {
	// one degree of latitude
	d := CalculateGreatCircleDistance(0, 0, 1, 0)
	assert.Equal(t, int64(111194), d)

	assert.Equal(t, int64(0), CalculateGreatCircleDistance(-7.565837, 110.831586, -7.565837, 110.831586))
}

func TestCalculateGreatCircleDistanceSymmetric(t *testing.T) {
	points := [][2]float64{
		{-7.565837, 110.831586},
		{-7.566063, 110.832379},
		{47.667347, -122.120561},
		{0, 179.9},
		{0, -179.9},
	}

	for _, a := range points {
		for _, b := range points {
			assert.Equal(t, CalculateGreatCircleDistance(a[0], a[1], b[0], b[1]),
				CalculateGreatCircleDistance(b[0], b[1], a[0], a[1]))
		}
	}

	// across the antimeridian
	assert.Less(t, CalculateGreatCircleDistance(0, 179.9, 0, -179.9), int64(23000))
}

func TestCalculateGreatCircleDistanceMatchesS2(t *testing.T) {
	lat1, lon1 := 47.615248, -122.320817
	lat2, lon2 := 47.612950, -122.326863

	s2Dist := s2.LatLngFromDegrees(lat1, lon1).Distance(s2.LatLngFromDegrees(lat2, lon2)).Radians() * earthRadiusM

	assert.InDelta(t, s2Dist, float64(CalculateGreatCircleDistance(lat1, lon1, lat2, lon2)), 1.0)
}

func TestChordLengthMonotonic(t *testing.T) {
	a := UnitVector(47.615248, -122.320817)
	b := UnitVector(47.612950, -122.326863)

	chord := math.Sqrt((a[0]-b[0])*(a[0]-b[0]) + (a[1]-b[1])*(a[1]-b[1]) + (a[2]-b[2])*(a[2]-b[2]))
	meters := greatCircleMeters(47.615248, -122.320817, 47.612950, -122.326863)

	assert.InDelta(t, ChordLength(meters), chord, 1e-12)
	assert.Less(t, ChordLength(100), ChordLength(101))
}
