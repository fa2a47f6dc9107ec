package geo

import (
	"math"

	"github.com/lintang-b-s/nogivan/pkg/util"
)

const earthRadiusM = 6371e3

func degreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

// CalculateGreatCircleDistance returns the haversine distance between two coordinates in meters,
// truncated to an integer. symmetric and never negative.
func CalculateGreatCircleDistance(latOne, lonOne, latTwo, lonTwo float64) int64 {
	d := greatCircleMeters(latOne, lonOne, latTwo, lonTwo)

	util.AssertPanic(d >= 0, "invalid distance %f between (%f,%f) and (%f,%f)", d, latOne, lonOne, latTwo, lonTwo)

	return int64(d)
}

func greatCircleMeters(latOne, lonOne, latTwo, lonTwo float64) float64 {
	phiOne := degreeToRadians(latOne)
	phiTwo := degreeToRadians(latTwo)
	deltaPhi := degreeToRadians(latTwo - latOne)
	deltaLambda := degreeToRadians(lonTwo - lonOne)

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phiOne)*math.Cos(phiTwo)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// ChordLength returns the straight-line distance through the unit sphere between two points
// that are meters apart on the surface.
func ChordLength(meters float64) float64 {
	return 2 * math.Sin(meters/(2*earthRadiusM))
}

// UnitVector maps a coordinate to a point on the unit sphere.
// euclidean distance between unit vectors grows monotonically with great-circle distance.
func UnitVector(lat, lon float64) [3]float64 {
	phi := degreeToRadians(lat)
	lambda := degreeToRadians(lon)
	return [3]float64{
		math.Cos(phi) * math.Cos(lambda),
		math.Cos(phi) * math.Sin(lambda),
		math.Sin(phi),
	}
}
