package geo

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// BoundingRect returns the smallest lat/lng rectangle that contains every coordinate.
func BoundingRect(lats, lons []float64) s2.Rect {
	bounder := s2.NewRectBounder()
	for i := range lats {
		bounder.AddPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(lats[i], lons[i])))
	}
	return bounder.RectBound()
}

// IsCovered reports whether lat,lon lies inside rect grown by marginMeters on every side.
func IsCovered(rect s2.Rect, lat, lon float64, marginMeters float64) bool {
	if rect.IsEmpty() {
		return false
	}
	return rect.DistanceToLatLng(s2.LatLngFromDegrees(lat, lon)) <= s1.Angle(marginMeters/earthRadiusM)
}
