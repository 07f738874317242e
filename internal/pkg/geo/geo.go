package geo

import "math"

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Haversine returns the great-circle distance between a and b in meters.
// Inputs are assumed to be within valid ranges; NaN inputs propagate.
func Haversine(a, b Coordinate) float64 {
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	lat1Rad := a.Latitude * (math.Pi / 180.0)
	lat2Rad := b.Latitude * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// PointInPolygon reports whether p lies inside the closed polygon formed by
// boundary, using ray casting. The last vertex connects back to the first.
// A boundary with fewer than 3 vertices is not a polygon; it returns false
// rather than panicking. Points exactly on an edge may be classified either
// way; that ambiguity is inherent to ray casting and callers must not rely
// on edge behavior.
func PointInPolygon(p Coordinate, boundary []Coordinate) bool {
	if len(boundary) < 3 {
		return false
	}

	inside := false
	j := len(boundary) - 1

	for i := 0; i < len(boundary); i++ {
		xi, yi := boundary[i].Longitude, boundary[i].Latitude
		xj, yj := boundary[j].Longitude, boundary[j].Latitude

		intersect := ((yi > p.Latitude) != (yj > p.Latitude)) &&
			(p.Longitude < (xj-xi)*(p.Latitude-yi)/(yj-yi)+xi)
		if intersect {
			inside = !inside
		}
		j = i
	}

	return inside
}
