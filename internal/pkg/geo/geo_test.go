package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine_SamePoint(t *testing.T) {
	p := Coordinate{Latitude: 12.9716, Longitude: 77.5946}
	assert.Equal(t, 0.0, Haversine(p, p))
}

func TestHaversine_KnownDistances(t *testing.T) {
	// One thousandth of a degree of latitude is roughly 111.2m on a
	// 6371km sphere.
	a := Coordinate{Latitude: 28.5562, Longitude: 77.1000}
	b := Coordinate{Latitude: 28.5572, Longitude: 77.1000}
	assert.InDelta(t, 111.2, Haversine(a, b), 0.5)

	// Delhi IGI to Mumbai CSMIA is about 1150km.
	igi := Coordinate{Latitude: 28.5562, Longitude: 77.1000}
	bom := Coordinate{Latitude: 19.0896, Longitude: 72.8656}
	assert.InDelta(t, 1138000, Haversine(igi, bom), 10000)
}

func TestHaversine_Symmetric(t *testing.T) {
	a := Coordinate{Latitude: 13.1986, Longitude: 77.7066}
	b := Coordinate{Latitude: 12.9500, Longitude: 77.6680}
	assert.InDelta(t, Haversine(a, b), Haversine(b, a), 1e-9)
}

func TestHaversine_NaNPropagates(t *testing.T) {
	a := Coordinate{Latitude: math.NaN(), Longitude: 77.0}
	b := Coordinate{Latitude: 12.0, Longitude: 77.0}
	assert.True(t, math.IsNaN(Haversine(a, b)))
}

func squareBoundary() []Coordinate {
	return []Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 10},
		{Latitude: 10, Longitude: 10},
		{Latitude: 10, Longitude: 0},
	}
}

func TestPointInPolygon_Inside(t *testing.T) {
	sq := squareBoundary()
	assert.True(t, PointInPolygon(Coordinate{Latitude: 5, Longitude: 5}, sq))
	assert.True(t, PointInPolygon(Coordinate{Latitude: 9.9, Longitude: 0.1}, sq))
}

func TestPointInPolygon_Outside(t *testing.T) {
	sq := squareBoundary()
	assert.False(t, PointInPolygon(Coordinate{Latitude: -5, Longitude: 5}, sq))
	assert.False(t, PointInPolygon(Coordinate{Latitude: 5, Longitude: 15}, sq))
	// Far outside the bounding box.
	assert.False(t, PointInPolygon(Coordinate{Latitude: 80, Longitude: -170}, sq))
}

func TestPointInPolygon_ConcavePolygon(t *testing.T) {
	// An L-shape: the notch at the top right is outside.
	l := []Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 10},
		{Latitude: 5, Longitude: 10},
		{Latitude: 5, Longitude: 5},
		{Latitude: 10, Longitude: 5},
		{Latitude: 10, Longitude: 0},
	}
	assert.True(t, PointInPolygon(Coordinate{Latitude: 2, Longitude: 8}, l))
	assert.False(t, PointInPolygon(Coordinate{Latitude: 8, Longitude: 8}, l))
}

func TestPointInPolygon_DegenerateBoundary(t *testing.T) {
	p := Coordinate{Latitude: 5, Longitude: 5}
	assert.False(t, PointInPolygon(p, nil))
	assert.False(t, PointInPolygon(p, []Coordinate{{Latitude: 0, Longitude: 0}}))
	assert.False(t, PointInPolygon(p, []Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 10, Longitude: 10},
	}))
}
