package geofence

import (
	"testing"

	"github.com/geoattend/attendance-backend-go/internal/domain/location"
	"github.com/geoattend/attendance-backend-go/internal/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func circularLocation(radius float64) location.Location {
	return location.Location{
		ID:           "loc-1",
		Name:         "Terminal 3",
		Code:         "DEL",
		Center:       geo.Coordinate{Latitude: 28.5562, Longitude: 77.1000},
		RadiusMeters: radius,
	}
}

func TestEvaluate_CircleInside(t *testing.T) {
	loc := circularLocation(200)

	// ~111m north of center.
	eval, err := Evaluate(geo.Coordinate{Latitude: 28.5572, Longitude: 77.1000}, loc)
	require.NoError(t, err)
	assert.True(t, eval.Inside)
	require.NotNil(t, eval.DistanceMeters)
	assert.InDelta(t, 111.2, *eval.DistanceMeters, 0.5)
}

func TestEvaluate_CircleOutside(t *testing.T) {
	loc := circularLocation(100)

	eval, err := Evaluate(geo.Coordinate{Latitude: 28.5572, Longitude: 77.1000}, loc)
	require.NoError(t, err)
	assert.False(t, eval.Inside)
	require.NotNil(t, eval.DistanceMeters)
	assert.Greater(t, *eval.DistanceMeters, 100.0)
}

// evaluate(p, L).inside must agree with the raw haversine comparison for
// circular locations.
func TestEvaluate_CircleMatchesHaversine(t *testing.T) {
	loc := circularLocation(150)
	points := []geo.Coordinate{
		{Latitude: 28.5562, Longitude: 77.1000},
		{Latitude: 28.5570, Longitude: 77.1004},
		{Latitude: 28.5600, Longitude: 77.1050},
		{Latitude: 28.5000, Longitude: 77.0000},
	}

	for _, p := range points {
		eval, err := Evaluate(p, loc)
		require.NoError(t, err)
		expected := geo.Haversine(p, loc.Center) <= loc.RadiusMeters
		assert.Equal(t, expected, eval.Inside)
	}
}

func TestEvaluate_PolygonAuthoritativeOverRadius(t *testing.T) {
	loc := circularLocation(1)
	loc.Boundary = []geo.Coordinate{
		{Latitude: 28.50, Longitude: 77.05},
		{Latitude: 28.50, Longitude: 77.15},
		{Latitude: 28.60, Longitude: 77.15},
		{Latitude: 28.60, Longitude: 77.05},
	}

	// Well outside the 1m radius but inside the polygon.
	eval, err := Evaluate(geo.Coordinate{Latitude: 28.55, Longitude: 77.10}, loc)
	require.NoError(t, err)
	assert.True(t, eval.Inside)
	assert.Nil(t, eval.DistanceMeters)
}

func TestEvaluate_PolygonOutside(t *testing.T) {
	loc := circularLocation(0)
	loc.Boundary = []geo.Coordinate{
		{Latitude: 28.50, Longitude: 77.05},
		{Latitude: 28.50, Longitude: 77.15},
		{Latitude: 28.60, Longitude: 77.15},
	}

	eval, err := Evaluate(geo.Coordinate{Latitude: 10.0, Longitude: 10.0}, loc)
	require.NoError(t, err)
	assert.False(t, eval.Inside)
	assert.Nil(t, eval.DistanceMeters)
}

func TestEvaluate_DegenerateBoundaryFallsBackToCircle(t *testing.T) {
	loc := circularLocation(200)
	loc.Boundary = []geo.Coordinate{
		{Latitude: 28.55, Longitude: 77.10},
		{Latitude: 28.56, Longitude: 77.11},
	}

	eval, err := Evaluate(loc.Center, loc)
	require.NoError(t, err)
	assert.True(t, eval.Inside)
	require.NotNil(t, eval.DistanceMeters)
}

func TestEvaluate_Misconfigured(t *testing.T) {
	loc := circularLocation(0)

	_, err := Evaluate(geo.Coordinate{Latitude: 28.55, Longitude: 77.10}, loc)
	assert.ErrorIs(t, err, location.ErrLocationMisconfigured)
}
