package geofence

import (
	"github.com/geoattend/attendance-backend-go/internal/domain/location"
	"github.com/geoattend/attendance-backend-go/internal/pkg/geo"
)

// Evaluation is the outcome of testing one coordinate against one location.
type Evaluation struct {
	Inside bool

	// DistanceMeters is the distance to the location center for the
	// circular case. It is nil when the polygon boundary decided
	// containment: ray casting yields no margin.
	DistanceMeters *float64
}

// Evaluate decides whether c falls inside loc's geofence. A usable polygon
// boundary (>= 3 vertices) is authoritative over the circular radius. A
// location with neither a usable boundary nor a positive radius fails with
// ErrLocationMisconfigured; it is never silently treated as outside.
func Evaluate(c geo.Coordinate, loc location.Location) (Evaluation, error) {
	if loc.HasBoundary() {
		return Evaluation{Inside: geo.PointInPolygon(c, loc.Boundary)}, nil
	}

	if loc.RadiusMeters <= 0 {
		return Evaluation{}, location.ErrLocationMisconfigured
	}

	distance := geo.Haversine(c, loc.Center)
	return Evaluation{
		Inside:         distance <= loc.RadiusMeters,
		DistanceMeters: &distance,
	}, nil
}
