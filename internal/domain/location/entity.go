package location

import (
	"time"

	"github.com/geoattend/attendance-backend-go/internal/pkg/geo"
)

// Location is a geofenced site employees check in against. Containment is
// decided by the polygon boundary when one is configured, otherwise by the
// circle (Center, RadiusMeters).
type Location struct {
	ID           string
	Name         string
	Code         string
	Center       geo.Coordinate
	RadiusMeters float64

	// Boundary, when it has at least 3 vertices, is authoritative over the
	// circular radius.
	Boundary []geo.Coordinate

	Address *string

	// AllowedDepartments empty means every department may use this site.
	AllowedDepartments []string

	Timezone  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasBoundary reports whether the polygon boundary is usable for containment.
func (l Location) HasBoundary() bool {
	return len(l.Boundary) >= 3
}

// AllowsDepartment reports whether an employee from the given department may
// check in at this location.
func (l Location) AllowsDepartment(department string) bool {
	if len(l.AllowedDepartments) == 0 {
		return true
	}
	for _, d := range l.AllowedDepartments {
		if d == department {
			return true
		}
	}
	return false
}
