package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrAlreadyCheckedIn   = errors.New("you have already checked in today")
	ErrNotCheckedIn       = errors.New("you have not checked in today")
	ErrAlreadyCheckedOut  = errors.New("you have already checked out today")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// GeofenceViolationError is returned when a check-in or check-out coordinate
// falls outside the allowed area. DistanceMeters is nil when a polygon
// boundary decided containment, since ray casting reports no margin.
type GeofenceViolationError struct {
	LocationName   string
	DistanceMeters *float64
	RadiusMeters   float64
}

func (e *GeofenceViolationError) Error() string {
	if e.DistanceMeters != nil {
		return fmt.Sprintf(
			"you are outside the allowed area for %s: %.0fm away, allowed radius is %.0fm",
			e.LocationName, *e.DistanceMeters, e.RadiusMeters,
		)
	}
	return fmt.Sprintf("you are outside the allowed boundary for %s", e.LocationName)
}
