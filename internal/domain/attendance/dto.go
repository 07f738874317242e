package attendance

import (
	"github.com/geoattend/attendance-backend-go/internal/pkg/geo"
	"github.com/geoattend/attendance-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// LocationID overrides the employee's assigned location when set.
	LocationID *string `json:"location_id,omitempty"`

	// Timestamp is the client capture time (RFC3339); server time is used
	// when absent.
	Timestamp *string `json:"timestamp,omitempty"`
}

func validateCoordinate(errs validator.ValidationErrors, lat, lng float64) validator.ValidationErrors {
	if !validator.IsValidLatitude(lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if !validator.IsValidLongitude(lng) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	return errs
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = validateCoordinate(errs, r.Latitude, r.Longitude)

	if r.Timestamp != nil {
		if _, ok := validator.IsValidDateTime(*r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be a valid RFC3339 datetime",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp *string `json:"timestamp,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = validateCoordinate(errs, r.Latitude, r.Longitude)

	if r.Timestamp != nil {
		if _, ok := validator.IsValidDateTime(*r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be a valid RFC3339 datetime",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// GeofenceProbeRequest is the pre-flight check the mobile client runs before
// capturing a check-in photo.
type GeofenceProbeRequest struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	LocationID *string `json:"location_id,omitempty"`
}

func (r *GeofenceProbeRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = validateCoordinate(errs, r.Latitude, r.Longitude)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type GeofenceProbeResponse struct {
	Inside            bool             `json:"inside"`
	DistanceMeters    *float64         `json:"distance_meters,omitempty"`
	FormattedDistance *string          `json:"formatted_distance,omitempty"`
	RadiusMeters      float64          `json:"radius_meters"`
	Location          LocationSnapshot `json:"location"`
}

type LocationSnapshot struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Code   string         `json:"code"`
	Center geo.Coordinate `json:"center"`
}

type UpdateAttendanceRequest struct {
	ID                string   `json:"-"`
	CheckInAt         *string  `json:"check_in_at,omitempty"`
	CheckOutAt        *string  `json:"check_out_at,omitempty"`
	Status            *string  `json:"status,omitempty"`
	CheckInLatitude   *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64 `json:"check_in_longitude,omitempty"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CheckInAt != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckInAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_at",
				Message: "check_in_at must be a valid RFC3339 datetime",
			})
		}
	}
	if r.CheckOutAt != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOutAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_at",
				Message: "check_out_at must be a valid RFC3339 datetime",
			})
		}
	}
	if r.Status != nil && !Status(*r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of pending, present, half-day, absent, leave",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Filter struct {
	Page       int
	Limit      int
	EmployeeID string
	Status     string
	DateFrom   string
	DateTo     string
}

func (f *Filter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type AttendanceResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	EmployeeName      *string  `json:"employee_name,omitempty"`
	Department        *string  `json:"department,omitempty"`
	Date              string   `json:"date"`
	CheckInAt         *string  `json:"check_in_at,omitempty"`
	CheckInLatitude   *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64 `json:"check_in_longitude,omitempty"`
	CheckOutAt        *string  `json:"check_out_at,omitempty"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
	Status            string   `json:"status"`
	DurationHours     *float64 `json:"duration_hours,omitempty"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// StatsResponse summarizes one day across all employees.
type StatsResponse struct {
	Date           string `json:"date"`
	TotalEmployees int64  `json:"total_employees"`
	Present        int64  `json:"present"`
	HalfDay        int64  `json:"half_day"`
	OnLeave        int64  `json:"on_leave"`
	Absent         int64  `json:"absent"`
}
