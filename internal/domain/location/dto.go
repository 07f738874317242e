package location

import (
	"strings"

	"github.com/geoattend/attendance-backend-go/internal/pkg/geo"
	"github.com/geoattend/attendance-backend-go/internal/pkg/validator"
)

type CreateLocationRequest struct {
	Name               string           `json:"name"`
	Code               string           `json:"code"`
	Latitude           float64          `json:"latitude"`
	Longitude          float64          `json:"longitude"`
	RadiusMeters       float64          `json:"radius_meters"`
	Boundary           []geo.Coordinate `json:"boundary,omitempty"`
	Address            *string          `json:"address,omitempty"`
	AllowedDepartments []string         `json:"allowed_departments,omitempty"`
	Timezone           string           `json:"timezone,omitempty"`
}

func (r *CreateLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	if !validator.IsValidLocationCode(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must be 2-5 uppercase letters",
		})
	}

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be greater than 0",
		})
	}

	if len(r.Boundary) > 0 && len(r.Boundary) < 3 {
		errs = append(errs, validator.ValidationError{
			Field:   "boundary",
			Message: "boundary needs at least 3 vertices",
		})
	}
	for _, v := range r.Boundary {
		if !validator.IsValidLatitude(v.Latitude) || !validator.IsValidLongitude(v.Longitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "boundary",
				Message: "boundary vertices must be valid coordinates",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLocationRequest struct {
	ID                 string           `json:"-"`
	Name               *string          `json:"name,omitempty"`
	Latitude           *float64         `json:"latitude,omitempty"`
	Longitude          *float64         `json:"longitude,omitempty"`
	RadiusMeters       *float64         `json:"radius_meters,omitempty"`
	Boundary           []geo.Coordinate `json:"boundary,omitempty"`
	ClearBoundary      bool             `json:"clear_boundary,omitempty"`
	Address            *string          `json:"address,omitempty"`
	AllowedDepartments []string         `json:"allowed_departments,omitempty"`
	Timezone           *string          `json:"timezone,omitempty"`
	IsActive           *bool            `json:"is_active,omitempty"`
}

func (r *UpdateLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if r.RadiusMeters != nil && *r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be greater than 0",
		})
	}
	if len(r.Boundary) > 0 && len(r.Boundary) < 3 {
		errs = append(errs, validator.ValidationError{
			Field:   "boundary",
			Message: "boundary needs at least 3 vertices",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LocationResponse struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Code               string           `json:"code"`
	Latitude           float64          `json:"latitude"`
	Longitude          float64          `json:"longitude"`
	RadiusMeters       float64          `json:"radius_meters"`
	Boundary           []geo.Coordinate `json:"boundary,omitempty"`
	Address            *string          `json:"address,omitempty"`
	AllowedDepartments []string         `json:"allowed_departments"`
	Timezone           string           `json:"timezone"`
	IsActive           bool             `json:"is_active"`
	CreatedAt          string           `json:"created_at"`
	UpdatedAt          string           `json:"updated_at"`
}
