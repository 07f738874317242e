package location

import (
	"context"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/location"
	"github.com/geoattend/attendance-backend-go/internal/pkg/geo"
)

type LocationServiceImpl struct {
	location.LocationRepository
}

func NewLocationService(locationRepo location.LocationRepository) *LocationServiceImpl {
	return &LocationServiceImpl{LocationRepository: locationRepo}
}

// Create implements location.LocationService.
func (l *LocationServiceImpl) Create(ctx context.Context, req location.CreateLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		timezone = "UTC"
	}

	loc := location.Location{
		Name:               req.Name,
		Code:               req.Code,
		Center:             geo.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude},
		RadiusMeters:       req.RadiusMeters,
		Boundary:           req.Boundary,
		Address:            req.Address,
		AllowedDepartments: req.AllowedDepartments,
		Timezone:           timezone,
		IsActive:           true,
	}

	created, err := l.LocationRepository.Create(ctx, loc)
	if err != nil {
		return location.LocationResponse{}, err
	}

	return mapLocationToResponse(created), nil
}

// Get implements location.LocationService.
func (l *LocationServiceImpl) Get(ctx context.Context, id string) (location.LocationResponse, error) {
	loc, err := l.LocationRepository.GetByID(ctx, id)
	if err != nil {
		return location.LocationResponse{}, err
	}

	return mapLocationToResponse(loc), nil
}

// List implements location.LocationService.
func (l *LocationServiceImpl) List(ctx context.Context, includeInactive bool) ([]location.LocationResponse, error) {
	locations, err := l.LocationRepository.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}

	responses := make([]location.LocationResponse, 0, len(locations))
	for _, loc := range locations {
		responses = append(responses, mapLocationToResponse(loc))
	}

	return responses, nil
}

// Update implements location.LocationService. Partial update: nil fields
// keep their current value. ClearBoundary drops the polygon so the circle
// takes over.
func (l *LocationServiceImpl) Update(ctx context.Context, req location.UpdateLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	loc, err := l.LocationRepository.GetByID(ctx, req.ID)
	if err != nil {
		return location.LocationResponse{}, err
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Latitude != nil {
		loc.Center.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		loc.Center.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		loc.RadiusMeters = *req.RadiusMeters
	}
	if req.ClearBoundary {
		loc.Boundary = nil
	} else if len(req.Boundary) > 0 {
		loc.Boundary = req.Boundary
	}
	if req.Address != nil {
		loc.Address = req.Address
	}
	if req.AllowedDepartments != nil {
		loc.AllowedDepartments = req.AllowedDepartments
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err == nil {
			loc.Timezone = *req.Timezone
		}
	}
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}

	if err := l.LocationRepository.Update(ctx, loc); err != nil {
		return location.LocationResponse{}, err
	}

	return mapLocationToResponse(loc), nil
}

// Delete implements location.LocationService.
func (l *LocationServiceImpl) Delete(ctx context.Context, id string) error {
	return l.LocationRepository.Delete(ctx, id)
}

func mapLocationToResponse(loc location.Location) location.LocationResponse {
	departments := loc.AllowedDepartments
	if departments == nil {
		departments = []string{}
	}

	return location.LocationResponse{
		ID:                 loc.ID,
		Name:               loc.Name,
		Code:               loc.Code,
		Latitude:           loc.Center.Latitude,
		Longitude:          loc.Center.Longitude,
		RadiusMeters:       loc.RadiusMeters,
		Boundary:           loc.Boundary,
		Address:            loc.Address,
		AllowedDepartments: departments,
		Timezone:           loc.Timezone,
		IsActive:           loc.IsActive,
		CreatedAt:          loc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          loc.UpdatedAt.Format(time.RFC3339),
	}
}
