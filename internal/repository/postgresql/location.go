package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/geoattend/attendance-backend-go/internal/domain/location"
	"github.com/geoattend/attendance-backend-go/internal/pkg/database"
	"github.com/geoattend/attendance-backend-go/internal/pkg/geo"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type locationRepository struct {
	db *database.DB
}

func NewLocationRepository(db *database.DB) location.LocationRepository {
	return &locationRepository{db: db}
}

const locationColumns = `
	id, name, code, center_latitude, center_longitude, radius_meters,
	boundary, address, allowed_departments, timezone, is_active,
	created_at, updated_at`

// boundary is stored as JSONB; a NULL column scans as an empty polygon.
func scanLocation(row pgx.Row) (location.Location, error) {
	var loc location.Location
	var boundaryJSON []byte

	err := row.Scan(
		&loc.ID, &loc.Name, &loc.Code, &loc.Center.Latitude, &loc.Center.Longitude, &loc.RadiusMeters,
		&boundaryJSON, &loc.Address, &loc.AllowedDepartments, &loc.Timezone, &loc.IsActive,
		&loc.CreatedAt, &loc.UpdatedAt,
	)
	if err != nil {
		return location.Location{}, err
	}

	if len(boundaryJSON) > 0 {
		if err := json.Unmarshal(boundaryJSON, &loc.Boundary); err != nil {
			return location.Location{}, fmt.Errorf("failed to decode location boundary: %w", err)
		}
	}

	return loc, nil
}

func encodeBoundary(boundary []geo.Coordinate) (interface{}, error) {
	if len(boundary) == 0 {
		return nil, nil
	}
	encoded, err := json.Marshal(boundary)
	if err != nil {
		return nil, fmt.Errorf("failed to encode location boundary: %w", err)
	}
	return encoded, nil
}

// Create implements location.LocationRepository.
func (l *locationRepository) Create(ctx context.Context, loc location.Location) (location.Location, error) {
	q := GetQuerier(ctx, l.db)

	boundary, err := encodeBoundary(loc.Boundary)
	if err != nil {
		return location.Location{}, err
	}

	query := `
		INSERT INTO locations (
			name, code, center_latitude, center_longitude, radius_meters,
			boundary, address, allowed_departments, timezone, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + locationColumns + `
	`

	created, err := scanLocation(q.QueryRow(ctx, query,
		loc.Name, loc.Code, loc.Center.Latitude, loc.Center.Longitude, loc.RadiusMeters,
		boundary, loc.Address, loc.AllowedDepartments, loc.Timezone, loc.IsActive,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on code
			return location.Location{}, location.ErrLocationCodeExists
		}
		return location.Location{}, fmt.Errorf("failed to create location: %w", err)
	}

	return created, nil
}

// GetByID implements location.LocationRepository.
func (l *locationRepository) GetByID(ctx context.Context, id string) (location.Location, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + locationColumns + `
		FROM locations
		WHERE id = $1
	`

	loc, err := scanLocation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{}, fmt.Errorf("failed to get location by id: %w", err)
	}

	return loc, nil
}

// GetByCode implements location.LocationRepository.
func (l *locationRepository) GetByCode(ctx context.Context, code string) (location.Location, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + locationColumns + `
		FROM locations
		WHERE code = $1
	`

	loc, err := scanLocation(q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{}, fmt.Errorf("failed to get location by code: %w", err)
	}

	return loc, nil
}

// List implements location.LocationRepository.
func (l *locationRepository) List(ctx context.Context, includeInactive bool) ([]location.Location, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + locationColumns + `
		FROM locations
	`
	if !includeInactive {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY name ASC"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []location.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return locations, nil
}

// Update implements location.LocationRepository.
func (l *locationRepository) Update(ctx context.Context, loc location.Location) error {
	q := GetQuerier(ctx, l.db)

	boundary, err := encodeBoundary(loc.Boundary)
	if err != nil {
		return err
	}

	query := `
		UPDATE locations
		SET name = $1, code = $2, center_latitude = $3, center_longitude = $4, radius_meters = $5,
			boundary = $6, address = $7, allowed_departments = $8, timezone = $9, is_active = $10,
			updated_at = NOW()
		WHERE id = $11
	`

	tag, err := q.Exec(ctx, query,
		loc.Name, loc.Code, loc.Center.Latitude, loc.Center.Longitude, loc.RadiusMeters,
		boundary, loc.Address, loc.AllowedDepartments, loc.Timezone, loc.IsActive,
		loc.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return location.ErrLocationCodeExists
		}
		return fmt.Errorf("failed to update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}

// Delete implements location.LocationRepository. Soft delete: the row stays
// for historical attendance joins, it just stops accepting check-ins.
func (l *locationRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE locations
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}
