package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/leave"
	"github.com/geoattend/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveApplicationRepository struct {
	db *database.DB
}

func NewLeaveApplicationRepository(db *database.DB) leave.ApplicationRepository {
	return &leaveApplicationRepository{db: db}
}

const leaveApplicationColumns = `
	l.id, l.employee_id, l.leave_type, l.start_date, l.end_date, l.number_of_days,
	l.reason, l.status, l.applied_at, l.approved_by, l.approved_at,
	l.comments, l.rejection_reason, l.created_at, l.updated_at`

func scanLeaveApplication(row pgx.Row) (leave.Application, error) {
	var app leave.Application
	err := row.Scan(
		&app.ID, &app.EmployeeID, &app.LeaveType, &app.StartDate, &app.EndDate, &app.NumberOfDays,
		&app.Reason, &app.Status, &app.AppliedAt, &app.ApprovedBy, &app.ApprovedAt,
		&app.Comments, &app.RejectionReason, &app.CreatedAt, &app.UpdatedAt,
	)
	return app, err
}

// Create implements leave.ApplicationRepository.
func (l *leaveApplicationRepository) Create(ctx context.Context, app leave.Application) (leave.Application, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_applications (
			employee_id, leave_type, start_date, end_date, number_of_days,
			reason, status, applied_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, employee_id, leave_type, start_date, end_date, number_of_days,
			reason, status, applied_at, approved_by, approved_at,
			comments, rejection_reason, created_at, updated_at
	`

	created, err := scanLeaveApplication(q.QueryRow(ctx, query,
		app.EmployeeID, app.LeaveType, app.StartDate, app.EndDate, app.NumberOfDays,
		app.Reason, app.Status, app.AppliedAt,
	))
	if err != nil {
		return leave.Application{}, fmt.Errorf("failed to create leave application: %w", err)
	}

	return created, nil
}

// GetByID implements leave.ApplicationRepository.
func (l *leaveApplicationRepository) GetByID(ctx context.Context, id string) (leave.Application, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveApplicationColumns + `
		FROM leave_applications l
		WHERE l.id = $1
	`

	app, err := scanLeaveApplication(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Application{}, leave.ErrApplicationNotFound
		}
		return leave.Application{}, fmt.Errorf("failed to get leave application by id: %w", err)
	}

	return app, nil
}

// Update implements leave.ApplicationRepository.
func (l *leaveApplicationRepository) Update(ctx context.Context, app leave.Application) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_applications
		SET status = $1, approved_by = $2, approved_at = $3,
			comments = $4, rejection_reason = $5, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query,
		app.Status, app.ApprovedBy, app.ApprovedAt,
		app.Comments, app.RejectionReason, app.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrApplicationNotFound
	}

	return nil
}

// List implements leave.ApplicationRepository.
func (l *leaveApplicationRepository) List(ctx context.Context, filter leave.Filter) ([]leave.Application, int64, error) {
	q := GetQuerier(ctx, l.db)

	// Build WHERE clause
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND l.employee_id = $%d", argIdx)
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND l.status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.LeaveType != "" {
		baseWhere += fmt.Sprintf(" AND l.leave_type = $%d", argIdx)
		args = append(args, filter.LeaveType)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM leave_applications l WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave applications: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+leaveApplicationColumns+`,
			e.full_name AS employee_name,
			e.department AS employee_department
		FROM leave_applications l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE %s
		ORDER BY l.applied_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave applications: %w", err)
	}
	defer rows.Close()

	var applications []leave.Application
	for rows.Next() {
		var app leave.Application
		err := rows.Scan(
			&app.ID, &app.EmployeeID, &app.LeaveType, &app.StartDate, &app.EndDate, &app.NumberOfDays,
			&app.Reason, &app.Status, &app.AppliedAt, &app.ApprovedBy, &app.ApprovedAt,
			&app.Comments, &app.RejectionReason, &app.CreatedAt, &app.UpdatedAt,
			&app.EmployeeName, &app.Department,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave application: %w", err)
		}
		applications = append(applications, app)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return applications, total, nil
}

// HasOverlapping implements leave.ApplicationRepository. The intersection
// test is inclusive on both ends: start_date <= $end AND end_date >= $start.
func (l *leaveApplicationRepository) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM leave_applications
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $2
			  AND end_date >= $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, end, start).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping leave applications: %w", err)
	}

	return exists, nil
}

// CountByStatus implements leave.ApplicationRepository. An empty employeeID
// counts across all employees.
func (l *leaveApplicationRepository) CountByStatus(ctx context.Context, employeeID string) (map[leave.Status]int64, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT status, COUNT(*)
		FROM leave_applications
	`
	args := []interface{}{}
	if employeeID != "" {
		query += " WHERE employee_id = $1"
		args = append(args, employeeID)
	}
	query += " GROUP BY status"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count leave applications by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[leave.Status]int64)
	for rows.Next() {
		var status leave.Status
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan leave application count: %w", err)
		}
		counts[status] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
