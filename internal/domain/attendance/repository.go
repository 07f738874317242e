package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create inserts a new day record. The (employee_id, date) unique key
	// is the authority on double check-in: a duplicate insert surfaces as
	// ErrAlreadyCheckedIn, never as a silent overwrite.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns nil when no record exists for that day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)
	Update(ctx context.Context, att Attendance) error
	List(ctx context.Context, filter Filter) ([]Attendance, int64, error)

	// CountByStatus counts that day's records per status.
	CountByStatus(ctx context.Context, date time.Time) (map[Status]int64, error)
}
