package attendance

import "time"

// Status is the derived state of a day's attendance record. Only the
// attendance service assigns it; handlers and repositories must not set the
// string ad hoc.
type Status string

const (
	StatusPending Status = "pending"
	StatusPresent Status = "present"
	StatusHalfDay Status = "half-day"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPresent, StatusHalfDay, StatusAbsent, StatusLeave:
		return true
	}
	return false
}

// Attendance is one employee's record for one calendar day (employee-local).
// Unique per (EmployeeID, Date); created on first check-in, closed on
// check-out, never deleted. Admin corrections overwrite fields but the key
// stays fixed.
type Attendance struct {
	ID         string
	EmployeeID string

	// Date is the employee-local working day at midnight UTC, not a
	// timestamp.
	Date time.Time

	CheckInAt          *time.Time
	CheckInLatitude    *float64
	CheckInLongitude   *float64
	CheckInLocationID  *string
	CheckOutAt         *time.Time
	CheckOutLatitude   *float64
	CheckOutLongitude  *float64
	CheckOutLocationID *string

	Status        Status
	DurationHours *float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for listings
	EmployeeName *string
	Department   *string
}
