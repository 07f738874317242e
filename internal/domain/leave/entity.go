package leave

import "time"

// Type is the leave category an application draws its balance from.
type Type string

const (
	TypeCasual Type = "CL"
	TypeSick   Type = "SL"
	TypeEarned Type = "EL"
)

func (t Type) Valid() bool {
	switch t {
	case TypeCasual, TypeSick, TypeEarned:
		return true
	}
	return false
}

// Status of a leave application. Transitions happen only through the leave
// service: pending -> approved | rejected | cancelled.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

type Application struct {
	ID           string
	EmployeeID   string
	LeaveType    Type
	StartDate    time.Time
	EndDate      time.Time
	NumberOfDays int
	Reason       string
	Status       Status

	AppliedAt       time.Time
	ApprovedBy      *string
	ApprovedAt      *time.Time
	Comments        *string
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for listings
	EmployeeName *string
	Department   *string
}

// Balance tracks one employee's quota for one leave type in one year.
// Invariant: Used + Remaining == Total and Remaining >= 0 at all times.
type Balance struct {
	ID         string
	EmployeeID string
	Year       int
	LeaveType  Type
	Total      int
	Used       int
	Remaining  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
