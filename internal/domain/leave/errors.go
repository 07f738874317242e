package leave

import "errors"

// Leave domain errors
var (
	ErrApplicationNotFound = errors.New("leave application not found")
	ErrInvalidLeaveType    = errors.New("invalid leave type")

	// Apply-time violations
	ErrInvalidDateRange       = errors.New("end date must be on or after start date")
	ErrWeekendOnlyRange       = errors.New("selected dates fall on weekends only")
	ErrInsufficientBalance    = errors.New("insufficient leave balance")
	ErrOverlappingApplication = errors.New("an existing leave application overlaps these dates")

	// Transition violations. Approve/reject/cancel demand a pending
	// application; approved leave is committed and cannot be cancelled.
	ErrAlreadyProcessed = errors.New("leave application has already been processed")

	ErrNotApplicationOwner = errors.New("you can only cancel your own leave applications")
	ErrBalanceNotFound     = errors.New("leave balance not found")
)
