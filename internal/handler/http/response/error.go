package response

import (
	"errors"
	"net/http"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/domain/auth"
	"github.com/geoattend/attendance-backend-go/internal/domain/employee"
	"github.com/geoattend/attendance-backend-go/internal/domain/leave"
	"github.com/geoattend/attendance-backend-go/internal/domain/location"
	"github.com/geoattend/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Geofence violations carry the distance context in the message.
	var geofenceErr *attendance.GeofenceViolationError
	if errors.As(err, &geofenceErr) {
		BadRequest(w, geofenceErr.Error(), nil)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrNoLocationAssigned):
		BadRequest(w, "No location assigned to this employee", nil)
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee account is inactive")
	case errors.Is(err, employee.ErrAdminPrivilegeNeeded):
		Forbidden(w, "Admin privilege required")

	// Location domain errors
	case errors.Is(err, location.ErrLocationNotFound):
		NotFound(w, "Location not found")
	case errors.Is(err, location.ErrLocationCodeExists):
		Conflict(w, "Location code already exists")
	case errors.Is(err, location.ErrLocationInactive):
		BadRequest(w, "Location is inactive", nil)
	case errors.Is(err, location.ErrLocationMisconfigured):
		BadRequest(w, "Location has neither a usable boundary nor a positive radius", nil)
	case errors.Is(err, location.ErrDepartmentNotAllowed):
		Forbidden(w, "Your department is not allowed at this location")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "You have already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "You have not checked in today", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "You have already checked out today")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrApplicationNotFound):
		NotFound(w, "Leave application not found")
	case errors.Is(err, leave.ErrInvalidLeaveType):
		BadRequest(w, "Invalid leave type", nil)
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, leave.ErrWeekendOnlyRange):
		BadRequest(w, "Requested range contains no working days", nil)
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrOverlappingApplication):
		Conflict(w, "An overlapping leave application already exists")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave application already processed")
	case errors.Is(err, leave.ErrNotApplicationOwner):
		Forbidden(w, "You can only cancel your own leave applications")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
