package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/domain/employee"
	"github.com/geoattend/attendance-backend-go/internal/domain/location"
	"github.com/geoattend/attendance-backend-go/internal/pkg/database"
	"github.com/geoattend/attendance-backend-go/internal/pkg/geo"
	"github.com/geoattend/attendance-backend-go/internal/service/geofence"
)

// DefaultHalfDayHours is the worked-hours floor below which a closed day is
// half-day rather than present.
const DefaultHalfDayHours = 4.0

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	employee.EmployeeRepository
	location.LocationRepository
	halfDayHours float64
	now          func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	locationRepo location.LocationRepository,
	halfDayHours float64,
) *AttendanceServiceImpl {
	if halfDayHours <= 0 {
		halfDayHours = DefaultHalfDayHours
	}
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		LocationRepository:   locationRepo,
		halfDayHours:         halfDayHours,
		now:                  time.Now,
	}
}

// deriveStatus is the single authority for the closed-day status.
func deriveStatus(durationHours, halfDayHours float64) attendance.Status {
	if durationHours < halfDayHours {
		return attendance.StatusHalfDay
	}
	return attendance.StatusPresent
}

// roundHours rounds a duration in hours to 2 decimals.
func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

// localDay maps an absolute timestamp to the employee-local working day,
// normalized to midnight UTC for storage.
func localDay(ts time.Time, timezone string) time.Time {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	local := ts.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// resolveLocation picks the explicit location when given, otherwise the
// employee's assigned one.
func (a *AttendanceServiceImpl) resolveLocation(ctx context.Context, emp employee.Employee, override *string) (location.Location, error) {
	locationID := override
	if locationID == nil {
		locationID = emp.LocationID
	}
	if locationID == nil {
		return location.Location{}, employee.ErrNoLocationAssigned
	}

	loc, err := a.LocationRepository.GetByID(ctx, *locationID)
	if err != nil {
		return location.Location{}, err
	}
	if !loc.IsActive {
		return location.Location{}, location.ErrLocationInactive
	}
	if !loc.AllowsDepartment(emp.Department) {
		return location.Location{}, location.ErrDepartmentNotAllowed
	}
	return loc, nil
}

// employeeTimezone resolves the assigned location's timezone; empty (UTC
// fallback in localDay) when the employee has no usable location.
func (a *AttendanceServiceImpl) employeeTimezone(ctx context.Context, emp employee.Employee) string {
	if emp.LocationID == nil {
		return ""
	}
	loc, err := a.LocationRepository.GetByID(ctx, *emp.LocationID)
	if err != nil {
		return ""
	}
	return loc.Timezone
}

func (a *AttendanceServiceImpl) eventTime(ts *string) time.Time {
	if ts != nil {
		if parsed, err := time.Parse(time.RFC3339, *ts); err == nil {
			return parsed.UTC()
		}
	}
	return a.now().UTC()
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	loc, err := a.resolveLocation(ctx, emp, req.LocationID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	coord := geo.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude}
	eval, err := geofence.Evaluate(coord, loc)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !eval.Inside {
		return attendance.AttendanceResponse{}, &attendance.GeofenceViolationError{
			LocationName:   loc.Name,
			DistanceMeters: eval.DistanceMeters,
			RadiusMeters:   loc.RadiusMeters,
		}
	}

	checkInAt := a.eventTime(req.Timestamp)
	date := localDay(checkInAt, loc.Timezone)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	record := attendance.Attendance{
		EmployeeID:        employeeID,
		Date:              date,
		CheckInAt:         &checkInAt,
		CheckInLatitude:   &req.Latitude,
		CheckInLongitude:  &req.Longitude,
		CheckInLocationID: &loc.ID,
		Status:            attendance.StatusPresent,
	}

	if existing != nil {
		if existing.CheckInAt != nil {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		// A placeholder row exists (leave marking, admin draft): attach
		// the check-in to it, the day key stays fixed.
		existing.CheckInAt = &checkInAt
		existing.CheckInLatitude = &req.Latitude
		existing.CheckInLongitude = &req.Longitude
		existing.CheckInLocationID = &loc.ID
		existing.Status = attendance.StatusPresent
		if err := a.AttendanceRepository.Update(ctx, *existing); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
		}
		return mapAttendanceToResponse(*existing), nil
	}

	// The unique (employee_id, date) key turns a concurrent double insert
	// into ErrAlreadyCheckedIn inside the repository.
	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService. Keyed strictly to the
// current working day: an open record from a previous day is never closed
// here, that is an admin correction. Not idempotent: a second check-out for
// the same day fails with ErrAlreadyCheckedOut by design.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	checkOutAt := a.eventTime(req.Timestamp)
	date := localDay(checkOutAt, a.employeeTimezone(ctx, emp))

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	if record == nil || record.CheckInAt == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOutAt != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	duration := roundHours(checkOutAt.Sub(*record.CheckInAt))
	status := deriveStatus(duration, a.halfDayHours)

	record.CheckOutAt = &checkOutAt
	record.CheckOutLatitude = &req.Latitude
	record.CheckOutLongitude = &req.Longitude
	record.CheckOutLocationID = record.CheckInLocationID
	record.DurationHours = &duration
	record.Status = status

	if err := a.AttendanceRepository.Update(ctx, *record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapAttendanceToResponse(*record), nil
}

// CheckGeofence implements attendance.AttendanceService. It is a read-only
// probe: nothing is recorded.
func (a *AttendanceServiceImpl) CheckGeofence(ctx context.Context, employeeID string, req attendance.GeofenceProbeRequest) (attendance.GeofenceProbeResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.GeofenceProbeResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.GeofenceProbeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	loc, err := a.resolveLocation(ctx, emp, req.LocationID)
	if err != nil {
		return attendance.GeofenceProbeResponse{}, err
	}

	coord := geo.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude}
	eval, err := geofence.Evaluate(coord, loc)
	if err != nil {
		return attendance.GeofenceProbeResponse{}, err
	}

	resp := attendance.GeofenceProbeResponse{
		Inside:         eval.Inside,
		DistanceMeters: eval.DistanceMeters,
		RadiusMeters:   loc.RadiusMeters,
		Location: attendance.LocationSnapshot{
			ID:     loc.ID,
			Name:   loc.Name,
			Code:   loc.Code,
			Center: loc.Center,
		},
	}
	if eval.DistanceMeters != nil {
		formatted := formatDistance(*eval.DistanceMeters)
		resp.FormattedDistance = &formatted
	}

	return resp, nil
}

func formatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0fm", meters)
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}

// Today implements attendance.AttendanceService. Returns nil when the
// employee has no record yet for the current working day.
func (a *AttendanceServiceImpl) Today(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	date := localDay(a.now().UTC(), a.employeeTimezone(ctx, emp))
	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	if record == nil {
		return nil, nil
	}

	resp := mapAttendanceToResponse(*record)
	return &resp, nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.Filter) (attendance.ListAttendanceResponse, error) {
	filter.Normalize()

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapAttendanceToResponse(rec))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

// Stats implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Stats(ctx context.Context, date string) (attendance.StatsResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		day = localDay(a.now().UTC(), "")
	}

	counts, err := a.AttendanceRepository.CountByStatus(ctx, day)
	if err != nil {
		return attendance.StatsResponse{}, fmt.Errorf("failed to count attendance by status: %w", err)
	}

	_, totalEmployees, err := a.EmployeeRepository.List(ctx, employee.EmployeeFilter{Page: 1, Limit: 1})
	if err != nil {
		return attendance.StatsResponse{}, fmt.Errorf("failed to count employees: %w", err)
	}

	present := counts[attendance.StatusPresent] + counts[attendance.StatusPending]
	halfDay := counts[attendance.StatusHalfDay]
	onLeave := counts[attendance.StatusLeave]

	absent := totalEmployees - present - halfDay - onLeave
	if absent < 0 {
		absent = 0
	}

	return attendance.StatsResponse{
		Date:           day.Format("2006-01-02"),
		TotalEmployees: totalEmployees,
		Present:        present,
		HalfDay:        halfDay,
		OnLeave:        onLeave,
		Absent:         absent,
	}, nil
}

// Update implements attendance.AttendanceService. Admin manual correction:
// fields are overwritten, the (employee, date) key stays fixed, and the
// duration and status are re-derived whenever both events are present.
func (a *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.CheckInAt != nil {
		if t, err := time.Parse(time.RFC3339, *req.CheckInAt); err == nil {
			utc := t.UTC()
			record.CheckInAt = &utc
		}
	}
	if req.CheckOutAt != nil {
		if t, err := time.Parse(time.RFC3339, *req.CheckOutAt); err == nil {
			utc := t.UTC()
			record.CheckOutAt = &utc
		}
	}
	if req.CheckInLatitude != nil {
		record.CheckInLatitude = req.CheckInLatitude
	}
	if req.CheckInLongitude != nil {
		record.CheckInLongitude = req.CheckInLongitude
	}
	if req.CheckOutLatitude != nil {
		record.CheckOutLatitude = req.CheckOutLatitude
	}
	if req.CheckOutLongitude != nil {
		record.CheckOutLongitude = req.CheckOutLongitude
	}

	if record.CheckInAt != nil && record.CheckOutAt != nil {
		duration := roundHours(record.CheckOutAt.Sub(*record.CheckInAt))
		record.DurationHours = &duration
		record.Status = deriveStatus(duration, a.halfDayHours)
	}

	// An explicit status wins over the derived one (e.g. marking leave).
	if req.Status != nil {
		record.Status = attendance.Status(*req.Status)
	}

	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	updated, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get updated attendance: %w", err)
	}

	return mapAttendanceToResponse(updated), nil
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                att.ID,
		EmployeeID:        att.EmployeeID,
		EmployeeName:      att.EmployeeName,
		Department:        att.Department,
		Date:              att.Date.Format("2006-01-02"),
		CheckInAt:         timePtrToString(att.CheckInAt),
		CheckInLatitude:   att.CheckInLatitude,
		CheckInLongitude:  att.CheckInLongitude,
		CheckOutAt:        timePtrToString(att.CheckOutAt),
		CheckOutLatitude:  att.CheckOutLatitude,
		CheckOutLongitude: att.CheckOutLongitude,
		Status:            string(att.Status),
		DurationHours:     att.DurationHours,
	}
}
