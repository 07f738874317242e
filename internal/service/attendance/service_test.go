package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/domain/employee"
	"github.com/geoattend/attendance-backend-go/internal/domain/location"
	"github.com/geoattend/attendance-backend-go/internal/pkg/geo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	for _, existing := range f.records {
		if existing.EmployeeID == att.EmployeeID && existing.Date.Equal(att.Date) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
	}
	att.ID = uuid.NewString()
	f.records[att.ID] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	for _, att := range f.records {
		if att.EmployeeID == employeeID && att.Date.Equal(date) {
			copied := att
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	att, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) error {
	if _, ok := f.records[att.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	f.records[att.ID] = att
	return nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if filter.EmployeeID != "" && att.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && string(att.Status) != filter.Status {
			continue
		}
		out = append(out, att)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) CountByStatus(_ context.Context, date time.Time) (map[attendance.Status]int64, error) {
	counts := make(map[attendance.Status]int64)
	for _, att := range f.records {
		if att.Date.Equal(date) {
			counts[att.Status]++
		}
	}
	return counts, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		out = append(out, emp)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, emp employee.Employee) error {
	f.employees[emp.ID] = emp
	return nil
}

type fakeLocationRepo struct {
	locations map[string]location.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: make(map[string]location.Location)}
}

func (f *fakeLocationRepo) Create(_ context.Context, loc location.Location) (location.Location, error) {
	if loc.ID == "" {
		loc.ID = uuid.NewString()
	}
	f.locations[loc.ID] = loc
	return loc, nil
}

func (f *fakeLocationRepo) GetByID(_ context.Context, id string) (location.Location, error) {
	loc, ok := f.locations[id]
	if !ok {
		return location.Location{}, location.ErrLocationNotFound
	}
	return loc, nil
}

func (f *fakeLocationRepo) GetByCode(_ context.Context, code string) (location.Location, error) {
	for _, loc := range f.locations {
		if loc.Code == code {
			return loc, nil
		}
	}
	return location.Location{}, location.ErrLocationNotFound
}

func (f *fakeLocationRepo) List(_ context.Context, includeInactive bool) ([]location.Location, error) {
	var out []location.Location
	for _, loc := range f.locations {
		if !includeInactive && !loc.IsActive {
			continue
		}
		out = append(out, loc)
	}
	return out, nil
}

func (f *fakeLocationRepo) Update(_ context.Context, loc location.Location) error {
	f.locations[loc.ID] = loc
	return nil
}

func (f *fakeLocationRepo) Delete(_ context.Context, id string) error {
	loc, ok := f.locations[id]
	if !ok {
		return location.ErrLocationNotFound
	}
	loc.IsActive = false
	f.locations[id] = loc
	return nil
}

// Office center used across the tests; ~111m per 0.001 degree latitude.
var officeCenter = geo.Coordinate{Latitude: 28.6139, Longitude: 77.2090}

type testEnv struct {
	svc       *AttendanceServiceImpl
	atts      *fakeAttendanceRepo
	emps      *fakeEmployeeRepo
	locs      *fakeLocationRepo
	officeID  string
	employeID string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	atts := newFakeAttendanceRepo()
	emps := newFakeEmployeeRepo()
	locs := newFakeLocationRepo()

	office, err := locs.Create(context.Background(), location.Location{
		Name:         "Head Office",
		Code:         "HQ",
		Center:       officeCenter,
		RadiusMeters: 200,
		Timezone:     "UTC",
		IsActive:     true,
	})
	require.NoError(t, err)

	emp, err := emps.Create(context.Background(), employee.Employee{
		FullName:     "Asha Verma",
		Email:        "asha@example.com",
		EmployeeCode: "EM1001",
		Department:   "Engineering",
		Role:         employee.RoleEmployee,
		LocationID:   &office.ID,
		IsActive:     true,
	})
	require.NoError(t, err)

	svc := NewAttendanceService(nil, atts, emps, locs, 4)
	svc.now = func() time.Time { return time.Date(2024, 12, 10, 9, 0, 0, 0, time.UTC) }

	return &testEnv{
		svc:       svc,
		atts:      atts,
		emps:      emps,
		locs:      locs,
		officeID:  office.ID,
		employeID: emp.ID,
	}
}

func strPtr(s string) *string { return &s }

func TestCheckInInsideGeofence(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.CheckIn(context.Background(), env.employeID, attendance.CheckInRequest{
		Latitude:  officeCenter.Latitude + 0.0005,
		Longitude: officeCenter.Longitude,
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-12-10", resp.Date)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	require.NotNil(t, resp.CheckInAt)
	assert.Nil(t, resp.CheckOutAt)
	assert.Nil(t, resp.DurationHours)
}

func TestCheckInOutsideGeofence(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CheckIn(context.Background(), env.employeID, attendance.CheckInRequest{
		Latitude:  officeCenter.Latitude + 0.01, // ~1.1km north
		Longitude: officeCenter.Longitude,
	})
	require.Error(t, err)

	var violation *attendance.GeofenceViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "Head Office", violation.LocationName)
	require.NotNil(t, violation.DistanceMeters)
	assert.Greater(t, *violation.DistanceMeters, 200.0)
	assert.Contains(t, violation.Error(), "Head Office")
	assert.Contains(t, violation.Error(), "200m")

	// Nothing recorded.
	assert.Empty(t, env.atts.records)
}

func TestCheckInTwiceSameDay(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CheckIn(context.Background(), env.employeID, attendance.CheckInRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
	})
	require.NoError(t, err)

	_, err = env.svc.CheckIn(context.Background(), env.employeID, attendance.CheckInRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.Len(t, env.atts.records, 1)
}

func TestCheckOutFullDay(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CheckIn(context.Background(), env.employeID, attendance.CheckInRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
		Timestamp: strPtr("2024-12-10T09:00:00Z"),
	})
	require.NoError(t, err)

	resp, err := env.svc.CheckOut(context.Background(), env.employeID, attendance.CheckOutRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
		Timestamp: strPtr("2024-12-10T17:30:00Z"),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.DurationHours)
	assert.Equal(t, 8.5, *resp.DurationHours)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
}

func TestCheckOutShortDayIsHalfDay(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CheckIn(context.Background(), env.employeID, attendance.CheckInRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
		Timestamp: strPtr("2024-12-10T09:00:00Z"),
	})
	require.NoError(t, err)

	resp, err := env.svc.CheckOut(context.Background(), env.employeID, attendance.CheckOutRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
		Timestamp: strPtr("2024-12-10T11:30:00Z"),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.DurationHours)
	assert.Equal(t, 2.5, *resp.DurationHours)
	assert.Equal(t, string(attendance.StatusHalfDay), resp.Status)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CheckOut(context.Background(), env.employeID, attendance.CheckOutRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
	})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOutTwice(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CheckIn(context.Background(), env.employeID, attendance.CheckInRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
		Timestamp: strPtr("2024-12-10T09:00:00Z"),
	})
	require.NoError(t, err)

	_, err = env.svc.CheckOut(context.Background(), env.employeID, attendance.CheckOutRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
		Timestamp: strPtr("2024-12-10T17:00:00Z"),
	})
	require.NoError(t, err)

	_, err = env.svc.CheckOut(context.Background(), env.employeID, attendance.CheckOutRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOutIgnoresPriorDayOpenRecord(t *testing.T) {
	env := newTestEnv(t)

	// Forgotten check-out from the previous day.
	_, err := env.svc.CheckIn(context.Background(), env.employeID, attendance.CheckInRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
		Timestamp: strPtr("2024-12-09T09:00:00Z"),
	})
	require.NoError(t, err)

	_, err = env.svc.CheckOut(context.Background(), env.employeID, attendance.CheckOutRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
	})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	// The stale record stays open; closing it is an admin correction.
	stale, err := env.atts.GetByEmployeeAndDate(context.Background(), env.employeID,
		time.Date(2024, 12, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, stale)
	assert.Nil(t, stale.CheckOutAt)
}

func TestHalfDayThresholdConfigurable(t *testing.T) {
	env := newTestEnv(t)
	env.svc.halfDayHours = 6

	_, err := env.svc.CheckIn(context.Background(), env.employeID, attendance.CheckInRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
		Timestamp: strPtr("2024-12-10T09:00:00Z"),
	})
	require.NoError(t, err)

	resp, err := env.svc.CheckOut(context.Background(), env.employeID, attendance.CheckOutRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
		Timestamp: strPtr("2024-12-10T14:00:00Z"),
	})
	require.NoError(t, err)

	// 5h would be present under the default 4h threshold.
	assert.Equal(t, string(attendance.StatusHalfDay), resp.Status)
}

func TestDeriveStatusBoundary(t *testing.T) {
	// Exactly at the threshold counts as present.
	assert.Equal(t, attendance.StatusPresent, deriveStatus(4.0, 4.0))
	assert.Equal(t, attendance.StatusHalfDay, deriveStatus(3.99, 4.0))
	assert.Equal(t, attendance.StatusPresent, deriveStatus(8.5, 4.0))
}

func TestCheckInNoLocationAssigned(t *testing.T) {
	env := newTestEnv(t)

	emp, _ := env.emps.GetByID(context.Background(), env.employeID)
	emp.LocationID = nil
	require.NoError(t, env.emps.Update(context.Background(), emp))

	_, err := env.svc.CheckIn(context.Background(), env.employeID, attendance.CheckInRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
	})
	assert.ErrorIs(t, err, employee.ErrNoLocationAssigned)
}

func TestCheckInInactiveLocation(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.locs.Delete(context.Background(), env.officeID))

	_, err := env.svc.CheckIn(context.Background(), env.employeID, attendance.CheckInRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
	})
	assert.ErrorIs(t, err, location.ErrLocationInactive)
}

func TestCheckInDepartmentNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	office, _ := env.locs.GetByID(context.Background(), env.officeID)
	office.AllowedDepartments = []string{"Operations"}
	require.NoError(t, env.locs.Update(context.Background(), office))

	_, err := env.svc.CheckIn(context.Background(), env.employeID, attendance.CheckInRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
	})
	assert.ErrorIs(t, err, location.ErrDepartmentNotAllowed)
}

func TestCheckInMisconfiguredLocation(t *testing.T) {
	env := newTestEnv(t)

	office, _ := env.locs.GetByID(context.Background(), env.officeID)
	office.RadiusMeters = 0
	office.Boundary = nil
	require.NoError(t, env.locs.Update(context.Background(), office))

	_, err := env.svc.CheckIn(context.Background(), env.employeID, attendance.CheckInRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
	})
	assert.ErrorIs(t, err, location.ErrLocationMisconfigured)
}

func TestCheckGeofenceProbe(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.CheckGeofence(context.Background(), env.employeID, attendance.GeofenceProbeRequest{
		Latitude:  officeCenter.Latitude + 0.0005,
		Longitude: officeCenter.Longitude,
	})
	require.NoError(t, err)

	assert.True(t, resp.Inside)
	assert.Equal(t, 200.0, resp.RadiusMeters)
	assert.Equal(t, "Head Office", resp.Location.Name)
	require.NotNil(t, resp.FormattedDistance)
	assert.Contains(t, *resp.FormattedDistance, "m")

	// Probe records nothing.
	assert.Empty(t, env.atts.records)
}

func TestCheckGeofenceProbeKilometerFormatting(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.CheckGeofence(context.Background(), env.employeID, attendance.GeofenceProbeRequest{
		Latitude:  officeCenter.Latitude + 0.05, // ~5.5km away
		Longitude: officeCenter.Longitude,
	})
	require.NoError(t, err)

	assert.False(t, resp.Inside)
	require.NotNil(t, resp.FormattedDistance)
	assert.Contains(t, *resp.FormattedDistance, "km")
}

func TestTodayReturnsNilWithoutRecord(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.Today(context.Background(), env.employeID)
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestTodayAfterCheckIn(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CheckIn(context.Background(), env.employeID, attendance.CheckInRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
	})
	require.NoError(t, err)

	resp, err := env.svc.Today(context.Background(), env.employeID)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "2024-12-10", resp.Date)
}

func TestStatsDerivesAbsent(t *testing.T) {
	env := newTestEnv(t)

	// Second employee never checks in.
	_, err := env.emps.Create(context.Background(), employee.Employee{
		FullName:     "Ravi Nair",
		Email:        "ravi@example.com",
		EmployeeCode: "EM1002",
		Department:   "Engineering",
		Role:         employee.RoleEmployee,
		LocationID:   &env.officeID,
		IsActive:     true,
	})
	require.NoError(t, err)

	_, err = env.svc.CheckIn(context.Background(), env.employeID, attendance.CheckInRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
	})
	require.NoError(t, err)

	stats, err := env.svc.Stats(context.Background(), "2024-12-10")
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalEmployees)
	assert.Equal(t, int64(1), stats.Present)
	assert.Equal(t, int64(1), stats.Absent)
}

func TestUpdateRecomputesDurationAndStatus(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CheckIn(context.Background(), env.employeID, attendance.CheckInRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
		Timestamp: strPtr("2024-12-10T09:00:00Z"),
	})
	require.NoError(t, err)

	var id string
	for recordID := range env.atts.records {
		id = recordID
	}

	resp, err := env.svc.Update(context.Background(), attendance.UpdateAttendanceRequest{
		ID:         id,
		CheckOutAt: strPtr("2024-12-10T12:00:00Z"),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.DurationHours)
	assert.Equal(t, 3.0, *resp.DurationHours)
	assert.Equal(t, string(attendance.StatusHalfDay), resp.Status)
}

func TestUpdateExplicitStatusWins(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CheckIn(context.Background(), env.employeID, attendance.CheckInRequest{
		Latitude:  officeCenter.Latitude,
		Longitude: officeCenter.Longitude,
		Timestamp: strPtr("2024-12-10T09:00:00Z"),
	})
	require.NoError(t, err)

	var id string
	for recordID := range env.atts.records {
		id = recordID
	}

	resp, err := env.svc.Update(context.Background(), attendance.UpdateAttendanceRequest{
		ID:     id,
		Status: strPtr(string(attendance.StatusLeave)),
	})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusLeave), resp.Status)
}

func TestCheckInValidationRejectsBadCoordinates(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CheckIn(context.Background(), env.employeID, attendance.CheckInRequest{
		Latitude:  91,
		Longitude: 0,
	})
	assert.Error(t, err)
	assert.Empty(t, env.atts.records)
}
