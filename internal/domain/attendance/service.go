package attendance

import "context"

type AttendanceService interface {
	CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (AttendanceResponse, error)
	CheckGeofence(ctx context.Context, employeeID string, req GeofenceProbeRequest) (GeofenceProbeResponse, error)
	Today(ctx context.Context, employeeID string) (*AttendanceResponse, error)
	List(ctx context.Context, filter Filter) (ListAttendanceResponse, error)
	Stats(ctx context.Context, date string) (StatsResponse, error)
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
}
