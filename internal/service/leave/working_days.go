package leave

import (
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/leave"
)

// CountWorkingDays counts the Monday-Friday days in [start, end] inclusive.
// Weekend days contribute nothing, so a Saturday-Sunday range counts zero.
// Company holidays are not modeled; a holiday falling midweek still counts.
func CountWorkingDays(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, leave.ErrInvalidDateRange
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days++
		}
	}

	return days, nil
}
