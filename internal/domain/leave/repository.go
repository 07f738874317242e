package leave

import (
	"context"
	"time"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app Application) (Application, error)
	GetByID(ctx context.Context, id string) (Application, error)
	Update(ctx context.Context, app Application) error
	List(ctx context.Context, filter Filter) ([]Application, int64, error)

	// HasOverlapping reports whether the employee already has a pending or
	// approved application intersecting [start, end] inclusive.
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	CountByStatus(ctx context.Context, employeeID string) (map[Status]int64, error)
}

type BalanceRepository interface {
	Get(ctx context.Context, employeeID string, year int, leaveType Type) (Balance, error)
	GetByEmployeeAndYear(ctx context.Context, employeeID string, year int) ([]Balance, error)

	// Debit atomically moves days from remaining to used, but only while
	// remaining >= days. A failed floor check surfaces as
	// ErrInsufficientBalance so concurrent approvals can never overdraw.
	Debit(ctx context.Context, employeeID string, year int, leaveType Type, days int) error

	CreateAll(ctx context.Context, balances []Balance) error
}
