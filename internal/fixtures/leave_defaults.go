package fixtures

import (
	"github.com/geoattend/attendance-backend-go/internal/domain/leave"
	"github.com/google/uuid"
)

// DefaultLeaveQuotas are the yearly entitlements granted to every employee
// on onboarding: 15 casual, 12 sick, 15 earned.
var DefaultLeaveQuotas = map[leave.Type]int{
	leave.TypeCasual: 15,
	leave.TypeSick:   12,
	leave.TypeEarned: 15,
}

// DefaultBalances builds a fresh, fully-unused balance set for one
// employee-year.
func DefaultBalances(employeeID string, year int) []leave.Balance {
	balances := make([]leave.Balance, 0, len(DefaultLeaveQuotas))
	for _, t := range []leave.Type{leave.TypeCasual, leave.TypeSick, leave.TypeEarned} {
		total := DefaultLeaveQuotas[t]
		balances = append(balances, leave.Balance{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			Year:       year,
			LeaveType:  t,
			Total:      total,
			Used:       0,
			Remaining:  total,
		})
	}
	return balances
}
