package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/geoattend/attendance-backend-go/internal/domain/leave"
	"github.com/geoattend/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepository{db: db}
}

const leaveBalanceColumns = `
	id, employee_id, year, leave_type, total, used, remaining,
	created_at, updated_at`

func scanLeaveBalance(row pgx.Row) (leave.Balance, error) {
	var bal leave.Balance
	err := row.Scan(
		&bal.ID, &bal.EmployeeID, &bal.Year, &bal.LeaveType, &bal.Total, &bal.Used, &bal.Remaining,
		&bal.CreatedAt, &bal.UpdatedAt,
	)
	return bal, err
}

// Get implements leave.BalanceRepository.
func (l *leaveBalanceRepository) Get(ctx context.Context, employeeID string, year int, leaveType leave.Type) (leave.Balance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveBalanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2 AND leave_type = $3
	`

	bal, err := scanLeaveBalance(q.QueryRow(ctx, query, employeeID, year, leaveType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return bal, nil
}

// GetByEmployeeAndYear implements leave.BalanceRepository.
func (l *leaveBalanceRepository) GetByEmployeeAndYear(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveBalanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
		ORDER BY leave_type ASC
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		bal, err := scanLeaveBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, bal)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return balances, nil
}

// Debit implements leave.BalanceRepository. The remaining >= days predicate
// makes the debit conditional at the row level: under concurrent approvals
// only one UPDATE can pass the floor, the loser sees zero rows affected.
func (l *leaveBalanceRepository) Debit(ctx context.Context, employeeID string, year int, leaveType leave.Type, days int) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_balances
		SET used = used + $1, remaining = remaining - $1, updated_at = NOW()
		WHERE employee_id = $2 AND year = $3 AND leave_type = $4
		  AND remaining >= $1
	`

	tag, err := q.Exec(ctx, query, days, employeeID, year, leaveType)
	if err != nil {
		return fmt.Errorf("failed to debit leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}

	return nil
}

// CreateAll implements leave.BalanceRepository. Used when onboarding an
// employee to seed the year's quotas in one transaction.
func (l *leaveBalanceRepository) CreateAll(ctx context.Context, balances []leave.Balance) error {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_balances (
			id, employee_id, year, leave_type, total, used, remaining
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, year, leave_type) DO NOTHING
	`

	for _, bal := range balances {
		if _, err := q.Exec(ctx, query,
			bal.ID, bal.EmployeeID, bal.Year, bal.LeaveType, bal.Total, bal.Used, bal.Remaining,
		); err != nil {
			return fmt.Errorf("failed to create leave balance: %w", err)
		}
	}

	return nil
}
