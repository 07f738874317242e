package leave

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/leave"
	"github.com/geoattend/attendance-backend-go/internal/pkg/database"
	"github.com/geoattend/attendance-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.ApplicationRepository
	leave.BalanceRepository
	now   func() time.Time
	runTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewLeaveService(
	db *database.DB,
	applicationRepo leave.ApplicationRepository,
	balanceRepo leave.BalanceRepository,
) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		db:                    db,
		ApplicationRepository: applicationRepo,
		BalanceRepository:     balanceRepo,
		now:                   time.Now,
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
				return fn(postgresql.NewTxContext(ctx, tx))
			})
		},
	}
}

// Apply implements leave.LeaveService. Application alone never touches the
// balance; days are debited only on approval.
func (l *LeaveServiceImpl) Apply(ctx context.Context, employeeID string, req leave.ApplyRequest) (leave.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	days, err := CountWorkingDays(start, end)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if days == 0 {
		return leave.ApplicationResponse{}, leave.ErrWeekendOnlyRange
	}

	// The balance year follows the start date; a range spanning New Year
	// is checked and later debited against the start year for the full
	// day count. Approve uses the same key.
	leaveType := leave.Type(req.LeaveType)
	balance, err := l.BalanceRepository.Get(ctx, employeeID, start.Year(), leaveType)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if balance.Remaining < days {
		return leave.ApplicationResponse{}, leave.ErrInsufficientBalance
	}

	overlapping, err := l.ApplicationRepository.HasOverlapping(ctx, employeeID, start, end)
	if err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("failed to check overlapping applications: %w", err)
	}
	if overlapping {
		return leave.ApplicationResponse{}, leave.ErrOverlappingApplication
	}

	app := leave.Application{
		EmployeeID:   employeeID,
		LeaveType:    leaveType,
		StartDate:    start,
		EndDate:      end,
		NumberOfDays: days,
		Reason:       req.Reason,
		Status:       leave.StatusPending,
		AppliedAt:    l.now().UTC(),
	}

	created, err := l.ApplicationRepository.Create(ctx, app)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	return mapApplicationToResponse(created), nil
}

// Approve implements leave.LeaveService. The status flip and the balance
// debit commit together; a failed debit leaves the application pending.
func (l *LeaveServiceImpl) Approve(ctx context.Context, applicationID, approverID string, comments *string) (leave.ApplicationResponse, error) {
	app, err := l.ApplicationRepository.GetByID(ctx, applicationID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	if app.Status != leave.StatusPending {
		return leave.ApplicationResponse{}, leave.ErrAlreadyProcessed
	}

	approvedAt := l.now().UTC()
	app.Status = leave.StatusApproved
	app.ApprovedBy = &approverID
	app.ApprovedAt = &approvedAt
	app.Comments = comments

	err = l.runTx(ctx, func(txCtx context.Context) error {
		if err := l.BalanceRepository.Debit(txCtx, app.EmployeeID, app.StartDate.Year(), app.LeaveType, app.NumberOfDays); err != nil {
			return err
		}

		if err := l.ApplicationRepository.Update(txCtx, app); err != nil {
			return fmt.Errorf("failed to update leave application: %w", err)
		}

		return nil
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	return mapApplicationToResponse(app), nil
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, applicationID, approverID, reason string) (leave.ApplicationResponse, error) {
	req := leave.RejectRequest{ID: applicationID, Reason: reason}
	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	app, err := l.ApplicationRepository.GetByID(ctx, applicationID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	if app.Status != leave.StatusPending {
		return leave.ApplicationResponse{}, leave.ErrAlreadyProcessed
	}

	rejectedAt := l.now().UTC()
	app.Status = leave.StatusRejected
	app.ApprovedBy = &approverID
	app.ApprovedAt = &rejectedAt
	app.RejectionReason = &reason

	if err := l.ApplicationRepository.Update(ctx, app); err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("failed to update leave application: %w", err)
	}

	return mapApplicationToResponse(app), nil
}

// Cancel implements leave.LeaveService. Only pending applications can be
// cancelled; an approved one has already debited the balance and requires an
// admin correction flow, not a self-service cancel.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, applicationID, requestedBy string, isAdmin bool) (leave.ApplicationResponse, error) {
	app, err := l.ApplicationRepository.GetByID(ctx, applicationID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	if !isAdmin && app.EmployeeID != requestedBy {
		return leave.ApplicationResponse{}, leave.ErrNotApplicationOwner
	}

	if app.Status != leave.StatusPending {
		return leave.ApplicationResponse{}, leave.ErrAlreadyProcessed
	}

	app.Status = leave.StatusCancelled

	if err := l.ApplicationRepository.Update(ctx, app); err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("failed to update leave application: %w", err)
	}

	return mapApplicationToResponse(app), nil
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, filter leave.Filter) (leave.ListApplicationsResponse, error) {
	filter.Normalize()

	applications, total, err := l.ApplicationRepository.List(ctx, filter)
	if err != nil {
		return leave.ListApplicationsResponse{}, fmt.Errorf("failed to list leave applications: %w", err)
	}

	responses := make([]leave.ApplicationResponse, 0, len(applications))
	for _, app := range applications {
		responses = append(responses, mapApplicationToResponse(app))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return leave.ListApplicationsResponse{
		TotalCount:   total,
		Page:         filter.Page,
		Limit:        filter.Limit,
		TotalPages:   totalPages,
		Applications: responses,
	}, nil
}

// Balances implements leave.LeaveService.
func (l *LeaveServiceImpl) Balances(ctx context.Context, employeeID string, year int) (leave.BalancesResponse, error) {
	if year == 0 {
		year = l.now().UTC().Year()
	}

	balances, err := l.BalanceRepository.GetByEmployeeAndYear(ctx, employeeID, year)
	if err != nil {
		return leave.BalancesResponse{}, fmt.Errorf("failed to get leave balances: %w", err)
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, bal := range balances {
		responses = append(responses, leave.BalanceResponse{
			LeaveType: string(bal.LeaveType),
			Total:     bal.Total,
			Used:      bal.Used,
			Remaining: bal.Remaining,
		})
	}

	return leave.BalancesResponse{
		EmployeeID: employeeID,
		Year:       year,
		Balances:   responses,
	}, nil
}

// Stats implements leave.LeaveService.
func (l *LeaveServiceImpl) Stats(ctx context.Context, employeeID string) (leave.StatsResponse, error) {
	counts, err := l.ApplicationRepository.CountByStatus(ctx, employeeID)
	if err != nil {
		return leave.StatsResponse{}, fmt.Errorf("failed to count leave applications by status: %w", err)
	}

	return leave.StatsResponse{
		Pending:   counts[leave.StatusPending],
		Approved:  counts[leave.StatusApproved],
		Rejected:  counts[leave.StatusRejected],
		Cancelled: counts[leave.StatusCancelled],
	}, nil
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func mapApplicationToResponse(app leave.Application) leave.ApplicationResponse {
	return leave.ApplicationResponse{
		ID:              app.ID,
		EmployeeID:      app.EmployeeID,
		EmployeeName:    app.EmployeeName,
		Department:      app.Department,
		LeaveType:       string(app.LeaveType),
		StartDate:       app.StartDate.Format("2006-01-02"),
		EndDate:         app.EndDate.Format("2006-01-02"),
		NumberOfDays:    app.NumberOfDays,
		Reason:          app.Reason,
		Status:          string(app.Status),
		AppliedAt:       app.AppliedAt.Format(time.RFC3339),
		ApprovedBy:      app.ApprovedBy,
		ApprovedAt:      timePtrToString(app.ApprovedAt),
		Comments:        app.Comments,
		RejectionReason: app.RejectionReason,
	}
}
