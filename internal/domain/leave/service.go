package leave

import "context"

type LeaveService interface {
	Apply(ctx context.Context, employeeID string, req ApplyRequest) (ApplicationResponse, error)
	Approve(ctx context.Context, applicationID, approverID string, comments *string) (ApplicationResponse, error)
	Reject(ctx context.Context, applicationID, approverID, reason string) (ApplicationResponse, error)
	Cancel(ctx context.Context, applicationID, requestedBy string, isAdmin bool) (ApplicationResponse, error)
	List(ctx context.Context, filter Filter) (ListApplicationsResponse, error)
	Balances(ctx context.Context, employeeID string, year int) (BalancesResponse, error)
	Stats(ctx context.Context, employeeID string) (StatsResponse, error)
}
