package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/geoattend/attendance-backend-go/internal/domain/auth"
	"github.com/geoattend/attendance-backend-go/internal/domain/leave"
	"github.com/geoattend/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Balances(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Apply implements LeaveHandler.
func (l *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req leave.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApplyLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	application, err := l.leaveService.Apply(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave application submitted", application)
}

func parseLeaveFilter(r *http.Request) leave.Filter {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	return leave.Filter{
		Page:       page,
		Limit:      limit,
		EmployeeID: query.Get("employee_id"),
		Status:     query.Get("status"),
		LeaveType:  query.Get("leave_type"),
	}
}

// ListMine implements LeaveHandler.
func (l *LeaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	filter := parseLeaveFilter(r)
	filter.EmployeeID = employeeID

	result, err := l.leaveService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Applications, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// List implements LeaveHandler. Admin only.
func (l *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := l.leaveService.List(r.Context(), parseLeaveFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Applications, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Balances implements LeaveHandler.
func (l *LeaveHandlerImpl) Balances(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	balances, err := l.leaveService.Balances(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// Stats implements LeaveHandler.
func (l *LeaveHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	// Admins may ask for another employee's stats, or the whole company
	// with an empty employee_id.
	if isAdminRequest(r) {
		employeeID = r.URL.Query().Get("employee_id")
	}

	stats, err := l.leaveService.Stats(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

type approveLeaveBody struct {
	Comments *string `json:"comments,omitempty"`
}

// Approve implements LeaveHandler. Admin only.
func (l *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	approverID, ok := employeeIDFromRequest(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave application ID is required", nil)
		return
	}

	var body approveLeaveBody
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	application, err := l.leaveService.Approve(r.Context(), id, approverID, body.Comments)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application approved", application)
}

// Reject implements LeaveHandler. Admin only.
func (l *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	approverID, ok := employeeIDFromRequest(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave application ID is required", nil)
		return
	}

	var req leave.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	application, err := l.leaveService.Reject(r.Context(), id, approverID, req.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application rejected", application)
}

// Cancel implements LeaveHandler.
func (l *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave application ID is required", nil)
		return
	}

	application, err := l.leaveService.Cancel(r.Context(), id, employeeID, isAdminRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application cancelled", application)
}
