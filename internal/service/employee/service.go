package employee

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/employee"
	"github.com/geoattend/attendance-backend-go/internal/domain/leave"
	"github.com/geoattend/attendance-backend-go/internal/domain/location"
	"github.com/geoattend/attendance-backend-go/internal/fixtures"
	"github.com/geoattend/attendance-backend-go/internal/pkg/database"
	"github.com/geoattend/attendance-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	db *database.DB
	employee.EmployeeRepository
	location.LocationRepository
	leave.BalanceRepository
	now   func() time.Time
	runTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	locationRepo location.LocationRepository,
	balanceRepo leave.BalanceRepository,
) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		db:                 db,
		EmployeeRepository: employeeRepo,
		LocationRepository: locationRepo,
		BalanceRepository:  balanceRepo,
		now:                time.Now,
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
				return fn(postgresql.NewTxContext(ctx, tx))
			})
		},
	}
}

// Onboard implements employee.EmployeeService. The employee row and the
// current year's leave balances commit together.
func (e *EmployeeServiceImpl) Onboard(ctx context.Context, req employee.OnboardEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.LocationID != nil {
		if _, err := e.LocationRepository.GetByID(ctx, *req.LocationID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hashed)

	role := employee.RoleEmployee
	if req.Role != "" {
		role = employee.Role(req.Role)
	}

	newEmployee := employee.Employee{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: &passwordHash,
		EmployeeCode: req.EmployeeCode,
		Department:   req.Department,
		Role:         role,
		LocationID:   req.LocationID,
		IsActive:     true,
	}

	var created employee.Employee
	err = e.runTx(ctx, func(txCtx context.Context) error {
		created, err = e.EmployeeRepository.Create(txCtx, newEmployee)
		if err != nil {
			return err
		}

		balances := fixtures.DefaultBalances(created.ID, e.now().UTC().Year())
		if err := e.BalanceRepository.CreateAll(txCtx, balances); err != nil {
			return fmt.Errorf("failed to seed leave balances: %w", err)
		}

		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(created), nil
}

// Get implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := e.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(emp), nil
}

// List implements employee.EmployeeService.
func (e *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeesResponse, error) {
	filter.Normalize()

	employees, total, err := e.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return employee.ListEmployeesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Employees:  responses,
	}, nil
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:           emp.ID,
		FullName:     emp.FullName,
		Email:        emp.Email,
		EmployeeCode: emp.EmployeeCode,
		Department:   emp.Department,
		Role:         string(emp.Role),
		LocationID:   emp.LocationID,
		IsActive:     emp.IsActive,
		CreatedAt:    emp.CreatedAt.Format(time.RFC3339),
	}
}
