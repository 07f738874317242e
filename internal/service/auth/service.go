package auth

import (
	"context"
	"errors"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/auth"
	"github.com/geoattend/attendance-backend-go/internal/domain/employee"
	"github.com/geoattend/attendance-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwt.Service
	now func() time.Time
}

func NewAuthService(employeeRepo employee.EmployeeRepository, jwtService jwt.Service) *AuthServiceImpl {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepo,
		Service:            jwtService,
		now:                time.Now,
	}
}

// Login implements auth.AuthService. Unknown email and wrong password both
// collapse into ErrInvalidCredentials so the response does not leak which.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if emp.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if !emp.IsActive {
		return auth.TokenResponse{}, employee.ErrEmployeeInactive
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken: token,
		ExpiresIn:   expiresAt - a.now().Unix(),
		Profile:     mapEmployeeToProfile(emp),
	}, nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, employeeID string) (auth.Profile, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return auth.Profile{}, err
	}

	return mapEmployeeToProfile(emp), nil
}

func mapEmployeeToProfile(emp employee.Employee) auth.Profile {
	return auth.Profile{
		EmployeeID:   emp.ID,
		FullName:     emp.FullName,
		Email:        emp.Email,
		EmployeeCode: emp.EmployeeCode,
		Department:   emp.Department,
		Role:         string(emp.Role),
		LocationID:   emp.LocationID,
	}
}
