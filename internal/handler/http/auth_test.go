package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geoattend/attendance-backend-go/internal/domain/auth"
	"github.com/geoattend/attendance-backend-go/internal/domain/employee"
	"github.com/geoattend/attendance-backend-go/internal/pkg/jwt"
	authService "github.com/geoattend/attendance-backend-go/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	handlerTestSecret    = "test-secret-key-for-jwt"
	handlerTestAccessExp = "1h"
)

type stubEmployeeRepo struct {
	byEmail map[string]employee.Employee
}

func (s *stubEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	s.byEmail[emp.Email] = emp
	return emp, nil
}

func (s *stubEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, emp := range s.byEmail {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	emp, ok := s.byEmail[email]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *stubEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (s *stubEmployeeRepo) Update(_ context.Context, emp employee.Employee) error {
	s.byEmail[emp.Email] = emp
	return nil
}

func createAuthHandler(t *testing.T) AuthHandler {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	passwordHash := string(hashed)

	repo := &stubEmployeeRepo{byEmail: map[string]employee.Employee{
		"asha@example.com": {
			ID:           "emp-1",
			FullName:     "Asha Verma",
			Email:        "asha@example.com",
			PasswordHash: &passwordHash,
			EmployeeCode: "EM1001",
			Department:   "Engineering",
			Role:         employee.RoleEmployee,
			IsActive:     true,
		},
	}}

	jwtSvc := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp)
	return NewAuthHandler(authService.NewAuthService(repo, jwtSvc))
}

func TestAuthHandler_Login_Success(t *testing.T) {
	handler := createAuthHandler(t)

	loginReq := auth.LoginRequest{
		Email:    "asha@example.com",
		Password: "password123",
	}
	body, _ := json.Marshal(loginReq)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.True(t, resp["success"].(bool))

	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])

	profile := data["profile"].(map[string]interface{})
	assert.Equal(t, "asha@example.com", profile["email"])
	assert.Equal(t, "employee", profile["role"])
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	handler := createAuthHandler(t)

	loginReq := auth.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrongpassword",
	}
	body, _ := json.Marshal(loginReq)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.False(t, resp["success"].(bool))
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	handler := createAuthHandler(t)

	loginReq := auth.LoginRequest{
		Email:    "nonexistent@example.com",
		Password: "password123",
	}
	body, _ := json.Marshal(loginReq)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	// Indistinguishable from a wrong password.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_InvalidJSON(t *testing.T) {
	handler := createAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("invalid json")))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_ValidationError(t *testing.T) {
	handler := createAuthHandler(t)

	loginReq := auth.LoginRequest{Email: "not-an-email", Password: ""}
	body, _ := json.Marshal(loginReq)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.False(t, resp["success"].(bool))

	errDetail := resp["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errDetail["code"])
}

func TestAuthHandler_ResponseFormat_Error(t *testing.T) {
	handler := createAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("invalid")))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Contains(t, resp, "success")
	assert.False(t, resp["success"].(bool))
}
