package auth

import (
	"github.com/geoattend/attendance-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "a valid email is required",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TokenResponse struct {
	AccessToken string  `json:"access_token"`
	ExpiresIn   int64   `json:"expires_in"`
	Profile     Profile `json:"profile"`
}

type Profile struct {
	EmployeeID   string  `json:"employee_id"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	EmployeeCode string  `json:"employee_code"`
	Department   string  `json:"department"`
	Role         string  `json:"role"`
	LocationID   *string `json:"location_id,omitempty"`
}
