package http

import (
	"net/http"

	"github.com/geoattend/attendance-backend-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
)

// employeeIDFromRequest pulls the authenticated employee's ID out of the JWT
// claims. AuthRequired has already verified the token when this runs.
func employeeIDFromRequest(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	employeeID, ok := claims["employee_id"].(string)
	return employeeID, ok && employeeID != ""
}

func isAdminRequest(r *http.Request) bool {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return false
	}
	role, ok := claims["role"].(string)
	return ok && role == string(employee.RoleAdmin)
}
