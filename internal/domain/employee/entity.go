package employee

import "time"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

type Employee struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash *string
	EmployeeCode string
	Department   string
	Role         Role

	// LocationID is the geofenced site this employee checks in against.
	LocationID *string

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
