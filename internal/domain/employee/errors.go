package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeCodeExists   = errors.New("employee code already exists")
	ErrEmailExists          = errors.New("email already registered")
	ErrNoLocationAssigned   = errors.New("no location assigned, please contact your administrator")
	ErrEmployeeInactive     = errors.New("employee account is inactive")
	ErrAdminPrivilegeNeeded = errors.New("admin privilege required")
)
