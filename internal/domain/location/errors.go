package location

import "errors"

// Location domain errors
var (
	ErrLocationNotFound   = errors.New("location not found")
	ErrLocationCodeExists = errors.New("location code already exists")
	ErrLocationInactive   = errors.New("location is inactive")

	// ErrLocationMisconfigured means the location has neither a usable
	// polygon boundary nor a positive radius. Evaluation must fail loudly
	// rather than treating the coordinate as outside.
	ErrLocationMisconfigured = errors.New("location has neither a usable boundary nor a positive radius")

	ErrDepartmentNotAllowed = errors.New("your department is not allowed at this location")
)
