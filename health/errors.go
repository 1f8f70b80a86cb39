package health

import "errors"

var (
	// ErrCheckFailed indicates a health check failed.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrNilSource indicates a CapacityChecker was built without a size source.
	ErrNilSource = errors.New("health: size source is nil")
)
