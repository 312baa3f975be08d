package catalog

import "errors"

// Registry errors.
var (
	// ErrDuplicateName is returned when registering a name twice.
	ErrDuplicateName = errors.New("operation already registered")

	// ErrNameEmpty is returned when a descriptor has no name.
	ErrNameEmpty = errors.New("operation name cannot be empty")

	// ErrCapabilityNil is returned when a descriptor has no capability.
	ErrCapabilityNil = errors.New("operation capability cannot be nil")

	// ErrOptionalExceedsParams is returned when more parameters are marked
	// optional than exist.
	ErrOptionalExceedsParams = errors.New("optional count exceeds parameter count")
)
