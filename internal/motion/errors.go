package motion

import "errors"

// Domain errors for generator construction.
var (
	// ErrUnknownBehavior indicates a behaviour name missing from the registry.
	ErrUnknownBehavior = errors.New("motion: unknown behavior")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("motion: parameter out of valid bounds")

	// ErrNoBehaviors indicates an empty set to pick from.
	ErrNoBehaviors = errors.New("motion: no behaviors to pick from")
)
