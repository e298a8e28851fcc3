package geo

import "errors"

var (
	// ErrUnknownType is matched by every *UnknownTypeError.
	ErrUnknownType = errors.New("unknown geometry type")

	// ErrMissingCapability is returned when a value does not implement Provider.
	ErrMissingCapability = errors.New("value does not implement the geo interface")

	// ErrInvalidCoordinates is returned for coordinate trees that do not fit the kind.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// UnknownTypeError carries a geometry type name that matched no kind.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return "unknown geometry type: " + e.Type
}

// Is matches ErrUnknownType.
func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}
