package interpolate

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParameter reports a placeholder without a matching param.
	ErrMissingParameter = errors.New("interpolate: missing parameter")
	// ErrUnknownReference reports a "#id" reference to an unregistered id.
	ErrUnknownReference = errors.New("interpolate: unknown reference")
	// ErrReferenceCycle reports a reference chain deeper than the configured
	// bound, which is how cycles such as a -> #b -> #a surface.
	ErrReferenceCycle = errors.New("interpolate: reference depth exceeded")
)

// MissingParameterError names the placeholder that could not be resolved.
type MissingParameterError struct {
	Name     string
	Template string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("interpolate: missing parameter %q in %q", e.Name, e.Template)
}

func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

// ReferenceError names the reference target that is not registered.
type ReferenceError struct {
	ID       string
	Template string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("interpolate: bad source reference %q (no source %q)", e.Template, e.ID)
}

func (e *ReferenceError) Is(target error) bool {
	return target == ErrUnknownReference
}
