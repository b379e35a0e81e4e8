package resolver

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSource reports a requested id that is not registered.
	ErrUnknownSource = errors.New("resolver: unknown source")
	// ErrInvalidSourceKind reports a source value that is none of the
	// supported variants, in practice a nil entry inside a List or Map.
	ErrInvalidSourceKind = errors.New("resolver: invalid source kind")
	// ErrEmptyRequest reports a zero Request.
	ErrEmptyRequest = errors.New("resolver: empty request")
)

// UnknownSourceError names the missing id.
type UnknownSourceError struct {
	ID string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("resolver: no such data source %q", e.ID)
}

func (e *UnknownSourceError) Is(target error) bool {
	return target == ErrUnknownSource
}
