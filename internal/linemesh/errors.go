package linemesh

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewPoints is matched by every ValidationError.
	ErrTooFewPoints = errors.New("linemesh: too few points")

	// ErrPointCountChanged is returned by the in-place update paths when the
	// new control points do not match the topology of the existing mesh.
	ErrPointCountChanged = errors.New("linemesh: point count changed")
)

// ValidationError reports a polyline that is too short to build.
type ValidationError struct {
	Got int
	Min int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("linemesh: need at least %d points, got %d", e.Min, e.Got)
}

func (e *ValidationError) Unwrap() error {
	return ErrTooFewPoints
}
