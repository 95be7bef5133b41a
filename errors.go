package papercraft

import (
	"errors"
	"fmt"
)

// Contract violations from the face-record producer. Geometric degeneracy is
// never reported through these; it becomes a Skip instead.
var (
	// ErrSurfaceMismatch means a record's params variant does not match its
	// surface type.
	ErrSurfaceMismatch = errors.New("papercraft: surface params do not match surface type")

	// ErrMissingBoundary means a record has no boundary loops at all.
	ErrMissingBoundary = errors.New("papercraft: face has no boundary loops")

	// ErrUnknownSurface means a surface type outside Plane/Cylinder/Cone/Other.
	ErrUnknownSurface = errors.New("papercraft: unknown surface type")

	// ErrInvalidConfig is wrapped by Config.Validate failures.
	ErrInvalidConfig = errors.New("papercraft: invalid config")
)

// RecordError ties a contract violation to the offending face.
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("face %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
