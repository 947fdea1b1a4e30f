package contract

import (
	"errors"
	"fmt"
)

// ValidationError reports input that is out of range or not in a closed
// enumeration: a program rating outside [0,20], an area rank outside
// [1,4], or an unknown aggregation method. No partial computation
// proceeds past one.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// NotFoundError reports a referenced crew, member, itinerary or program
// that does not exist in the catalog.
type NotFoundError struct {
	Kind string
	ID   any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Kind, e.ID)
}

// ConflictError reports a competing recompute in flight for the same crew
// and year. Callers should retry; a stale run never silently overwrites a
// newer result.
type ConflictError struct {
	CrewID int64
	Year   int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("calculation already in flight for crew %d year %d", e.CrewID, e.Year)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
