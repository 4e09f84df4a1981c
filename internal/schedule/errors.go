package schedule

import (
	"errors"
	"fmt"
)

// Field names reported by ValidationError.
const (
	FieldCourses        = "courses"
	FieldAvailableHours = "availableHours"
)

var (
	// ErrNoCourses means the course list was empty after trimming and filtering.
	ErrNoCourses = errors.New("no courses provided")

	// ErrHoursOutOfRange means the hours value was not a number in [MinHours, MaxHours].
	ErrHoursOutOfRange = errors.New("hours out of range")

	// ErrMalformedOutput means the model answered without a usable schedule field.
	ErrMalformedOutput = errors.New("model output does not match schema")
)

// GenerationUnavailableMessage is the user-facing copy for every GenerationError.
const GenerationUnavailableMessage = "generation temporarily unavailable, try again later"

// ValidationError rejects user input before any model call is made.
type ValidationError struct {
	Field string
	Err   error // ErrNoCourses or ErrHoursOutOfRange
	Input string
}

func (e *ValidationError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Input, e.Err)
	}
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// GenerationError reports a failed model call or a non-conforming payload.
// Error() is deliberately generic; the cause is only reachable through Unwrap.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string { return GenerationUnavailableMessage }

func (e *GenerationError) Unwrap() error { return e.Cause }

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsGenerationError reports whether err is or wraps a *GenerationError.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}
