package server

import (
	"errors"
	"fmt"
)

// ErrInvalidInput indicates a malformed query parameter.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError represents a rejected query parameter
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
