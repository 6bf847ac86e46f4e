package dal

import (
	"errors"
	"fmt"
)

// ErrVehicleNotFound is returned when a vehicle id is not part of the catalog.
var ErrVehicleNotFound = errors.New("vehicle not found")

// NotFoundError reports the id that was looked up.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("vehicle with ID %d not found", e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrVehicleNotFound
}
