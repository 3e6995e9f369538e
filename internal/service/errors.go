package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation failed")
	ErrDuplicateApplication = errors.New("guide already applied to this trip")
	ErrAlreadyAssigned      = errors.New("guide is already assigned to this trip")
	ErrCapacityExceeded     = errors.New("trip guide capacity exceeded")
	ErrInvalidState         = errors.New("invalid state transition")
	ErrTripAlreadyStarted   = errors.New("trip has already started")
	ErrPersistence          = errors.New("persistence failure")
)

// persistErr wraps a storage failure so callers can match ErrPersistence
// while keeping the underlying cause in the message.
func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}

func validationErr(detail string) error {
	return fmt.Errorf("%w: %s", ErrValidation, detail)
}
