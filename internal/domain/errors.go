package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownArea       = errors.New("unknown area")
	ErrNoSuitableVehicle = errors.New("no suitable vehicle available")
	ErrNoRoute           = errors.New("no route to destination")
	ErrInvalidDate       = errors.New("invalid date")
	ErrNoDriver          = errors.New("no driver registered")
	ErrUnknownTask       = errors.New("unknown waste task")
)

// Failed allocation. Kind is one of the sentinel errors above, so callers
// can use errors.Is(err, domain.ErrNoRoute) and friends.
type AllocationError struct {
	Kind     error
	Area     string
	Date     string
	Quantity int
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocate area=%q quantity=%d date=%q: %v", e.Area, e.Quantity, e.Date, e.Kind)
}

func (e *AllocationError) Unwrap() error { return e.Kind }
