package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Collection vehicle registered with the fleet.
// Mileage is distance units per fuel unit (km/l). Allotted is set only by the
// allocation registry and is never released.
type Vehicle struct {
	Model        string
	LoadCapacity int
	Mileage      float64
	Allotted     bool
}

func NewVehicle(model string, capacity int, mileage float64) (*Vehicle, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("new vehicle: model must be non-empty")
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("new vehicle %q: load capacity must be positive, got %d", model, capacity)
	}
	if mileage <= 0 {
		return nil, fmt.Errorf("new vehicle %q: mileage must be positive, got %g", model, mileage)
	}

	return &Vehicle{Model: model, LoadCapacity: capacity, Mileage: mileage}, nil
}

// Fits reports whether the vehicle can take a task of the given quantity right now.
func (v *Vehicle) Fits(quantity int) bool {
	return !v.Allotted && v.LoadCapacity >= quantity
}

// Driver registered with the fleet.
type Driver struct {
	Name     string
	Age      int
	Address  string
	Allotted bool
}

func NewDriver(name string, age int, address string) (*Driver, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("new driver: name must be non-empty")
	}
	if age <= 0 {
		return nil, fmt.Errorf("new driver %q: age must be positive, got %d", name, age)
	}

	return &Driver{Name: name, Age: age, Address: strings.TrimSpace(address)}, nil
}

// Pending waste-collection job: Quantity is the load capacity it requires.
type WasteTask struct {
	Area     string
	Quantity int
}

func (t WasteTask) Validate() error {
	if strings.TrimSpace(t.Area) == "" {
		return errors.New("waste task: area must be non-empty")
	}
	if t.Quantity <= 0 {
		return fmt.Errorf("waste task %q: quantity must be positive, got %d", t.Area, t.Quantity)
	}
	return nil
}
