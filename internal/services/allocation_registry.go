package services

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"waste-route-service/internal/domain"

	"github.com/google/uuid"
)

const (
	// DefaultDepot is the origin of every planned route when present in the graph.
	DefaultDepot = "Kanabargi"
	// DefaultAverageSpeed is the fixed travel speed in distance units per hour.
	DefaultAverageSpeed = 40.0
)

// Registry owns the fleet inventory, the pending waste tasks and the
// allocation ledger, and matches tasks to vehicles and drivers.
//
// A Registry is not safe for concurrent use; callers serialise access
// (see Dispatcher).
type Registry struct {
	graph    *domain.AreaGraph
	depot    int
	speed    float64
	vehicles []*domain.Vehicle
	drivers  []*domain.Driver
	tasks    []domain.WasteTask
	ledger   *domain.Ledger
	logger   *slog.Logger
	newID    func() string
}

type RegistryOption func(*Registry) error

// WithDepot sets the route origin by area name.
func WithDepot(name string) RegistryOption {
	return func(r *Registry) error {
		i, ok := r.graph.Index(name)
		if !ok {
			return fmt.Errorf("depot %q: %w", name, domain.ErrUnknownArea)
		}
		r.depot = i
		return nil
	}
}

// WithAverageSpeed sets the speed used for travel-time estimates.
func WithAverageSpeed(speed float64) RegistryOption {
	return func(r *Registry) error {
		if speed <= 0 {
			return fmt.Errorf("average speed must be positive, got %g", speed)
		}
		r.speed = speed
		return nil
	}
}

func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) error {
		if l != nil {
			r.logger = l
		}
		return nil
	}
}

// WithIDGenerator replaces the uuid-based allocation id generator.
func WithIDGenerator(fn func() string) RegistryOption {
	return func(r *Registry) error {
		if fn != nil {
			r.newID = fn
		}
		return nil
	}
}

func NewRegistry(g *domain.AreaGraph, opts ...RegistryOption) (*Registry, error) {
	if g == nil {
		return nil, errors.New("new registry: area graph must be non-nil")
	}

	r := &Registry{
		graph:  g,
		speed:  DefaultAverageSpeed,
		ledger: domain.NewLedger(),
		logger: slog.Default(),
		newID:  uuid.NewString,
	}
	if i, ok := g.Index(DefaultDepot); ok {
		r.depot = i
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("new registry: %w", err)
		}
	}

	return r, nil
}

func (r *Registry) Graph() *domain.AreaGraph { return r.graph }

// Depot returns the name of the route origin.
func (r *Registry) Depot() string { return r.graph.Name(r.depot) }

func (r *Registry) AverageSpeed() float64 { return r.speed }

func (r *Registry) AddVehicle(v domain.Vehicle) error {
	nv, err := domain.NewVehicle(v.Model, v.LoadCapacity, v.Mileage)
	if err != nil {
		return fmt.Errorf("add vehicle: %w", err)
	}
	r.vehicles = append(r.vehicles, nv)
	return nil
}

func (r *Registry) AddDriver(d domain.Driver) error {
	nd, err := domain.NewDriver(d.Name, d.Age, d.Address)
	if err != nil {
		return fmt.Errorf("add driver: %w", err)
	}
	r.drivers = append(r.drivers, nd)
	return nil
}

// AddTask registers a pending waste task. The area is not resolved here:
// tasks for unknown areas are accepted and fail at allocation time.
func (r *Registry) AddTask(t domain.WasteTask) error {
	t.Area = strings.TrimSpace(t.Area)
	if err := t.Validate(); err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	r.tasks = append(r.tasks, t)
	return nil
}

// Allocate matches task to a vehicle and a driver for date, plans the route
// from the depot and appends the result to the ledger.
//
//  1. date must be dd/mm/yyyy (ErrInvalidDate)
//  2. the task area must exist in the graph (ErrUnknownArea)
//  3. first-fit: the first unallotted vehicle with enough capacity, in
//     registration order (ErrNoSuitableVehicle)
//  4. the first registered driver, whether or not already allotted (ErrNoDriver
//     if none)
//  5. shortest path from the depot (ErrNoRoute if unreachable)
//
// Nothing is mutated until every step has succeeded, so a failed allocation
// leaves the fleet and the ledger untouched. Failures are *domain.AllocationError.
func (r *Registry) Allocate(task domain.WasteTask, date string) (*domain.AllocationRecord, error) {
	fail := func(kind error) error {
		return &domain.AllocationError{Kind: kind, Area: task.Area, Date: date, Quantity: task.Quantity}
	}

	if err := domain.ValidateDate(date); err != nil {
		return nil, fail(domain.ErrInvalidDate)
	}

	dest, ok := r.graph.Index(task.Area)
	if !ok {
		return nil, fail(domain.ErrUnknownArea)
	}

	vehicle := r.firstFitVehicle(task.Quantity)
	if vehicle == nil {
		return nil, fail(domain.ErrNoSuitableVehicle)
	}

	if len(r.drivers) == 0 {
		return nil, fail(domain.ErrNoDriver)
	}
	// Always the first driver: a known limitation kept for parity.
	driver := r.drivers[0]

	tree := ShortestPaths(r.graph, r.depot)
	if !tree.Reachable(dest) {
		return nil, fail(domain.ErrNoRoute)
	}

	route := Reconstruct(r.graph, tree, dest)
	distance := tree.Distance[dest]

	rec := domain.AllocationRecord{
		ID:           r.newID(),
		Date:         date,
		VehicleModel: vehicle.Model,
		DriverName:   driver.Name,
		WasteArea:    r.graph.Name(dest),
		Distance:     distance,
		FuelRequired: float64(distance) / vehicle.Mileage,
		TravelTime:   domain.NewTravelTime(float64(distance) / r.speed),
		Route:        route,
	}

	if driver.Allotted {
		r.logger.Warn("driver reassigned while already allotted",
			"driver", driver.Name, "vehicle", vehicle.Model, "date", date)
	}

	vehicle.Allotted = true
	driver.Allotted = true
	r.ledger.Append(date, rec)

	r.logger.Info("vehicle allotted",
		"id", rec.ID,
		"vehicle", rec.VehicleModel,
		"driver", rec.DriverName,
		"area", rec.WasteArea,
		"date", date,
		"distance", rec.Distance,
		"fuel", rec.FuelRequired,
	)

	out := rec
	out.Route = slices.Clone(rec.Route)
	return &out, nil
}

// AllocateTask allocates the registered task at the zero-based index.
func (r *Registry) AllocateTask(index int, date string) (*domain.AllocationRecord, error) {
	if index < 0 || index >= len(r.tasks) {
		return nil, &domain.AllocationError{Kind: domain.ErrUnknownTask, Date: date}
	}
	return r.Allocate(r.tasks[index], date)
}

func (r *Registry) firstFitVehicle(quantity int) *domain.Vehicle {
	for _, v := range r.vehicles {
		if v.Fits(quantity) {
			return v
		}
	}
	return nil
}

// Vehicles returns a snapshot of every vehicle in registration order.
func (r *Registry) Vehicles() []domain.Vehicle {
	out := make([]domain.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		out = append(out, *v)
	}
	return out
}

// Drivers returns a snapshot of every driver in registration order.
func (r *Registry) Drivers() []domain.Driver {
	out := make([]domain.Driver, 0, len(r.drivers))
	for _, d := range r.drivers {
		out = append(out, *d)
	}
	return out
}

func (r *Registry) Tasks() []domain.WasteTask {
	return slices.Clone(r.tasks)
}

func (r *Registry) AvailableVehicles() []domain.Vehicle {
	out := make([]domain.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		if !v.Allotted {
			out = append(out, *v)
		}
	}
	return out
}

func (r *Registry) AvailableDrivers() []domain.Driver {
	out := make([]domain.Driver, 0, len(r.drivers))
	for _, d := range r.drivers {
		if !d.Allotted {
			out = append(out, *d)
		}
	}
	return out
}

// Ledger returns a deep copy of the allocation ledger.
func (r *Registry) Ledger() *domain.Ledger {
	return r.ledger.Clone()
}
