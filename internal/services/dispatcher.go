package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"waste-route-service/internal/domain"
	"waste-route-service/internal/platform/metrics"
	"waste-route-service/internal/platform/obs"
	"waste-route-service/internal/ports"
)

// ErrNotPersisted wraps repository failures after an allocation was already
// committed to the in-memory ledger.
var ErrNotPersisted = errors.New("allocation committed but not persisted")

// AllocationRequest is either an ad-hoc task (Area, Quantity) or a registered
// task (TaskIndex, zero-based, when HasTaskIndex is set).
type AllocationRequest struct {
	Area         string
	Quantity     int
	TaskIndex    int
	HasTaskIndex bool
	Date         string
}

// Dispatcher serialises access to a Registry so it can be shared by
// concurrent HTTP handlers, and mirrors committed records into an optional
// LedgerRepository.
type Dispatcher struct {
	mu       sync.Mutex
	registry *Registry
	repo     ports.LedgerRepository
	metrics  *metrics.Collector
	logger   *slog.Logger
}

// NewDispatcher wraps registry. repo and m may be nil.
func NewDispatcher(registry *Registry, repo ports.LedgerRepository, m *metrics.Collector, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{registry: registry, repo: repo, metrics: m, logger: logger}
}

// Allocate runs one allocation. When the record is committed but the
// repository append fails, both the record and an ErrNotPersisted error are
// returned.
func (d *Dispatcher) Allocate(ctx context.Context, req AllocationRequest) (_ *domain.AllocationRecord, err error) {
	defer obs.Time(ctx, "dispatcher.Allocate")(&err)

	d.mu.Lock()
	var rec *domain.AllocationRecord
	if req.HasTaskIndex {
		rec, err = d.registry.AllocateTask(req.TaskIndex, req.Date)
	} else {
		rec, err = d.registry.Allocate(domain.WasteTask{Area: req.Area, Quantity: req.Quantity}, req.Date)
	}
	size := d.registry.ledger.Len()
	d.mu.Unlock()

	d.metrics.ObserveAllocation(rec, err, size)
	if err != nil {
		return nil, err
	}

	if d.repo != nil {
		if perr := d.repo.Append(ctx, *rec); perr != nil {
			d.metrics.ObservePersistFailure()
			d.logger.Error("ledger persist failed", "req_id", obs.RequestID(ctx), "id", rec.ID, "date", rec.Date, "err", perr)
			return rec, fmt.Errorf("%w: %w", ErrNotPersisted, perr)
		}
	}

	return rec, nil
}

func (d *Dispatcher) ShortestRoute(to string) (*RouteReport, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.ShortestRoute(to)
}

func (d *Dispatcher) LongestRoute(to string) (*RouteReport, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.LongestRoute(to)
}

// Fleet is a consistent snapshot of the registry inventory.
type Fleet struct {
	Vehicles          []domain.Vehicle
	Drivers           []domain.Driver
	Tasks             []domain.WasteTask
	AvailableVehicles []domain.Vehicle
	AvailableDrivers  []domain.Driver
}

func (d *Dispatcher) Fleet() Fleet {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Fleet{
		Vehicles:          d.registry.Vehicles(),
		Drivers:           d.registry.Drivers(),
		Tasks:             d.registry.Tasks(),
		AvailableVehicles: d.registry.AvailableVehicles(),
		AvailableDrivers:  d.registry.AvailableDrivers(),
	}
}

func (d *Dispatcher) Ledger() *domain.Ledger {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.Ledger()
}

// Areas returns the immutable area graph and the depot name.
func (d *Dispatcher) Areas() (*domain.AreaGraph, string) {
	return d.registry.Graph(), d.registry.Depot()
}

// Repository returns the configured ledger repository, or nil.
func (d *Dispatcher) Repository() ports.LedgerRepository { return d.repo }
