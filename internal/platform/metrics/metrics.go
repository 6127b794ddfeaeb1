package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"waste-route-service/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector groups the service metrics on a dedicated registry.
// All methods are safe on a nil *Collector, which disables metrics.
type Collector struct {
	Registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	Allocations     *prometheus.CounterVec
	RouteDistance   prometheus.Histogram
	FuelRequired    prometheus.Histogram
	LedgerRecords   prometheus.Gauge
	PersistFailures prometheus.Counter
}

func New(namespace string) *Collector {
	c := &Collector{
		Registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests."},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
			[]string{"method", "path"},
		),
		Allocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "allocations_total", Help: "Allocation attempts by result."},
			[]string{"result"},
		),
		RouteDistance: prometheus.NewHistogram(
			prometheus.HistogramOpts{Namespace: namespace, Name: "route_distance_km", Help: "Planned route distance of successful allocations.", Buckets: []float64{10, 25, 50, 75, 100, 150, 200}},
		),
		FuelRequired: prometheus.NewHistogram(
			prometheus.HistogramOpts{Namespace: namespace, Name: "fuel_required_liters", Help: "Fuel required by successful allocations.", Buckets: []float64{1, 2, 5, 10, 15, 20, 30}},
		),
		LedgerRecords: prometheus.NewGauge(
			prometheus.GaugeOpts{Namespace: namespace, Name: "ledger_records", Help: "Records currently held in the in-memory ledger."},
		),
		PersistFailures: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "ledger_persist_failures_total", Help: "Allocation records that could not be persisted."},
		),
	}

	c.Registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.Allocations,
		c.RouteDistance,
		c.FuelRequired,
		c.LedgerRecords,
		c.PersistFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})
}

// ObserveAllocation records one allocation attempt. ledgerSize is the number of
// records held after the attempt.
func (c *Collector) ObserveAllocation(rec *domain.AllocationRecord, err error, ledgerSize int) {
	if c == nil {
		return
	}

	c.Allocations.WithLabelValues(allocationResult(err)).Inc()
	c.LedgerRecords.Set(float64(ledgerSize))
	if err == nil && rec != nil {
		c.RouteDistance.Observe(float64(rec.Distance))
		c.FuelRequired.Observe(rec.FuelRequired)
	}
}

func (c *Collector) ObservePersistFailure() {
	if c == nil {
		return
	}
	c.PersistFailures.Inc()
}

func (c *Collector) ObserveHTTP(method, path string, status int, dur time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, path).Observe(dur.Seconds())
}

func allocationResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, domain.ErrUnknownArea):
		return "unknown_area"
	case errors.Is(err, domain.ErrUnknownTask):
		return "unknown_task"
	case errors.Is(err, domain.ErrNoSuitableVehicle):
		return "no_vehicle"
	case errors.Is(err, domain.ErrNoDriver):
		return "no_driver"
	case errors.Is(err, domain.ErrNoRoute):
		return "no_route"
	default:
		return "error"
	}
}
