package api

import (
	"log/slog"
	"net/http"

	"waste-route-service/internal/api/handlers"
	"waste-route-service/internal/platform/metrics"
	"waste-route-service/internal/services"
)

// Dependencies of the HTTP API. Metrics may be nil; RateLimit 0 disables
// rate limiting.
type Deps struct {
	Dispatcher *services.Dispatcher
	Metrics    *metrics.Collector
	Logger     *slog.Logger
	ExportPath string
	RateLimit  float64
	Burst      int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	areaHandler := &handlers.AreaHandler{Dispatcher: d.Dispatcher}
	routeHandler := &handlers.RouteHandler{Dispatcher: d.Dispatcher}
	fleetHandler := &handlers.FleetHandler{Dispatcher: d.Dispatcher}
	allocHandler := &handlers.AllocationHandler{Dispatcher: d.Dispatcher}
	ledgerHandler := &handlers.LedgerHandler{Dispatcher: d.Dispatcher, ExportPath: d.ExportPath}

	routes := map[string]http.HandlerFunc{
		"/health":          handlers.Health,
		"/areas":           areaHandler.List,
		"/routes/shortest": routeHandler.Shortest,
		"/routes/longest":  routeHandler.Longest,
		"/fleet/vehicles":  fleetHandler.Vehicles,
		"/fleet/drivers":   fleetHandler.Drivers,
		"/fleet/available": fleetHandler.Available,
		"/tasks":           fleetHandler.Tasks,
		"/allocations":     allocHandler.Serve,
		"/ledger/export":   ledgerHandler.Export,
		"/ledger/file":     ledgerHandler.File,
	}

	known := make(map[string]bool, len(routes)+1)
	for path, h := range routes {
		mux.HandleFunc(path, h)
		known[path] = true
	}
	if d.Metrics != nil {
		mux.Handle("/metrics", d.Metrics.Handler())
		known["/metrics"] = true
	}

	var h http.Handler = mux
	if d.RateLimit > 0 {
		exempt := map[string]bool{"/health": true, "/metrics": true}
		h = rateLimitMiddleware(newIPRateLimiter(d.RateLimit, d.Burst), exempt)(h)
	}
	h = loggingMiddleware(logger, d.Metrics, known)(h)
	return requestIDMiddleware(h)
}
