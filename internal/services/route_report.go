package services

import (
	"fmt"

	"waste-route-service/internal/domain"
)

// Standalone route query from the depot, used for reporting.
// For longest-path reports Heuristic is true and Route may be nil even when
// Distance is set, because estimator parent chains can loop.
type RouteReport struct {
	From       string
	To         string
	Distance   int
	Route      []string
	TravelTime domain.TravelTime
	Heuristic  bool
}

// ShortestRoute reports the shortest route from the depot to the named area.
func (r *Registry) ShortestRoute(to string) (*RouteReport, error) {
	dest, ok := r.graph.Index(to)
	if !ok {
		return nil, fmt.Errorf("shortest route to %q: %w", to, domain.ErrUnknownArea)
	}

	tree := ShortestPaths(r.graph, r.depot)
	if !tree.Reachable(dest) {
		return nil, fmt.Errorf("shortest route %q -> %q: %w", r.Depot(), to, domain.ErrNoRoute)
	}

	return &RouteReport{
		From:       r.Depot(),
		To:         r.graph.Name(dest),
		Distance:   tree.Distance[dest],
		Route:      Reconstruct(r.graph, tree, dest),
		TravelTime: domain.NewTravelTime(float64(tree.Distance[dest]) / r.speed),
	}, nil
}

// LongestRoute reports the longest-path estimate from the depot. See LongestPaths.
func (r *Registry) LongestRoute(to string) (*RouteReport, error) {
	dest, ok := r.graph.Index(to)
	if !ok {
		return nil, fmt.Errorf("longest route to %q: %w", to, domain.ErrUnknownArea)
	}

	tree := LongestPaths(r.graph, r.depot)
	if !tree.Reachable(dest) {
		return nil, fmt.Errorf("longest route %q -> %q: %w", r.Depot(), to, domain.ErrNoRoute)
	}

	return &RouteReport{
		From:       r.Depot(),
		To:         r.graph.Name(dest),
		Distance:   tree.Distance[dest],
		Route:      Reconstruct(r.graph, tree, dest),
		TravelTime: domain.NewTravelTime(float64(tree.Distance[dest]) / r.speed),
		Heuristic:  true,
	}, nil
}
