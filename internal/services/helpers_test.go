package services

import (
	"strconv"
	"testing"

	"waste-route-service/internal/domain"
	"waste-route-service/internal/platform/logging"
)

var belgaumAreas = []string{
	"Kanabargi", "Belgaum", "Shivaji Nagar", "Tilakwadi", "Chennamma Nagar",
	"Gandhinagar", "APMC Yard", "City Market", "Fort Road", "Engg College Road",
	"Khanapur Road", "Udyambag", "Bogarves", "Goaves", "Hindwadi",
	"Mache", "Malmaruti", "Nemgoa", "Shahpur", "Sambhaji Nagar",
	"Angol", "Balekundri", "Camp", "Dharamnath", "Fort Lake",
}

// belgaumGraph builds the production service-area graph.
func belgaumGraph(t *testing.T) *domain.AreaGraph {
	t.Helper()

	links := [][3]int{
		{0, 1, 10}, {0, 2, 15}, {0, 4, 20},
		{1, 3, 25}, {1, 5, 15},
		{2, 3, 10}, {2, 6, 20},
		{3, 7, 30},
		{4, 5, 25}, {4, 8, 15},
		{5, 9, 10},
		{6, 10, 25}, {7, 11, 15}, {8, 12, 20}, {9, 13, 30},
		{10, 14, 35}, {11, 15, 20}, {12, 16, 10}, {13, 17, 25},
		{14, 18, 15}, {15, 19, 10}, {16, 20, 30}, {17, 21, 15},
		{18, 22, 20}, {19, 23, 25}, {20, 24, 20},
	}

	edges := make([]domain.Edge, 0, len(links))
	for _, l := range links {
		edges = append(edges, domain.Edge{From: belgaumAreas[l[0]], To: belgaumAreas[l[1]], Weight: l[2]})
	}

	g, err := domain.NewAreaGraph(belgaumAreas, edges)
	if err != nil {
		t.Fatalf("build belgaum graph: %v", err)
	}
	return g
}

func mustGraph(t *testing.T, names []string, edges ...domain.Edge) *domain.AreaGraph {
	t.Helper()

	g, err := domain.NewAreaGraph(names, edges)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	return g
}

func newTestRegistry(t *testing.T, g *domain.AreaGraph, opts ...RegistryOption) *Registry {
	t.Helper()

	n := 0
	base := []RegistryOption{
		WithLogger(logging.Discard()),
		WithIDGenerator(func() string {
			n++
			return "alloc-" + strconv.Itoa(n)
		}),
	}

	r, err := NewRegistry(g, append(base, opts...)...)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return r
}

func mustAddVehicle(t *testing.T, r *Registry, model string, capacity int, mileage float64) {
	t.Helper()
	if err := r.AddVehicle(domain.Vehicle{Model: model, LoadCapacity: capacity, Mileage: mileage}); err != nil {
		t.Fatalf("add vehicle: %v", err)
	}
}

func mustAddDriver(t *testing.T, r *Registry, name string) {
	t.Helper()
	if err := r.AddDriver(domain.Driver{Name: name, Age: 30, Address: "Gokak"}); err != nil {
		t.Fatalf("add driver: %v", err)
	}
}
