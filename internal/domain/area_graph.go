package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Undirected road segment between two service areas.
// Weight is the travel distance and must be positive.
type Edge struct {
	From   string
	To     string
	Weight int
}

// One adjacency entry of an area.
type Neighbor struct {
	Index  int
	Weight int
}

// Static, undirected, weighted graph over a fixed set of named service areas.
// An AreaGraph is built once from configuration and never mutated afterwards.
type AreaGraph struct {
	names []string
	index map[string]int
	adj   [][]Neighbor
}

// NewAreaGraph validates the area names and edges and builds the adjacency table.
//
// Each edge is inserted in both directions in the order given, so neighbour
// order follows the configuration. Listing the same pair twice with the same
// weight is tolerated (adjacency tables usually repeat every edge from both
// ends); a conflicting weight is rejected.
func NewAreaGraph(names []string, edges []Edge) (*AreaGraph, error) {
	if len(names) == 0 {
		return nil, errors.New("new area graph: at least one area is required")
	}

	g := &AreaGraph{
		names: make([]string, 0, len(names)),
		index: make(map[string]int, len(names)),
		adj:   make([][]Neighbor, len(names)),
	}

	for i, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, fmt.Errorf("new area graph: area #%d has an empty name", i+1)
		}
		if _, ok := g.index[n]; ok {
			return nil, fmt.Errorf("new area graph: duplicate area %q", n)
		}
		g.index[n] = i
		g.names = append(g.names, n)
	}

	seen := make(map[[2]int]int, len(edges))
	for i, e := range edges {
		from, ok := g.index[strings.TrimSpace(e.From)]
		if !ok {
			return nil, fmt.Errorf("new area graph: edge #%d: unknown area %q", i+1, e.From)
		}
		to, ok := g.index[strings.TrimSpace(e.To)]
		if !ok {
			return nil, fmt.Errorf("new area graph: edge #%d: unknown area %q", i+1, e.To)
		}
		if from == to {
			return nil, fmt.Errorf("new area graph: edge #%d: self-loop on %q", i+1, e.From)
		}
		if e.Weight <= 0 {
			return nil, fmt.Errorf("new area graph: edge #%d %q-%q: weight must be positive, got %d", i+1, e.From, e.To, e.Weight)
		}

		key := [2]int{min(from, to), max(from, to)}
		if w, ok := seen[key]; ok {
			if w != e.Weight {
				return nil, fmt.Errorf(
					"new area graph: edge %q-%q listed with conflicting weights %d and %d",
					e.From, e.To, w, e.Weight,
				)
			}
			continue
		}
		seen[key] = e.Weight

		g.adj[from] = append(g.adj[from], Neighbor{Index: to, Weight: e.Weight})
		g.adj[to] = append(g.adj[to], Neighbor{Index: from, Weight: e.Weight})
	}

	return g, nil
}

// Index resolves an area name. Unknown names report false, never a default index.
func (g *AreaGraph) Index(name string) (int, bool) {
	i, ok := g.index[strings.TrimSpace(name)]
	return i, ok
}

// Name returns the area name at index i, or "" for an invalid index.
func (g *AreaGraph) Name(i int) string {
	if i < 0 || i >= len(g.names) {
		return ""
	}
	return g.names[i]
}

// Neighbors returns the adjacency of area i in configuration order.
// The returned slice must not be modified.
func (g *AreaGraph) Neighbors(i int) []Neighbor {
	if i < 0 || i >= len(g.adj) {
		return nil
	}
	return g.adj[i]
}

func (g *AreaGraph) Len() int { return len(g.names) }

// Names returns a copy of all area names ordered by index.
func (g *AreaGraph) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// EdgeCount returns the number of undirected edges.
func (g *AreaGraph) EdgeCount() int {
	n := 0
	for _, nb := range g.adj {
		n += len(nb)
	}
	return n / 2
}
