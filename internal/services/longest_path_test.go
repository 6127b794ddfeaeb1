package services

import (
	"slices"
	"testing"

	"waste-route-service/internal/domain"
)

// The estimator is a heuristic. These tests pin its exact output on small
// graphs so that changes to traversal order are deliberate, and they document
// the ways the estimate departs from a true longest simple path.

func TestLongestPathsOnPathGraphBouncesBack(t *testing.T) {
	g := mustGraph(t, []string{"A", "B", "C"},
		domain.Edge{From: "A", To: "B", Weight: 3},
		domain.Edge{From: "B", To: "C", Weight: 4},
	)

	tree := LongestPaths(g, 0)

	// The true longest simple paths from A are B=3 and C=7. Relaxation runs in
	// both directions, so B is revisited from C and the source is overwritten.
	if !slices.Equal(tree.Distance, []int{6, 11, 7}) {
		t.Fatalf("distance = %v, want [6 11 7]", tree.Distance)
	}
	if !slices.Equal(tree.Parent, []int{1, 2, 1}) {
		t.Fatalf("parent = %v, want [1 2 1]", tree.Parent)
	}

	// B <-> C parent cycle: no route can be reconstructed.
	if route := Reconstruct(g, tree, 2); route != nil {
		t.Fatalf("route = %v, want nil for cyclic parents", route)
	}
}

func TestLongestPathsOnTriangle(t *testing.T) {
	g := mustGraph(t, []string{"A", "B", "C"},
		domain.Edge{From: "A", To: "B", Weight: 1},
		domain.Edge{From: "B", To: "C", Weight: 1},
		domain.Edge{From: "A", To: "C", Weight: 10},
	)

	tree := LongestPaths(g, 0)

	if !slices.Equal(tree.Distance, []int{12, 3, 22}) {
		t.Fatalf("distance = %v, want [12 3 22]", tree.Distance)
	}
	if !slices.Equal(tree.Parent, []int{2, 2, 0}) {
		t.Fatalf("parent = %v, want [2 2 0]", tree.Parent)
	}
}

func TestLongestPathsDependsOnTraversalOrder(t *testing.T) {
	g := mustGraph(t, []string{"A", "B", "C"},
		domain.Edge{From: "A", To: "B", Weight: 3},
		domain.Edge{From: "B", To: "C", Weight: 4},
	)

	// Starting at C: the walk begins at A (index order) while A and B are
	// still unexplored, so A is never reached even though it is connected.
	tree := LongestPaths(g, 2)

	if tree.Distance[0] != Unexplored || tree.Reachable(0) {
		t.Fatalf("distance[A] = %d, want Unexplored", tree.Distance[0])
	}
	if tree.Distance[1] != 4 || tree.Parent[1] != 2 {
		t.Fatalf("B = (%d, %d), want (4, 2)", tree.Distance[1], tree.Parent[1])
	}
	if tree.Distance[2] != 0 {
		t.Fatalf("distance[C] = %d, want 0", tree.Distance[2])
	}

	if route := Reconstruct(g, tree, 1); !slices.Equal(route, []string{"C", "B"}) {
		t.Fatalf("route = %v, want [C B]", route)
	}
}

func TestLongestPathsIsolatedAndInvalid(t *testing.T) {
	g := mustGraph(t, []string{"A", "B", "Island"}, domain.Edge{From: "A", To: "B", Weight: 2})

	tree := LongestPaths(g, 0)
	if tree.Reachable(2) || tree.Parent[2] != NoParent {
		t.Fatalf("island should remain unexplored: (%d, %d)", tree.Distance[2], tree.Parent[2])
	}

	tree = LongestPaths(g, -1)
	for i, d := range tree.Distance {
		if d != Unexplored {
			t.Fatalf("distance[%d] = %d, want Unexplored for invalid source", i, d)
		}
	}
}

func TestLongestPathsNeverBelowShortest(t *testing.T) {
	g := belgaumGraph(t)

	longest := LongestPaths(g, 0)
	shortest := ShortestPaths(g, 0)

	for v := range g.Len() {
		if !longest.Reachable(v) {
			t.Fatalf("area %q not reached from the depot", g.Name(v))
		}
		if longest.Distance[v] < shortest.Distance[v] {
			t.Fatalf("area %q: longest %d < shortest %d", g.Name(v), longest.Distance[v], shortest.Distance[v])
		}
	}

	again := LongestPaths(g, 0)
	if !slices.Equal(longest.Distance, again.Distance) {
		t.Fatalf("estimator is not deterministic for a fixed graph")
	}
}
