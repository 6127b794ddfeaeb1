package services

import (
	"slices"

	"waste-route-service/internal/domain"
)

// Reconstruct walks parent pointers from dest back to the root and returns the
// area names from root to dest.
//
// It returns nil when dest is out of range or holds a sentinel distance, and
// also when the parent chain does not terminate within |V| steps.
func Reconstruct(g *domain.AreaGraph, tree *PathTree, dest int) []string {
	if tree == nil || !tree.Reachable(dest) {
		return nil
	}

	n := len(tree.Parent)
	path := make([]string, 0, 8)
	for at, steps := dest, 0; at != NoParent; at = tree.Parent[at] {
		if steps == n || at < 0 || at >= n {
			return nil
		}
		path = append(path, g.Name(at))
		steps++
	}

	slices.Reverse(path)
	return path
}
