package services

import "waste-route-service/internal/domain"

// LongestPaths estimates "longest" distances from source with a depth-first
// relaxation: distance[v] = max(distance[v], distance[u]+w) along every edge
// visited by a DFS started from each unvisited node in index order.
//
// This is a best-effort heuristic, not a longest-path algorithm. Longest
// simple path is only well defined on a DAG and the area graph is undirected
// and cyclic, so the result depends on traversal order. Relaxation runs in
// both directions of every edge: distances bounce back along the edge they
// came from, the source itself may end up with a non-zero distance, and parent
// pointers may form cycles (Reconstruct returns nil for those). Treat the
// output as an estimate for reporting only.
//
// Nodes whose distance is still Unexplored do not relax their neighbours.
// The walk uses an explicit stack with the same visit order as the recursive
// formulation.
func LongestPaths(g *domain.AreaGraph, source int) *PathTree {
	n := g.Len()
	tree := &PathTree{
		Source:   source,
		Distance: make([]int, n),
		Parent:   make([]int, n),
	}
	for i := range n {
		tree.Distance[i] = Unexplored
		tree.Parent[i] = NoParent
	}

	if source < 0 || source >= n {
		return tree
	}
	tree.Distance[source] = 0

	type frame struct {
		node int
		next int
	}

	visited := make([]bool, n)
	stack := make([]frame, 0, n)

	for start := range n {
		if visited[start] {
			continue
		}
		visited[start] = true
		stack = append(stack, frame{node: start})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			adj := g.Neighbors(top.node)
			if top.next >= len(adj) {
				stack = stack[:len(stack)-1]
				continue
			}

			u := top.node
			nb := adj[top.next]
			top.next++

			if tree.Distance[u] != Unexplored && tree.Distance[u]+nb.Weight > tree.Distance[nb.Index] {
				tree.Distance[nb.Index] = tree.Distance[u] + nb.Weight
				tree.Parent[nb.Index] = u
			}

			if !visited[nb.Index] {
				visited[nb.Index] = true
				// top is invalidated by this append
				stack = append(stack, frame{node: nb.Index})
			}
		}
	}

	return tree
}
