package services

import (
	"container/heap"
	"math"

	"waste-route-service/internal/domain"
)

const (
	// Unreachable is the shortest-path distance of a node the source cannot reach.
	Unreachable = math.MaxInt
	// Unexplored is the longest-path distance of a node the estimator never reached.
	Unexplored = math.MinInt
	// NoParent marks the root of a path tree (and nodes that were never relaxed).
	NoParent = -1
)

// Single-source distances and parent pointers over an AreaGraph.
// Distance and Parent are indexed by area index.
type PathTree struct {
	Source   int
	Distance []int
	Parent   []int
}

// Reachable reports whether v holds a real distance rather than a sentinel.
func (t *PathTree) Reachable(v int) bool {
	if v < 0 || v >= len(t.Distance) {
		return false
	}
	d := t.Distance[v]
	return d != Unreachable && d != Unexplored
}

type frontierItem struct {
	node     int
	distance int
}

// frontier is a min-heap on distance, ties broken by node index so that
// extraction order is reproducible.
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].distance != f[j].distance {
		return f[i].distance < f[j].distance
	}
	return f[i].node < f[j].node
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(frontierItem)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// ShortestPaths runs Dijkstra from source over g.
//
// Entries are pushed lazily on every improvement and stale entries (popped
// distance greater than the recorded best) are skipped, giving
// O((V+E) log V). Nodes the source cannot reach keep Unreachable and NoParent;
// that is a normal result, not an error. An invalid source yields a tree where
// every node is unreachable.
func ShortestPaths(g *domain.AreaGraph, source int) *PathTree {
	n := g.Len()
	tree := &PathTree{
		Source:   source,
		Distance: make([]int, n),
		Parent:   make([]int, n),
	}
	for i := range n {
		tree.Distance[i] = Unreachable
		tree.Parent[i] = NoParent
	}

	if source < 0 || source >= n {
		return tree
	}

	tree.Distance[source] = 0
	pq := &frontier{{node: source, distance: 0}}

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(frontierItem)
		if cur.distance > tree.Distance[cur.node] {
			continue
		}

		for _, nb := range g.Neighbors(cur.node) {
			nd := tree.Distance[cur.node] + nb.Weight
			if nd < tree.Distance[nb.Index] {
				tree.Distance[nb.Index] = nd
				tree.Parent[nb.Index] = cur.node
				heap.Push(pq, frontierItem{node: nb.Index, distance: nd})
			}
		}
	}

	return tree
}
