package router

import "github.com/beltforge/layoutcore/machine"

// state is one A* search node: the tile occupied and the direction the
// search arrived from (the source port's approach direction, for the
// start state, which has no real predecessor).
type state struct {
	pos machine.Point
	dir machine.Direction
}

// node is one entry in the open set: a candidate state with its best-known
// cost-so-far (g) and estimated total cost (f = g + heuristic).
type node struct {
	st    state
	g     float64
	f     float64
	seq   int // insertion order, for deterministic tie-breaking
	index int // heap.Interface bookkeeping
}

// nodePQ is a min-heap of *node ordered by f, with lower seq (earlier
// insertion) breaking ties -- the grid search never depends on map
// iteration order, so this keeps FindPath's result reproducible.
// Mirrors the lazy decrease-key pattern used for shortest-path search
// elsewhere in this module: stale entries are pushed and later skipped
// rather than updated in place.
type nodePQ []*node

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *nodePQ) Push(x any) {
	n := x.(*node)
	n.index = len(*pq)
	*pq = append(*pq, n)
}

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}
