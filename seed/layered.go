package seed

import (
	"sort"

	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
)

// Layered places movables in order of their topological distance from the
// layout's sources (machines with no incoming connection), biasing each
// machine's search origin toward its already-placed predecessors. This
// tends to produce short, mostly axis-aligned runs between adjacent layers
// instead of Greedy's placement-order-only scan.
func Layered(p Problem) (*grid.State, error) {
	gs, err := newBaseState(p)
	if err != nil {
		return nil, err
	}

	layer := computeLayers(p)
	order := orderByLayer(p.Movables, layer)

	placed := make(map[string]machine.Point, len(p.Anchors)+len(p.Movables))
	for _, a := range p.Anchors {
		placed[a.ID] = a.Pos
	}

	predecessors := predecessorIndex(p.Connections)

	for _, spec := range order {
		center := predecessorCenter(spec.ID, predecessors, placed, gs)
		m, ok := spiralPlace(gs, spec.ID, spec.Type, center)
		if !ok {
			return nil, ErrNoValidPlacement
		}
		placed[spec.ID] = m.Pos
	}

	if err := connectAll(gs, p.Connections); err != nil {
		return nil, err
	}
	return gs, nil
}

// computeLayers assigns every machine (anchors included) a layer: sources
// (no incoming connection) are layer 0; every other machine's layer is one
// more than the maximum layer among its direct predecessors. Machines with
// no connections at all default to layer 0.
func computeLayers(p Problem) map[string]int {
	indegree := map[string]int{}
	preds := map[string][]string{}
	all := map[string]bool{}

	for _, a := range p.Anchors {
		all[a.ID] = true
	}
	for _, m := range p.Movables {
		all[m.ID] = true
	}
	for _, c := range p.Connections {
		indegree[c.TargetMachine]++
		preds[c.TargetMachine] = append(preds[c.TargetMachine], c.SourceMachine)
	}

	layer := make(map[string]int, len(all))
	queue := make([]string, 0, len(all))
	for id := range all {
		if indegree[id] == 0 {
			layer[id] = 0
			queue = append(queue, id)
		}
	}
	sort.Strings(queue) // deterministic BFS seed order

	outEdges := map[string][]string{}
	for _, c := range p.Connections {
		outEdges[c.SourceMachine] = append(outEdges[c.SourceMachine], c.TargetMachine)
	}

	remaining := map[string]int{}
	for id, d := range indegree {
		remaining[id] = d
	}

	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		next := append([]string(nil), outEdges[cur]...)
		sort.Strings(next)
		for _, nxt := range next {
			if layer[cur]+1 > layer[nxt] {
				layer[nxt] = layer[cur] + 1
			}
			remaining[nxt]--
			if remaining[nxt] == 0 {
				queue = append(queue, nxt)
			}
		}
	}

	// Anything left unvisited (a cycle) keeps its zero-value layer.
	for id := range all {
		if _, ok := layer[id]; !ok {
			layer[id] = 0
		}
	}
	return layer
}

// orderByLayer sorts movables by ascending layer, breaking ties by ID for
// determinism.
func orderByLayer(movables []MachineSpec, layer map[string]int) []MachineSpec {
	order := append([]MachineSpec(nil), movables...)
	sort.SliceStable(order, func(i, j int) bool {
		li, lj := layer[order[i].ID], layer[order[j].ID]
		if li != lj {
			return li < lj
		}
		return order[i].ID < order[j].ID
	})
	return order
}

// predecessorIndex maps each machine ID to the IDs of machines with a
// connection into it.
func predecessorIndex(conns []machine.Connection) map[string][]string {
	out := map[string][]string{}
	for _, c := range conns {
		out[c.TargetMachine] = append(out[c.TargetMachine], c.SourceMachine)
	}
	return out
}

// predecessorCenter averages the positions of id's already-placed
// predecessors, falling back to the grid's center when none are placed
// yet (the common case for layer-0 sources).
func predecessorCenter(id string, preds map[string][]string, placed map[string]machine.Point, gs *grid.State) machine.Point {
	sumX, sumY, n := 0, 0, 0
	for _, p := range preds[id] {
		if pos, ok := placed[p]; ok {
			sumX += pos.X
			sumY += pos.Y
			n++
		}
	}
	if n == 0 {
		return gridCenter(gs)
	}
	return machine.Point{X: sumX / n, Y: sumY / n}
}
