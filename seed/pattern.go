package seed

import (
	"math"
	"sort"

	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
)

// ringSearchMaxNodes bounds the Hamiltonian-cycle search placeRing's
// detection runs -- the search is plain backtracking from a single fixed
// start node, exponential in the worst case, so instances bigger than this
// abstain rather than stall the seed phase.
const ringSearchMaxNodes = 24

// Pattern fires on exactly two topology shapes and abstains (ErrAbstain)
// on everything else, leaving the other generators to cover the general
// case:
//
//   - a clean three-layer bipartite graph (every connection runs strictly
//     source-layer -> mid-layer or mid-layer -> sink-layer, no skipped or
//     same-layer edges) -- laid out as three packed rows; or
//   - a ring of eight to ringSearchMaxNodes machines, plus any number of
//     chords (extra connections between ring members) -- laid out as a
//     circle.
func Pattern(p Problem) (*grid.State, error) {
	if layer, ok := detectThreeLayerBipartite(p); ok {
		return placeThreeLayerRows(p, layer)
	}
	if order, ok := detectRing(p); ok {
		return placeRing(p, order)
	}
	return nil, ErrAbstain
}

// detectThreeLayerBipartite reports whether p's topology is a clean
// three-layer DAG: computeLayers (the same longest-path-from-sources
// layering Layered uses) assigns every machine to layer 0, 1, or 2, and
// every connection runs strictly from one layer to the next with no
// skipped or same-layer edges.
func detectThreeLayerBipartite(p Problem) (map[string]int, bool) {
	layer := computeLayers(p)

	maxLayer := 0
	for _, l := range layer {
		if l > maxLayer {
			maxLayer = l
		}
	}
	if maxLayer != 2 {
		return nil, false
	}

	for _, c := range p.Connections {
		sl, okS := layer[c.SourceMachine]
		tl, okT := layer[c.TargetMachine]
		if !okS || !okT || tl != sl+1 {
			return nil, false
		}
	}
	return layer, true
}

// placeThreeLayerRows places every movable in its layer's row (sorted by
// ID within the row, for determinism), top row first.
func placeThreeLayerRows(p Problem, layer map[string]int) (*grid.State, error) {
	gs, err := newBaseState(p)
	if err != nil {
		return nil, err
	}

	specByID := make(map[string]MachineSpec, len(p.Movables))
	for _, spec := range p.Movables {
		specByID[spec.ID] = spec
	}

	rows := make([][]string, 3)
	for _, spec := range p.Movables {
		l := layer[spec.ID]
		rows[l] = append(rows[l], spec.ID)
	}
	for _, row := range rows {
		sort.Strings(row)
	}

	rowY := 1
	for _, row := range rows {
		if err := placeRowLeftToRight(gs, row, specByID, rowY); err != nil {
			return nil, err
		}
		rowY += 4 // clear the tallest machine type's footprint plus a gap
	}

	if err := connectAll(gs, p.Connections); err != nil {
		return nil, err
	}
	return gs, nil
}

// placeRowLeftToRight places ids left to right starting at x=1, y=rowY,
// falling back to a spiral search from the failed x position when the
// straight scan runs off the grid edge. IDs absent from specByID (an
// anchor that happens to share this layer) are already placed and skipped.
func placeRowLeftToRight(gs *grid.State, ids []string, specByID map[string]MachineSpec, rowY int) error {
	x := 1
	for _, id := range ids {
		spec, ok := specByID[id]
		if !ok {
			continue
		}
		placed := false
		for tryX := x; tryX < gs.Width; tryX++ {
			m := machine.Machine{ID: spec.ID, Type: spec.Type, Pos: machine.Point{X: tryX, Y: rowY}, Orientation: machine.North}
			if gs.Place(m) {
				rect, _ := m.Footprint()
				x = rect.X + rect.W
				placed = true
				break
			}
		}
		if placed {
			continue
		}
		m, ok := spiralPlace(gs, spec.ID, spec.Type, machine.Point{X: x, Y: rowY})
		if !ok {
			return ErrNoValidPlacement
		}
		rect, _ := m.Footprint()
		x = rect.X + rect.W
	}
	return nil
}

// detectRing looks for a single directed cycle covering every movable
// machine, length >= 8. Connections not on the cycle are treated as chords
// and ignored by detection (connectAll still registers them). The search
// fixes machine IDs' sort order and tries extending a cycle from the
// lexicographically first movable only -- a deliberate scope limit (see
// ringSearchMaxNodes) to keep this a bounded backtrack rather than a full
// Hamiltonian-cycle enumeration over every possible start.
func detectRing(p Problem) ([]string, bool) {
	ids := make([]string, len(p.Movables))
	for i, m := range p.Movables {
		ids[i] = m.ID
	}
	if len(ids) < 8 || len(ids) > ringSearchMaxNodes {
		return nil, false
	}
	sort.Strings(ids)

	members := make(map[string]bool, len(ids))
	for _, id := range ids {
		members[id] = true
	}

	adj := map[string][]string{}
	for _, c := range p.Connections {
		if members[c.SourceMachine] && members[c.TargetMachine] && c.SourceMachine != c.TargetMachine {
			adj[c.SourceMachine] = append(adj[c.SourceMachine], c.TargetMachine)
		}
	}
	for k := range adj {
		sort.Strings(adj[k])
	}

	start := ids[0]
	visited := map[string]bool{start: true}
	path := []string{start}
	if extendRing(start, start, adj, visited, &path, len(ids)) {
		return path, true
	}
	return nil, false
}

// extendRing backtracks from cur toward a cycle of exactly n nodes that
// closes back on start.
func extendRing(start, cur string, adj map[string][]string, visited map[string]bool, path *[]string, n int) bool {
	if len(*path) == n {
		for _, next := range adj[cur] {
			if next == start {
				return true
			}
		}
		return false
	}
	for _, next := range adj[cur] {
		if visited[next] {
			continue
		}
		visited[next] = true
		*path = append(*path, next)
		if extendRing(start, next, adj, visited, path, n) {
			return true
		}
		*path = (*path)[:len(*path)-1]
		visited[next] = false
	}
	return false
}

// placeRing lays order's machines evenly around a circle centered on the
// grid, falling back to a spiral search from each ideal point when it
// collides.
func placeRing(p Problem, order []string) (*grid.State, error) {
	gs, err := newBaseState(p)
	if err != nil {
		return nil, err
	}

	specByID := make(map[string]MachineSpec, len(p.Movables))
	for _, spec := range p.Movables {
		specByID[spec.ID] = spec
	}

	n := len(order)
	center := gridCenter(gs)
	radius := ringRadius(n)

	for i, id := range order {
		spec, ok := specByID[id]
		if !ok {
			continue
		}
		theta := 2 * math.Pi * float64(i) / float64(n)
		target := machine.Point{
			X: center.X + int(math.Round(radius*math.Cos(theta))),
			Y: center.Y + int(math.Round(radius*math.Sin(theta))),
		}
		if _, ok := spiralPlace(gs, spec.ID, spec.Type, target); !ok {
			return nil, ErrNoValidPlacement
		}
	}

	if err := connectAll(gs, p.Connections); err != nil {
		return nil, err
	}
	return gs, nil
}

// ringRadius returns a circle radius giving each of n machines roughly
// four tiles of circumference to itself.
func ringRadius(n int) float64 {
	return float64(n) * 4 / (2 * math.Pi)
}
