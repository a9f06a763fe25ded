package operator

import (
	"sort"

	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
)

const repairRandomJitters = 24

// repairPose is one candidate placement considered by repairPlacement.
type repairPose struct {
	pos machine.Point
	o   machine.Direction
}

// repairPlacement searches for the best pose to reinsert a removed
// machine (typ, id) into gs: one tile offset from each face of every
// already-placed machine (flush and perpendicular-centered variants) in
// all four orientations, plus repairRandomJitters random jitters within
// +/-5 tiles of the centroid of id's already-placed connected neighbors,
// plus its original pose. "Best" is the in-bounds, non-overlapping
// candidate with the lowest Manhattan belt cost over connections whose
// other endpoint is already placed.
func repairPlacement(gs *grid.State, id string, typ machine.MachineType, original repairPose, r randSource) (repairPose, bool) {
	candidates := []repairPose{original}
	candidates = append(candidates, faceCandidates(gs, typ)...)
	candidates = append(candidates, jitterCandidates(gs, id, typ, original, r)...)

	bestCost := -1
	var best repairPose
	found := false
	for _, c := range candidates {
		if _, _, err := machine.OrientedDims(typ, c.o); err != nil {
			continue
		}
		cand := machine.Machine{ID: id, Type: typ, Pos: c.pos, Orientation: c.o}
		if !canPlace(gs, cand) {
			continue
		}
		cost := manhattanCostForPose(gs, cand)
		if !found || cost < bestCost {
			bestCost, best, found = cost, c, true
		}
	}
	return best, found
}

// faceCandidates offsets typ one tile from each face of every currently
// placed machine, in every orientation, in both a flush (edge-aligned) and
// a perpendicular-centered variant.
func faceCandidates(gs *grid.State, typ machine.MachineType) []repairPose {
	var out []repairPose
	placed := gs.Machines()
	sort.Slice(placed, func(i, j int) bool { return placed[i].ID < placed[j].ID })

	for _, p := range placed {
		rect, err := p.Footprint()
		if err != nil {
			continue
		}
		for _, o := range []machine.Direction{machine.North, machine.East, machine.South, machine.West} {
			w, h, err := machine.OrientedDims(typ, o)
			if err != nil {
				continue
			}
			out = append(out,
				repairPose{machine.Point{X: rect.X + rect.W, Y: rect.Y}, o},
				repairPose{machine.Point{X: rect.X + rect.W, Y: rect.Y + (rect.H-h)/2}, o},
				repairPose{machine.Point{X: rect.X - w, Y: rect.Y}, o},
				repairPose{machine.Point{X: rect.X - w, Y: rect.Y + (rect.H-h)/2}, o},
				repairPose{machine.Point{X: rect.X, Y: rect.Y + rect.H}, o},
				repairPose{machine.Point{X: rect.X + (rect.W-w)/2, Y: rect.Y + rect.H}, o},
				repairPose{machine.Point{X: rect.X, Y: rect.Y - h}, o},
				repairPose{machine.Point{X: rect.X + (rect.W-w)/2, Y: rect.Y - h}, o},
			)
		}
	}
	return out
}

// jitterCandidates draws repairRandomJitters random poses within +/-5
// tiles of the centroid of id's already-placed connected neighbors
// (falling back to original's position if it has none).
func jitterCandidates(gs *grid.State, id string, typ machine.MachineType, original repairPose, r randSource) []repairPose {
	var pts []machine.Point
	for _, c := range connectionsTouching(gs, id) {
		other := c.TargetMachine
		if other == id {
			other = c.SourceMachine
		}
		if m, ok := gs.Machine(other); ok {
			pts = append(pts, m.Pos)
		}
	}
	center := original.pos
	if len(pts) > 0 {
		center = centroid(pts)
	}

	dirs := []machine.Direction{machine.North, machine.East, machine.South, machine.West}
	out := make([]repairPose, 0, repairRandomJitters)
	for i := 0; i < repairRandomJitters; i++ {
		dx := r.Intn(11) - 5
		dy := r.Intn(11) - 5
		o := dirs[r.Intn(len(dirs))]
		out = append(out, repairPose{machine.Point{X: center.X + dx, Y: center.Y + dy}, o})
	}
	return out
}
