package seed

import (
	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
)

// spiralPlace finds a valid position and orientation for a movable machine
// of the given type, searching outward from center in growing square rings
// (radius 1, 2, 3, ...), visiting each ring's tiles in North, East, South,
// West face order, and trying all four orientations at each tile. The
// first pose that Place accepts wins. The radius is capped at
// max(gs.Width, gs.Height); beyond that no larger ring could add an
// in-bounds tile that a smaller ring hasn't already covered.
func spiralPlace(gs *grid.State, id string, typ machine.MachineType, center machine.Point) (machine.Machine, bool) {
	maxRadius := gs.Width
	if gs.Height > maxRadius {
		maxRadius = gs.Height
	}

	if m, ok := tryAllOrientations(gs, id, typ, center); ok {
		return m, true
	}

	for radius := 1; radius <= maxRadius; radius++ {
		for _, p := range ringTiles(center, radius) {
			if m, ok := tryAllOrientations(gs, id, typ, p); ok {
				return m, true
			}
		}
	}

	return machine.Machine{}, false
}

// ringTiles returns every tile on the square ring of the given radius
// around center, in North, East, South, West face order (top edge
// left-to-right, right edge top-to-bottom, bottom edge right-to-left, left
// edge bottom-to-top), matching a standard spiral traversal.
func ringTiles(center machine.Point, radius int) []machine.Point {
	tiles := make([]machine.Point, 0, 8*radius)

	top := center.Y - radius
	bottom := center.Y + radius
	left := center.X - radius
	right := center.X + radius

	for x := left; x <= right; x++ {
		tiles = append(tiles, machine.Point{X: x, Y: top})
	}
	for y := top + 1; y <= bottom; y++ {
		tiles = append(tiles, machine.Point{X: right, Y: y})
	}
	for x := right - 1; x >= left; x-- {
		tiles = append(tiles, machine.Point{X: x, Y: bottom})
	}
	for y := bottom - 1; y > top; y-- {
		tiles = append(tiles, machine.Point{X: left, Y: y})
	}

	return tiles
}

var allOrientations = [4]machine.Direction{machine.North, machine.East, machine.South, machine.West}

// tryAllOrientations attempts to Place a machine of typ at p under each of
// the four orientations, returning the first that succeeds.
func tryAllOrientations(gs *grid.State, id string, typ machine.MachineType, p machine.Point) (machine.Machine, bool) {
	for _, o := range allOrientations {
		m := machine.Machine{ID: id, Type: typ, Pos: p, Orientation: o}
		if gs.Place(m) {
			return m, true
		}
	}
	return machine.Machine{}, false
}
