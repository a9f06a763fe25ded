package score

import (
	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
)

// boundsAccum tracks a running axis-aligned bounding box, grown tile by
// tile (addPoint) or rect by rect (addRect). area is 0 until something has
// been added.
type boundsAccum struct {
	minX, minY, maxX, maxY int
	has                    bool
}

func (b *boundsAccum) addPoint(p machine.Point) {
	b.addRect(machine.Rect{X: p.X, Y: p.Y, W: 1, H: 1})
}

func (b *boundsAccum) addRect(r machine.Rect) {
	if !b.has {
		b.minX, b.minY = r.X, r.Y
		b.maxX, b.maxY = r.X+r.W, r.Y+r.H
		b.has = true
		return
	}
	if r.X < b.minX {
		b.minX = r.X
	}
	if r.Y < b.minY {
		b.minY = r.Y
	}
	if r.X+r.W > b.maxX {
		b.maxX = r.X + r.W
	}
	if r.Y+r.H > b.maxY {
		b.maxY = r.Y + r.H
	}
}

func (b *boundsAccum) area() int {
	if !b.has {
		return 0
	}
	return (b.maxX - b.minX) * (b.maxY - b.minY)
}

// boundingAreaRouted is the routed score's boundingBoxArea: the rectangle
// enclosing every non-empty cell -- every machine's footprint, and every
// applied belt path's tiles, since a detour can reach well past the
// machines' own bounding box.
func boundingAreaRouted(gs *grid.State, conns []machine.Connection) int {
	var b boundsAccum
	for _, m := range gs.Machines() {
		if rect, err := m.Footprint(); err == nil {
			b.addRect(rect)
		}
	}
	for _, c := range conns {
		path, ok := gs.BeltPath(c.ID)
		if !ok {
			continue
		}
		for _, seg := range path {
			b.addPoint(seg.Pos)
		}
	}
	return b.area()
}

// boundingAreaProxy is the fast score's boundingBoxArea: the rectangle
// enclosing every machine's footprint and every connection's source/target
// external tile, whether or not that connection has actually been routed
// -- routing is exactly what the proxy phase skips.
func boundingAreaProxy(gs *grid.State, conns []machine.Connection) int {
	var b boundsAccum
	for _, m := range gs.Machines() {
		if rect, err := m.Footprint(); err == nil {
			b.addRect(rect)
		}
	}
	for _, c := range conns {
		if src, err := gs.SourcePort(c); err == nil {
			b.addPoint(machine.ExternalTile(src))
		}
		if tgt, err := gs.TargetPort(c); err == nil {
			b.addPoint(machine.ExternalTile(tgt))
		}
	}
	return b.area()
}
