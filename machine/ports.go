package machine

// Ports derives the input and output ports for a placed Machine.
//
// Regular (non-anchor) machines: the input face is the face the machine's
// Orientation points at; the output face is the opposite face. Each face
// carries one port per tile along its span (width for North/South faces,
// height for East/West faces).
//
// Anchor machines: zero inputs; a single output, centered on the face the
// Orientation points at (not the opposite face).
//
// Every port's approach direction is the outward-facing direction of the
// face it sits on -- which is why "inputs use the orientation direction"
// and "outputs use its opposite" collapse to the same rule: a port's
// approach is simply its face's cardinal direction.
func Ports(m Machine) (inputs, outputs []Port, err error) {
	rect, err := m.Footprint()
	if err != nil {
		return nil, nil, err
	}

	if m.Type.IsAnchor() {
		outFace := m.Orientation
		outputs = []Port{facePort(m.ID, Output, rect, outFace, 0, 1)}
		return nil, outputs, nil
	}

	inFace := m.Orientation
	outFace := m.Orientation.Opposite()

	inSpan := faceSpan(rect, inFace)
	outSpan := faceSpan(rect, outFace)

	inputs = make([]Port, inSpan)
	for i := 0; i < inSpan; i++ {
		inputs[i] = facePort(m.ID, Input, rect, inFace, i, inSpan)
	}

	outputs = make([]Port, outSpan)
	for i := 0; i < outSpan; i++ {
		outputs[i] = facePort(m.ID, Output, rect, outFace, i, outSpan)
	}

	return inputs, outputs, nil
}

// ExternalTile returns the tile one step outside p along its approach
// direction -- the belt's start/end tile.
func ExternalTile(p Port) Point {
	return p.Pos.Step(p.Approach)
}

// faceSpan returns the number of port-eligible tiles along the given face
// of rect: width for North/South, height for East/West.
func faceSpan(rect Rect, face Direction) int {
	if face.Horizontal() {
		return rect.H
	}
	return rect.W
}

// facePort builds the Port at index i (of n total) on the given face of
// rect, per the spec's even-distribution formula
// round(i*(span-1)/(n-1)) for n>=2, centered for n=1.
func facePort(machineID string, role PortRole, rect Rect, face Direction, i, n int) Port {
	span := faceSpan(rect, face)
	offset := portOffset(i, n, span)

	var pos Point
	switch face {
	case North:
		pos = Point{X: rect.X + offset, Y: rect.Y}
	case South:
		pos = Point{X: rect.X + offset, Y: rect.Y + rect.H - 1}
	case East:
		pos = Point{X: rect.X + rect.W - 1, Y: rect.Y + offset}
	case West:
		pos = Point{X: rect.X, Y: rect.Y + offset}
	}

	return Port{
		MachineID: machineID,
		Role:      role,
		Index:     i,
		Pos:       pos,
		Approach:  face,
	}
}

// portOffset returns the 0-based offset along a face of the given span for
// port i of n total ports: centered when n==1, evenly distributed via
// round(i*(span-1)/(n-1)) otherwise.
func portOffset(i, n, span int) int {
	if n <= 1 {
		return roundHalfAwayFromZero(span-1, 2)
	}
	return roundHalfAwayFromZero(i*(span-1), n-1)
}
