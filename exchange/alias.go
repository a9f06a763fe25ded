package exchange

import "github.com/beltforge/layoutcore/machine"

// legacyTypeAliases maps a retired type tag to the current catalog tag it
// should be read as. Consulted on import only, never on export, so a
// round-tripped document always carries the current tag. "5x3" is not a
// type this catalog has ever defined; it is kept as a migration target
// rather than removed since its origin (a prior authoring bug vs. a
// deliberate rename) could not be established -- see the exchange section
// of the project's design notes for the reasoning.
var legacyTypeAliases = map[string]string{
	"5x3": "6x4",
}

// typeTags maps every current machine.MachineType to its exchange format
// tag, the inverse of parseMachineType.
var typeTags = map[machine.MachineType]string{
	machine.Small3x3:  "3x3",
	machine.Large5x5:  "5x5",
	machine.Wide6x4:   "6x4",
	machine.Anchor3x1: "anchor3x1",
}

var tagTypes = func() map[string]machine.MachineType {
	m := make(map[string]machine.MachineType, len(typeTags))
	for t, tag := range typeTags {
		m[tag] = t
	}
	return m
}()

// parseMachineType resolves a document's type tag to a machine.MachineType,
// migrating any legacy alias first.
func parseMachineType(tag string) (machine.MachineType, error) {
	if current, aliased := legacyTypeAliases[tag]; aliased {
		tag = current
	}
	t, ok := tagTypes[tag]
	if !ok {
		return 0, ErrUnknownMachineType
	}
	return t, nil
}

// orientationTags maps every cardinal direction to its exchange format tag.
var orientationTags = map[machine.Direction]string{
	machine.North: "N",
	machine.East:  "E",
	machine.South: "S",
	machine.West:  "W",
}

var tagOrientations = map[string]machine.Direction{
	"N": machine.North,
	"E": machine.East,
	"S": machine.South,
	"W": machine.West,
}

func parseOrientation(tag string) (machine.Direction, error) {
	d, ok := tagOrientations[tag]
	if !ok {
		return 0, ErrUnknownOrientation
	}
	return d, nil
}
