package exchange

// DocumentVersion is the only layout exchange format version this package
// reads or writes.
const DocumentVersion = 1

// Document is the on-disk shape of a layout: grid dimensions plus every
// machine and connection needed to reconstruct it. Field tags carry both
// yaml and json names so the same struct serves gopkg.in/yaml.v3 (the
// primary encoding) and encoding/json (the CLI's --json fallback).
type Document struct {
	Version     int               `yaml:"version" json:"version"`
	GridSize    GridSize          `yaml:"gridSize" json:"gridSize"`
	Machines    []MachineEntry    `yaml:"machines" json:"machines"`
	Connections []ConnectionEntry `yaml:"connections" json:"connections"`
}

// GridSize is a document's grid dimensions.
type GridSize struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// MachineEntry is one placed machine: its ID, catalog type tag (e.g.
// "3x3", "6x4", "anchor3x1"), top-left position, and orientation tag
// ("N", "E", "S", or "W").
type MachineEntry struct {
	ID          string `yaml:"id" json:"id"`
	Type        string `yaml:"type" json:"type"`
	X           int    `yaml:"x" json:"x"`
	Y           int    `yaml:"y" json:"y"`
	Orientation string `yaml:"orientation" json:"orientation"`
}

// ConnectionEntry is one connection: its ID and the (machine, port index)
// pair on each end.
type ConnectionEntry struct {
	ID            string `yaml:"id" json:"id"`
	SourceMachine string `yaml:"sourceMachine" json:"sourceMachine"`
	SourcePort    int    `yaml:"sourcePort" json:"sourcePort"`
	TargetMachine string `yaml:"targetMachine" json:"targetMachine"`
	TargetPort    int    `yaml:"targetPort" json:"targetPort"`
}
