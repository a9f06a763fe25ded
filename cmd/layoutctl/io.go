package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/beltforge/layoutcore/exchange"
	"github.com/beltforge/layoutcore/grid"
)

// loadLayout reads path and reconstructs its grid, choosing JSON or YAML
// decoding from asJSON, which callers derive via inferJSON from their JSON
// flag or the file extension (the file's own contents are not sniffed).
func loadLayout(path string, asJSON bool) (*grid.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layoutctl: reading %s: %w", path, err)
	}
	if asJSON {
		return exchange.UnmarshalJSON(data)
	}
	return exchange.UnmarshalYAML(data)
}

// writeLayout renders gs as a layout exchange document and writes it to
// path, or to stdout when path is empty or "-".
func writeLayout(gs *grid.State, path string, asJSON bool) error {
	var (
		data []byte
		err  error
	)
	if asJSON {
		data, err = exchange.MarshalJSON(gs)
	} else {
		data, err = exchange.MarshalYAML(gs)
	}
	if err != nil {
		return fmt.Errorf("layoutctl: encoding layout: %w", err)
	}
	if path == "" || path == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// printScore renders a score.Metrics breakdown as aligned key: value lines.
func printScore(label string, total float64, belts, corners, area, unroutable int) {
	fmt.Printf("%s\n", label)
	fmt.Printf("  belts:      %d\n", belts)
	fmt.Printf("  corners:    %d\n", corners)
	fmt.Printf("  area:       %d\n", area)
	fmt.Printf("  unroutable: %d\n", unroutable)
	fmt.Printf("  total:      %.3f\n", total)
}

func inferJSON(path string, explicit bool, flagSet bool) bool {
	if flagSet {
		return explicit
	}
	return strings.HasSuffix(strings.ToLower(path), ".json")
}
