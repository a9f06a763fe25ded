// Command layoutctl imports a layout exchange document, runs the layout
// optimizer or just evaluates it, and writes the result back out alongside
// its score breakdown.
//
// Usage:
//
//	layoutctl run --input layout.yaml --output optimized.yaml --mode deep
//	layoutctl eval --input layout.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
