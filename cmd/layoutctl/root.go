package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the layoutctl command tree: run (optimize) and eval
// (score without optimizing), each accepting a layout exchange document.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "layoutctl",
		Short:         "Import, optimize, and evaluate belt layouts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newEvalCmd())

	return root
}
