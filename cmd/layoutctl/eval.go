package main

import (
	"github.com/spf13/cobra"

	"github.com/beltforge/layoutcore/score"
)

func newEvalCmd() *cobra.Command {
	var (
		input    string
		jsonMode bool
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a layout's routed score without optimizing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON := inferJSON(input, jsonMode, cmd.Flags().Changed("json"))

			gs, err := loadLayout(input, asJSON)
			if err != nil {
				return err
			}

			scoreCfg := score.DefaultConfig()
			m := score.EvaluateRouted(gs, gs.Connections(), scoreCfg)
			printScore("score", m.Total(scoreCfg), m.BeltLength, m.Corners, m.BoundingArea, m.UnroutableCount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "layout exchange document to evaluate (required)")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "read the input as JSON instead of YAML")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
