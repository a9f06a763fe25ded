package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beltforge/layoutcore/optimizer"
	"github.com/beltforge/layoutcore/score"
)

func newRunCmd() *cobra.Command {
	var (
		input             string
		output            string
		jsonIn            bool
		jsonOut           bool
		mode              string
		seed              uint32
		hasSeed           bool
		timeBudgetMs      int64
		phase1Restarts    int
		phase2Attempts    int
		localPolishPasses int
		quiet             bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Optimize a layout and write the result back out",
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSONIn := inferJSON(input, jsonIn, cmd.Flags().Changed("json-in"))
			asJSONOut := jsonOut || (output != "" && inferJSON(output, jsonOut, cmd.Flags().Changed("json-out")))

			gs, err := loadLayout(input, asJSONIn)
			if err != nil {
				return err
			}

			opts := []optimizer.Option{}
			switch mode {
			case "", "normal":
				opts = append(opts, optimizer.WithMode(optimizer.ModeNormal))
			case "deep":
				opts = append(opts, optimizer.WithMode(optimizer.ModeDeep), optimizer.WithTimeBudget(timeBudgetMs))
			default:
				return fmt.Errorf("layoutctl: unknown --mode %q (want \"normal\" or \"deep\")", mode)
			}
			if hasSeed {
				opts = append(opts, optimizer.WithSeed(seed))
			}

			cfg := optimizer.DefaultConfig(opts...)
			if phase1Restarts > 0 {
				cfg.Anneal.Phase1Restarts = phase1Restarts
			}
			if phase2Attempts > 0 {
				cfg.Anneal.Phase2Attempts = phase2Attempts
			}
			if localPolishPasses > 0 {
				cfg.Anneal.LocalPolishPasses = localPolishPasses
			}

			var progress optimizer.ProgressFunc
			if !quiet {
				progress = func(u optimizer.ProgressUpdate) {
					fmt.Printf("  [%s] total=%.3f belts=%d corners=%d area=%d unroutable=%d\n",
						u.Phase, u.Score.Total(cfg.Score), u.Score.BeltLength, u.Score.Corners,
						u.Score.BoundingArea, u.Score.UnroutableCount)
				}
			}

			var result optimizer.Result
			if cfg.Mode == optimizer.ModeDeep {
				result = optimizer.RunDeep(gs, cfg, progress)
			} else {
				result = optimizer.Run(gs, cfg, progress)
			}

			if err := writeLayout(result.Grid, output, asJSONOut); err != nil {
				return err
			}

			scoreCfg := cfg.Score
			m := result.Score
			printScore(fmt.Sprintf("final score (%d iterations)", result.Iterations),
				m.Total(scoreCfg), m.BeltLength, m.Corners, m.BoundingArea, m.UnroutableCount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "layout exchange document to optimize (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "where to write the optimized layout (default: stdout)")
	cmd.Flags().BoolVar(&jsonIn, "json-in", false, "read the input as JSON instead of YAML")
	cmd.Flags().BoolVar(&jsonOut, "json-out", false, "write the output as JSON instead of YAML")
	cmd.Flags().StringVar(&mode, "mode", "normal", `optimizer mode: "normal" or "deep"`)
	cmd.Flags().Int64Var(&timeBudgetMs, "time-budget", 2000, "deep mode's wall-clock budget in milliseconds")
	cmd.Flags().Uint32Var(&seed, "seed", 0, "PRNG seed (omit for a wall-clock-derived seed)")
	cmd.Flags().IntVar(&phase1Restarts, "phase1-restarts", 0, "override the proxy-scored phase's restart count")
	cmd.Flags().IntVar(&phase2Attempts, "phase2-attempts", 0, "override the routed phase's attempt count")
	cmd.Flags().IntVar(&localPolishPasses, "local-polish-passes", 0, "override the compaction/polish pass count")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress per-phase progress output")
	_ = cmd.MarkFlagRequired("input")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		hasSeed = cmd.Flags().Changed("seed")
		return nil
	}

	return cmd
}
