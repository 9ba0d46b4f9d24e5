package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/spmm/internal/bench"
	"github.com/katalvlaran/spmm/internal/config"
	"github.com/katalvlaran/spmm/internal/logging"
)

func newBenchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time seq, tasks and threads on random operands",
		Long: `Generate A (rows x inner) and B (inner x cols) with the given density and
seed, multiply them with every strategy and print best and mean wall-clock
times. Exits non-zero when the strategies disagree.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd, a)
		},
	}

	d := config.Default()
	f := cmd.Flags()
	f.Int("rows", d.Bench.Rows, "rows of the left operand")
	f.Int("inner", d.Bench.Inner, "shared dimension")
	f.Int("cols", d.Bench.Cols, "columns of the right operand")
	f.Float64("density", d.Bench.Density, "probability that a generated entry is non-zero")
	f.Int64("seed", d.Bench.Seed, "generator seed")
	f.Int("workers", d.Bench.Workers, "worker goroutines for parallel strategies (0 = GOMAXPROCS)")
	f.Int("grain", d.Bench.Grain, "rows per task for the tasks strategy")
	f.Int("repeat", d.Bench.Repeat, "timed runs per strategy")
	f.String("log-level", d.Logging.Level, "DEBUG, INFO, WARN or ERROR")
	f.String("log-format", d.Logging.Format, "text or json")

	return cmd
}

func runBench(cmd *cobra.Command, a *app) error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	rep, err := bench.Run(cmd.Context(), bench.FromConfig(cfg.Bench), logger)
	if rep != nil {
		if rerr := rep.Render(cmd.OutOrStdout()); rerr != nil && err == nil {
			err = rerr
		}
	}

	return err
}
