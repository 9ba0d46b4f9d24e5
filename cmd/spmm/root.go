package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/spmm/internal/config"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	cfgFile string
	v       *viper.Viper
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"rows":       "bench.rows",
	"inner":      "bench.inner",
	"cols":       "bench.cols",
	"density":    "bench.density",
	"seed":       "bench.seed",
	"workers":    "bench.workers",
	"grain":      "bench.grain",
	"repeat":     "bench.repeat",
	"log-level":  "logging.level",
	"log-format": "logging.format",
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "spmm",
		Short: "Sparse matrix multiplication benchmarks",
		Long: `spmm multiplies randomly generated sparse matrices with the sequential,
task-pool and thread-per-slice strategies, checks that all three agree and
reports their timings.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cmd)
		},
	}

	// Global flags
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./spmm.yaml or $HOME/.config/spmm/spmm.yaml)")

	root.AddCommand(newBenchCmd(a), newVersionCmd())

	return root
}

// initConfig layers defaults, the config file, SPMM_* env vars and the
// flags of the running command, in increasing priority.
func (a *app) initConfig(cmd *cobra.Command) error {
	a.v = config.New(a.cfgFile)

	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := a.v.BindPFlag(key, f); err != nil {
			return err
		}
	}

	return config.ReadInConfig(a.v)
}
