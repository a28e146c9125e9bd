// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// ringdemo drives a ring buffer from a script and renders what it does.
package main

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/ringbuf/pkg/util/humanizeutil"
	"github.com/cockroachdb/ringbuf/pkg/util/log"
	"github.com/cockroachdb/ringbuf/pkg/util/ring"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flags holds the values bound to the persistent command line flags.
type flags struct {
	configFile string
	capacity   int
	growthRate int
	locked     bool
	budget     int64
	metrics    bool
	verbosity  int32
	debug      bool
}

func (f *flags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.configFile, "config", "", "YAML file with the buffer settings; flags override it")
	fs.IntVar(&f.capacity, "capacity", ring.DefaultCapacity, "initial capacity of the buffer")
	fs.IntVar(&f.growthRate, "growth-rate", ring.DefaultGrowthRate, "growth rate in percent, in (100, 10000]")
	fs.BoolVar(&f.locked, "locked", false, "start with growth locked")
	fs.Var(humanizeutil.NewBytesValue(&f.budget), "budget", "memory budget for the backing array, e.g. 4KiB (0 means unlimited)")
	fs.BoolVar(&f.metrics, "metrics", false, "dump metrics in the Prometheus text format after the run")
	fs.Int32VarP(&f.verbosity, "verbosity", "v", 0, "log verbosity")
	fs.BoolVar(&f.debug, "debug", false, "print the final buffer state")
}

// resolve merges the config file, if any, with the flags that were set
// explicitly.
func (f *flags) resolve(fs *pflag.FlagSet) (config, error) {
	cfg := defaultConfig()
	if f.configFile != "" {
		if err := loadConfig(f.configFile, &cfg); err != nil {
			return config{}, err
		}
	}
	if fs.Changed("capacity") {
		cfg.Capacity = f.capacity
	}
	if fs.Changed("growth-rate") {
		cfg.GrowthRate = f.growthRate
	}
	if fs.Changed("locked") {
		cfg.Locked = f.locked
	}
	if fs.Changed("budget") {
		cfg.Budget = string(humanizeutil.IBytes(f.budget))
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	rootCmd := &cobra.Command{
		Use:   "ringdemo",
		Short: "drive a growable ring buffer from a script",
		Long: `ringdemo runs deque operations against a ring buffer and shows how it
grows and re-linearizes.

Examples:

  ringdemo run script.txt --capacity 4 --growth-rate 150
  echo "push-rear a" | ringdemo run --budget 1KiB --metrics
  ringdemo grow-table --capacity 10 --growth-rate 101
`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetVerbosity(f.verbosity)
		},
	}
	f.register(rootCmd.PersistentFlags())

	runCmd := &cobra.Command{
		Use:   "run [script]",
		Short: "execute a script of buffer operations, read from stdin if no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (retErr error) {
			cfg, err := f.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			in := cmd.InOrStdin()
			if len(args) == 1 {
				file, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "opening script")
				}
				defer file.Close()
				in = file
			}
			ctx := context.Background()
			d, err := newDemo(ctx, cfg)
			if err != nil {
				return err
			}
			defer d.close(ctx)

			out := cmd.OutOrStdout()
			if err := d.run(ctx, in, out); err != nil {
				return err
			}
			if f.debug {
				d.debug(out)
			}
			if f.metrics {
				return d.dumpMetrics(out)
			}
			return nil
		},
	}

	var steps int
	growCmd := &cobra.Command{
		Use:   "grow-table",
		Short: "print the capacities repeated growth produces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			return growTable(cmd.OutOrStdout(), cfg, steps)
		},
	}
	growCmd.Flags().IntVar(&steps, "steps", 8, "number of growth steps to print")

	rootCmd.AddCommand(runCmd, growCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}
