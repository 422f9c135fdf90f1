package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/kahuna/config"
	"github.com/katalvlaran/kahuna/prototype"
)

// options carries flag values shared by the subcommands.
type options struct {
	configPath string
	prototypes string
	logLevel   string

	width, length, height int
	seed                  uint64
	count, parallel       int
	maxSteps              int
	observer              string
	showMetrics           bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "kahuna",
		Short:         "Wave function collapse over 3D tile grids",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML run configuration")
	root.PersistentFlags().StringVarP(&opts.prototypes, "prototypes", "p", "", "prototype document (default: bundled modules)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(newSolveCmd(opts), newInspectCmd(opts))

	return root
}

// loadConfig merges the config file, if any, with explicitly set flags.
func (o *options) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if f := flags.Lookup(name); f != nil && f.Changed {
			apply()
		}
	}
	set("prototypes", func() { cfg.Prototypes = o.prototypes })
	set("log-level", func() { cfg.Log.Level = o.logLevel })
	set("width", func() { cfg.Grid.Width = o.width })
	set("length", func() { cfg.Grid.Length = o.length })
	set("height", func() { cfg.Grid.Height = o.height })
	set("seed", func() { cfg.Solve.Seed = o.seed })
	set("count", func() { cfg.Solve.Count = o.count })
	set("parallel", func() { cfg.Solve.Parallel = o.parallel })
	set("max-steps", func() { cfg.Solve.MaxSteps = o.maxSteps })
	set("observer", func() { cfg.Solve.Observer = o.observer })

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

func loadPrototypes(cfg *config.Config) (*prototype.Set, error) {
	if cfg.Prototypes == "" {
		return prototype.Bundled()
	}
	set, err := prototype.Load(cfg.Prototypes)
	if err != nil {
		return nil, fmt.Errorf("load prototypes: %w", err)
	}

	return set, nil
}
