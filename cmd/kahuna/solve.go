package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/kahuna/collapse"
	"github.com/katalvlaran/kahuna/config"
	"github.com/katalvlaran/kahuna/rule"
	"github.com/katalvlaran/kahuna/space"
	"github.com/katalvlaran/kahuna/state"
)

type cell = *state.SetState[string]

// world is the outcome of one solve.
type world struct {
	grid  *space.CubeGrid[cell]
	stats collapse.Stats
	err   error
}

func newSolveCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Collapse one or more worlds and print them layer by layer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			return runSolve(cmd, cfg, opts.showMetrics)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.width, "width", 3, "cells along x")
	f.IntVar(&opts.length, "length", 3, "cells along z")
	f.IntVar(&opts.height, "height", 3, "layers along y")
	f.Uint64Var(&opts.seed, "seed", 1, "base random seed")
	f.IntVarP(&opts.count, "count", "n", 1, "number of independent worlds")
	f.IntVar(&opts.parallel, "parallel", 1, "worlds solved concurrently")
	f.IntVar(&opts.maxSteps, "max-steps", 0, "observation budget per world (0 = unlimited)")
	f.StringVar(&opts.observer, "observer", config.ObserverWeighted, "weighted or uniform")
	f.BoolVar(&opts.showMetrics, "metrics", false, "log solver counters when done")

	return cmd
}

func runSolve(cmd *cobra.Command, cfg *config.Config, showMetrics bool) error {
	log := newLogger(cmd.ErrOrStderr(), cfg)
	set, err := loadPrototypes(cfg)
	if err != nil {
		return err
	}

	var obs rule.Observer[cell] = rule.Uniform[cell]{}
	if cfg.Solve.Observer == config.ObserverWeighted {
		obs = rule.NewWeighted[string, cell](set.Weights())
	}
	r := set.Builder(obs).Build()

	reg := prometheus.NewRegistry()
	metrics, err := collapse.NewMetrics(reg)
	if err != nil {
		return err
	}

	worlds := make([]world, cfg.Solve.Count)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.Solve.Parallel)
	for i := range worlds {
		g.Go(func() error {
			grid, err := space.NewCubeGrid(cfg.Grid.Width, cfg.Grid.Length, cfg.Grid.Height,
				func(space.Coord) cell { return set.Universe() })
			if err != nil {
				return err
			}
			opts := []collapse.Option{
				collapse.WithLogger(log.With(slog.Int("world", i))),
				collapse.WithSource(rule.DeriveSource(cfg.Solve.Seed, uint64(i))),
				collapse.WithMaxSteps(cfg.Solve.MaxSteps),
				collapse.WithMetrics(metrics),
			}
			stats, err := collapse.Solve(ctx, grid, r, opts...)
			worlds[i] = world{grid: grid, stats: stats, err: err}
			if err != nil && !errors.Is(err, collapse.ErrContradiction) && !errors.Is(err, collapse.ErrStepLimit) {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := printWorlds(cmd.OutOrStdout(), worlds)
	if showMetrics {
		logMetrics(log, reg)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d worlds did not collapse", failed, len(worlds))
	}

	return nil
}

// printWorlds writes each world and returns how many failed.
func printWorlds(w io.Writer, worlds []world) int {
	failed := 0
	for i, wd := range worlds {
		if len(worlds) > 1 {
			fmt.Fprintf(w, "World %d\n", i)
		}
		if wd.err != nil {
			failed++
			fmt.Fprintf(w, "error: %v\n\n", wd.err)
			continue
		}
		fmt.Fprint(w, wd.grid.String())
	}

	return failed
}

func logMetrics(log *slog.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		log.Warn("gather metrics", slog.Any("error", err))
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			attrs := []any{slog.String("name", mf.GetName())}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, slog.String(lp.GetName(), lp.GetValue()))
			}
			switch {
			case m.GetCounter() != nil:
				attrs = append(attrs, slog.Float64("value", m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				attrs = append(attrs,
					slog.Uint64("count", m.GetHistogram().GetSampleCount()),
					slog.Float64("sum", m.GetHistogram().GetSampleSum()))
			}
			log.Info("metric", attrs...)
		}
	}
}
