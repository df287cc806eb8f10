// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/nipinghe/fmmtl/butterfly"
	"github.com/nipinghe/fmmtl/internal/config"
	"github.com/nipinghe/fmmtl/kernel"
)

type runOptions struct {
	configPath string
	metrics    bool
}

func newRunCommand() *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the transform on a generated scenario and report the error against the direct sum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd, cfg, opts)
		},
	}

	config.BindFlags(cmd.Flags())
	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML or JSON scenario file")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "print Prometheus metrics after the run")

	return cmd
}

func run(cmd *cobra.Command, cfg config.Config, opts runOptions) error {
	logger := klog.FromContext(cmd.Context())
	out := cmd.OutOrStdout()

	k, err := cfg.KernelFunc()
	if err != nil {
		return err
	}
	sc, err := newScenario(cfg)
	if err != nil {
		return err
	}

	planOpts := []butterfly.Option{
		butterfly.WithOrder(cfg.Order),
		butterfly.WithDepth(cfg.Depth),
		butterfly.WithSplitLevel(cfg.Split),
		butterfly.WithWorkers(cfg.Workers),
		butterfly.WithLogger(logger),
		butterfly.WithSourceBounds(sc.sourceBounds),
		butterfly.WithTargetBounds(sc.targetBounds),
	}
	var reg *prometheus.Registry
	if opts.metrics {
		reg = prometheus.NewRegistry()
		planOpts = append(planOpts, butterfly.WithMetrics(reg))
	}

	start := time.Now()
	plan, err := butterfly.NewPlan(k, sc.sources, sc.targets, planOpts...)
	if err != nil {
		return err
	}
	planned := time.Since(start)

	start = time.Now()
	got, err := plan.Apply(cmd.Context(), sc.charges)
	if err != nil {
		return err
	}
	applied := time.Since(start)

	start = time.Now()
	want := make([]complex128, len(sc.targets))
	if err := kernel.Direct(k, sc.targets, sc.sources, sc.charges, want); err != nil {
		return err
	}
	direct := time.Since(start)

	relErr, err := butterfly.MaxRelativeError(got, want)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "kernel:              %s (omega %g)\n", cfg.Kernel, cfg.Omega)
	fmt.Fprintf(out, "points:              %d sources, %d targets, dim %d\n", cfg.Sources, cfg.Targets, cfg.Dim)
	fmt.Fprintf(out, "order/depth/split:   %d/%d/%d\n", cfg.Order, plan.Depth(), plan.SplitLevel())
	fmt.Fprintf(out, "plan:                %v\n", planned)
	fmt.Fprintf(out, "butterfly:           %v\n", applied)
	fmt.Fprintf(out, "direct:              %v\n", direct)
	fmt.Fprintf(out, "max relative error:  %.3e\n", relErr)

	if reg != nil {
		return writeMetrics(out, reg)
	}

	return nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}
