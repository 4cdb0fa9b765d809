package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rbtree/domain/rbtree"
	"rbtree/infra/metrics"
	"rbtree/infra/workload"
	"rbtree/service"
)

func newBenchCmd(opts *options, log *logrus.Logger) *cobra.Command {
	var (
		configPath  string
		metricsPath string
		spec        workload.Spec
		pattern     string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a generated workload and report tree shape and fixup counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				loaded, err := workload.LoadSpec(configPath)
				if err != nil {
					return err
				}
				spec = loaded
			} else {
				spec.Pattern = workload.Pattern(pattern)
			}

			tree := rbtree.NewWithConfig(rbtree.Config{
				InitialCapacity: spec.Count,
				MaxNodes:        opts.maxNodes,
			})
			defer tree.Destroy()

			rep, err := service.RunSpec(cmd.Context(), spec, tree, opts.runnerConfig(log))
			if err != nil {
				return err
			}
			printSummary(cmd, rep, tree.Stats())

			if metricsPath != "" {
				c := metrics.NewCollector("", tree, prometheus.Labels{"pattern": string(spec.WithDefaults().Pattern)})
				if err := metrics.WriteTextfile(metricsPath, c); err != nil {
					return err
				}
				log.WithField("path", metricsPath).Info("metrics written")
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "workload spec file (YAML or JSON); overrides the flags below")
	f.StringVar(&pattern, "pattern", string(workload.Random), "key order: ascending, descending, random, zigzag, sawtooth")
	f.IntVar(&spec.Count, "count", 100000, "keys to insert; 0 runs an empty workload")
	f.Int64Var(&spec.Seed, "seed", 1, "seed for random patterns and erase order")
	f.Float64Var(&spec.EraseRatio, "erase-ratio", 0.5, "fraction of inserted keys erased afterwards")
	f.IntVar(&spec.VerifyEvery, "verify-every", 0, "verify invariants after every N mutations")
	f.StringVar(&metricsPath, "metrics-file", "", "write Prometheus text metrics to this path")
	return cmd
}

func printSummary(cmd *cobra.Command, rep service.Report, st rbtree.Stats) {
	out := cmd.OutOrStdout()
	perOp := time.Duration(0)
	if rep.Ops > 0 {
		perOp = rep.Elapsed / time.Duration(rep.Ops)
	}

	fmt.Fprintf(out, "ops:          %s in %s (%s/op)\n", humanize.Comma(int64(rep.Ops)), rep.Elapsed.Round(time.Microsecond), perOp)
	fmt.Fprintf(out, "inserts:      %s\n", humanize.Comma(int64(rep.Inserts)))
	fmt.Fprintf(out, "erases:       %s\n", humanize.Comma(int64(rep.Erases)))
	fmt.Fprintf(out, "size:         %s\n", humanize.Comma(int64(rep.Size)))
	fmt.Fprintf(out, "height:       %d (black-height %d)\n", rep.Height, rep.BlackHeight)
	fmt.Fprintf(out, "rotations:    %s left, %s right\n", humanize.Comma(int64(st.LeftRotations)), humanize.Comma(int64(st.RightRotations)))
	fmt.Fprintf(out, "insert fixup: %d uncle-red, %d inner, %d outer\n", st.InsertUncleRed, st.InsertInner, st.InsertOuter)
	fmt.Fprintf(out, "erase fixup:  %d sibling-red, %d nephews-black, %d near-nephew-red, %d far-nephew-red\n",
		st.EraseSiblingRed, st.EraseNephewsBlack, st.EraseNearNephewRed, st.EraseFarNephewRed)
	fmt.Fprintf(out, "slot reuses:  %s\n", humanize.Comma(int64(st.SlotReuses)))
}
