// Command rbtree replays operation scripts against a red-black tree,
// runs generated workloads, and demonstrates the rebalancing cases.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rbtree/service"
)

type options struct {
	logLevel string
	verify   bool
	maxNodes int
}

func newRootCmd(log *logrus.Logger) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "rbtree",
		Short:         "Drive a red-black tree with scripts and generated workloads",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logrus.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(lvl)
			log.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "logrus level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&opts.verify, "verify", false, "verify every invariant after each mutation")
	root.PersistentFlags().IntVar(&opts.maxNodes, "max-nodes", 0, "cap on live nodes, 0 for unlimited")

	root.AddCommand(
		newReplayCmd(opts, log),
		newBenchCmd(opts, log),
		newDemoCmd(),
	)
	return root
}

func (o *options) runnerConfig(log *logrus.Logger) service.Config {
	cfg := service.Config{Logger: log}
	if o.verify {
		cfg.VerifyEvery = 1
	}
	return cfg
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// ---------------- Signals ----------------

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---------------- Commands ----------------

	if err := newRootCmd(log).ExecuteContext(ctx); err != nil {
		log.WithError(err).Error("rbtree failed")
		stop()
		os.Exit(1)
	}
}
