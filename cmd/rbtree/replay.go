package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rbtree/domain/rbtree"
	"rbtree/service"
)

func newReplayCmd(opts *options, log *logrus.Logger) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Apply an operation script and print every export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree := rbtree.NewWithConfig(rbtree.Config{MaxNodes: opts.maxNodes})
			defer tree.Destroy()

			rep, err := service.ReplayFile(cmd.Context(), args[0], tree, opts.runnerConfig(log))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, keys := range rep.Exports {
				fmt.Fprintln(out, formatKeys(keys))
			}
			if dump {
				return tree.Dump(out)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "print the final tree shape")
	return cmd
}

func formatKeys(keys []int64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, k)
	}
	b.WriteByte(']')
	return b.String()
}
