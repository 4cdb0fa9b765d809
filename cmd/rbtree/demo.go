package main

import (
	"fmt"
	"io"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"rbtree/domain/rbtree"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through the rotation, two-child erase and monotonic-run scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout())
		},
	}
}

func runDemo(out io.Writer) error {
	// ---------------- Right-right rotation at the root ----------------

	tree := rbtree.New()
	defer tree.Destroy()
	if err := insertAll(tree, 10, 20, 30); err != nil {
		return err
	}
	fmt.Fprintln(out, "insert 10 20 30:")
	if err := tree.Dump(out); err != nil {
		return err
	}
	fmt.Fprintf(out, "export %s\n\n", formatKeys(tree.Keys()))

	// ---------------- Erase with successor substitution ----------------

	tree.Clear()
	if err := insertAll(tree, 10, 20, 30, 40, 50, 25); err != nil {
		return err
	}
	fmt.Fprintln(out, "insert 10 20 30 40 50 25:")
	if err := tree.Dump(out); err != nil {
		return err
	}
	for _, k := range []int64{30, 20} {
		h, ok := tree.Find(k)
		if !ok {
			return errors.Newf("demo: %d missing", k)
		}
		if err := tree.Erase(h); err != nil {
			return err
		}
		if err := tree.Verify(); err != nil {
			return err
		}
		fmt.Fprintf(out, "erase %d:\n", k)
		if err := tree.Dump(out); err != nil {
			return err
		}
		fmt.Fprintf(out, "export %s\n", formatKeys(tree.Keys()))
	}
	fmt.Fprintln(out)

	// ---------------- Monotonic run ----------------

	tree.Clear()
	const n = 1000
	for k := int64(1); k <= n; k++ {
		if _, err := tree.Insert(k); err != nil {
			return err
		}
	}
	if err := tree.Verify(); err != nil {
		return err
	}
	fmt.Fprintf(out, "insert 1..%d: height %d (bound %.2f), black-height %d, rotations %d\n",
		n, tree.Height(), 2*math.Log2(n+1), tree.BlackHeight(), tree.Stats().Rotations())
	return nil
}

func insertAll(tree *rbtree.Tree, keys ...int64) error {
	for _, k := range keys {
		if _, err := tree.Insert(k); err != nil {
			return err
		}
	}
	return nil
}
