package service

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"rbtree/domain/rbtree"
	"rbtree/infra/workload"
)

/*
ReplayFile applies the script at path to tree.

The script is parsed in full before the first op runs, so a syntax
error never leaves the tree half-built.
*/
func ReplayFile(ctx context.Context, path string, tree *rbtree.Tree, cfg Config) (Report, error) {
	ops, err := workload.ParseFile(path)
	if err != nil {
		return Report{}, err
	}

	r := NewRunner(tree, cfg)
	rep, err := r.Run(ctx, ops)
	if err != nil {
		return rep, errors.Wrapf(err, "replay %s", path)
	}

	r.log.WithFields(logrus.Fields{
		"script": path,
		"ops":    rep.Ops,
		"size":   rep.Size,
	}).Info("replay completed")
	return rep, nil
}

// RunSpec generates the workload described by spec and applies it to
// tree. spec.VerifyEvery overrides cfg.VerifyEvery when set.
func RunSpec(ctx context.Context, spec workload.Spec, tree *rbtree.Tree, cfg Config) (Report, error) {
	spec = spec.WithDefaults()
	ops, err := spec.Generate()
	if err != nil {
		return Report{}, errors.Wrap(err, "generate workload")
	}
	if spec.VerifyEvery > 0 {
		cfg.VerifyEvery = spec.VerifyEvery
	}

	r := NewRunner(tree, cfg)
	r.log.WithFields(logrus.Fields{
		"pattern": spec.Pattern,
		"count":   spec.Count,
		"seed":    spec.Seed,
	}).Debug("workload generated")
	return r.Run(ctx, ops)
}
