package service

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"rbtree/domain/rbtree"
	"rbtree/infra/workload"
)

// ErrKeyNotFound is returned when a script erases a key the tree does
// not hold.
var ErrKeyNotFound = errors.New("service: key not found")

// Config controls a Runner.
type Config struct {
	// VerifyEvery runs Tree.Verify after every N mutations. Zero disables
	// periodic checks; explicit verify ops always run.
	VerifyEvery int
	// Logger defaults to logrus.StandardLogger().
	Logger *logrus.Logger
}

// Report summarizes a run. It is returned even when the run fails part
// way, describing the ops applied so far.
type Report struct {
	Ops      int
	Inserts  int
	Erases   int
	Finds    int
	Misses   int
	Verifies int

	Size        int
	Height      int
	BlackHeight int

	// Exports holds one ascending key list per export op.
	Exports [][]int64

	Elapsed time.Duration
}

/*
Runner is the only write path from the outside world into a tree.
It is single-threaded like the tree itself: one Runner per tree, one
Run at a time.
*/
type Runner struct {
	tree      *rbtree.Tree
	cfg       Config
	log       *logrus.Entry
	mutations int
}

func NewRunner(tree *rbtree.Tree, cfg Config) *Runner {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.VerifyEvery < 0 {
		cfg.VerifyEvery = 0
	}
	return &Runner{
		tree: tree,
		cfg:  cfg,
		log:  logrus.NewEntry(cfg.Logger).WithField("component", "runner"),
	}
}

// Run applies ops in order. The first failing op aborts the run; its
// error names the op and, for scripts, the line. Cancelling ctx stops
// the run between ops.
func (r *Runner) Run(ctx context.Context, ops []workload.Op) (rep Report, err error) {
	start := time.Now()
	defer func() {
		rep.Size = r.tree.Len()
		rep.Height = r.tree.Height()
		rep.BlackHeight = r.tree.BlackHeight()
		rep.Elapsed = time.Since(start)
	}()

	for i := range ops {
		if err := ctx.Err(); err != nil {
			return rep, errors.Wrapf(err, "stopped after %d ops", rep.Ops)
		}
		op := &ops[i]
		if err := r.apply(op, &rep); err != nil {
			if op.Line > 0 {
				return rep, errors.Wrapf(err, "line %d: %s", op.Line, op.Kind)
			}
			return rep, errors.Wrapf(err, "op %d: %s", i, op.Kind)
		}
		rep.Ops++
	}

	r.log.WithFields(logrus.Fields{
		"ops":     rep.Ops,
		"inserts": rep.Inserts,
		"erases":  rep.Erases,
		"size":    r.tree.Len(),
	}).Debug("run complete")
	return rep, nil
}

//
// ──────────────────────────────────────────────────────────
// Ops
// ──────────────────────────────────────────────────────────
//

func (r *Runner) apply(op *workload.Op, rep *Report) error {
	switch op.Kind {
	case workload.OpInsert:
		for _, k := range op.Keys {
			if _, err := r.tree.Insert(k); err != nil {
				return err
			}
			rep.Inserts++
			if err := r.mutated(rep); err != nil {
				return err
			}
		}

	case workload.OpErase:
		for _, k := range op.Keys {
			h, ok := r.tree.Find(k)
			if !ok {
				return errors.Wrapf(ErrKeyNotFound, "erase %d", k)
			}
			if err := r.tree.Erase(h); err != nil {
				return err
			}
			rep.Erases++
			if err := r.mutated(rep); err != nil {
				return err
			}
		}

	case workload.OpFind:
		for _, k := range op.Keys {
			rep.Finds++
			_, ok := r.tree.Find(k)
			if !ok {
				rep.Misses++
			}
			r.log.WithFields(logrus.Fields{"key": k, "found": ok}).Debug("find")
		}

	case workload.OpMin, workload.OpMax:
		h, ok := r.tree.Min()
		if op.Kind == workload.OpMax {
			h, ok = r.tree.Max()
		}
		if !ok {
			r.log.WithField("op", op.Kind.String()).Info("tree is empty")
			break
		}
		r.log.WithFields(logrus.Fields{"op": op.Kind.String(), "key": h.Key()}).Info("extreme")

	case workload.OpExport:
		buf := make([]int64, r.tree.Len())
		n, err := r.tree.ToSortedSequence(buf)
		if err != nil {
			return err
		}
		rep.Exports = append(rep.Exports, buf[:n])
		r.log.WithField("count", n).Debug("export")

	case workload.OpVerify:
		if err := r.verify(rep); err != nil {
			return err
		}

	case workload.OpClear:
		r.tree.Clear()
		if err := r.mutated(rep); err != nil {
			return err
		}

	default:
		return errors.Newf("unsupported op %s", op.Kind)
	}
	return nil
}

func (r *Runner) mutated(rep *Report) error {
	r.mutations++
	if r.cfg.VerifyEvery > 0 && r.mutations%r.cfg.VerifyEvery == 0 {
		return r.verify(rep)
	}
	return nil
}

func (r *Runner) verify(rep *Report) error {
	rep.Verifies++
	if err := r.tree.Verify(); err != nil {
		r.log.WithError(err).WithField("mutations", r.mutations).Error("invariant check failed")
		return err
	}
	return nil
}
