package rbtree

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Verify checks the red-black properties, BST order, parent links,
// sentinel integrity and bookkeeping. It returns nil for a well-formed
// tree and an error wrapping ErrCorrupt naming the first violation
// otherwise.
func (t *Tree) Verify() error {
	if t.destroyed {
		return errors.Wrap(ErrDestroyed, "verify")
	}
	nodes := t.nodes

	s := nodes[nilSlot]
	if s.color != Black {
		return errors.Wrap(ErrCorrupt, "sentinel is not black")
	}
	if s.left != nilSlot || s.right != nilSlot || s.parent != nilSlot {
		return errors.Wrapf(ErrCorrupt, "sentinel links left=%d right=%d parent=%d", s.left, s.right, s.parent)
	}
	if t.root != nilSlot {
		if nodes[t.root].color != Black {
			return errors.Wrapf(ErrCorrupt, "root %d is red", nodes[t.root].key)
		}
		if nodes[t.root].parent != nilSlot {
			return errors.Wrapf(ErrCorrupt, "root %d has parent slot %d", nodes[t.root].key, nodes[t.root].parent)
		}
	}

	count := 0
	if _, err := t.verify(t.root, math.MinInt64, math.MaxInt64, &count); err != nil {
		return err
	}
	if count != t.size {
		return errors.Wrapf(ErrCorrupt, "reachable nodes %d, size %d", count, t.size)
	}
	if allocated := len(nodes) - 1 - t.free.Len(); allocated != t.size {
		return errors.Wrapf(ErrCorrupt, "arena holds %d live slots, size %d", allocated, t.size)
	}
	return nil
}

// verify checks the subtree at x, whose keys must lie in [lo, hi], and
// returns its black-height counting the sentinel. Recursion depth is the
// tree height; count bounds it on cyclic corruption.
func (t *Tree) verify(x uint32, lo, hi int64, count *int) (int, error) {
	if x == nilSlot {
		return 1, nil
	}
	*count++
	if *count > t.size {
		return 0, errors.Wrapf(ErrCorrupt, "more than %d nodes reachable (cycle?)", t.size)
	}

	n := &t.nodes[x]
	switch {
	case !n.live:
		return 0, errors.Wrapf(ErrCorrupt, "slot %d is linked but free", x)
	case n.color != Red && n.color != Black:
		return 0, errors.Wrapf(ErrCorrupt, "node %d has color %d", n.key, n.color)
	case n.key < lo || n.key > hi:
		return 0, errors.Wrapf(ErrCorrupt, "node %d outside [%d, %d]", n.key, lo, hi)
	}

	for _, c := range [2]uint32{n.left, n.right} {
		if c == nilSlot {
			continue
		}
		if t.nodes[c].parent != x {
			return 0, errors.Wrapf(ErrCorrupt, "node %d does not point back to parent %d", t.nodes[c].key, n.key)
		}
		if n.color == Red && t.nodes[c].color == Red {
			return 0, errors.Wrapf(ErrCorrupt, "red node %d has red child %d", n.key, t.nodes[c].key)
		}
	}

	lh, err := t.verify(n.left, lo, n.key, count)
	if err != nil {
		return 0, err
	}
	rh, err := t.verify(n.right, n.key, hi, count)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, errors.Wrapf(ErrCorrupt, "node %d black-height left %d right %d", n.key, lh, rh)
	}
	if n.color == Black {
		lh++
	}
	return lh, nil
}
