package rbtree

import (
	"iter"

	"github.com/cockroachdb/errors"
)

// ToSortedSequence writes every key in ascending order into buf and
// returns the number written. If buf is shorter than Len it fails with
// ErrShortBuffer before writing anything.
func (t *Tree) ToSortedSequence(buf []int64) (int, error) {
	if t.destroyed {
		return 0, errors.Wrap(ErrDestroyed, "export")
	}
	if len(buf) < t.size {
		return 0, errors.Wrapf(ErrShortBuffer, "export: need %d slots, have %d", t.size, len(buf))
	}

	sp := stacks.Get()
	stack := *sp

	nodes := t.nodes
	n := 0
	x := t.root
	for x != nilSlot || len(stack) > 0 {
		for x != nilSlot {
			stack = append(stack, x)
			x = nodes[x].left
		}
		x = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		buf[n] = nodes[x].key
		n++
		x = nodes[x].right
	}

	*sp = stack
	stacks.Put(sp)
	return n, nil
}

// Keys returns a freshly allocated ascending copy of every key.
func (t *Tree) Keys() []int64 {
	buf := make([]int64, t.size)
	n, err := t.ToSortedSequence(buf)
	if err != nil {
		return nil
	}
	return buf[:n]
}

// Ascend applies fn from lowest to highest key.
// If fn returns false, iteration stops early.
func (t *Tree) Ascend(fn func(key int64) bool) {
	if t.destroyed || t.root == nilSlot {
		return
	}
	for x := t.minimum(t.root); x != nilSlot; x = t.next(x) {
		if !fn(t.nodes[x].key) {
			return
		}
	}
}

// Descend applies fn from highest to lowest key.
// If fn returns false, iteration stops early.
func (t *Tree) Descend(fn func(key int64) bool) {
	if t.destroyed || t.root == nilSlot {
		return
	}
	for x := t.maximum(t.root); x != nilSlot; x = t.prev(x) {
		if !fn(t.nodes[x].key) {
			return
		}
	}
}

// All yields keys in ascending order. The tree must not be mutated while
// the sequence is being consumed.
func (t *Tree) All() iter.Seq[int64] {
	return func(yield func(int64) bool) { t.Ascend(yield) }
}

// Backward yields keys in descending order.
func (t *Tree) Backward() iter.Seq[int64] {
	return func(yield func(int64) bool) { t.Descend(yield) }
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Height() int {
	if t.destroyed || t.root == nilSlot {
		return 0
	}

	sp := stacks.Get()
	// (slot, depth) pairs
	stack := append(*sp, t.root, 1)
	height := 0
	for len(stack) > 0 {
		x, depth := stack[len(stack)-2], stack[len(stack)-1]
		stack = stack[:len(stack)-2]
		if int(depth) > height {
			height = int(depth)
		}
		if l := t.nodes[x].left; l != nilSlot {
			stack = append(stack, l, depth+1)
		}
		if r := t.nodes[x].right; r != nilSlot {
			stack = append(stack, r, depth+1)
		}
	}

	*sp = stack
	stacks.Put(sp)
	return height
}

// BlackHeight returns the number of black nodes below the root on any
// path down to the sentinel, counting the sentinel.
func (t *Tree) BlackHeight() int {
	if t.destroyed || t.root == nilSlot {
		return 0
	}
	bh := 0
	for x := t.root; x != nilSlot; {
		x = t.nodes[x].left
		if t.nodes[x].color == Black {
			bh++
		}
	}
	return bh
}
