package rbtree

import (
	"github.com/cockroachdb/errors"

	"rbtree/infra/memory"
	"rbtree/infra/sequence"
)

const defaultInitialCapacity = 64

// Config tunes the arena backing a Tree.
type Config struct {
	// InitialCapacity pre-sizes the arena. Defaults to 64.
	InitialCapacity int
	// MaxNodes caps the number of live nodes. Zero means limited only by
	// the 32-bit slot index space. Inserts past the cap fail with
	// ErrTreeFull.
	MaxNodes int
}

type Tree struct {
	id    uint64
	nodes []node // nodes[nilSlot] is the sentinel
	root  uint32
	free  *memory.FreeList
	size  int
	limit int
	stats Stats

	destroyed bool
}

var (
	treeIDs = sequence.New(0)
	stacks  = memory.NewStackPool(64)
)

// New constructs an empty tree with a black sentinel.
func New() *Tree {
	return NewWithConfig(Config{})
}

func NewWithConfig(cfg Config) *Tree {
	if cfg.InitialCapacity <= 0 {
		cfg.InitialCapacity = defaultInitialCapacity
	}
	if cfg.MaxNodes <= 0 || cfg.MaxNodes > maxSlots {
		cfg.MaxNodes = maxSlots
	}
	if cfg.InitialCapacity > cfg.MaxNodes {
		cfg.InitialCapacity = cfg.MaxNodes
	}

	nodes := make([]node, 1, cfg.InitialCapacity+1)
	nodes[nilSlot] = node{color: Black}

	return &Tree{
		id:    treeIDs.Next(),
		nodes: nodes,
		root:  nilSlot,
		free:  memory.NewFreeList(0),
		limit: cfg.MaxNodes,
	}
}

func (t *Tree) Len() int { return t.size }

func (t *Tree) Empty() bool { return t.size == 0 }

func (t *Tree) Stats() Stats { return t.stats }

// Clear releases every node, children before parents, and leaves the
// tree empty and usable. Released slots are reused by later inserts and
// all previously issued handles become invalid.
func (t *Tree) Clear() {
	if t.destroyed {
		return
	}
	t.releaseAll()
}

// Destroy releases every node, then the sentinel and the arena itself.
// Reads on a destroyed tree report empty results; mutations return
// ErrDestroyed. Destroy is idempotent.
func (t *Tree) Destroy() {
	if t.destroyed {
		return
	}
	t.releaseAll()
	t.nodes = nil
	t.free.Reset()
	t.destroyed = true
}

// Key returns the key of the node named by h.
func (t *Tree) Key(h Handle) (int64, error) {
	x, err := t.resolve(h, "key")
	if err != nil {
		return 0, err
	}
	return t.nodes[x].key, nil
}

// Find returns a node holding key. With duplicates present, whichever
// equal node the descent meets first is returned.
func (t *Tree) Find(key int64) (Handle, bool) {
	if t.destroyed {
		return Handle{}, false
	}
	x := t.search(key)
	if x == nilSlot {
		return Handle{}, false
	}
	return t.handle(x), true
}

// Min returns the node with the smallest key, or false if the tree is empty.
func (t *Tree) Min() (Handle, bool) {
	if t.destroyed || t.root == nilSlot {
		return Handle{}, false
	}
	return t.handle(t.minimum(t.root)), true
}

// Max returns the node with the largest key, or false if the tree is empty.
func (t *Tree) Max() (Handle, bool) {
	if t.destroyed || t.root == nilSlot {
		return Handle{}, false
	}
	return t.handle(t.maximum(t.root)), true
}

// Successor returns the leftmost node whose key is strictly greater than key.
func (t *Tree) Successor(key int64) (Handle, bool) {
	if t.destroyed {
		return Handle{}, false
	}
	x := t.root
	succ := nilSlot
	for x != nilSlot {
		if key < t.nodes[x].key {
			succ = x
			x = t.nodes[x].left
		} else {
			x = t.nodes[x].right
		}
	}
	if succ == nilSlot {
		return Handle{}, false
	}
	return t.handle(succ), true
}

// Predecessor returns the rightmost node whose key is strictly less than key.
func (t *Tree) Predecessor(key int64) (Handle, bool) {
	if t.destroyed {
		return Handle{}, false
	}
	x := t.root
	pred := nilSlot
	for x != nilSlot {
		if key > t.nodes[x].key {
			pred = x
			x = t.nodes[x].right
		} else {
			x = t.nodes[x].left
		}
	}
	if pred == nilSlot {
		return Handle{}, false
	}
	return t.handle(pred), true
}

// Next returns the in-order successor of the node named by h. It returns
// false at the end of the tree and for invalid handles.
func (t *Tree) Next(h Handle) (Handle, bool) {
	x, err := t.resolve(h, "next")
	if err != nil {
		return Handle{}, false
	}
	if n := t.next(x); n != nilSlot {
		return t.handle(n), true
	}
	return Handle{}, false
}

// Prev returns the in-order predecessor of the node named by h.
func (t *Tree) Prev(h Handle) (Handle, bool) {
	x, err := t.resolve(h, "prev")
	if err != nil {
		return Handle{}, false
	}
	if p := t.prev(x); p != nilSlot {
		return t.handle(p), true
	}
	return Handle{}, false
}

/******************** Arena ********************/

// alloc claims a slot for a new red node. Nothing is linked yet, so a
// failure leaves the tree untouched.
func (t *Tree) alloc(key int64) (uint32, error) {
	if t.size >= t.limit {
		return nilSlot, errors.Wrapf(ErrTreeFull, "insert %d: limit of %d nodes reached", key, t.limit)
	}

	x, ok := t.free.Pop()
	if ok {
		t.stats.SlotReuses++
	} else {
		t.nodes = append(t.nodes, node{})
		x = uint32(len(t.nodes) - 1)
	}

	n := &t.nodes[x]
	n.key = key
	n.left = nilSlot
	n.right = nilSlot
	n.parent = nilSlot
	n.color = Red
	n.live = true
	return x, nil
}

func (t *Tree) release(x uint32) {
	n := &t.nodes[x]
	n.gen++
	n.live = false
	n.left = nilSlot
	n.right = nilSlot
	n.parent = nilSlot
	t.free.Push(x)
}

// releaseAll frees every node with an explicit post-order walk, so a node
// is released only after both of its subtrees.
func (t *Tree) releaseAll() {
	sp := stacks.Get()
	stack := *sp

	nodes := t.nodes
	last := nilSlot
	x := t.root
	for x != nilSlot || len(stack) > 0 {
		if x != nilSlot {
			stack = append(stack, x)
			x = nodes[x].left
			continue
		}
		top := stack[len(stack)-1]
		if r := nodes[top].right; r != nilSlot && r != last {
			x = r
			continue
		}
		stack = stack[:len(stack)-1]
		t.release(top)
		last = top
	}

	*sp = stack
	stacks.Put(sp)

	t.root = nilSlot
	t.size = 0
	nodes[nilSlot].parent = nilSlot
}

// resolve maps a handle to its slot, rejecting foreign, stale and
// sentinel handles.
func (t *Tree) resolve(h Handle, op string) (uint32, error) {
	if t.destroyed {
		return nilSlot, errors.Wrapf(ErrDestroyed, "%s", op)
	}
	if h.tree != t.id {
		return nilSlot, errors.Wrapf(ErrInvalidHandle, "%s: handle belongs to tree %d, not %d", op, h.tree, t.id)
	}
	if h.IsZero() || int(h.slot) >= len(t.nodes) {
		return nilSlot, errors.Wrapf(ErrInvalidHandle, "%s: slot %d out of range", op, h.slot)
	}
	n := &t.nodes[h.slot]
	if !n.live || n.gen != h.gen {
		return nilSlot, errors.Wrapf(ErrInvalidHandle, "%s: slot %d was erased", op, h.slot)
	}
	return h.slot, nil
}

/******************** Internal helpers ********************/

func (t *Tree) search(key int64) uint32 {
	x := t.root
	for x != nilSlot {
		n := &t.nodes[x]
		switch {
		case key < n.key:
			x = n.left
		case key > n.key:
			x = n.right
		default:
			return x
		}
	}
	return nilSlot
}

// minimum returns the leftmost node of the subtree rooted at x.
func (t *Tree) minimum(x uint32) uint32 {
	for t.nodes[x].left != nilSlot {
		x = t.nodes[x].left
	}
	return x
}

func (t *Tree) maximum(x uint32) uint32 {
	for t.nodes[x].right != nilSlot {
		x = t.nodes[x].right
	}
	return x
}

// In-order successor
func (t *Tree) next(x uint32) uint32 {
	if t.nodes[x].right != nilSlot {
		return t.minimum(t.nodes[x].right)
	}
	p := t.nodes[x].parent
	for p != nilSlot && x == t.nodes[p].right {
		x = p
		p = t.nodes[p].parent
	}
	return p
}

// In-order predecessor
func (t *Tree) prev(x uint32) uint32 {
	if t.nodes[x].left != nilSlot {
		return t.maximum(t.nodes[x].left)
	}
	p := t.nodes[x].parent
	for p != nilSlot && x == t.nodes[p].left {
		x = p
		p = t.nodes[p].parent
	}
	return p
}
