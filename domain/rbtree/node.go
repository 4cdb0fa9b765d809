package rbtree

import "math"

// nilSlot is the arena index of the sentinel.
const nilSlot uint32 = 0

// maxSlots bounds the arena so slot indices always fit an int on 32-bit
// platforms.
const maxSlots = math.MaxInt32 - 1

type node struct {
	key    int64
	left   uint32
	right  uint32
	parent uint32
	// gen is bumped every time the slot is released, invalidating
	// handles issued for the previous occupant.
	gen   uint32
	color Color
	live  bool
}

// Handle names one node of one tree. The zero Handle names the sentinel
// and is never valid.
type Handle struct {
	tree uint64
	slot uint32
	gen  uint32
	key  int64
}

// Key returns the key of the node the handle was issued for. Nodes keep
// their key for life, so the value is meaningful for as long as the
// handle is valid.
func (h Handle) Key() int64 { return h.key }

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.slot == nilSlot }

func (t *Tree) handle(x uint32) Handle {
	return Handle{tree: t.id, slot: x, gen: t.nodes[x].gen, key: t.nodes[x].key}
}
