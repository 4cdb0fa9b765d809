package rbtree

import "github.com/cockroachdb/errors"

var (
	// ErrTreeFull is returned by Insert when the arena cannot take another
	// node. The tree is left exactly as it was before the call.
	ErrTreeFull = errors.New("rbtree: tree is full")

	// ErrInvalidHandle is returned for handles that belong to another
	// tree, name the sentinel, or name a node that was already erased.
	ErrInvalidHandle = errors.New("rbtree: invalid handle")

	// ErrShortBuffer is returned by ToSortedSequence when the buffer is
	// smaller than the node count. Nothing is written.
	ErrShortBuffer = errors.New("rbtree: buffer too small")

	// ErrDestroyed is returned by mutating calls after Destroy.
	ErrDestroyed = errors.New("rbtree: tree destroyed")

	// ErrCorrupt is returned by Verify when a structural invariant fails.
	ErrCorrupt = errors.New("rbtree: corrupt tree")
)
