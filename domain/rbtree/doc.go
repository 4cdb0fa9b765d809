// Package rbtree implements a self-balancing ordered container: a
// red-black tree of int64 keys with logarithmic insertion, lookup,
// deletion and min/max retrieval, plus in-order export into a
// caller-provided buffer.
//
// Nodes live in an index arena owned by the Tree. Slot 0 is the
// sentinel: it is permanently black and stands in for every absent
// child and for the parent of the root. Erased slots go onto a free
// list and are reused by later inserts.
//
// Callers refer to nodes through Handle values. A handle stays valid
// until the node it names is erased or the tree is cleared or
// destroyed; after that every operation taking the handle reports
// ErrInvalidHandle instead of touching the reused slot.
//
// Duplicate keys are routed to the right subtree and coexist.
//
// A Tree is single-writer and not safe for concurrent use; callers
// that share one across goroutines must serialize access themselves.
package rbtree
