// Package memory provides the low-level primitives the tree arena is
// built on: a LIFO free list of recycled slot indices and a typed
// object pool for the explicit work stacks used by traversals.
//
// The package is dependency-free and knows nothing about red-black
// trees; slots are plain uint32 indices.
package memory
