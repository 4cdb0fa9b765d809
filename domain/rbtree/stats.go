package rbtree

// Stats counts structural work done by a tree since it was created.
// Insert fixup cases: UncleRed recolors and moves up, Inner rotates the
// parent to turn an inner child into an outer one, Outer rotates the
// grandparent and ends the loop. Erase fixup cases are named after the
// sibling configuration they handle.
type Stats struct {
	Inserts uint64
	Erases  uint64

	LeftRotations  uint64
	RightRotations uint64

	InsertUncleRed uint64
	InsertInner    uint64
	InsertOuter    uint64

	EraseSiblingRed    uint64
	EraseNephewsBlack  uint64
	EraseNearNephewRed uint64
	EraseFarNephewRed  uint64

	SlotReuses uint64
}

// Rotations returns the total number of rotations performed.
func (s Stats) Rotations() uint64 { return s.LeftRotations + s.RightRotations }
