package memory

// FreeList is a LIFO stack of released slot indices. The most recently
// released slot is handed out first, which keeps the hot end of an
// arena dense.
//
// FreeList is not safe for concurrent use.
type FreeList struct {
	slots []uint32
}

func NewFreeList(capacity int) *FreeList {
	if capacity < 0 {
		capacity = 0
	}
	return &FreeList{slots: make([]uint32, 0, capacity)}
}

// Push records slot as available for reuse.
func (f *FreeList) Push(slot uint32) {
	f.slots = append(f.slots, slot)
}

// Pop returns the most recently pushed slot, or false when empty.
func (f *FreeList) Pop() (uint32, bool) {
	n := len(f.slots)
	if n == 0 {
		return 0, false
	}
	slot := f.slots[n-1]
	f.slots = f.slots[:n-1]
	return slot, true
}

func (f *FreeList) Len() int { return len(f.slots) }

// Reset drops every recorded slot and releases the backing array.
func (f *FreeList) Reset() {
	f.slots = nil
}
