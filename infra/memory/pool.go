package memory

import "sync"

// Pool is a typed object pool. reset, when non-nil, runs on every
// value handed back so the next Get never observes stale contents.
type Pool[T any] struct {
	p     *sync.Pool
	reset func(*T)
}

func NewPool[T any](ctor func() *T, reset func(*T)) *Pool[T] {
	return &Pool[T]{
		p: &sync.Pool{
			New: func() any { return ctor() },
		},
		reset: reset,
	}
}

func (p *Pool[T]) Get() *T {
	return p.p.Get().(*T)
}

func (p *Pool[T]) Put(v *T) {
	if v == nil {
		return
	}
	if p.reset != nil {
		p.reset(v)
	}
	p.p.Put(v)
}

// maxPooledStack caps the capacity of stacks kept in a StackPool, so one
// pathological walk does not pin a large backing array forever.
const maxPooledStack = 1 << 16

// NewStackPool returns a pool of empty slot stacks with the given
// starting capacity.
func NewStackPool(capacity int) *Pool[[]uint32] {
	return NewPool(
		func() *[]uint32 {
			s := make([]uint32, 0, capacity)
			return &s
		},
		func(s *[]uint32) {
			if cap(*s) > maxPooledStack {
				*s = make([]uint32, 0, capacity)
				return
			}
			*s = (*s)[:0]
		},
	)
}
