package sequence

import "sync/atomic"

// Sequencer hands out strictly increasing identities. It is safe for
// concurrent use, so independent trees may be created from any goroutine.
type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer whose first Next returns start+1.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next identity.
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last identity handed out.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}
