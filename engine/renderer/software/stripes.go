package software

import "sync"

// DefaultDepthStripes is the number of locks guarding a frame buffer.
const DefaultDepthStripes = 64

// StripeLocks spreads pixel indices over a fixed set of mutexes so that
// writers touching different pixels rarely contend.
type StripeLocks struct {
	locks []sync.Mutex
}

func NewStripeLocks(count int) *StripeLocks {
	if count < 1 {
		count = 1
	}
	return &StripeLocks{locks: make([]sync.Mutex, count)}
}

func (s *StripeLocks) Len() int {
	return len(s.locks)
}

// Stripe returns the lock owning the pixel at index.
func (s *StripeLocks) Stripe(index int) *sync.Mutex {
	return &s.locks[index%len(s.locks)]
}

func (s *StripeLocks) Lock(index int) {
	s.Stripe(index).Lock()
}

func (s *StripeLocks) Unlock(index int) {
	s.Stripe(index).Unlock()
}
