package presenter

import "sync"

// Store holds a presenter's published state. The whole value is replaced on
// every publish and all subscribers are notified with the new value.
//
// Publishes carry a generation stamp: a publish stamped older than the last
// applied one is dropped, which makes racing fetch completions resolve to a
// deterministic last-write-wins order instead of interleaving. Notifications
// are serialized, forming the single logical context state is observed on.
type Store[T any] struct {
	notifyMu sync.Mutex // serializes publishes and subscriber callbacks

	mu     sync.RWMutex // guards value, gen, subs
	value  T
	gen    uint64
	subs   map[int]func(T)
	nextID int
}

// NewStore creates a store holding the given initial value.
func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{
		value: initial,
		subs:  make(map[int]func(T)),
	}
}

// Get returns a snapshot of the current value.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Subscribe registers fn to be called with every newly published value.
// The returned function removes the subscription.
func (s *Store[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Replace applies update to the current value and notifies subscribers,
// provided gen is not older than the last applied generation. It reports
// whether the publish was applied.
func (s *Store[T]) Replace(gen uint64, update func(prev T) T) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if gen < s.gen {
		s.mu.Unlock()
		return false
	}
	s.gen = gen
	s.value = update(s.value)
	value := s.value
	subs := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(value)
	}
	return true
}
