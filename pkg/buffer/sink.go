package buffer

import (
	"slices"
	"sync"
)

// Sink is a thread-safe growable list that collects items in append order.
// It is the destination a consumer drains a BoundedBuffer into. Unlike
// BoundedBuffer it never blocks: Append always succeeds and grows the
// underlying slice as needed.
type Sink[T any] struct {
	mu  sync.Mutex
	buf []T
}

// NewSink creates a Sink with room for hint items before it has to grow.
func NewSink[T any](hint int) *Sink[T] {
	if hint < 0 {
		hint = 0
	}
	return &Sink[T]{
		buf: make([]T, 0, hint),
	}
}

// Append adds item at the end of the sink.
func (s *Sink[T]) Append(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = append(s.buf, item)
}

// Len returns the number of items collected so far.
func (s *Sink[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buf)
}

// Items returns a copy of the collected items in append order.
func (s *Sink[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.buf)
}
