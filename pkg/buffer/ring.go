package buffer

import (
	"slices"
	"sync"
)

// Ring is a thread-safe fixed-size window over the most recently added
// items. When full, Add overwrites the oldest item instead of blocking.
type Ring[T any] struct {
	mu         sync.Mutex
	buf        []T
	head, tail int64
}

// NewRing creates a Ring that keeps the last size items. A size below 1 is
// treated as 1.
func NewRing[T any](size int) *Ring[T] {
	if size < 1 {
		size = 1
	}
	return &Ring[T]{buf: make([]T, size)}
}

// Add appends item, evicting the oldest item if the ring is full.
func (r *Ring[T]) Add(item T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bufsz := int64(len(r.buf))
	if r.tail-r.head == bufsz {
		r.head++
	}
	r.buf[r.tail%bufsz] = item
	r.tail++
}

// Items returns a copy of the retained items, oldest first.
func (r *Ring[T]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.head == r.tail {
		return []T{}
	}
	bufsz := int64(len(r.buf))
	h := r.head % bufsz
	t := r.tail % bufsz
	if h < t {
		return slices.Clone(r.buf[h:t])
	}
	return slices.Concat(r.buf[h:], r.buf[:t])
}

// Len returns the number of retained items.
func (r *Ring[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(r.tail - r.head)
}

// Cap returns the maximum number of retained items.
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}
