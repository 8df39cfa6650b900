package buffer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
)

var (
	// ErrInterrupted is returned when the context of a Produce or Consume call
	// is done while the call is suspended waiting for space or data. The
	// returned error also wraps the context's cause.
	ErrInterrupted = errors.New("buffer: interrupted")

	// ErrInvalidCapacity is returned by NewBounded for a capacity below 1.
	ErrInvalidCapacity = errors.New("buffer: invalid capacity")

	// ErrClosed is wrapped by every error returned from a closed buffer.
	ErrClosed = errors.New("buffer: closed")
)

// BoundedBuffer is a thread-safe fixed-capacity FIFO queue. Produce blocks
// while the buffer is full and Consume blocks while it is empty.
//
// A single mutex guards the queue, and a single condition variable bound to
// that mutex carries both the not-full and the not-empty predicates. Every
// successful Produce or Consume broadcasts on the condition, and every waiter
// re-checks its own predicate in a loop after waking, so producers and
// consumers sharing the condition can never strand each other.
//
// Waits are unbounded. A caller that consumes more items than will ever be
// produced blocks until its context is done.
type BoundedBuffer[T any] struct {
	cond *sync.Cond

	mu         sync.Mutex
	buf        []T
	head, tail int64
	closeWrite bool
	closeErr   error
}

// NewBounded creates a BoundedBuffer holding at most capacity items.
func NewBounded[T any](capacity int) (*BoundedBuffer[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	bb := &BoundedBuffer[T]{
		buf: make([]T, capacity),
	}
	bb.cond = sync.NewCond(&bb.mu)
	return bb, nil
}

// MustBounded is like NewBounded but panics if capacity is invalid.
func MustBounded[T any](capacity int) *BoundedBuffer[T] {
	bb, err := NewBounded[T](capacity)
	if err != nil {
		panic(err)
	}
	return bb
}

// Produce appends item at the tail of the buffer.
//
// If the buffer is full the calling goroutine is suspended until a consumer
// removes an item. If ctx is done while suspended, Produce returns an error
// matching ErrInterrupted and leaves the buffer unchanged. A call that finds
// space available completes without consulting ctx.
func (bb *BoundedBuffer[T]) Produce(ctx context.Context, item T) error {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	if err := bb.writableLocked(); err != nil {
		return err
	}

	bufsz := int64(len(bb.buf))
	for bb.tail-bb.head == bufsz {
		if err := bb.waitLocked(ctx); err != nil {
			return err
		}
		if err := bb.writableLocked(); err != nil {
			return err
		}
	}

	bb.buf[bb.tail%bufsz] = item
	bb.tail++
	bb.cond.Broadcast()
	return nil
}

// Consume removes and returns the item at the head of the buffer.
//
// If the buffer is empty the calling goroutine is suspended until a producer
// adds an item. If ctx is done while suspended, Consume returns an error
// matching ErrInterrupted and leaves the buffer unchanged. After CloseWrite,
// Consume drains the remaining items and then returns io.EOF.
func (bb *BoundedBuffer[T]) Consume(ctx context.Context) (t T, err error) {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	if bb.closeErr != nil {
		err = fmt.Errorf("buffer: consume from closed buffer: %w", bb.closeErr)
		return
	}

	for bb.head == bb.tail {
		if bb.closeWrite {
			err = io.EOF
			return
		}
		if err = bb.waitLocked(ctx); err != nil {
			return
		}
		if bb.closeErr != nil {
			err = fmt.Errorf("buffer: consume from closed buffer: %w", bb.closeErr)
			return
		}
	}

	var zero T
	head := bb.head % int64(len(bb.buf))
	t = bb.buf[head]
	bb.buf[head] = zero
	bb.head++
	bb.cond.Broadcast()
	return t, nil
}

// waitLocked suspends the caller on the condition until it is woken by a
// broadcast or ctx is done. bb.mu must be held; it is held again on return.
func (bb *BoundedBuffer[T]) waitLocked(ctx context.Context) error {
	if ctx.Err() != nil {
		return interrupted(ctx)
	}
	// The callback blocks on bb.mu until Wait has parked this goroutine, so
	// the broadcast cannot be lost between the check above and Wait.
	stop := context.AfterFunc(ctx, func() {
		bb.mu.Lock()
		bb.cond.Broadcast()
		bb.mu.Unlock()
	})
	bb.cond.Wait()
	stop()
	if ctx.Err() != nil {
		return interrupted(ctx)
	}
	return nil
}

func interrupted(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrInterrupted, context.Cause(ctx))
}

func (bb *BoundedBuffer[T]) writableLocked() error {
	if bb.closeErr != nil {
		return fmt.Errorf("buffer: produce to closed buffer: %w", bb.closeErr)
	}
	if bb.closeWrite {
		return fmt.Errorf("buffer: produce to closed buffer: %w", ErrClosed)
	}
	return nil
}

// Size returns the number of items currently in the buffer. The value is a
// snapshot taken under the buffer's lock and is always between 0 and Cap.
func (bb *BoundedBuffer[T]) Size() int {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	return int(bb.tail - bb.head)
}

// Cap returns the fixed capacity of the buffer.
func (bb *BoundedBuffer[T]) Cap() int {
	return len(bb.buf)
}

// Items returns a copy of the buffered items in FIFO order.
func (bb *BoundedBuffer[T]) Items() []T {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	if bb.head == bb.tail {
		return []T{}
	}
	bufsz := int64(len(bb.buf))
	h := bb.head % bufsz
	t := bb.tail % bufsz
	if h < t {
		return slices.Clone(bb.buf[h:t])
	}
	return slices.Concat(bb.buf[h:], bb.buf[:t])
}

// CloseWrite closes the producing side of the buffer.
//
// Further Produce calls fail with ErrClosed, including producers currently
// waiting for space. Consumers keep draining buffered items and receive
// io.EOF once the buffer is empty.
//
// Returns nil if the producing side was already closed.
func (bb *BoundedBuffer[T]) CloseWrite() error {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	if bb.closeWrite {
		return nil
	}
	bb.closeWrite = true
	bb.cond.Broadcast()
	return nil
}

// CloseWithError closes both sides of the buffer. Every pending and future
// Produce or Consume fails with an error wrapping ErrClosed and err. If err
// is nil, ErrClosed alone is used.
func (bb *BoundedBuffer[T]) CloseWithError(err error) error {
	if err == nil {
		err = ErrClosed
	} else if !errors.Is(err, ErrClosed) {
		err = fmt.Errorf("%w: %w", ErrClosed, err)
	}
	bb.mu.Lock()
	defer bb.mu.Unlock()
	if bb.closeErr != nil {
		return nil
	}
	bb.closeErr = err
	bb.closeWrite = true
	bb.cond.Broadcast()
	return nil
}

// Close is equivalent to CloseWithError(nil).
func (bb *BoundedBuffer[T]) Close() error {
	return bb.CloseWithError(nil)
}

// Error returns the error the buffer was closed with, if any.
func (bb *BoundedBuffer[T]) Error() error {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	return bb.closeErr
}
