// Package worker drives a buffer.BoundedBuffer from concurrent producers and
// consumers.
//
// A Producer pushes a finite source into a buffer, a Consumer pulls a fixed
// number of items into its own sink. Both pause for a configured delay after
// every item to simulate processing time. The pause happens outside the
// buffer's lock, so a sleeping worker never holds up the others.
//
// Workers never retry. The first interruption ends the run and is returned
// to the caller, which can test for it with IsInterrupted.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haivivi/pcbuf/pkg/buffer"
)

// ErrInvalidArgument is returned when a worker is built with a negative
// delay or count, or without a buffer or sink.
var ErrInvalidArgument = errors.New("worker: invalid argument")

// Role identifies what a worker does with the buffer.
type Role string

const (
	RoleProducer Role = "producer"
	RoleConsumer Role = "consumer"
)

// Producible is the producing side of a bounded buffer.
type Producible[T any] interface {
	Produce(ctx context.Context, item T) error
	Size() int
}

// Consumable is the consuming side of a bounded buffer.
type Consumable[T any] interface {
	Consume(ctx context.Context) (T, error)
	Size() int
}

// Appender receives consumed items.
type Appender[T any] interface {
	Append(item T)
}

var (
	_ Producible[int] = (*buffer.BoundedBuffer[int])(nil)
	_ Consumable[int] = (*buffer.BoundedBuffer[int])(nil)
	_ Appender[int]   = (*buffer.Sink[int])(nil)
)

// IsInterrupted reports whether err was caused by the worker's context
// ending while it waited on the buffer or slept.
func IsInterrupted(err error) bool {
	return errors.Is(err, buffer.ErrInterrupted)
}

// Sleep pauses for d or until ctx is done, whichever comes first. It returns
// an error matching buffer.ErrInterrupted if ctx is done, even when d <= 0.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		if ctx.Err() != nil {
			return interrupted(ctx)
		}
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return interrupted(ctx)
	case <-timer.C:
		return nil
	}
}

func interrupted(ctx context.Context) error {
	return fmt.Errorf("%w: %w", buffer.ErrInterrupted, context.Cause(ctx))
}
