package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// ConsumerConfig configures a Consumer.
type ConsumerConfig[T any] struct {
	// Name identifies the consumer in logs and reports.
	Name string

	// Buffer supplies the items.
	Buffer Consumable[T]

	// Sink receives every consumed item. It should be private to this
	// consumer.
	Sink Appender[T]

	// Count is the exact number of items to consume. Must not be negative.
	Count int

	// Delay is the pause after each consumed item. Must not be negative.
	Delay time.Duration

	// Logger is optional. If nil, uses slog.Default().
	Logger *slog.Logger
}

// Consumer pulls a fixed number of items from a buffer into its sink.
//
// A Consumer blocks for as long as the buffer stays empty. If the producers
// attached to the buffer supply fewer items than Count, Run only returns
// when its context ends.
type Consumer[T any] struct {
	name   string
	buf    Consumable[T]
	sink   Appender[T]
	count  int
	delay  time.Duration
	logger *slog.Logger

	consumed atomic.Int64
}

// NewConsumer creates a Consumer from cfg.
func NewConsumer[T any](cfg ConsumerConfig[T]) (*Consumer[T], error) {
	switch {
	case cfg.Buffer == nil:
		return nil, fmt.Errorf("%w: consumer %q has no buffer", ErrInvalidArgument, cfg.Name)
	case cfg.Sink == nil:
		return nil, fmt.Errorf("%w: consumer %q has no sink", ErrInvalidArgument, cfg.Name)
	case cfg.Count < 0:
		return nil, fmt.Errorf("%w: consumer %q count %d", ErrInvalidArgument, cfg.Name, cfg.Count)
	case cfg.Delay < 0:
		return nil, fmt.Errorf("%w: consumer %q delay %v", ErrInvalidArgument, cfg.Name, cfg.Delay)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer[T]{
		name:   cfg.Name,
		buf:    cfg.Buffer,
		sink:   cfg.Sink,
		count:  cfg.Count,
		delay:  cfg.Delay,
		logger: logger.With("worker", cfg.Name, "role", RoleConsumer),
	}, nil
}

// Name returns the consumer's name.
func (c *Consumer[T]) Name() string { return c.name }

// Target returns the number of items the consumer was asked to consume.
func (c *Consumer[T]) Target() int { return c.count }

// Consumed returns how many items have been moved into the sink so far.
func (c *Consumer[T]) Consumed() int { return int(c.consumed.Load()) }

// Run consumes exactly Count items. It returns nil once they are all in the
// sink, or an interruption error as soon as ctx ends while waiting for data
// or sleeping. Items consumed before the interruption stay in the sink.
func (c *Consumer[T]) Run(ctx context.Context) error {
	for range c.count {
		item, err := c.buf.Consume(ctx)
		if err != nil {
			c.logger.Warn("consumer interrupted", "consumed", c.Consumed(), "error", err)
			return fmt.Errorf("worker: consumer %s: %w", c.name, err)
		}
		c.sink.Append(item)
		c.consumed.Add(1)
		c.logger.Info("consumed", "item", item, "size", c.buf.Size())

		if err := Sleep(ctx, c.delay); err != nil {
			c.logger.Warn("consumer interrupted", "consumed", c.Consumed(), "error", err)
			return fmt.Errorf("worker: consumer %s: %w", c.name, err)
		}
	}
	c.logger.Info("finished consuming", "consumed", c.Consumed())
	return nil
}
