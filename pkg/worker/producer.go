package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// ProducerConfig configures a Producer.
type ProducerConfig[T any] struct {
	// Name identifies the producer in logs and reports.
	Name string

	// Source is the finite, ordered list of items to produce.
	Source []T

	// Buffer receives the items.
	Buffer Producible[T]

	// Delay is the pause after each produced item. Must not be negative.
	Delay time.Duration

	// Logger is optional. If nil, uses slog.Default().
	Logger *slog.Logger
}

// Producer pushes every item of its source into a buffer, in order.
type Producer[T any] struct {
	name   string
	source []T
	buf    Producible[T]
	delay  time.Duration
	logger *slog.Logger

	produced atomic.Int64
}

// NewProducer creates a Producer from cfg.
func NewProducer[T any](cfg ProducerConfig[T]) (*Producer[T], error) {
	if cfg.Buffer == nil {
		return nil, fmt.Errorf("%w: producer %q has no buffer", ErrInvalidArgument, cfg.Name)
	}
	if cfg.Delay < 0 {
		return nil, fmt.Errorf("%w: producer %q delay %v", ErrInvalidArgument, cfg.Name, cfg.Delay)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Producer[T]{
		name:   cfg.Name,
		source: cfg.Source,
		buf:    cfg.Buffer,
		delay:  cfg.Delay,
		logger: logger.With("worker", cfg.Name, "role", RoleProducer),
	}, nil
}

// Name returns the producer's name.
func (p *Producer[T]) Name() string { return p.name }

// Target returns the number of items in the producer's source.
func (p *Producer[T]) Target() int { return len(p.source) }

// Produced returns how many items have been pushed so far.
func (p *Producer[T]) Produced() int { return int(p.produced.Load()) }

// Run produces the whole source. It returns nil once every item is in the
// buffer, or an interruption error as soon as ctx ends while waiting for
// space or sleeping.
func (p *Producer[T]) Run(ctx context.Context) error {
	for _, item := range p.source {
		if err := p.buf.Produce(ctx, item); err != nil {
			p.logger.Warn("producer interrupted", "produced", p.Produced(), "error", err)
			return fmt.Errorf("worker: producer %s: %w", p.name, err)
		}
		p.produced.Add(1)
		p.logger.Info("produced", "item", item, "size", p.buf.Size())

		if err := Sleep(ctx, p.delay); err != nil {
			p.logger.Warn("producer interrupted", "produced", p.Produced(), "error", err)
			return fmt.Errorf("worker: producer %s: %w", p.name, err)
		}
	}
	p.logger.Info("finished producing", "produced", p.Produced())
	return nil
}
