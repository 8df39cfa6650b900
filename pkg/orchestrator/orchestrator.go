// Package orchestrator wires bounded buffers to producer and consumer
// workers, runs them concurrently and reports what moved.
//
// Run builds one buffer per group, starts every worker in its own
// goroutine, waits for all of them and summarises the result. The buffer
// has no notion of how many items to expect: keeping the consumers' total
// equal to the producers' total is the caller's job, and Split is the
// helper Run uses to do that.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/haivivi/pcbuf/pkg/buffer"
	"github.com/haivivi/pcbuf/pkg/jsontime"
	"github.com/haivivi/pcbuf/pkg/worker"
)

// sampleSize is the number of consumed items kept per group in a Report.
const sampleSize = 10

// Option configures Run.
type Option func(*options)

type options struct {
	logger *slog.Logger
	runID  string
}

// WithLogger sets the logger for the run and its workers. The default is
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRunID sets the run ID reported in logs and in the Report. The default
// is a random UUID.
func WithRunID(id string) Option {
	return func(o *options) {
		o.runID = id
	}
}

type group struct {
	name      string
	buf       *buffer.BoundedBuffer[string]
	producers []*worker.Producer[string]
	consumers []*worker.Consumer[string]
	sinks     []*buffer.Sink[string]

	mu   sync.Mutex
	errs map[string]error
}

func newGroup(name string, cfg Config, logger *slog.Logger) (*group, error) {
	buf, err := buffer.NewBounded[string](cfg.Capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	g := &group{
		name: name,
		buf:  buf,
		errs: make(map[string]error),
	}

	for i, n := range Split(cfg.TotalItems, cfg.Producers) {
		pname := fmt.Sprintf("%s/Producer-%d", name, i+1)
		source := make([]string, n)
		for j := range source {
			source[j] = fmt.Sprintf("%s-Item-%d", pname, j+1)
		}
		p, err := worker.NewProducer(worker.ProducerConfig[string]{
			Name:   pname,
			Source: source,
			Buffer: buf,
			Delay:  time.Duration(cfg.ProducerDelay),
			Logger: logger,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		g.producers = append(g.producers, p)
	}

	for i, n := range Split(cfg.consumeTotal(), cfg.Consumers) {
		sink := buffer.NewSink[string](n)
		c, err := worker.NewConsumer(worker.ConsumerConfig[string]{
			Name:   fmt.Sprintf("%s/Consumer-%d", name, i+1),
			Buffer: buf,
			Sink:   sink,
			Count:  n,
			Delay:  time.Duration(cfg.ConsumerDelay),
			Logger: logger,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		g.consumers = append(g.consumers, c)
		g.sinks = append(g.sinks, sink)
	}
	return g, nil
}

func (g *group) start(ctx context.Context, wg *sync.WaitGroup) {
	launch := func(name string, run func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(ctx); err != nil {
				g.mu.Lock()
				g.errs[name] = err
				g.mu.Unlock()
			}
		}()
	}
	for _, p := range g.producers {
		launch(p.Name(), p.Run)
	}
	for _, c := range g.consumers {
		launch(c.Name(), c.Run)
	}
}

// Run executes cfg until every worker has finished and returns the report.
//
// If ctx ends first, waiting and sleeping workers unwind and Run returns the
// partial report with Interrupted set and a nil error. A configuration whose
// consumers ask for more items than its producers supply does not finish
// until ctx ends. Invalid configurations fail before any worker starts.
func Run(ctx context.Context, cfg Config, opts ...Option) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.runID == "" {
		o.runID = uuid.NewString()
	}
	logger := o.logger.With("run", o.runID)

	if cfg.consumeTotal() != cfg.TotalItems {
		logger.Warn("consumer total differs from producer total",
			"produce", cfg.TotalItems, "consume", cfg.consumeTotal())
	}

	groups := make([]*group, cfg.groups())
	for i := range groups {
		g, err := newGroup(fmt.Sprintf("G%d", i+1), cfg, logger)
		if err != nil {
			return nil, err
		}
		groups[i] = g
	}

	logger.Info("run started",
		"groups", len(groups), "capacity", cfg.Capacity, "items", cfg.TotalItems,
		"producers", cfg.Producers, "consumers", cfg.Consumers)

	started := time.Now()
	var wg sync.WaitGroup
	for _, g := range groups {
		g.start(ctx, &wg)
	}
	wg.Wait()

	report := &Report{
		RunID:   o.runID,
		Config:  cfg,
		Started: started,
		Elapsed: jsontime.Duration(time.Since(started)),
	}
	var failures []error
	for _, g := range groups {
		gr := g.report(cfg.Capacity)
		report.Produced += gr.Produced
		report.Consumed += gr.Consumed
		report.FinalSize += gr.FinalSize
		for _, w := range gr.Workers {
			if w.Interrupted {
				report.Interrupted = true
			}
		}
		report.Groups = append(report.Groups, gr)
		failures = append(failures, g.failures()...)
	}

	logger.Info("run finished",
		"produced", report.Produced, "consumed", report.Consumed,
		"final_size", report.FinalSize, "interrupted", report.Interrupted,
		"elapsed", time.Duration(report.Elapsed))

	if len(failures) > 0 {
		return report, errors.Join(failures...)
	}
	return report, nil
}

func (g *group) failures() []error {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []error
	for _, err := range g.errs {
		if !worker.IsInterrupted(err) {
			out = append(out, err)
		}
	}
	return out
}

func (g *group) report(capacity int) GroupReport {
	g.mu.Lock()
	defer g.mu.Unlock()

	gr := GroupReport{
		Name:      g.name,
		Capacity:  capacity,
		FinalSize: g.buf.Size(),
	}
	for _, p := range g.producers {
		gr.Produced += p.Produced()
		gr.Workers = append(gr.Workers, newWorkerReport(p.Name(), worker.RoleProducer, p.Target(), p.Produced(), g.errs[p.Name()]))
	}
	for i, c := range g.consumers {
		gr.Consumed += g.sinks[i].Len()
		gr.Workers = append(gr.Workers, newWorkerReport(c.Name(), worker.RoleConsumer, c.Target(), c.Consumed(), g.errs[c.Name()]))
		if room := sampleSize - len(gr.Sample); room > 0 {
			items := g.sinks[i].Items()
			gr.Sample = append(gr.Sample, items[:min(room, len(items))]...)
		}
	}
	return gr
}
