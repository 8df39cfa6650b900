package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/haivivi/pcbuf/pkg/jsontime"
)

var quiet = WithLogger(slog.New(slog.DiscardHandler))

func fastConfig() Config {
	return Config{
		Capacity:   5,
		TotalItems: 20,
		Producers:  1,
		Consumers:  1,
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		total, n int
		want     []int
	}{
		{20, 1, []int{20}},
		{30, 2, []int{15, 15}},
		{10, 3, []int{4, 3, 3}},
		{2, 4, []int{1, 1, 0, 0}},
		{0, 2, []int{0, 0}},
		{5, 0, nil},
	}
	for _, tt := range tests {
		got := Split(tt.total, tt.n)
		if !slices.Equal(got, tt.want) {
			t.Errorf("Split(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero capacity", func(c *Config) { c.Capacity = 0 }, "capacity"},
		{"negative items", func(c *Config) { c.TotalItems = -1 }, "total_items"},
		{"no producers", func(c *Config) { c.Producers = 0 }, "producers"},
		{"no consumers", func(c *Config) { c.Consumers = 0 }, "consumers"},
		{"negative producer delay", func(c *Config) { c.ProducerDelay = -1 }, "producer_delay"},
		{"negative consumer delay", func(c *Config) { c.ConsumerDelay = -1 }, "consumer_delay"},
		{"negative consume total", func(c *Config) { c.ConsumeTotal = -1 }, "consume_total"},
		{"negative groups", func(c *Config) { c.Groups = -1 }, "groups"},
		{"huge capacity", func(c *Config) { c.Capacity = MaxCapacity + 1 }, "capacity"},
		{"huge items", func(c *Config) { c.TotalItems = MaxTotalItems * 4 }, "total_items"},
		{"huge consume total", func(c *Config) { c.ConsumeTotal = MaxTotalItems + 1 }, "consume_total"},
		{"too many producers", func(c *Config) { c.Producers = MaxWorkers + 1 }, "producers"},
		{"too many consumers", func(c *Config) { c.Consumers = MaxWorkers + 1 }, "consumers"},
		{"too many groups", func(c *Config) { c.Groups = MaxGroups + 1 }, "groups"},
		{"capacity across groups", func(c *Config) { c.Groups = 2; c.Capacity = MaxCapacity/2 + 1 }, "capacity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err=%v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err=%q, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestConfigValidateLimits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Groups = MaxGroups
	cfg.Capacity = MaxCapacity / MaxGroups
	cfg.TotalItems = MaxTotalItems / MaxGroups
	cfg.Producers = MaxWorkers
	cfg.Consumers = MaxWorkers
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config at the limits: %v", err)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := fastConfig()
	cfg.Capacity = 0
	report, err := Run(context.Background(), cfg, quiet)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err=%v", err)
	}
	if report != nil {
		t.Fatalf("report=%+v, want nil", report)
	}
}

func TestRunSingleProducerConsumer(t *testing.T) {
	cfg := fastConfig()
	cfg.ProducerDelay = jsontime.Duration(time.Millisecond)
	cfg.ConsumerDelay = jsontime.Duration(2 * time.Millisecond)

	report, err := Run(context.Background(), cfg, quiet, WithRunID("run-1"))
	if err != nil {
		t.Fatal(err)
	}
	if report.RunID != "run-1" {
		t.Errorf("run id=%q", report.RunID)
	}
	if report.Produced != 20 || report.Consumed != 20 || report.FinalSize != 0 {
		t.Errorf("produced=%d consumed=%d final=%d", report.Produced, report.Consumed, report.FinalSize)
	}
	if !report.Complete() {
		t.Errorf("report not complete: %+v", report)
	}
	if len(report.Groups) != 1 {
		t.Fatalf("groups=%d", len(report.Groups))
	}

	g := report.Groups[0]
	want := []string{
		"G1/Producer-1-Item-1", "G1/Producer-1-Item-2", "G1/Producer-1-Item-3",
		"G1/Producer-1-Item-4", "G1/Producer-1-Item-5", "G1/Producer-1-Item-6",
		"G1/Producer-1-Item-7", "G1/Producer-1-Item-8", "G1/Producer-1-Item-9",
		"G1/Producer-1-Item-10",
	}
	if !slices.Equal(g.Sample, want) {
		t.Errorf("sample=%v", g.Sample)
	}
	if len(g.Workers) != 2 {
		t.Fatalf("workers=%d", len(g.Workers))
	}
	for _, w := range g.Workers {
		if w.Done != 20 || w.Target != 20 || w.Interrupted || w.Error != "" {
			t.Errorf("worker=%+v", w)
		}
	}
}

func TestRunManyProducersManyConsumers(t *testing.T) {
	cfg := Config{
		Capacity:   10,
		TotalItems: 30,
		Producers:  2,
		Consumers:  2,
	}
	report, err := Run(context.Background(), cfg, quiet)
	if err != nil {
		t.Fatal(err)
	}
	if report.RunID == "" {
		t.Error("missing generated run id")
	}
	if report.Produced != 30 || report.Consumed != 30 || report.FinalSize != 0 {
		t.Errorf("produced=%d consumed=%d final=%d", report.Produced, report.Consumed, report.FinalSize)
	}
	for _, w := range report.Groups[0].Workers {
		if w.Target != 15 || w.Done != 15 {
			t.Errorf("worker=%+v", w)
		}
	}
}

func TestRunUnevenSplit(t *testing.T) {
	cfg := Config{
		Capacity:   3,
		TotalItems: 10,
		Producers:  3,
		Consumers:  4,
	}
	report, err := Run(context.Background(), cfg, quiet)
	if err != nil {
		t.Fatal(err)
	}
	if !report.Complete() {
		t.Fatalf("report not complete: %+v", report)
	}
	if report.Consumed != 10 {
		t.Errorf("consumed=%d", report.Consumed)
	}
}

func TestRunGroups(t *testing.T) {
	cfg := fastConfig()
	cfg.Groups = 3
	cfg.Producers = 2
	cfg.Consumers = 5

	report, err := Run(context.Background(), cfg, quiet)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Groups) != 3 {
		t.Fatalf("groups=%d", len(report.Groups))
	}
	if report.Produced != 60 || report.Consumed != 60 || report.FinalSize != 0 {
		t.Errorf("produced=%d consumed=%d final=%d", report.Produced, report.Consumed, report.FinalSize)
	}
	for i, g := range report.Groups {
		if g.Produced != 20 || g.Consumed != 20 {
			t.Errorf("group %d produced=%d consumed=%d", i, g.Produced, g.Consumed)
		}
		for _, item := range g.Sample {
			if !strings.HasPrefix(item, g.Name+"/") {
				t.Errorf("group %s holds foreign item %s", g.Name, item)
			}
		}
	}
}

func TestRunZeroItems(t *testing.T) {
	cfg := fastConfig()
	cfg.TotalItems = 0
	cfg.Consumers = 3
	report, err := Run(context.Background(), cfg, quiet)
	if err != nil {
		t.Fatal(err)
	}
	if !report.Complete() || report.Produced != 0 {
		t.Errorf("report=%+v", report)
	}
}

func TestRunOverDemandNeverCompletes(t *testing.T) {
	cfg := fastConfig()
	cfg.TotalItems = 6
	cfg.ConsumeTotal = 8
	cfg.Consumers = 2

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		report *Report
		err    error
	}
	done := make(chan result, 1)
	go func() {
		r, err := Run(ctx, cfg, quiet)
		done <- result{r, err}
	}()

	select {
	case r := <-done:
		t.Fatalf("run completed: %+v, %v", r.report, r.err)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	var r result
	select {
	case r = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not unwind after cancel")
	}
	if r.err != nil {
		t.Fatalf("err=%v", r.err)
	}
	if !r.report.Interrupted {
		t.Error("report not marked interrupted")
	}
	if r.report.Produced != 6 || r.report.Consumed != 6 || r.report.FinalSize != 0 {
		t.Errorf("produced=%d consumed=%d final=%d", r.report.Produced, r.report.Consumed, r.report.FinalSize)
	}
	if r.report.Complete() {
		t.Error("interrupted report reported complete")
	}
}

func TestRunInterruptedPartialResult(t *testing.T) {
	cfg := fastConfig()
	cfg.TotalItems = 50
	cfg.ProducerDelay = jsontime.Duration(5 * time.Millisecond)
	cfg.ConsumerDelay = jsontime.Duration(5 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	report, err := Run(ctx, cfg, quiet)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !report.Interrupted {
		t.Fatal("report not marked interrupted")
	}
	if report.Produced >= 50 || report.Consumed >= 50 {
		t.Errorf("produced=%d consumed=%d, want partial", report.Produced, report.Consumed)
	}
	if report.Produced-report.Consumed != report.FinalSize {
		t.Errorf("produced=%d consumed=%d final=%d do not add up", report.Produced, report.Consumed, report.FinalSize)
	}
	for _, w := range report.Groups[0].Workers {
		if w.Done < w.Target && !w.Interrupted {
			t.Errorf("unfinished worker not marked interrupted: %+v", w)
		}
	}
}
