package orchestrator

import (
	"errors"
	"fmt"
	"time"

	"github.com/haivivi/pcbuf/pkg/jsontime"
)

// ErrInvalidConfig is returned by Config.Validate and Run for a configuration
// that cannot be run.
var ErrInvalidConfig = errors.New("orchestrator: invalid config")

// Upper bounds checked by Config.Validate. Buffers and item sources are
// allocated up front, so these keep a typo on the command line from
// exhausting memory.
const (
	// MaxCapacity bounds the buffer slots of a run, summed over groups.
	MaxCapacity = 1 << 20
	// MaxTotalItems bounds the items produced or consumed in a run, summed
	// over groups.
	MaxTotalItems = 1 << 22
	// MaxWorkers bounds the producers and the consumers of one group.
	MaxWorkers = 1 << 10
	// MaxGroups bounds the number of groups.
	MaxGroups = 64
)

// Config describes one producer-consumer run.
type Config struct {
	// Capacity is the size of each group's buffer. Must be at least 1.
	Capacity int `yaml:"capacity" json:"capacity" msgpack:"capacity"`

	// TotalItems is the number of items produced per group, split across
	// the group's producers.
	TotalItems int `yaml:"total_items" json:"total_items" msgpack:"total_items"`

	// Producers and Consumers are the number of workers per group.
	Producers int `yaml:"producers" json:"producers" msgpack:"producers"`
	Consumers int `yaml:"consumers" json:"consumers" msgpack:"consumers"`

	// ProducerDelay and ConsumerDelay are the simulated processing time
	// after each item.
	ProducerDelay jsontime.Duration `yaml:"producer_delay" json:"producer_delay" msgpack:"producer_delay"`
	ConsumerDelay jsontime.Duration `yaml:"consumer_delay" json:"consumer_delay" msgpack:"consumer_delay"`

	// ConsumeTotal overrides the number of items consumed per group. Zero
	// means TotalItems. Asking for more than TotalItems leaves consumers
	// blocked until the run's context ends.
	ConsumeTotal int `yaml:"consume_total,omitempty" json:"consume_total,omitempty" msgpack:"consume_total,omitempty"`

	// Groups is the number of independent buffers, each with its own
	// producers and consumers. Zero means 1.
	Groups int `yaml:"groups,omitempty" json:"groups,omitempty" msgpack:"groups,omitempty"`
}

// DefaultConfig returns a single slow-consumer group: one producer and one
// consumer moving 20 items through a buffer of 5.
func DefaultConfig() Config {
	return Config{
		Capacity:      5,
		TotalItems:    20,
		Producers:     1,
		Consumers:     1,
		ProducerDelay: jsontime.Duration(100 * time.Millisecond),
		ConsumerDelay: jsontime.Duration(150 * time.Millisecond),
		Groups:        1,
	}
}

// Validate checks that c can be run.
func (c Config) Validate() error {
	var errs []error
	if c.Capacity < 1 {
		errs = append(errs, fmt.Errorf("capacity must be at least 1, got %d", c.Capacity))
	}
	if c.TotalItems < 0 {
		errs = append(errs, fmt.Errorf("total_items must not be negative, got %d", c.TotalItems))
	}
	if c.Producers < 1 {
		errs = append(errs, fmt.Errorf("producers must be at least 1, got %d", c.Producers))
	}
	if c.Consumers < 1 {
		errs = append(errs, fmt.Errorf("consumers must be at least 1, got %d", c.Consumers))
	}
	if c.ProducerDelay < 0 {
		errs = append(errs, fmt.Errorf("producer_delay must not be negative, got %v", c.ProducerDelay))
	}
	if c.ConsumerDelay < 0 {
		errs = append(errs, fmt.Errorf("consumer_delay must not be negative, got %v", c.ConsumerDelay))
	}
	if c.ConsumeTotal < 0 {
		errs = append(errs, fmt.Errorf("consume_total must not be negative, got %d", c.ConsumeTotal))
	}
	if c.Groups < 0 {
		errs = append(errs, fmt.Errorf("groups must not be negative, got %d", c.Groups))
	}
	errs = append(errs, c.checkLimits()...)
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func (c Config) checkLimits() []error {
	var errs []error
	if c.Groups > MaxGroups {
		errs = append(errs, fmt.Errorf("groups must be at most %d, got %d", MaxGroups, c.Groups))
		return errs
	}
	if c.Producers > MaxWorkers {
		errs = append(errs, fmt.Errorf("producers must be at most %d, got %d", MaxWorkers, c.Producers))
	}
	if c.Consumers > MaxWorkers {
		errs = append(errs, fmt.Errorf("consumers must be at most %d, got %d", MaxWorkers, c.Consumers))
	}
	n := max(c.groups(), 1)
	if c.Capacity > MaxCapacity/n {
		errs = append(errs, fmt.Errorf("capacity must be at most %d across %d groups, got %d", MaxCapacity, n, c.Capacity))
	}
	if c.TotalItems > MaxTotalItems/n {
		errs = append(errs, fmt.Errorf("total_items must be at most %d across %d groups, got %d", MaxTotalItems, n, c.TotalItems))
	}
	if c.ConsumeTotal > MaxTotalItems/n {
		errs = append(errs, fmt.Errorf("consume_total must be at most %d across %d groups, got %d", MaxTotalItems, n, c.ConsumeTotal))
	}
	return errs
}

func (c Config) groups() int {
	if c.Groups == 0 {
		return 1
	}
	return c.Groups
}

func (c Config) consumeTotal() int {
	if c.ConsumeTotal == 0 {
		return c.TotalItems
	}
	return c.ConsumeTotal
}

// Split divides total into n shares that differ by at most one, larger
// shares first. It returns nil if n < 1.
func Split(total, n int) []int {
	if n < 1 {
		return nil
	}
	shares := make([]int, n)
	for i := range shares {
		shares[i] = total / n
		if i < total%n {
			shares[i]++
		}
	}
	return shares
}
