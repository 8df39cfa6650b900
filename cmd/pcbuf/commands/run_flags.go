package commands

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/haivivi/pcbuf/pkg/cli"
	"github.com/haivivi/pcbuf/pkg/jsontime"
	"github.com/haivivi/pcbuf/pkg/orchestrator"
)

// runFlags holds the flags that override fields of orchestrator.Config.
// They are shared by 'run' and 'profile add'.
type runFlags struct {
	file          string
	capacity      int
	items         int
	producers     int
	consumers     int
	groups        int
	consumeTotal  int
	producerDelay time.Duration
	consumerDelay time.Duration
}

func (f *runFlags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.file, "file", "f", "", "YAML or JSON run file ('-' for stdin)")
	fs.IntVar(&f.capacity, "capacity", 0, "buffer capacity")
	fs.IntVar(&f.items, "items", 0, "total items produced per buffer")
	fs.IntVar(&f.producers, "producers", 0, "producers per buffer")
	fs.IntVar(&f.consumers, "consumers", 0, "consumers per buffer")
	fs.IntVar(&f.groups, "groups", 0, "number of independent buffers")
	fs.IntVar(&f.consumeTotal, "consume-total", 0, "total items consumed per buffer (default: --items)")
	fs.DurationVar(&f.producerDelay, "producer-delay", 0, "delay after each produced item")
	fs.DurationVar(&f.consumerDelay, "consumer-delay", 0, "delay after each consumed item")
}

// apply layers the run file and then every flag given on the command line
// over base.
func (f *runFlags) apply(fs *pflag.FlagSet, base orchestrator.Config) (orchestrator.Config, error) {
	cfg := base
	if f.file != "" {
		if err := cli.LoadRequest(f.file, &cfg); err != nil {
			return cfg, err
		}
	}
	set := func(name string, dst *int, v int) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("capacity", &cfg.Capacity, f.capacity)
	set("items", &cfg.TotalItems, f.items)
	set("producers", &cfg.Producers, f.producers)
	set("consumers", &cfg.Consumers, f.consumers)
	set("groups", &cfg.Groups, f.groups)
	set("consume-total", &cfg.ConsumeTotal, f.consumeTotal)
	if fs.Changed("producer-delay") {
		cfg.ProducerDelay = jsontime.Duration(f.producerDelay)
	}
	if fs.Changed("consumer-delay") {
		cfg.ConsumerDelay = jsontime.Duration(f.consumerDelay)
	}
	return cfg, nil
}
