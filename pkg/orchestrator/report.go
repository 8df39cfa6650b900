package orchestrator

import (
	"time"

	"github.com/haivivi/pcbuf/pkg/jsontime"
	"github.com/haivivi/pcbuf/pkg/worker"
)

// Report is the outcome of a Run. Totals are summed over all groups.
type Report struct {
	RunID       string            `yaml:"run_id" json:"run_id" msgpack:"run_id"`
	Config      Config            `yaml:"config" json:"config" msgpack:"config"`
	Started     time.Time         `yaml:"started" json:"started" msgpack:"started"`
	Elapsed     jsontime.Duration `yaml:"elapsed" json:"elapsed" msgpack:"elapsed"`
	Produced    int               `yaml:"produced" json:"produced" msgpack:"produced"`
	Consumed    int               `yaml:"consumed" json:"consumed" msgpack:"consumed"`
	FinalSize   int               `yaml:"final_size" json:"final_size" msgpack:"final_size"`
	Interrupted bool              `yaml:"interrupted" json:"interrupted" msgpack:"interrupted"`
	Groups      []GroupReport     `yaml:"groups" json:"groups" msgpack:"groups"`
}

// Complete reports whether every worker finished and every produced item
// was consumed.
func (r *Report) Complete() bool {
	if r.Interrupted || r.FinalSize != 0 || r.Produced != r.Consumed {
		return false
	}
	for _, g := range r.Groups {
		for _, w := range g.Workers {
			if w.Done != w.Target {
				return false
			}
		}
	}
	return true
}

// GroupReport describes one buffer and its workers.
type GroupReport struct {
	Name      string         `yaml:"name" json:"name" msgpack:"name"`
	Capacity  int            `yaml:"capacity" json:"capacity" msgpack:"capacity"`
	Produced  int            `yaml:"produced" json:"produced" msgpack:"produced"`
	Consumed  int            `yaml:"consumed" json:"consumed" msgpack:"consumed"`
	FinalSize int            `yaml:"final_size" json:"final_size" msgpack:"final_size"`
	Workers   []WorkerReport `yaml:"workers" json:"workers" msgpack:"workers"`

	// Sample holds the first consumed items, taken from the consumers'
	// sinks in consumer order.
	Sample []string `yaml:"sample,omitempty" json:"sample,omitempty" msgpack:"sample,omitempty"`
}

// WorkerReport describes one producer or consumer.
type WorkerReport struct {
	Name        string      `yaml:"name" json:"name" msgpack:"name"`
	Role        worker.Role `yaml:"role" json:"role" msgpack:"role"`
	Target      int         `yaml:"target" json:"target" msgpack:"target"`
	Done        int         `yaml:"done" json:"done" msgpack:"done"`
	Interrupted bool        `yaml:"interrupted,omitempty" json:"interrupted,omitempty" msgpack:"interrupted,omitempty"`
	Error       string      `yaml:"error,omitempty" json:"error,omitempty" msgpack:"error,omitempty"`
}

func newWorkerReport(name string, role worker.Role, target, done int, err error) WorkerReport {
	w := WorkerReport{
		Name:   name,
		Role:   role,
		Target: target,
		Done:   done,
	}
	if err != nil {
		w.Interrupted = worker.IsInterrupted(err)
		w.Error = err.Error()
	}
	return w
}
