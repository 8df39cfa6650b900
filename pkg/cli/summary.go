package cli

import (
	"fmt"
	"time"

	"github.com/haivivi/pcbuf/pkg/orchestrator"
)

// ReportSummary pairs a run report with the last captured log lines for
// FormatSummary output.
type ReportSummary struct {
	Report *orchestrator.Report
	Tail   []string
}

// Summary implements Summarizer.
func (s ReportSummary) Summary(styles Styles) string {
	r := s.Report
	status := "complete"
	switch {
	case r.Interrupted:
		status = "interrupted"
	case !r.Complete():
		status = "incomplete"
	}

	elapsed := r.Elapsed.Duration()
	fields := []Field{
		{Label: "run", Value: r.RunID},
		{Label: "status", Value: status, Warn: status != "complete"},
		{Label: "elapsed", Value: FormatDuration(int(elapsed / time.Millisecond))},
		{Label: "produced", Value: fmt.Sprintf("%d (%s)", r.Produced, FormatRate(r.Produced, elapsed))},
		{Label: "consumed", Value: fmt.Sprintf("%d (%s)", r.Consumed, FormatRate(r.Consumed, elapsed))},
		{Label: "final size", Value: fmt.Sprint(r.FinalSize), Warn: r.FinalSize != 0},
	}
	if len(r.Groups) > 1 {
		for _, g := range r.Groups {
			fields = append(fields, Field{
				Label: g.Name,
				Value: fmt.Sprintf("cap %d  produced %d  consumed %d  size %d", g.Capacity, g.Produced, g.Consumed, g.FinalSize),
				Warn:  g.Produced != g.Consumed,
			})
		}
	}

	return Panel{
		Styles: styles,
		Title:  "pcbuf run",
		Fields: fields,
		Footer: s.Tail,
	}.Render()
}
