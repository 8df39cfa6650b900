package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/haivivi/pcbuf/pkg/jsontime"
	"github.com/haivivi/pcbuf/pkg/orchestrator"
)

func TestReportSummary(t *testing.T) {
	r := &orchestrator.Report{
		RunID:     "run-1",
		Elapsed:   jsontime.Duration(2 * time.Second),
		Produced:  20,
		Consumed:  20,
		FinalSize: 0,
	}
	out := ReportSummary{Report: r, Tail: []string{"last line"}}.Summary(PlainStyles())

	for _, want := range []string{"pcbuf run", "run-1", "complete", "2.0s", "20 (10.0 items/s)", "last line"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestReportSummary_Interrupted(t *testing.T) {
	r := &orchestrator.Report{
		RunID:       "run-2",
		Produced:    6,
		Consumed:    4,
		FinalSize:   2,
		Interrupted: true,
		Groups: []orchestrator.GroupReport{
			{Name: "G1", Capacity: 5, Produced: 3, Consumed: 2, FinalSize: 1},
			{Name: "G2", Capacity: 5, Produced: 3, Consumed: 2, FinalSize: 1},
		},
	}
	out := ReportSummary{Report: r}.Summary(PlainStyles())
	if !strings.Contains(out, "interrupted") {
		t.Errorf("summary should report interruption:\n%s", out)
	}
	if !strings.Contains(out, "G2") || !strings.Contains(out, "cap 5") {
		t.Errorf("summary should list groups:\n%s", out)
	}
}

func TestPanel_Render(t *testing.T) {
	out := Panel{
		Styles: PlainStyles(),
		Title:  "title",
		Fields: []Field{{Label: "a", Value: "1"}, {Label: "long", Value: "2"}},
	}.Render()
	if !strings.Contains(out, "a     1") {
		t.Errorf("labels should be aligned:\n%s", out)
	}
}
