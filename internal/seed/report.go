package seed

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/eureka-residences/erkseed/client"
)

// StepResult is the outcome of one step.
type StepResult struct {
	Name     string
	Batch    client.BatchResult
	Err      error
	Duration time.Duration
	Skipped  bool
}

// Status is "ok", "failed" or "skipped".
func (r StepResult) Status() string {
	switch {
	case r.Skipped:
		return "skipped"
	case r.Err != nil:
		return "failed"
	default:
		return "ok"
	}
}

// Report collects the step results of one run, in run order.
type Report struct {
	Results []StepResult
}

// Failed returns the names of the failed steps.
func (r *Report) Failed() []string {
	var names []string
	for _, res := range r.Results {
		if res.Err != nil {
			names = append(names, res.Name)
		}
	}
	return names
}

// Result returns the result of the named step.
func (r *Report) Result(name string) (StepResult, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return StepResult{}, false
}

// Render writes the summary table to w, followed by one line per failed
// item.
func (r *Report) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Step", "Status", "Created", "Total", "Duration", "Error"})
	for _, res := range r.Results {
		errText := ""
		if res.Err != nil {
			errText = res.Err.Error()
		}
		t.AppendRow(table.Row{res.Name, res.Status(), res.Batch.Succeeded, res.Batch.Total, res.Duration.Round(time.Millisecond), errText})
	}
	t.Render()

	for _, res := range r.Results {
		for _, f := range res.Batch.Failures {
			_, _ = fmt.Fprintf(w, "  %s #%d %s: %v\n", res.Name, f.Index, f.Key, f.Err)
		}
	}
}
