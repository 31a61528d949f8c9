package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/trace"
)

// Output formats accepted by --format.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
)

var validFormats = map[string]bool{
	FormatTable: true,
	FormatYAML:  true,
}

// Report is the YAML document written by `run --format yaml`.
type Report struct {
	Workload     string              `yaml:"workload"`
	RunID        string              `yaml:"run_id,omitempty"`
	Result       *sim.Result         `yaml:"result"`
	TraceSummary *trace.TraceSummary `yaml:"trace_summary,omitempty"`
}

// writeReport renders one finished run in the requested format.
func writeReport(w io.Writer, format string, report Report) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return enc.Close()
	case FormatTable:
		writeTableReport(w, report)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeTableReport(w io.Writer, report Report) {
	res := report.Result
	m := res.Metrics
	outputTitle(w, fmt.Sprintf("%s: %s", res.Policy, report.Workload))
	outputGantt(w, res.Timeline)

	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"ID", "Arrival", "Burst", "Priority", "Start", "Completion", "Turnaround", "Waiting", "Response"})
	rows := make([][]string, 0, len(m.Processes))
	for _, p := range m.Processes {
		priority := strconv.Itoa(p.Priority)
		if p.FinalPriority != p.Priority {
			priority = fmt.Sprintf("%d->%d", p.Priority, p.FinalPriority)
		}
		rows = append(rows, []string{
			p.ID, itoa(p.Arrival), itoa(p.Burst), priority, itoa(p.Start), itoa(p.Completion),
			itoa(p.Turnaround), itoa(p.Waiting), itoa(p.Response),
		})
	}
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "", "", "",
		fmt.Sprintf("Average\n%.2f", m.AvgTurnaround),
		fmt.Sprintf("Average\n%.2f", m.AvgWaiting),
		fmt.Sprintf("Average\n%.2f", m.AvgResponse)})
	table.Render()

	_, _ = fmt.Fprintf(w, "Makespan: %d  Busy: %d  Idle: %d  Context switch: %d (%d switches)\n",
		m.Makespan, m.BusyTime, m.IdleTime, m.ContextSwitchTime, m.ContextSwitches)
	_, _ = fmt.Fprintf(w, "Utilization: %.2f%%  Throughput: %.3f/t  Preemptions: %d\n",
		100*m.Utilization, m.Throughput, m.Preemptions)

	if ts := report.TraceSummary; ts != nil {
		_, _ = fmt.Fprintf(w, "Trace: %d dispatches, %d preemptions, %d aging promotions\n",
			ts.TotalDispatches, ts.Preemptions, ts.AgingPromotions)
	}
	if report.RunID != "" {
		_, _ = fmt.Fprintf(w, "Recorded as run %s\n", report.RunID)
	}
}

// writeComparison renders one row per policy.
func writeComparison(w io.Writer, workload string, results []*sim.Result) {
	outputTitle(w, "Policy comparison: "+workload)
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Policy", "Avg Turnaround", "Avg Waiting", "Avg Response", "Makespan", "Utilization", "Switches", "Preemptions"})
	for _, res := range results {
		m := res.Metrics
		table.Append([]string{
			string(res.Policy),
			fmt.Sprintf("%.2f", m.AvgTurnaround),
			fmt.Sprintf("%.2f", m.AvgWaiting),
			fmt.Sprintf("%.2f", m.AvgResponse),
			itoa(m.Makespan),
			fmt.Sprintf("%.2f%%", 100*m.Utilization),
			strconv.Itoa(m.ContextSwitches),
			strconv.Itoa(m.Preemptions),
		})
	}
	table.Render()
}

func outputTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

// outputGantt prints one cell per segment with the segment boundaries below.
func outputGantt(w io.Writer, timeline []sim.Segment) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	if len(timeline) == 0 {
		_, _ = fmt.Fprintf(w, "(empty)\n\n")
		return
	}
	_, _ = fmt.Fprint(w, "|")
	for _, s := range timeline {
		padding := strings.Repeat(" ", max(0, 8-len(s.Label))/2)
		_, _ = fmt.Fprint(w, padding, s.Label, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for i, s := range timeline {
		_, _ = fmt.Fprint(w, itoa(s.Start), "\t")
		if i == len(timeline)-1 {
			_, _ = fmt.Fprint(w, itoa(s.End))
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
