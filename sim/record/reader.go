package record

import (
	"fmt"

	"github.com/inference-sim/schedsim/sim"
)

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID              string
	Workload        string
	Policy          sim.PolicyKind
	Processes       int
	Makespan        int64
	AvgTurnaround   float64
	AvgWaiting      float64
	AvgResponse     float64
	ContextSwitches int
	Preemptions     int
}

// Runs returns the flushed runs, oldest first.
func (r *Recorder) Runs() ([]RunSummary, error) {
	rows, err := r.db.Query(`SELECT id, workload, policy, processes, makespan,
		avg_turnaround, avg_waiting, avg_response, context_switches, preemptions
		FROM runs ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("record: query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		var policy string
		if err := rows.Scan(&s.ID, &s.Workload, &policy, &s.Processes, &s.Makespan,
			&s.AvgTurnaround, &s.AvgWaiting, &s.AvgResponse, &s.ContextSwitches, &s.Preemptions); err != nil {
			return nil, fmt.Errorf("record: scan run: %w", err)
		}
		s.Policy = sim.PolicyKind(policy)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Timeline returns the recorded segments of a run in timeline order.
func (r *Recorder) Timeline(runID string) ([]sim.Segment, error) {
	rows, err := r.db.Query(`SELECT start_tick, end_tick, label FROM segments WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("record: query segments of %s: %w", runID, err)
	}
	defer rows.Close()

	var out []sim.Segment
	for rows.Next() {
		var s sim.Segment
		if err := rows.Scan(&s.Start, &s.End, &s.Label); err != nil {
			return nil, fmt.Errorf("record: scan segment: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ProcessRows returns the per-process metrics of a run, in recorded order.
func (r *Recorder) ProcessRows(runID string) ([]sim.ProcessMetrics, error) {
	rows, err := r.db.Query(`SELECT id, arrival, burst, priority, final_priority, start_tick,
		completion, turnaround, waiting, response FROM processes WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("record: query processes of %s: %w", runID, err)
	}
	defer rows.Close()

	var out []sim.ProcessMetrics
	for rows.Next() {
		var p sim.ProcessMetrics
		if err := rows.Scan(&p.ID, &p.Arrival, &p.Burst, &p.Priority, &p.FinalPriority, &p.Start,
			&p.Completion, &p.Turnaround, &p.Waiting, &p.Response); err != nil {
			return nil, fmt.Errorf("record: scan process: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
