// Computes per-process and run-wide scheduling metrics once a simulation has finished.

package sim

import (
	"fmt"

	"github.com/inference-sim/schedsim/sim/trace"
)

// ProcessMetrics is the final record of one process plus its derived times.
type ProcessMetrics struct {
	ID            string `yaml:"id"`
	Arrival       int64  `yaml:"arrival"`
	Burst         int64  `yaml:"burst"`
	Priority      int    `yaml:"priority"`
	FinalPriority int    `yaml:"final_priority"` // effective priority at completion, differs only after aging
	Start         int64  `yaml:"start"`
	Completion    int64  `yaml:"completion"`
	Turnaround    int64  `yaml:"turnaround"` // completion - arrival
	Waiting       int64  `yaml:"waiting"`    // turnaround - burst
	Response      int64  `yaml:"response"`   // start - arrival
}

// Metrics aggregates statistics about the simulation for final reporting.
type Metrics struct {
	Processes []ProcessMetrics `yaml:"processes"` // input order

	AvgTurnaround float64 `yaml:"avg_turnaround"`
	AvgWaiting    float64 `yaml:"avg_waiting"`
	AvgResponse   float64 `yaml:"avg_response"`

	Makespan          int64   `yaml:"makespan"`            // end of the last segment
	BusyTime          int64   `yaml:"busy_time"`           // ticks spent executing processes
	IdleTime          int64   `yaml:"idle_time"`           // ticks labeled IDLE
	ContextSwitchTime int64   `yaml:"context_switch_time"` // ticks labeled CTX
	ContextSwitches   int     `yaml:"context_switches"`
	Preemptions       int     `yaml:"preemptions"`
	Utilization       float64 `yaml:"utilization"` // BusyTime / Makespan
	Throughput        float64 `yaml:"throughput"`  // processes per tick over the makespan

	Waiting    Distribution `yaml:"waiting_distribution"`
	Turnaround Distribution `yaml:"turnaround_distribution"`
}

// Result is everything a finished simulation exposes.
type Result struct {
	Policy   PolicyKind             `yaml:"policy"`
	Config   Config                 `yaml:"config"`
	Timeline []Segment              `yaml:"timeline"`
	Metrics  *Metrics               `yaml:"metrics"`
	Trace    *trace.SimulationTrace `yaml:"-"`
}

// ComputeMetrics derives per-process rows, means and timeline aggregates.
// It fails if any process has not completed. An empty workload yields zero metrics.
func ComputeMetrics(procs []*Process, timeline []Segment) (*Metrics, error) {
	m := &Metrics{Processes: make([]ProcessMetrics, 0, len(procs))}
	if len(procs) == 0 {
		return m, nil
	}

	turnarounds := make([]float64, 0, len(procs))
	waitings := make([]float64, 0, len(procs))
	responses := make([]float64, 0, len(procs))
	for _, p := range procs {
		if !p.Completed {
			return nil, fmt.Errorf("%w: process %s has no completion time (remaining=%d)",
				ErrInconsistentState, p.ID, p.Remaining)
		}
		turnaround := p.CompletionTime - p.ArrivalTime
		row := ProcessMetrics{
			ID:            p.ID,
			Arrival:       p.ArrivalTime,
			Burst:         p.BurstTime,
			Priority:      p.Priority,
			FinalPriority: p.EffectivePriority,
			Start:         p.StartTime,
			Completion:    p.CompletionTime,
			Turnaround:    turnaround,
			Waiting:       turnaround - p.BurstTime,
			Response:      p.ResponseTime,
		}
		m.Processes = append(m.Processes, row)
		turnarounds = append(turnarounds, float64(row.Turnaround))
		waitings = append(waitings, float64(row.Waiting))
		responses = append(responses, float64(row.Response))
	}
	m.AvgTurnaround = CalculateMean(turnarounds)
	m.AvgWaiting = CalculateMean(waitings)
	m.AvgResponse = CalculateMean(responses)
	m.Turnaround = NewDistribution(turnarounds)
	m.Waiting = NewDistribution(waitings)

	for _, seg := range timeline {
		switch seg.Label {
		case LabelIdle:
			m.IdleTime += seg.Duration()
		case LabelContextSwitch:
			m.ContextSwitchTime += seg.Duration()
			m.ContextSwitches++
		default:
			m.BusyTime += seg.Duration()
		}
		m.Makespan = max(m.Makespan, seg.End)
	}
	if m.Makespan > 0 {
		m.Utilization = float64(m.BusyTime) / float64(m.Makespan)
		m.Throughput = float64(len(procs)) / float64(m.Makespan)
	}
	return m, nil
}
