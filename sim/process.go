// Defines the Process struct that models one simulated job in the scheduler.
// Tracks arrival, burst, priority, remaining work, and the timing facts needed for metrics.

package sim

import (
	"fmt"
	"sort"
)

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	StatePending   ProcessState = "pending"
	StateReady     ProcessState = "ready"
	StateRunning   ProcessState = "running"
	StateCompleted ProcessState = "completed"
)

// ProcessSpec is the static description of a process handed to the simulator.
type ProcessSpec struct {
	ID       string `yaml:"id"`
	Arrival  int64  `yaml:"arrival"`
	Burst    int64  `yaml:"burst"`
	Priority int    `yaml:"priority"` // lower = more urgent
}

// Process models a single process's lifecycle in the simulation.
// Only the Simulator mutates a Process; once Completed is set it is read-only.
type Process struct {
	ID    string // Unique identifier
	Index int    // Creation order in the input workload

	ArrivalTime int64 // Tick at which the process becomes ready
	BurstTime   int64 // Total CPU time required
	Remaining   int64 // Burst not yet executed

	Priority          int // Static priority from the input (lower = more urgent)
	EffectivePriority int // Priority after aging; equals Priority unless aging promoted it

	State ProcessState

	Started        bool  // Tracks whether StartTime has been set
	StartTime      int64 // Tick of first dispatch
	ResponseTime   int64 // StartTime - ArrivalTime, fixed at first dispatch
	Completed      bool  // Tracks whether CompletionTime has been set
	CompletionTime int64 // Tick at which Remaining reached zero

	ReadySince int64 // Tick the process last entered the ready set (or was last aged)
}

// NewProcess creates a pending process from its spec.
func NewProcess(spec ProcessSpec, index int) *Process {
	return &Process{
		ID:                spec.ID,
		Index:             index,
		ArrivalTime:       spec.Arrival,
		BurstTime:         spec.Burst,
		Remaining:         spec.Burst,
		Priority:          spec.Priority,
		EffectivePriority: spec.Priority,
		State:             StatePending,
	}
}

// NewProcesses builds processes from specs, preserving input order as creation order.
func NewProcesses(specs []ProcessSpec) []*Process {
	procs := make([]*Process, len(specs))
	for i, s := range specs {
		procs[i] = NewProcess(s, i)
	}
	return procs
}

// markStarted records the first dispatch. Later calls are no-ops.
func (p *Process) markStarted(now int64) {
	if p.Started {
		return
	}
	p.Started = true
	p.StartTime = now
	p.ResponseTime = now - p.ArrivalTime
}

// markCompleted records completion. Later calls are no-ops.
func (p *Process) markCompleted(now int64) {
	if p.Completed {
		return
	}
	p.Completed = true
	p.CompletionTime = now
	p.State = StateCompleted
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (ID: %s, State: %s, Arrival: %d, Burst: %d, Remaining: %d, Priority: %d)",
		p.ID, p.State, p.ArrivalTime, p.BurstTime, p.Remaining, p.EffectivePriority)
}

// sortByArrival orders processes by arrival time, then ID, so the admission order
// does not depend on the order of the input.
func sortByArrival(procs []*Process) {
	sort.SliceStable(procs, func(i, j int) bool {
		return byArrival(procs[i], procs[j])
	})
}
