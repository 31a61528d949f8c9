package sim

import "fmt"

// DecisionKind tags the variant of a Decision.
type DecisionKind int

const (
	// DecisionRun runs Process: either dispatches it onto a free CPU or keeps
	// the current process running for another slice.
	DecisionRun DecisionKind = iota
	// DecisionPreempt interrupts the current process in favor of Process.
	DecisionPreempt
	// DecisionIdle leaves the CPU idle until Until.
	DecisionIdle
	// DecisionHalt ends the simulation.
	DecisionHalt
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionRun:
		return "run"
	case DecisionPreempt:
		return "preempt"
	case DecisionIdle:
		return "idle"
	case DecisionHalt:
		return "halt"
	default:
		return fmt.Sprintf("DecisionKind(%d)", int(k))
	}
}

// Decision is what a Policy wants the driver to do next.
type Decision struct {
	Kind    DecisionKind
	Process *Process // DecisionRun, DecisionPreempt
	Until   int64    // DecisionIdle
}

// Run returns a DecisionRun for p.
func Run(p *Process) Decision { return Decision{Kind: DecisionRun, Process: p} }

// Preempt returns a DecisionPreempt in favor of p.
func Preempt(p *Process) Decision { return Decision{Kind: DecisionPreempt, Process: p} }

// Idle returns a DecisionIdle lasting until t.
func Idle(t int64) Decision { return Decision{Kind: DecisionIdle, Until: t} }

// Halt returns a DecisionHalt.
func Halt() Decision { return Decision{Kind: DecisionHalt} }

func (d Decision) String() string {
	switch d.Kind {
	case DecisionRun, DecisionPreempt:
		if d.Process == nil {
			return d.Kind.String() + "(<nil>)"
		}
		return fmt.Sprintf("%s(%s)", d.Kind, d.Process.ID)
	case DecisionIdle:
		return fmt.Sprintf("idle(until=%d)", d.Until)
	default:
		return d.Kind.String()
	}
}

// SchedulerState is the read-only view a Policy decides from.
type SchedulerState struct {
	Ready       *ReadySet
	Current     *Process // nil when the CPU is free
	Clock       int64
	NextArrival int64 // valid only when HasPending
	HasPending  bool
}

// Policy selects what runs next. Implementations MUST NOT modify the ready set
// or any process; the Simulator applies the returned Decision.
type Policy interface {
	// Name returns the policy kind.
	Name() PolicyKind
	// Select decides the next action given the current state.
	Select(state *SchedulerState) Decision
	// Slice returns how many ticks p runs before the driver consults the policy again.
	Slice(p *Process) int64
}

// idleOrHalt is the shared decision for a free CPU with nothing ready.
func idleOrHalt(state *SchedulerState) Decision {
	if state.HasPending {
		return Idle(state.NextArrival)
	}
	return Halt()
}

// NewPolicy creates the Policy named by cfg.Policy.
// Panics on unrecognized names; call cfg.Validate() first.
func NewPolicy(cfg Config) Policy {
	if !validPolicies[cfg.Policy] {
		panic(fmt.Sprintf("unknown policy %q", cfg.Policy))
	}
	switch cfg.Policy {
	case PolicyFCFS:
		return &FCFS{}
	case PolicySJF:
		return &SJF{}
	case PolicySRTF:
		return &SRTF{}
	case PolicyPriority:
		return &PriorityNonPreemptive{}
	case PolicyPriorityPreemptive:
		return &PriorityPreemptive{}
	case PolicyRoundRobin:
		return &RoundRobin{Quantum: cfg.Quantum}
	default:
		panic(fmt.Sprintf("unhandled policy %q", cfg.Policy))
	}
}
