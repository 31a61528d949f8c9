package sim

// Ordering functions. Every policy breaks ties by arrival time, then by ID,
// so the selection never depends on ready-set iteration order.

func byArrival(a, b *Process) bool {
	if a.ArrivalTime != b.ArrivalTime {
		return a.ArrivalTime < b.ArrivalTime
	}
	return a.ID < b.ID
}

func byBurst(a, b *Process) bool {
	if a.BurstTime != b.BurstTime {
		return a.BurstTime < b.BurstTime
	}
	return byArrival(a, b)
}

func byRemaining(a, b *Process) bool {
	if a.Remaining != b.Remaining {
		return a.Remaining < b.Remaining
	}
	return byArrival(a, b)
}

func byPriority(a, b *Process) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return byArrival(a, b)
}

func byEffectivePriority(a, b *Process) bool {
	if a.EffectivePriority != b.EffectivePriority {
		return a.EffectivePriority < b.EffectivePriority
	}
	return byArrival(a, b)
}

// selectNonPreemptive keeps the current process running and otherwise picks the
// best ready process under less.
func selectNonPreemptive(state *SchedulerState, less func(a, b *Process) bool) Decision {
	if state.Current != nil {
		return Run(state.Current)
	}
	if best := state.Ready.Best(less); best != nil {
		return Run(best)
	}
	return idleOrHalt(state)
}

// FCFS runs processes to completion in arrival order.
type FCFS struct{}

func (f *FCFS) Name() PolicyKind { return PolicyFCFS }

func (f *FCFS) Select(state *SchedulerState) Decision {
	return selectNonPreemptive(state, byArrival)
}

func (f *FCFS) Slice(p *Process) int64 { return p.Remaining }

// SJF runs the ready process with the shortest burst to completion.
// The choice is made only when the CPU becomes free.
// Warning: SJF can starve long processes under sustained arrivals.
type SJF struct{}

func (s *SJF) Name() PolicyKind { return PolicySJF }

func (s *SJF) Select(state *SchedulerState) Decision {
	return selectNonPreemptive(state, byBurst)
}

func (s *SJF) Slice(p *Process) int64 { return p.Remaining }

// PriorityNonPreemptive runs the ready process with the lowest static priority
// number to completion.
type PriorityNonPreemptive struct{}

func (pn *PriorityNonPreemptive) Name() PolicyKind { return PolicyPriority }

func (pn *PriorityNonPreemptive) Select(state *SchedulerState) Decision {
	return selectNonPreemptive(state, byPriority)
}

func (pn *PriorityNonPreemptive) Slice(p *Process) int64 { return p.Remaining }

// SRTF runs the process with the least remaining time, re-evaluated every tick.
// A ready process preempts only with strictly less remaining time.
type SRTF struct{}

func (s *SRTF) Name() PolicyKind { return PolicySRTF }

func (s *SRTF) Select(state *SchedulerState) Decision {
	best := state.Ready.Best(byRemaining)
	if state.Current == nil {
		if best == nil {
			return idleOrHalt(state)
		}
		return Run(best)
	}
	if best != nil && best.Remaining < state.Current.Remaining {
		return Preempt(best)
	}
	return Run(state.Current)
}

func (s *SRTF) Slice(_ *Process) int64 { return 1 }

// PriorityPreemptive runs the process with the lowest effective priority number,
// re-evaluated every tick. A ready process preempts when it orders strictly
// before the running one by (effective priority, arrival, ID).
type PriorityPreemptive struct{}

func (pp *PriorityPreemptive) Name() PolicyKind { return PolicyPriorityPreemptive }

func (pp *PriorityPreemptive) Select(state *SchedulerState) Decision {
	best := state.Ready.Best(byEffectivePriority)
	if state.Current == nil {
		if best == nil {
			return idleOrHalt(state)
		}
		return Run(best)
	}
	if best != nil && byEffectivePriority(best, state.Current) {
		return Preempt(best)
	}
	return Run(state.Current)
}

func (pp *PriorityPreemptive) Slice(_ *Process) int64 { return 1 }

// RoundRobin serves the ready set as a FIFO queue with a fixed time quantum.
// When a slice expires the driver has already admitted the arrivals of that
// slice, so the preempted process queues behind them.
type RoundRobin struct {
	Quantum int64
}

func (rr *RoundRobin) Name() PolicyKind { return PolicyRoundRobin }

func (rr *RoundRobin) Select(state *SchedulerState) Decision {
	head := state.Ready.Peek()
	if state.Current != nil {
		if head == nil {
			// Nobody is waiting: the current process keeps the CPU for another slice.
			return Run(state.Current)
		}
		return Preempt(head)
	}
	if head == nil {
		return idleOrHalt(state)
	}
	return Run(head)
}

func (rr *RoundRobin) Slice(p *Process) int64 {
	return min(rr.Quantum, p.Remaining)
}
