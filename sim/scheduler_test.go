package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func stateOf(current *Process, ready ...*Process) *SchedulerState {
	return &SchedulerState{Ready: readySetOf(ready...), Current: current}
}

func TestFCFS_PicksEarliestArrival(t *testing.T) {
	// GIVEN ready processes enqueued out of arrival order
	late := &Process{ID: "late", ArrivalTime: 300}
	early := &Process{ID: "early", ArrivalTime: 100}
	mid := &Process{ID: "mid", ArrivalTime: 200}

	// WHEN FCFS selects on a free CPU
	d := (&FCFS{}).Select(stateOf(nil, late, early, mid))

	// THEN the earliest arrival runs
	assert.Equal(t, DecisionRun, d.Kind)
	assert.Same(t, early, d.Process)
}

func TestFCFS_SameArrival_TieBreaksByID(t *testing.T) {
	b := &Process{ID: "b", ArrivalTime: 5}
	a := &Process{ID: "a", ArrivalTime: 5}
	d := (&FCFS{}).Select(stateOf(nil, b, a))
	assert.Same(t, a, d.Process)
}

func TestNonPreemptivePolicies_KeepCurrent(t *testing.T) {
	// GIVEN a running process and a ready process that would win on every key
	running := &Process{ID: "run", ArrivalTime: 10, BurstTime: 9, Remaining: 9, Priority: 5}
	better := &Process{ID: "better", ArrivalTime: 0, BurstTime: 1, Remaining: 1, Priority: 1}

	for _, p := range []Policy{&FCFS{}, &SJF{}, &PriorityNonPreemptive{}} {
		t.Run(string(p.Name()), func(t *testing.T) {
			// WHEN the policy selects
			d := p.Select(stateOf(running, better))

			// THEN the running process keeps the CPU for its whole remaining burst
			assert.Equal(t, DecisionRun, d.Kind)
			assert.Same(t, running, d.Process)
			assert.Equal(t, int64(9), p.Slice(running))
		})
	}
}

func TestSJF_PicksShortestBurst_TieBreaksByArrivalThenID(t *testing.T) {
	long := &Process{ID: "long", ArrivalTime: 0, BurstTime: 8}
	shortLate := &Process{ID: "a", ArrivalTime: 4, BurstTime: 2}
	earlyB := &Process{ID: "b", ArrivalTime: 1, BurstTime: 2}
	earlyC := &Process{ID: "c", ArrivalTime: 1, BurstTime: 2}

	d := (&SJF{}).Select(stateOf(nil, long, shortLate, earlyC, earlyB))

	assert.Same(t, earlyB, d.Process)
}

func TestPriorityNonPreemptive_LowerNumberWins(t *testing.T) {
	low := &Process{ID: "low", Priority: 3}
	high := &Process{ID: "high", Priority: 1, ArrivalTime: 9}
	d := (&PriorityNonPreemptive{}).Select(stateOf(nil, low, high))
	assert.Same(t, high, d.Process)
}

func TestPriorityNonPreemptive_IgnoresEffectivePriority(t *testing.T) {
	// GIVEN a process whose effective priority was raised
	aged := &Process{ID: "aged", Priority: 5, EffectivePriority: 1}
	static := &Process{ID: "static", Priority: 2, EffectivePriority: 2}

	// THEN the static priority decides
	d := (&PriorityNonPreemptive{}).Select(stateOf(nil, aged, static))
	assert.Same(t, static, d.Process)
}

func TestSRTF_PreemptsOnlyOnStrictlyLessRemaining(t *testing.T) {
	running := &Process{ID: "P1", Remaining: 4}
	tests := []struct {
		name      string
		remaining int64
		want      DecisionKind
	}{
		{"shorter preempts", 3, DecisionPreempt},
		{"equal keeps running", 4, DecisionRun},
		{"longer keeps running", 5, DecisionRun},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			challenger := &Process{ID: "P0", Remaining: tc.remaining}
			d := (&SRTF{}).Select(stateOf(running, challenger))
			assert.Equal(t, tc.want, d.Kind)
		})
	}
}

func TestSRTF_SliceIsOneTick(t *testing.T) {
	assert.Equal(t, int64(1), (&SRTF{}).Slice(&Process{Remaining: 10}))
}

func TestPriorityPreemptive_UsesEffectivePriorityAndFullTieOrder(t *testing.T) {
	running := &Process{ID: "P2", ArrivalTime: 3, EffectivePriority: 2}
	tests := []struct {
		name       string
		challenger *Process
		want       DecisionKind
	}{
		{"lower number preempts", &Process{ID: "P9", ArrivalTime: 9, EffectivePriority: 1}, DecisionPreempt},
		{"equal priority earlier arrival preempts", &Process{ID: "P9", ArrivalTime: 1, EffectivePriority: 2}, DecisionPreempt},
		{"equal priority later arrival waits", &Process{ID: "P1", ArrivalTime: 4, EffectivePriority: 2}, DecisionRun},
		{"higher number waits", &Process{ID: "P1", ArrivalTime: 0, EffectivePriority: 3}, DecisionRun},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := (&PriorityPreemptive{}).Select(stateOf(running, tc.challenger))
			assert.Equal(t, tc.want, d.Kind)
		})
	}
}

func TestRoundRobin_Select(t *testing.T) {
	rr := &RoundRobin{Quantum: 3}
	head := &Process{ID: "head"}
	tail := &Process{ID: "tail"}
	running := &Process{ID: "run", Remaining: 5}

	// free CPU: the head of the queue runs
	d := rr.Select(stateOf(nil, head, tail))
	assert.Equal(t, DecisionRun, d.Kind)
	assert.Same(t, head, d.Process)

	// slice expired with others waiting: the head preempts
	d = rr.Select(stateOf(running, head, tail))
	assert.Equal(t, DecisionPreempt, d.Kind)
	assert.Same(t, head, d.Process)

	// slice expired with nobody waiting: keep running
	d = rr.Select(stateOf(running))
	assert.Equal(t, DecisionRun, d.Kind)
	assert.Same(t, running, d.Process)
}

func TestRoundRobin_Slice_CappedByRemaining(t *testing.T) {
	rr := &RoundRobin{Quantum: 3}
	assert.Equal(t, int64(3), rr.Slice(&Process{Remaining: 10}))
	assert.Equal(t, int64(2), rr.Slice(&Process{Remaining: 2}))
}

func TestPolicies_EmptyReady_IdleOrHalt(t *testing.T) {
	policies := []Policy{&FCFS{}, &SJF{}, &SRTF{}, &PriorityNonPreemptive{}, &PriorityPreemptive{}, &RoundRobin{Quantum: 2}}
	for _, p := range policies {
		t.Run(string(p.Name()), func(t *testing.T) {
			// pending arrival at 7: idle until then
			d := p.Select(&SchedulerState{Ready: &ReadySet{}, Clock: 2, NextArrival: 7, HasPending: true})
			assert.Equal(t, Idle(7), d)

			// nothing pending: halt
			d = p.Select(&SchedulerState{Ready: &ReadySet{}, Clock: 2})
			assert.Equal(t, Halt(), d)
		})
	}
}

func TestPolicies_DoNotMutateReadySet(t *testing.T) {
	policies := []Policy{&FCFS{}, &SJF{}, &SRTF{}, &PriorityNonPreemptive{}, &PriorityPreemptive{}, &RoundRobin{Quantum: 2}}
	for _, p := range policies {
		t.Run(string(p.Name()), func(t *testing.T) {
			a := &Process{ID: "a", BurstTime: 3, Remaining: 3, Priority: 2, EffectivePriority: 2}
			b := &Process{ID: "b", BurstTime: 1, Remaining: 1, Priority: 1, EffectivePriority: 1}
			state := stateOf(nil, a, b)
			p.Select(state)
			assert.Equal(t, []string{"a", "b"}, processIDs(state.Ready.Items()))
		})
	}
}

func TestNewPolicy_AllValidNames(t *testing.T) {
	for _, name := range ValidPolicyNames() {
		cfg := Config{Policy: PolicyKind(name), Quantum: 2}
		p := NewPolicy(cfg)
		assert.Equal(t, PolicyKind(name), p.Name())
	}
}

func TestNewPolicy_UnknownName_Panics(t *testing.T) {
	assert.Panics(t, func() { NewPolicy(Config{Policy: "lottery"}) })
}

func TestDecision_String(t *testing.T) {
	p := &Process{ID: "P1"}
	assert.Equal(t, "run(P1)", Run(p).String())
	assert.Equal(t, "preempt(P1)", Preempt(p).String())
	assert.Equal(t, "run(<nil>)", Run(nil).String())
	assert.Equal(t, "idle(until=4)", Idle(4).String())
	assert.Equal(t, "halt", Halt().String())
	assert.Equal(t, "DecisionKind(9)", DecisionKind(9).String())
}
