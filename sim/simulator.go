// sim/simulator.go
package sim

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/schedsim/sim/trace"
)

// EventQueue implements heap.Interface and orders events by timestamp,
// then by type priority, then by sequence number.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []Event

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	if eq[i].Timestamp() != eq[j].Timestamp() {
		return eq[i].Timestamp() < eq[j].Timestamp()
	}
	pi, pj := eventTypePriority[eq[i].Type()], eventTypePriority[eq[j].Type()]
	if pi != pj {
		return pi < pj
	}
	return eq[i].Seq() < eq[j].Seq()
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(Event))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Option customizes a Simulator.
type Option func(*Simulator)

// WithTrace enables decision tracing at the given level.
func WithTrace(level trace.TraceLevel) Option {
	return func(sim *Simulator) {
		if level == trace.TraceLevelDecisions {
			sim.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: level})
		}
	}
}

// WithPolicy replaces the policy derived from Config.Policy.
func WithPolicy(p Policy) Option {
	return func(sim *Simulator) {
		sim.Policy = p
	}
}

// Simulator is the core object that holds simulation time, the ready set,
// the running process and the event loop. It is not safe for concurrent use.
type Simulator struct {
	Clock int64
	// EventQueue has all the simulator events, arrivals and driver steps
	EventQueue EventQueue
	Config     Config
	Policy     Policy
	Aging      *Aging // nil unless aging applies to this run
	// Processes in input (creation) order
	Processes []*Process
	Ready     *ReadySet
	Admitter  *Admitter
	Timeline  *Timeline
	Trace     *trace.SimulationTrace // nil when tracing is off

	current       *Process // process holding the CPU, nil when free
	runStart      int64    // tick the current slice began
	switchPending bool     // a process completed in this step
	preemptions   int
	lastAction    string
	seq           uint64
	started       bool
	halted        bool
}

// NewSimulator validates cfg and specs and prepares a run. Every configuration
// and process problem is reported in the returned error.
func NewSimulator(cfg Config, specs []ProcessSpec, opts ...Option) (*Simulator, error) {
	if err := errors.Join(cfg.Validate(), ValidateProcesses(specs)); err != nil {
		return nil, err
	}
	cfg.warnIgnored()

	procs := NewProcesses(specs)
	sim := &Simulator{
		Clock:      0,
		EventQueue: make(EventQueue, 0, len(procs)+1),
		Config:     cfg,
		Policy:     NewPolicy(cfg),
		Aging:      NewAging(cfg),
		Processes:  procs,
		Ready:      &ReadySet{},
		Admitter:   NewAdmitter(procs),
		Timeline:   &Timeline{},
		lastAction: "init",
	}
	for _, opt := range opts {
		opt(sim)
	}

	for _, p := range procs {
		sim.Schedule(NewArrivalEvent(p))
	}
	sim.Schedule(NewStepEvent(0))
	return sim, nil
}

// Simulate runs cfg over specs and returns the result.
func Simulate(cfg Config, specs []ProcessSpec, opts ...Option) (*Result, error) {
	sim, err := NewSimulator(cfg, specs, opts...)
	if err != nil {
		return nil, err
	}
	if err := sim.Run(); err != nil {
		return nil, err
	}
	return sim.Result()
}

// Schedule pushes an event into the simulator's EventQueue.
func (sim *Simulator) Schedule(ev Event) {
	sim.seq++
	ev.setSeq(sim.seq)
	heap.Push(&sim.EventQueue, ev)
}

// Run processes events in time order until the policy halts.
// A run aborts on the first InconsistentStateError.
func (sim *Simulator) Run() error {
	if sim.started {
		return errors.New("simulator already ran")
	}
	sim.started = true
	logrus.Infof("[tick %07d] Starting %s over %d processes", sim.Clock, sim.Policy.Name(), len(sim.Processes))

	for len(sim.EventQueue) > 0 {
		// get the next event to be simulated
		ev := heap.Pop(&sim.EventQueue).(Event)
		if ev.Timestamp() < sim.Clock {
			return sim.inconsistent(fmt.Sprintf("%s event at tick %d is in the past", ev.Type(), ev.Timestamp()))
		}
		// advance the clock
		sim.Clock = ev.Timestamp()
		logrus.Debugf("[tick %07d] Executing %T", sim.Clock, ev)
		// process the event
		if err := ev.Execute(sim); err != nil {
			logrus.Errorf("[tick %07d] Simulation aborted: %v", sim.Clock, err)
			return err
		}
	}
	if !sim.halted {
		return sim.inconsistent("event queue drained before the policy halted")
	}
	logrus.Infof("[tick %07d] Simulation ended", sim.Clock)
	return nil
}

// Step is one pass of the execution driver at tick now: admit arrivals,
// account for the slice that just ended, charge a pending context switch,
// age waiting processes, then ask the policy what to do next.
func (sim *Simulator) Step(now int64) error {
	sim.admit(now)

	if sim.current != nil {
		if err := sim.accountSlice(now); err != nil {
			return err
		}
	}

	if sim.switchPending {
		sim.switchPending = false
		if sim.Config.ContextSwitch > 0 && sim.workRemains() {
			return sim.contextSwitch(now)
		}
	}

	sim.age(now)
	return sim.decide(now)
}

// admit moves arrived processes into the ready set. Idempotent at a given tick.
func (sim *Simulator) admit(now int64) {
	for _, p := range sim.Admitter.Admit(now, sim.Ready) {
		logrus.Infof("[tick %07d] Admitted %s (burst=%d, priority=%d)", now, p.ID, p.BurstTime, p.Priority)
	}
}

// accountSlice charges the ticks the current process ran since runStart.
func (sim *Simulator) accountSlice(now int64) error {
	p := sim.current
	ran := now - sim.runStart
	if ran <= 0 {
		return sim.inconsistent(fmt.Sprintf("slice of %s did not advance the clock", p.ID))
	}
	if ran > p.Remaining {
		return sim.inconsistent(fmt.Sprintf("%s ran %d ticks with only %d remaining", p.ID, ran, p.Remaining))
	}
	if err := sim.Timeline.Append(sim.runStart, now, p.ID); err != nil {
		return sim.inconsistent(err.Error())
	}
	p.Remaining -= ran
	sim.lastAction = fmt.Sprintf("ran %s for %d", p.ID, ran)

	if p.Remaining == 0 {
		p.markCompleted(now)
		sim.current = nil
		sim.switchPending = true
		sim.lastAction = "completed " + p.ID
		logrus.Infof("[tick %07d] Completed %s", now, p.ID)
		if sim.Trace != nil {
			sim.Trace.RecordCompletion(trace.CompletionRecord{ProcessID: p.ID, Clock: now})
		}
	}
	return nil
}

// workRemains reports whether any process has yet to finish.
func (sim *Simulator) workRemains() bool {
	return sim.current != nil || sim.Ready.Len() > 0 || sim.Admitter.Pending() > 0
}

// contextSwitch charges the configured overhead as a CTX segment and resumes after it.
func (sim *Simulator) contextSwitch(now int64) error {
	until := now + sim.Config.ContextSwitch
	if err := sim.Timeline.Append(now, until, LabelContextSwitch); err != nil {
		return sim.inconsistent(err.Error())
	}
	sim.lastAction = fmt.Sprintf("context switch until %d", until)
	logrus.Debugf("[tick %07d] Context switch until %d", now, until)
	if sim.Trace != nil {
		sim.Trace.RecordContextSwitch(trace.IntervalRecord{From: now, Until: until, After: sim.lastRanID()})
	}
	sim.Schedule(NewStepEvent(until))
	return nil
}

// age applies priority aging to the ready set.
func (sim *Simulator) age(now int64) {
	for _, pr := range sim.Aging.Apply(sim.Ready, now) {
		logrus.Infof("[tick %07d] Aged %s priority %d -> %d after waiting %d", now, pr.Process.ID, pr.From, pr.To, pr.Waited)
		if sim.Trace != nil {
			sim.Trace.RecordAging(trace.AgingRecord{
				ProcessID: pr.Process.ID, Clock: now, From: pr.From, To: pr.To, Waited: pr.Waited,
			})
		}
	}
}

// decide asks the policy for the next action and applies it.
func (sim *Simulator) decide(now int64) error {
	state := &SchedulerState{Ready: sim.Ready, Current: sim.current, Clock: now}
	state.NextArrival, state.HasPending = sim.Admitter.NextArrival()

	d := sim.Policy.Select(state)
	logrus.Debugf("[tick %07d] Policy %s decided %v (ready=%v)", now, sim.Policy.Name(), d, sim.Ready)

	switch d.Kind {
	case DecisionHalt:
		if sim.workRemains() {
			return sim.inconsistent("policy halted with work remaining")
		}
		sim.halted = true
		sim.lastAction = "halt"
		return nil

	case DecisionIdle:
		if sim.current != nil || sim.Ready.Len() > 0 {
			return sim.inconsistent("policy idled the CPU while work is ready")
		}
		if d.Until <= now {
			return sim.inconsistent(fmt.Sprintf("idle until %d does not advance the clock", d.Until))
		}
		if err := sim.Timeline.Append(now, d.Until, LabelIdle); err != nil {
			return sim.inconsistent(err.Error())
		}
		if sim.Trace != nil {
			sim.Trace.RecordIdle(trace.IntervalRecord{From: now, Until: d.Until, After: sim.lastRanID()})
		}
		sim.lastAction = fmt.Sprintf("idle until %d", d.Until)
		sim.Schedule(NewStepEvent(d.Until))
		return nil

	case DecisionRun:
		if d.Process == nil {
			return sim.inconsistent("policy decided to run a nil process")
		}
		if d.Process == sim.current {
			sim.runStart = now
			return sim.scheduleSlice(d.Process, now)
		}
		if sim.current != nil {
			return sim.inconsistent(fmt.Sprintf("policy ran %s while %s holds the CPU", d.Process.ID, sim.current.ID))
		}
		return sim.dispatch(d.Process, now)

	case DecisionPreempt:
		if sim.current == nil {
			return sim.inconsistent("policy preempted with no running process")
		}
		if d.Process == nil || d.Process == sim.current || !sim.Ready.Contains(d.Process) {
			return sim.inconsistent(fmt.Sprintf("policy preempted in favor of %v, which is not ready", d.Process))
		}
		preempted := sim.current
		sim.preemptions++
		logrus.Infof("[tick %07d] Preempted %s (remaining=%d) for %s", now, preempted.ID, preempted.Remaining, d.Process.ID)
		if sim.Trace != nil {
			sim.Trace.RecordPreemption(trace.PreemptionRecord{
				ProcessID: preempted.ID, ByProcess: d.Process.ID, Clock: now, Remaining: preempted.Remaining,
			})
		}
		sim.current = nil
		preempted.ReadySince = now
		sim.Ready.Enqueue(preempted)
		sim.lastAction = fmt.Sprintf("preempted %s for %s", preempted.ID, d.Process.ID)
		if sim.Config.ContextSwitch > 0 {
			return sim.contextSwitch(now)
		}
		return sim.dispatch(d.Process, now)

	default:
		return sim.inconsistent(fmt.Sprintf("unknown decision %v", d))
	}
}

// dispatch takes p out of the ready set and gives it the CPU.
func (sim *Simulator) dispatch(p *Process, now int64) error {
	if err := sim.Ready.Remove(p); err != nil {
		return sim.inconsistent(err.Error())
	}
	first := !p.Started
	p.markStarted(now)
	p.State = StateRunning
	sim.current = p
	sim.runStart = now
	sim.lastAction = "dispatched " + p.ID
	logrus.Infof("[tick %07d] Dispatched %s (remaining=%d)", now, p.ID, p.Remaining)

	if sim.Trace != nil {
		queue := make([]string, 0, sim.Ready.Len())
		for _, q := range sim.Ready.Items() {
			queue = append(queue, q.ID)
		}
		sim.Trace.RecordDispatch(trace.DispatchRecord{
			ProcessID: p.ID, Clock: now, Remaining: p.Remaining, First: first, ReadyQueue: queue,
		})
	}
	return sim.scheduleSlice(p, now)
}

// scheduleSlice resumes the driver when p's next slice ends.
func (sim *Simulator) scheduleSlice(p *Process, now int64) error {
	slice := sim.Policy.Slice(p)
	if slice <= 0 || slice > p.Remaining {
		return sim.inconsistent(fmt.Sprintf("invalid slice %d for %s with %d remaining", slice, p.ID, p.Remaining))
	}
	sim.Schedule(NewStepEvent(now + slice))
	return nil
}

// lastRanID returns the label of the last executed segment, if it was a process.
func (sim *Simulator) lastRanID() string {
	for i := len(sim.Timeline.segments) - 1; i >= 0; i-- {
		label := sim.Timeline.segments[i].Label
		if label != LabelContextSwitch && label != LabelIdle {
			return label
		}
	}
	return ""
}

// inconsistent builds the fatal error for a broken invariant.
func (sim *Simulator) inconsistent(reason string) error {
	err := &InconsistentStateError{Clock: sim.Clock, LastAction: sim.lastAction, Reason: reason}
	if sim.current != nil {
		err.Current = sim.current.ID
	}
	return err
}

// Result returns the timeline and metrics of a finished run.
func (sim *Simulator) Result() (*Result, error) {
	if !sim.halted {
		return nil, sim.inconsistent("result requested before the simulation finished")
	}
	segments := sim.Timeline.Segments()
	metrics, err := ComputeMetrics(sim.Processes, segments)
	if err != nil {
		return nil, err
	}
	metrics.Preemptions = sim.preemptions
	return &Result{
		Policy:   sim.Policy.Name(),
		Config:   sim.Config,
		Timeline: segments,
		Metrics:  metrics,
		Trace:    sim.Trace,
	}, nil
}
