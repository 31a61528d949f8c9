package sim

import (
	"github.com/sirupsen/logrus"
)

// EventType identifies the kind of an event.
type EventType int

const (
	// EventTypeArrival admits arriving processes.
	EventTypeArrival EventType = iota
	// EventTypeStep resumes the execution driver.
	EventTypeStep
)

// eventTypePriority orders events that share a timestamp: arrivals are
// admitted before the driver decides at that instant.
var eventTypePriority = map[EventType]int{
	EventTypeArrival: 0,
	EventTypeStep:    1,
}

func (t EventType) String() string {
	switch t {
	case EventTypeArrival:
		return "Arrival"
	case EventTypeStep:
		return "Step"
	default:
		return "Unknown"
	}
}

// Event defines the interface for all simulation events.
// Each event has a Timestamp (in ticks), a Type and a sequence number assigned
// by Simulator.Schedule, and an Execute method that advances simulation state.
type Event interface {
	Timestamp() int64
	Type() EventType
	Seq() uint64
	setSeq(uint64)
	Execute(*Simulator) error
}

type baseEvent struct {
	time int64
	seq  uint64
}

func (e *baseEvent) Timestamp() int64 { return e.time }
func (e *baseEvent) Seq() uint64      { return e.seq }
func (e *baseEvent) setSeq(s uint64)  { e.seq = s }

// ArrivalEvent represents the arrival of a process.
type ArrivalEvent struct {
	baseEvent
	Process *Process
}

// NewArrivalEvent creates an ArrivalEvent for p at its arrival time.
func NewArrivalEvent(p *Process) *ArrivalEvent {
	return &ArrivalEvent{baseEvent: baseEvent{time: p.ArrivalTime}, Process: p}
}

func (e *ArrivalEvent) Type() EventType { return EventTypeArrival }

// Execute admits every process due at this instant. Admission is idempotent,
// so simultaneous arrivals are admitted once, in tie-break order.
func (e *ArrivalEvent) Execute(sim *Simulator) error {
	logrus.Debugf("<< Arrival: %s at %d ticks", e.Process.ID, e.time)
	sim.admit(e.time)
	return nil
}

// StepEvent resumes the execution driver: a slice ended, a context switch or
// idle period finished, or the run is starting.
type StepEvent struct {
	baseEvent
}

// NewStepEvent creates a StepEvent at time t.
func NewStepEvent(t int64) *StepEvent {
	return &StepEvent{baseEvent: baseEvent{time: t}}
}

func (e *StepEvent) Type() EventType { return EventTypeStep }

// Execute runs one driver step.
func (e *StepEvent) Execute(sim *Simulator) error {
	return sim.Step(e.time)
}
