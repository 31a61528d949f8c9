// Package trace provides decision-trace recording for scheduling-policy analysis.
// This package does not import sim; it holds plain data types.
package trace

// DispatchRecord captures a process being given the CPU.
type DispatchRecord struct {
	ProcessID  string
	Clock      int64
	Remaining  int64
	First      bool     // true on the process's first dispatch
	ReadyQueue []string // IDs left in the ready set after the dispatch, in queue order
}

// PreemptionRecord captures a running process being interrupted.
type PreemptionRecord struct {
	ProcessID string // the interrupted process
	ByProcess string // the process chosen to run instead
	Clock     int64
	Remaining int64 // remaining time of the interrupted process
}

// CompletionRecord captures a process finishing its burst.
type CompletionRecord struct {
	ProcessID string
	Clock     int64
}

// IntervalRecord captures a span the CPU spent idle or switching context.
type IntervalRecord struct {
	From  int64
	Until int64
	After string // ID of the process that ran before the interval, empty if none
}

// AgingRecord captures one aging promotion of a waiting process.
type AgingRecord struct {
	ProcessID string
	Clock     int64
	From      int
	To        int
	Waited    int64
}
