package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every dispatch, preemption, completion,
	// idle span, context switch and aging promotion.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects decision records during a simulation.
type SimulationTrace struct {
	Config          TraceConfig
	Dispatches      []DispatchRecord
	Preemptions     []PreemptionRecord
	Completions     []CompletionRecord
	Idles           []IntervalRecord
	ContextSwitches []IntervalRecord
	Agings          []AgingRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:          config,
		Dispatches:      make([]DispatchRecord, 0),
		Preemptions:     make([]PreemptionRecord, 0),
		Completions:     make([]CompletionRecord, 0),
		Idles:           make([]IntervalRecord, 0),
		ContextSwitches: make([]IntervalRecord, 0),
		Agings:          make([]AgingRecord, 0),
	}
}

// RecordDispatch appends a dispatch record.
func (st *SimulationTrace) RecordDispatch(record DispatchRecord) {
	st.Dispatches = append(st.Dispatches, record)
}

// RecordPreemption appends a preemption record.
func (st *SimulationTrace) RecordPreemption(record PreemptionRecord) {
	st.Preemptions = append(st.Preemptions, record)
}

// RecordCompletion appends a completion record.
func (st *SimulationTrace) RecordCompletion(record CompletionRecord) {
	st.Completions = append(st.Completions, record)
}

// RecordIdle appends an idle interval.
func (st *SimulationTrace) RecordIdle(record IntervalRecord) {
	st.Idles = append(st.Idles, record)
}

// RecordContextSwitch appends a context-switch interval.
func (st *SimulationTrace) RecordContextSwitch(record IntervalRecord) {
	st.ContextSwitches = append(st.ContextSwitches, record)
}

// RecordAging appends an aging promotion.
func (st *SimulationTrace) RecordAging(record AgingRecord) {
	st.Agings = append(st.Agings, record)
}

// DispatchOrder returns the IDs of dispatched processes in dispatch order.
// Safe for a nil trace.
func (st *SimulationTrace) DispatchOrder() []string {
	if st == nil {
		return nil
	}
	ids := make([]string, len(st.Dispatches))
	for i, d := range st.Dispatches {
		ids[i] = d.ProcessID
	}
	return ids
}
