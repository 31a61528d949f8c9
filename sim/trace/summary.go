package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDispatches    int            `yaml:"total_dispatches"`
	Preemptions        int            `yaml:"preemptions"`
	Completions        int            `yaml:"completions"`
	ContextSwitches    int            `yaml:"context_switches"`
	ContextSwitchTicks int64          `yaml:"context_switch_ticks"`
	IdleTicks          int64          `yaml:"idle_ticks"`
	AgingPromotions    int            `yaml:"aging_promotions"`
	DispatchCounts     map[string]int `yaml:"dispatch_counts"` // process ID → number of times dispatched
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DispatchCounts: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDispatches = len(st.Dispatches)
	for _, d := range st.Dispatches {
		summary.DispatchCounts[d.ProcessID]++
	}
	summary.Preemptions = len(st.Preemptions)
	summary.Completions = len(st.Completions)
	summary.ContextSwitches = len(st.ContextSwitches)
	for _, cs := range st.ContextSwitches {
		summary.ContextSwitchTicks += cs.Until - cs.From
	}
	for _, idle := range st.Idles {
		summary.IdleTicks += idle.Until - idle.From
	}
	summary.AgingPromotions = len(st.Agings)

	return summary
}
