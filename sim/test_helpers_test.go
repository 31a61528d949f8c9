package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inference-sim/schedsim/sim/internal/testutil"
)

func proc(id string, arrival, burst int64) ProcessSpec {
	return ProcessSpec{ID: id, Arrival: arrival, Burst: burst}
}

func procP(id string, arrival, burst int64, priority int) ProcessSpec {
	return ProcessSpec{ID: id, Arrival: arrival, Burst: burst, Priority: priority}
}

func seg(start, end int64, label string) Segment {
	return Segment{Start: start, End: end, Label: label}
}

// mustSimulate runs a simulation that is expected to succeed and checks the
// timeline and metric invariants on its result.
func mustSimulate(t *testing.T, cfg Config, specs []ProcessSpec, opts ...Option) *Result {
	t.Helper()
	res, err := Simulate(cfg, specs, opts...)
	require.NoError(t, err)
	require.NotNil(t, res)
	checkInvariants(t, res)
	return res
}

func checkInvariants(t *testing.T, res *Result) {
	t.Helper()
	spans := make([]testutil.Span, len(res.Timeline))
	for i, s := range res.Timeline {
		spans[i] = testutil.Span{Start: s.Start, End: s.End, Label: s.Label}
	}
	rows := make([]testutil.Row, len(res.Metrics.Processes))
	for i, r := range res.Metrics.Processes {
		rows[i] = testutil.Row{
			ID: r.ID, Arrival: r.Arrival, Burst: r.Burst, Start: r.Start, Completion: r.Completion,
			Turnaround: r.Turnaround, Waiting: r.Waiting, Response: r.Response,
		}
	}
	testutil.CheckInvariants(t, spans, rows)
}

func rowByID(t *testing.T, res *Result, id string) ProcessMetrics {
	t.Helper()
	for _, r := range res.Metrics.Processes {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("no metrics row for %s", id)
	return ProcessMetrics{}
}

func processIDs(procs []*Process) []string {
	ids := make([]string, len(procs))
	for i, p := range procs {
		ids[i] = p.ID
	}
	return ids
}

// readySetOf builds a ready set from processes in the given order.
func readySetOf(procs ...*Process) *ReadySet {
	rs := &ReadySet{}
	for _, p := range procs {
		rs.Enqueue(p)
	}
	return rs
}
