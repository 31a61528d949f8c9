package testutil

import (
	"testing"
)

// Reserved labels, mirrored from sim to keep this package import-free.
const (
	labelContextSwitch = "CTX"
	labelIdle          = "IDLE"
)

// Span is a timeline segment as seen by the invariant checker.
type Span struct {
	Start int64
	End   int64
	Label string
}

// Row is a per-process result as seen by the invariant checker.
type Row struct {
	ID         string
	Arrival    int64
	Burst      int64
	Start      int64
	Completion int64
	Turnaround int64
	Waiting    int64
	Response   int64
}

// CheckInvariants asserts the properties every valid run must satisfy:
//   - segments have positive length, are sorted, non-overlapping and contiguous from 0
//   - adjacent segments never share a label
//   - the execution time labeled with each process equals its burst
//   - 0 <= response <= waiting <= turnaround and turnaround == waiting + burst
//   - a process starts no earlier than it arrives and completes at the end of its last segment
func CheckInvariants(t *testing.T, spans []Span, rows []Row) {
	t.Helper()

	executed := make(map[string]int64, len(rows))
	lastEnd := make(map[string]int64, len(rows))
	firstStart := make(map[string]int64, len(rows))
	var prevEnd int64
	for i, s := range spans {
		if s.End <= s.Start {
			t.Errorf("segment %d %s[%d,%d) has non-positive duration", i, s.Label, s.Start, s.End)
		}
		if s.Start != prevEnd {
			t.Errorf("segment %d %s[%d,%d) does not start at previous end %d", i, s.Label, s.Start, s.End, prevEnd)
		}
		if i > 0 && spans[i-1].Label == s.Label {
			t.Errorf("segments %d and %d share label %s and were not coalesced", i-1, i, s.Label)
		}
		prevEnd = s.End
		if s.Label == labelContextSwitch || s.Label == labelIdle {
			continue
		}
		if _, seen := firstStart[s.Label]; !seen {
			firstStart[s.Label] = s.Start
		}
		executed[s.Label] += s.End - s.Start
		lastEnd[s.Label] = s.End
	}

	for _, r := range rows {
		if executed[r.ID] != r.Burst {
			t.Errorf("process %s executed %d ticks, burst is %d", r.ID, executed[r.ID], r.Burst)
		}
		if r.Start < r.Arrival {
			t.Errorf("process %s started at %d before arriving at %d", r.ID, r.Start, r.Arrival)
		}
		if start, ok := firstStart[r.ID]; ok && start != r.Start {
			t.Errorf("process %s start=%d, first segment starts at %d", r.ID, r.Start, start)
		}
		if end, ok := lastEnd[r.ID]; ok && end != r.Completion {
			t.Errorf("process %s completion=%d, last segment ends at %d", r.ID, r.Completion, end)
		}
		if r.Response < 0 || r.Response > r.Waiting || r.Waiting > r.Turnaround {
			t.Errorf("process %s violates 0 <= response(%d) <= waiting(%d) <= turnaround(%d)",
				r.ID, r.Response, r.Waiting, r.Turnaround)
		}
		if r.Turnaround != r.Waiting+r.Burst {
			t.Errorf("process %s turnaround %d != waiting %d + burst %d", r.ID, r.Turnaround, r.Waiting, r.Burst)
		}
	}
	if len(executed) != len(rows) {
		t.Errorf("timeline runs %d distinct processes, result has %d", len(executed), len(rows))
	}
}
