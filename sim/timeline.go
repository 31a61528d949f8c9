package sim

import "fmt"

// Reserved timeline labels.
const (
	LabelContextSwitch = "CTX"
	LabelIdle          = "IDLE"
)

// Segment is one contiguous interval of the Gantt timeline.
type Segment struct {
	Start int64  `yaml:"start"`
	End   int64  `yaml:"end"`
	Label string `yaml:"label"` // process ID, LabelContextSwitch or LabelIdle
}

// Duration returns End - Start.
func (s Segment) Duration() int64 {
	return s.End - s.Start
}

func (s Segment) String() string {
	return fmt.Sprintf("%s[%d,%d)", s.Label, s.Start, s.End)
}

// Timeline is an append-only recorder of segments.
// Consecutive intervals with the same label are merged into one segment.
type Timeline struct {
	segments []Segment
}

// Append adds [start, end) under label. It fails when the interval is empty
// or starts before the end of the previous segment.
func (tl *Timeline) Append(start, end int64, label string) error {
	if end <= start {
		return fmt.Errorf("segment %s[%d,%d) has non-positive duration", label, start, end)
	}
	n := len(tl.segments)
	if n > 0 {
		last := &tl.segments[n-1]
		if start < last.End {
			return fmt.Errorf("segment %s[%d,%d) overlaps previous segment %v", label, start, end, *last)
		}
		if last.Label == label && last.End == start {
			last.End = end
			return nil
		}
	}
	tl.segments = append(tl.segments, Segment{Start: start, End: end, Label: label})
	return nil
}

// Segments returns a copy of the recorded segments.
func (tl *Timeline) Segments() []Segment {
	out := make([]Segment, len(tl.segments))
	copy(out, tl.segments)
	return out
}

// Len returns the number of segments.
func (tl *Timeline) Len() int {
	return len(tl.segments)
}

// End returns the end of the last segment, or 0 for an empty timeline.
func (tl *Timeline) End() int64 {
	if len(tl.segments) == 0 {
		return 0
	}
	return tl.segments[len(tl.segments)-1].End
}
