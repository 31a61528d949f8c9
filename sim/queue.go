// Implements the ReadySet, which holds every process that has arrived but is not running.
// Processes are enqueued on admission and on preemption.

package sim

import (
	"fmt"
	"strings"
)

// ReadySet is the pool of ready processes, kept in enqueue (FIFO) order.
// Round-robin consumes it as a queue; ordered policies pick from it with Best.
type ReadySet struct {
	queue []*Process
}

// Enqueue adds a process to the back of the ready set.
func (rs *ReadySet) Enqueue(p *Process) {
	if p == nil {
		panic("Enqueue: process must not be nil")
	}
	p.State = StateReady
	rs.queue = append(rs.queue, p)
}

func (rs *ReadySet) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range rs.queue {
		sb.WriteString(p.ID)
		if i < len(rs.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of ready processes.
func (rs *ReadySet) Len() int {
	return len(rs.queue)
}

// Peek returns the process at the front without removing it.
// Returns nil if the set is empty.
func (rs *ReadySet) Peek() *Process {
	if len(rs.queue) == 0 {
		return nil
	}
	return rs.queue[0]
}

// Items returns the ready processes in enqueue order.
// The returned slice is internal storage: callers MUST NOT append to or reslice it.
func (rs *ReadySet) Items() []*Process {
	return rs.queue
}

// Contains reports whether p is in the ready set.
func (rs *ReadySet) Contains(p *Process) bool {
	return rs.indexOf(p) >= 0
}

// Remove takes p out of the ready set, keeping the order of the others.
// Returns an error if p is not a member.
func (rs *ReadySet) Remove(p *Process) error {
	i := rs.indexOf(p)
	if i < 0 {
		return fmt.Errorf("process %v is not in the ready set %v", p, rs)
	}
	rs.queue = append(rs.queue[:i], rs.queue[i+1:]...)
	return nil
}

// Best returns the first process under less without removing it.
// Returns nil if the set is empty. Ties keep enqueue order.
func (rs *ReadySet) Best(less func(a, b *Process) bool) *Process {
	var best *Process
	for _, p := range rs.queue {
		if best == nil || less(p, best) {
			best = p
		}
	}
	return best
}

func (rs *ReadySet) indexOf(p *Process) int {
	for i, q := range rs.queue {
		if q == p {
			return i
		}
	}
	return -1
}
