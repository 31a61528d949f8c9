package sim

// Admitter moves arrived processes from the pending arrival sequence into the ready set.
// The pending sequence is sorted by arrival time, then ID.
type Admitter struct {
	pending []*Process
	next    int // index of the first process not yet admitted
}

// NewAdmitter creates an Admitter over procs. procs is not modified.
func NewAdmitter(procs []*Process) *Admitter {
	pending := make([]*Process, len(procs))
	copy(pending, procs)
	sortByArrival(pending)
	return &Admitter{pending: pending}
}

// Admit enqueues every pending process whose arrival <= clock, in arrival order,
// and returns them. Calling it again at the same clock admits nothing new.
func (a *Admitter) Admit(clock int64, ready *ReadySet) []*Process {
	start := a.next
	for a.next < len(a.pending) && a.pending[a.next].ArrivalTime <= clock {
		p := a.pending[a.next]
		p.ReadySince = clock
		ready.Enqueue(p)
		a.next++
	}
	return a.pending[start:a.next]
}

// NextArrival returns the arrival time of the next pending process.
// ok is false once every process has been admitted.
func (a *Admitter) NextArrival() (t int64, ok bool) {
	if a.next >= len(a.pending) {
		return 0, false
	}
	return a.pending[a.next].ArrivalTime, true
}

// Pending returns the number of processes not yet admitted.
func (a *Admitter) Pending() int {
	return len(a.pending) - a.next
}
