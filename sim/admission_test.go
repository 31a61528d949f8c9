package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdmitter_Admit_OnlyArrivedProcesses(t *testing.T) {
	// GIVEN processes arriving at 0, 2 and 5
	procs := NewProcesses([]ProcessSpec{proc("P3", 5, 1), proc("P1", 0, 1), proc("P2", 2, 1)})
	adm := NewAdmitter(procs)
	rs := &ReadySet{}

	// WHEN admitting at tick 2
	got := adm.Admit(2, rs)

	// THEN P1 and P2 are ready in arrival order, P3 is still pending
	assert.Equal(t, []string{"P1", "P2"}, processIDs(got))
	assert.Equal(t, []string{"P1", "P2"}, processIDs(rs.Items()))
	assert.Equal(t, 1, adm.Pending())
	next, ok := adm.NextArrival()
	assert.True(t, ok)
	assert.Equal(t, int64(5), next)
}

func TestAdmitter_Admit_IsIdempotentAtSameTick(t *testing.T) {
	procs := NewProcesses([]ProcessSpec{proc("A", 3, 1), proc("B", 3, 1)})
	adm := NewAdmitter(procs)
	rs := &ReadySet{}

	first := adm.Admit(3, rs)
	second := adm.Admit(3, rs)

	assert.Len(t, first, 2)
	assert.Empty(t, second)
	assert.Equal(t, 2, rs.Len())
}

func TestAdmitter_Admit_SimultaneousArrivalsOrderedByID(t *testing.T) {
	// GIVEN three processes arriving together, listed out of ID order
	procs := NewProcesses([]ProcessSpec{proc("P3", 0, 1), proc("P1", 0, 1), proc("P2", 0, 1)})
	adm := NewAdmitter(procs)
	rs := &ReadySet{}

	// WHEN admitted
	adm.Admit(0, rs)

	// THEN ready order follows ID
	assert.Equal(t, []string{"P1", "P2", "P3"}, processIDs(rs.Items()))
}

func TestAdmitter_Admit_SetsReadySinceToAdmissionClock(t *testing.T) {
	procs := NewProcesses([]ProcessSpec{proc("A", 1, 1)})
	adm := NewAdmitter(procs)
	adm.Admit(4, &ReadySet{})
	assert.Equal(t, int64(4), procs[0].ReadySince)
	assert.Equal(t, StateReady, procs[0].State)
}

func TestAdmitter_DoesNotReorderInput(t *testing.T) {
	procs := NewProcesses([]ProcessSpec{proc("B", 1, 1), proc("A", 0, 1)})
	NewAdmitter(procs)
	assert.Equal(t, []string{"B", "A"}, processIDs(procs))
}

func TestAdmitter_NextArrival_Exhausted(t *testing.T) {
	adm := NewAdmitter(nil)
	_, ok := adm.NextArrival()
	assert.False(t, ok)
	assert.Equal(t, 0, adm.Pending())
}
