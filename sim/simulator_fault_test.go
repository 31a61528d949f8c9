package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newMockedSimulator builds a simulator whose decisions come from a mock policy.
func newMockedSimulator(t *testing.T, specs []ProcessSpec) (*Simulator, *MockPolicy) {
	t.Helper()
	ctrl := gomock.NewController(t)
	policy := NewMockPolicy(ctrl)
	policy.EXPECT().Name().Return(PolicyFCFS).AnyTimes()
	sim, err := NewSimulator(Config{Policy: PolicyFCFS}, specs, WithPolicy(policy))
	require.NoError(t, err)
	return sim, policy
}

func requireInconsistent(t *testing.T, err error) *InconsistentStateError {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInconsistentState)
	var ierr *InconsistentStateError
	require.ErrorAs(t, err, &ierr)
	return ierr
}

func TestSimulator_MockPolicy_DrivesRun(t *testing.T) {
	// GIVEN a mock policy that behaves like FCFS
	sim, policy := newMockedSimulator(t, []ProcessSpec{proc("P1", 0, 2), proc("P2", 1, 1)})
	fcfs := &FCFS{}
	policy.EXPECT().Select(gomock.Any()).DoAndReturn(fcfs.Select).Times(3)
	policy.EXPECT().Slice(gomock.Any()).DoAndReturn(fcfs.Slice).Times(2)

	// WHEN run
	require.NoError(t, sim.Run())
	res, err := sim.Result()
	require.NoError(t, err)

	// THEN the driver consults the policy once per decision point: tick 0, tick 2 and the final halt at 3
	assert.Equal(t, []Segment{seg(0, 2, "P1"), seg(2, 3, "P2")}, res.Timeline)
}

func TestSimulator_HaltWithWorkRemaining_IsInconsistent(t *testing.T) {
	sim, policy := newMockedSimulator(t, []ProcessSpec{proc("P1", 0, 3)})
	policy.EXPECT().Select(gomock.Any()).Return(Halt())

	ierr := requireInconsistent(t, sim.Run())

	assert.Equal(t, int64(0), ierr.Clock)
	assert.Equal(t, "", ierr.Current)
	assert.Equal(t, "init", ierr.LastAction)
	assert.Contains(t, ierr.Reason, "halted with work remaining")
}

func TestSimulator_IdleWhileWorkReady_IsInconsistent(t *testing.T) {
	sim, policy := newMockedSimulator(t, []ProcessSpec{proc("P1", 0, 3)})
	policy.EXPECT().Select(gomock.Any()).Return(Idle(5))

	ierr := requireInconsistent(t, sim.Run())
	assert.Contains(t, ierr.Reason, "idled the CPU while work is ready")
}

func TestSimulator_IdleNotAdvancingClock_IsInconsistent(t *testing.T) {
	sim, policy := newMockedSimulator(t, []ProcessSpec{proc("P1", 4, 3)})
	policy.EXPECT().Select(gomock.Any()).Return(Idle(0))

	ierr := requireInconsistent(t, sim.Run())
	assert.Contains(t, ierr.Reason, "does not advance the clock")
}

func TestSimulator_SliceBeyondRemaining_IsInconsistent(t *testing.T) {
	sim, policy := newMockedSimulator(t, []ProcessSpec{proc("P1", 0, 3)})
	policy.EXPECT().Select(gomock.Any()).DoAndReturn(func(s *SchedulerState) Decision {
		return Run(s.Ready.Peek())
	})
	policy.EXPECT().Slice(gomock.Any()).Return(int64(4))

	ierr := requireInconsistent(t, sim.Run())

	assert.Equal(t, "P1", ierr.Current)
	assert.Equal(t, "dispatched P1", ierr.LastAction)
	assert.Contains(t, ierr.Reason, "invalid slice 4")
}

func TestSimulator_PreemptWithoutRunningProcess_IsInconsistent(t *testing.T) {
	sim, policy := newMockedSimulator(t, []ProcessSpec{proc("P1", 0, 3)})
	policy.EXPECT().Select(gomock.Any()).DoAndReturn(func(s *SchedulerState) Decision {
		return Preempt(s.Ready.Peek())
	})

	ierr := requireInconsistent(t, sim.Run())
	assert.Contains(t, ierr.Reason, "no running process")
}

func TestSimulator_RunWhileCPUBusy_IsInconsistent(t *testing.T) {
	// GIVEN a policy that dispatches P1 for one tick and then tries to run P2 without preempting
	sim, policy := newMockedSimulator(t, []ProcessSpec{proc("P1", 0, 3), proc("P2", 0, 1)})
	gomock.InOrder(
		policy.EXPECT().Select(gomock.Any()).DoAndReturn(func(s *SchedulerState) Decision {
			return Run(s.Ready.Peek())
		}),
		policy.EXPECT().Select(gomock.Any()).DoAndReturn(func(s *SchedulerState) Decision {
			return Run(s.Ready.Peek())
		}),
	)
	policy.EXPECT().Slice(gomock.Any()).Return(int64(1))

	// WHEN run
	ierr := requireInconsistent(t, sim.Run())

	// THEN the run aborts at tick 1 naming the process that holds the CPU
	assert.Equal(t, int64(1), ierr.Clock)
	assert.Equal(t, "P1", ierr.Current)
	assert.Equal(t, "ran P1 for 1", ierr.LastAction)
	assert.Contains(t, ierr.Reason, "policy ran P2 while P1 holds the CPU")
}

func TestSimulator_RunNilProcess_IsInconsistent(t *testing.T) {
	sim, policy := newMockedSimulator(t, []ProcessSpec{proc("P1", 0, 3)})
	policy.EXPECT().Select(gomock.Any()).Return(Run(nil))

	ierr := requireInconsistent(t, sim.Run())
	assert.Contains(t, ierr.Reason, "nil process")
}

func TestSimulator_PreemptForNonReadyProcess_IsInconsistent(t *testing.T) {
	sim, policy := newMockedSimulator(t, []ProcessSpec{proc("P1", 0, 3)})
	gomock.InOrder(
		policy.EXPECT().Select(gomock.Any()).DoAndReturn(func(s *SchedulerState) Decision {
			return Run(s.Ready.Peek())
		}),
		policy.EXPECT().Select(gomock.Any()).DoAndReturn(func(s *SchedulerState) Decision {
			return Preempt(s.Current)
		}),
	)
	policy.EXPECT().Slice(gomock.Any()).Return(int64(1))

	ierr := requireInconsistent(t, sim.Run())
	assert.Contains(t, ierr.Reason, "not ready")
}
