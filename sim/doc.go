// Package sim provides the discrete-event CPU-scheduling engine for schedsim.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - process.go: Process lifecycle (pending → ready → running → completed)
//   - event.go: Event types that drive the simulation (Arrival, Step)
//   - simulator.go: The event loop, the execution driver and its Step
//
// # Architecture
//
// One engine runs every discipline. The Simulator owns the clock, the ready
// set, the pending arrivals and the timeline; a Policy only decides. Each
// Step admits arrivals, charges the slice that just ended, inserts a context
// switch when one is due, applies aging, and then applies the policy's
// Decision (Run, Preempt, Idle or Halt). Policies differ in granularity:
// non-preemptive policies run whole bursts, SRTF and preemptive priority
// advance one tick at a time, round-robin runs quantum-bounded slices.
//
// Sub-packages:
//   - sim/trace/: decision trace recording
//   - sim/record/: SQLite persistence of finished runs
//
// # Key Interfaces
//
//   - Policy: select the next action and the length of the next slice
//
// The Simulator is single-threaded. Independent Simulators may run in parallel.
package sim
