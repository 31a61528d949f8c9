// Package record persists finished simulation runs into a SQLite database so
// schedules from different policies and workloads can be queried side by side.
package record

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	// Registers the pure-Go "sqlite" driver.
	_ "github.com/glebarez/go-sqlite"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"

	"github.com/inference-sim/schedsim/sim"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id               TEXT PRIMARY KEY,
	workload         TEXT NOT NULL,
	policy           TEXT NOT NULL,
	quantum          INTEGER NOT NULL,
	context_switch   INTEGER NOT NULL,
	aging_enabled    INTEGER NOT NULL,
	aging_interval   INTEGER NOT NULL,
	aging_step       INTEGER NOT NULL,
	processes        INTEGER NOT NULL,
	makespan         INTEGER NOT NULL,
	avg_turnaround   REAL NOT NULL,
	avg_waiting      REAL NOT NULL,
	avg_response     REAL NOT NULL,
	utilization      REAL NOT NULL,
	throughput       REAL NOT NULL,
	context_switches INTEGER NOT NULL,
	preemptions      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS segments (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	seq        INTEGER NOT NULL,
	start_tick INTEGER NOT NULL,
	end_tick   INTEGER NOT NULL,
	label      TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS processes (
	run_id         TEXT NOT NULL REFERENCES runs(id),
	id             TEXT NOT NULL,
	arrival        INTEGER NOT NULL,
	burst          INTEGER NOT NULL,
	priority       INTEGER NOT NULL,
	final_priority INTEGER NOT NULL,
	start_tick     INTEGER NOT NULL,
	completion     INTEGER NOT NULL,
	turnaround     INTEGER NOT NULL,
	waiting        INTEGER NOT NULL,
	response       INTEGER NOT NULL
);`

// DefaultBatchSize is the number of buffered runs that triggers a flush.
const DefaultBatchSize = 64

type pendingRun struct {
	id       string
	workload string
	result   *sim.Result
}

// Recorder buffers finished runs and writes them in batches.
// It is safe for concurrent use.
type Recorder struct {
	db        *sql.DB
	path      string
	batchSize int

	mu      sync.Mutex
	pending []pendingRun
	closed  bool
}

// Open opens (or creates) the database at path and ensures the schema exists.
// Buffered runs are flushed when the process exits through atexit.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open record database %s: %w", path, err)
	}
	// a single connection serializes writers on the same file
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create record schema in %s: %w", path, err)
	}

	r := &Recorder{db: db, path: path, batchSize: DefaultBatchSize}
	atexit.Register(func() {
		if err := r.Close(); err != nil {
			logrus.Errorf("closing record database %s: %v", path, err)
		}
	})
	logrus.Infof("Recording runs to %s", path)
	return r, nil
}

// Record buffers res under a new run ID and returns that ID.
func (r *Recorder) Record(workload string, res *sim.Result) (string, error) {
	if res == nil || res.Metrics == nil {
		return "", errors.New("record: result has no metrics")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return "", errors.New("record: recorder is closed")
	}

	id := xid.New().String()
	r.pending = append(r.pending, pendingRun{id: id, workload: workload, result: res})
	logrus.Debugf("Buffered run %s (%s over %s)", id, res.Policy, workload)
	if len(r.pending) >= r.batchSize {
		if err := r.flushLocked(); err != nil {
			return "", err
		}
	}
	return id, nil
}

// Flush writes every buffered run in one transaction.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flushLocked()
}

// Close flushes and closes the database. Later calls are no-ops.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	flushErr := r.flushLocked()
	r.closed = true
	return errors.Join(flushErr, r.db.Close())
}

func (r *Recorder) flushLocked() error {
	if len(r.pending) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("record: begin transaction: %w", err)
	}
	for _, run := range r.pending {
		if err := insertRun(tx, run); err != nil {
			return errors.Join(fmt.Errorf("record: run %s: %w", run.id, err), tx.Rollback())
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record: commit: %w", err)
	}
	logrus.Debugf("Flushed %d runs to %s", len(r.pending), r.path)
	r.pending = nil
	return nil
}

func insertRun(tx *sql.Tx, run pendingRun) error {
	res := run.result
	m := res.Metrics
	_, err := tx.Exec(`INSERT INTO runs VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.id, run.workload, string(res.Policy),
		res.Config.Quantum, res.Config.ContextSwitch,
		res.Config.Aging.Enabled, res.Config.Aging.Interval, res.Config.Aging.Step,
		len(m.Processes), m.Makespan,
		m.AvgTurnaround, m.AvgWaiting, m.AvgResponse, m.Utilization, m.Throughput,
		m.ContextSwitches, m.Preemptions,
	)
	if err != nil {
		return err
	}

	segStmt, err := tx.Prepare(`INSERT INTO segments VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer segStmt.Close()
	for i, s := range res.Timeline {
		if _, err := segStmt.Exec(run.id, i, s.Start, s.End, s.Label); err != nil {
			return err
		}
	}

	procStmt, err := tx.Prepare(`INSERT INTO processes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer procStmt.Close()
	for _, p := range m.Processes {
		if _, err := procStmt.Exec(run.id, p.ID, p.Arrival, p.Burst, p.Priority, p.FinalPriority,
			p.Start, p.Completion, p.Turnaround, p.Waiting, p.Response); err != nil {
			return err
		}
	}
	return nil
}
