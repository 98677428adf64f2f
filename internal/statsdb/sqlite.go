// Package statsdb persists completed request lifecycles and per-phase
// statistics snapshots to a SQLite database, for offline analysis of a
// simulation run.
package statsdb

import (
	"database/sql"
	"fmt"
	"os"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/rener2104/dramctrl/hooking"
	"github.com/rener2104/dramctrl/internal/stat"
)

// Writer buffers and batch-writes request lifecycle tasks and per-phase
// statistics snapshots to a SQLite database. It implements
// hooking.TracerBackend.
type Writer struct {
	*sql.DB

	taskStmt  *sql.Stmt
	statsStmt *sql.Stmt

	dbName string

	tasksToWrite []hooking.RequestTrace
	statsToWrite []phaseStatRow

	batchSize int
}

type phaseStatRow struct {
	channel string
	phase   string
	c       stat.Counters
}

// NewWriter creates a Writer that will open its database at path (or, if
// path is empty, a name derived from a fresh xid). The flush-on-exit
// handler is registered immediately so buffered rows are not lost if
// the process exits before Close is called.
func NewWriter(path string) *Writer {
	w := &Writer{
		dbName:    path,
		batchSize: 1000,
	}

	atexit.Register(func() { w.Flush() })

	return w
}

// Init opens the database connection and creates the schema. The
// special name ":memory:" opens an in-memory database, used by tests.
func (w *Writer) Init() {
	if w.dbName == "" {
		w.dbName = "dramctrl_trace_" + xid.New().String()
	}

	filename := w.dbName
	if filename != ":memory:" {
		filename += ".sqlite3"
		if _, err := os.Stat(filename); err == nil {
			panic(fmt.Errorf("statsdb: file %s already exists", filename))
		}
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	w.DB = db

	w.createTables()
	w.prepareStatements()
}

func (w *Writer) createTables() {
	w.mustExecute(`
		create table request
		(
			task_id    varchar(200) not null,
			kind       varchar(100),
			address    varchar(100),
			channel    varchar(100),
			admit_time bigint       not null,
			end_time   bigint       default 0
		);
	`)

	w.mustExecute(`create index request_task_id_index on request (task_id);`)
	w.mustExecute(`create index request_admit_time_index on request (admit_time);`)

	w.mustExecute(`
		create table phase_stats
		(
			channel              varchar(100) not null,
			phase                varchar(100) not null,
			rq_row_buffer_hit    bigint,
			rq_row_buffer_miss   bigint,
			wq_row_buffer_hit    bigint,
			wq_row_buffer_miss   bigint,
			wq_full              bigint,
			dbus_cycle_congested bigint,
			dbus_count_congested bigint
		);
	`)
}

func (w *Writer) prepareStatements() {
	taskStmt, err := w.Prepare(`insert into request values (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		panic(err)
	}

	w.taskStmt = taskStmt

	statsStmt, err := w.Prepare(`insert into phase_stats values (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		panic(err)
	}

	w.statsStmt = statsStmt
}

// Write buffers t for the next Flush. It satisfies hooking.TracerBackend.
func (w *Writer) Write(t hooking.RequestTrace) {
	w.tasksToWrite = append(w.tasksToWrite, t)
	if len(w.tasksToWrite) >= w.batchSize {
		w.Flush()
	}
}

// WritePhaseStats buffers a per-channel, per-phase statistics snapshot
// for the next Flush.
func (w *Writer) WritePhaseStats(channel, phase string, c stat.Counters) {
	w.statsToWrite = append(w.statsToWrite, phaseStatRow{channel: channel, phase: phase, c: c})
}

// Flush writes every buffered task and statistics row to the database.
// It satisfies hooking.TracerBackend.
func (w *Writer) Flush() {
	w.flushTasks()
	w.flushStats()
}

func (w *Writer) flushTasks() {
	if len(w.tasksToWrite) == 0 {
		return
	}

	w.mustExecute("BEGIN TRANSACTION")
	defer w.mustExecute("COMMIT TRANSACTION")

	for _, t := range w.tasksToWrite {
		_, err := w.taskStmt.Exec(t.ID, t.Kind, t.Address, t.Channel, int64(t.AdmitTime), int64(t.EndTime))
		if err != nil {
			panic(err)
		}
	}

	w.tasksToWrite = nil
}

func (w *Writer) flushStats() {
	if len(w.statsToWrite) == 0 {
		return
	}

	w.mustExecute("BEGIN TRANSACTION")
	defer w.mustExecute("COMMIT TRANSACTION")

	for _, r := range w.statsToWrite {
		_, err := w.statsStmt.Exec(
			r.channel, r.phase,
			r.c.RQRowBufferHit, r.c.RQRowBufferMiss,
			r.c.WQRowBufferHit, r.c.WQRowBufferMiss,
			r.c.WQFull, r.c.DBusCycleCongested, r.c.DBusCountCongested,
		)
		if err != nil {
			panic(err)
		}
	}

	w.statsToWrite = nil
}

func (w *Writer) mustExecute(query string) sql.Result {
	res, err := w.Exec(query)
	if err != nil {
		panic(fmt.Errorf("statsdb: failed to execute %q: %w", query, err))
	}

	return res
}
