package hooking

import (
	"github.com/tebeka/atexit"
)

// TracerBackend is a backend that can store request traces.
type TracerBackend interface {
	// Write writes a completed request trace to storage.
	Write(t RequestTrace)

	// Flush flushes buffered traces to storage, in case the backend
	// buffers writes.
	Flush()
}

// DBTracer is a Hook that turns a channel's RequestAdmitted/
// RequestCompleted pairs into RequestTrace rows on a TracerBackend
// (internal/statsdb, typically).
type DBTracer struct {
	timeTeller TimeTeller
	backend    TracerBackend
	open       map[string]RequestTrace
}

// NewDBTracer creates a new DBTracer and registers its flush-on-exit
// handler, so traces still open when the process exits are not lost.
func NewDBTracer(timeTeller TimeTeller, backend TracerBackend) *DBTracer {
	t := &DBTracer{
		timeTeller: timeTeller,
		backend:    backend,
		open:       make(map[string]RequestTrace),
	}

	atexit.Register(func() { t.Terminate() })

	return t
}

// RequestAdmitted opens a trace for ev, stamped with the current time.
func (t *DBTracer) RequestAdmitted(ev RequestAdmitted) {
	if ev.ID == "" {
		panic("hooking: admitted request ID must be set")
	}

	t.open[ev.ID] = RequestTrace{
		ID:        ev.ID,
		Kind:      ev.Kind,
		Address:   ev.Address,
		Channel:   ev.Channel,
		AdmitTime: t.timeTeller.Now(),
	}
}

// RequestCompleted closes the trace opened for ev.ID and writes it to
// the backend. A completion with no matching open trace is ignored:
// SetTimeRange-style windowing isn't needed here since every channel
// tracer lives for the whole run, but a stray ID (a bug elsewhere)
// should not panic the simulation.
func (t *DBTracer) RequestCompleted(ev RequestCompleted) {
	trace, ok := t.open[ev.ID]
	if !ok {
		return
	}

	trace.EndTime = t.timeTeller.Now()
	delete(t.open, ev.ID)

	t.backend.Write(trace)
}

// Terminate writes every still-open trace to the backend and flushes it.
func (t *DBTracer) Terminate() {
	now := t.timeTeller.Now()

	for _, trace := range t.open {
		trace.EndTime = now
		t.backend.Write(trace)
	}

	t.open = nil

	t.backend.Flush()
}
