// Package stat holds the per-channel counters the controller
// accumulates, plus the begin/end-of-phase snapshot mechanics.
package stat

// Counters is one snapshot of a channel's statistics.
type Counters struct {
	RQRowBufferHit  uint64
	RQRowBufferMiss uint64
	WQRowBufferHit  uint64
	WQRowBufferMiss uint64
	WQFull          uint64

	// DBusCycleCongested accumulates, in clock periods, the time the
	// data bus spent blocked behind a not-yet-ready bank.
	DBusCycleCongested uint64
	DBusCountCongested uint64
}

// Stats tracks a channel's running (Sim) counters and the snapshot
// (ROI) frozen at the last EndPhase.
type Stats struct {
	Name string
	Sim  Counters
	ROI  Counters
}

// BeginPhase resets the running counters, snapshotting nothing. It
// mirrors the tick driver's begin_phase lifecycle hook.
func (s *Stats) BeginPhase() {
	s.Sim = Counters{}
}

// EndPhase freezes the running counters into ROI.
func (s *Stats) EndPhase() {
	s.ROI = s.Sim
}
