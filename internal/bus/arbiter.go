// Package bus arbitrates the single shared data bus of a DRAM channel:
// which bank's completed command gets to drive the bus next, completion
// delivery, and the read/write mode-swap turnaround penalty.
package bus

import (
	"github.com/rener2104/dramctrl/internal/bank"
	"github.com/rener2104/dramctrl/internal/queue"
	"github.com/rener2104/dramctrl/internal/signal"
	"github.com/rener2104/dramctrl/internal/simtime"
	"github.com/rener2104/dramctrl/internal/stat"
)

// noActiveRequest marks Arbiter.ActiveRequest when no bank currently
// owns the bus, the Go counterpart of the source's "end iterator"
// sentinel.
const noActiveRequest = -1

// Arbiter owns one channel's shared data bus.
type Arbiter struct {
	ClockPeriod  simtime.Time
	PrefetchSize uint64
	TurnAround   simtime.Time
	TCAS         simtime.Time

	// ActiveRequest is the index of the bank currently bursting data
	// over the bus, or noActiveRequest if the bus is idle.
	ActiveRequest int

	// DBusCycleAvailable is the time at which the bus becomes usable
	// again after a mode-swap turnaround.
	DBusCycleAvailable simtime.Time
}

// NewArbiter creates an idle Arbiter.
func NewArbiter(clockPeriod simtime.Time, prefetchSize uint64, turnAround, tCAS simtime.Time) *Arbiter {
	return &Arbiter{
		ClockPeriod:   clockPeriod,
		PrefetchSize:  prefetchSize,
		TurnAround:    turnAround,
		TCAS:          tCAS,
		ActiveRequest: noActiveRequest,
	}
}

// dbusReturnTime is the time to stream one line at channel width.
func (a *Arbiter) dbusReturnTime() simtime.Time {
	return a.ClockPeriod * simtime.Time(a.PrefetchSize)
}

// PopulateDBus finds the bank with the smallest ready time among valid
// banks and, if the bus is free, promotes it to the active request.
// Otherwise it accumulates congestion statistics. Congestion alone does
// not count as progress: it reports true only when a bank was actually
// promoted.
func (a *Arbiter) PopulateDBus(banks *bank.Array, writeMode bool, now simtime.Time, stats *stat.Stats) bool {
	blockerIdx := -1
	var blockerReady simtime.Time

	banks.Each(func(i int, b *bank.State) {
		if !b.Valid {
			return
		}

		if blockerIdx == -1 || b.ReadyTime < blockerReady {
			blockerIdx = i
			blockerReady = b.ReadyTime
		}
	})

	if blockerIdx == -1 {
		return false
	}

	if blockerReady > now {
		return false
	}

	if a.ActiveRequest == noActiveRequest && a.DBusCycleAvailable <= now {
		a.ActiveRequest = blockerIdx
		banks.At(blockerIdx).ReadyTime = now + a.dbusReturnTime()

		if writeMode {
			if banks.At(blockerIdx).RowBufferHit {
				stats.Sim.WQRowBufferHit++
			} else {
				stats.Sim.WQRowBufferMiss++
			}
		} else {
			if banks.At(blockerIdx).RowBufferHit {
				stats.Sim.RQRowBufferHit++
			} else {
				stats.Sim.RQRowBufferMiss++
			}
		}

		return true
	}

	blockedUntil := a.DBusCycleAvailable
	if a.ActiveRequest != noActiveRequest {
		blockedUntil = banks.At(a.ActiveRequest).ReadyTime
	}

	if blockedUntil > now {
		stats.Sim.DBusCycleCongested += uint64((blockedUntil - now) / a.ClockPeriod)
	}
	stats.Sim.DBusCountCongested++

	return false
}

// FinishDBusRequest completes the active request once its bank's ready
// time has arrived: every sub-packet's responses are pushed to every
// sink, the bank and queue slot are released, and the bus goes idle. It
// returns the completed entry's TaskID (empty if no tracer is attached)
// and reports whether it did observable work.
func (a *Arbiter) FinishDBusRequest(banks *bank.Array, rq, wq *queue.Queue, now simtime.Time) (string, bool) {
	if a.ActiveRequest == noActiveRequest {
		return "", false
	}

	b := banks.At(a.ActiveRequest)
	if b.ReadyTime > now {
		return "", false
	}

	q := rq
	if b.Pkt.Kind == bank.WriteQueue {
		q = wq
	}

	entry := q.At(b.Pkt.Slot)
	for _, pkt := range entry.Packets {
		for _, sink := range pkt.ToReturn {
			sink.Push(signal.Response{
				Address:               pkt.Address,
				VirtualAddress:        pkt.VirtualAddress,
				Data:                  pkt.Data,
				PrefetchMetadata:      pkt.PrefetchMetadata,
				InstructionDependents: pkt.InstructionDependents,
			})
		}
	}

	taskID := entry.TaskID

	q.Release(b.Pkt.Slot)
	b.Valid = false
	a.ActiveRequest = noActiveRequest

	return taskID, true
}

// SwapWriteMode flips writeMode according to WQ/RQ occupancy thresholds
// and, on a flip, un-schedules every non-active valid bank and charges
// the bus a turnaround penalty. It returns the (possibly unchanged)
// write mode.
func (a *Arbiter) SwapWriteMode(
	writeMode bool, wq, rq *queue.Queue, banks *bank.Array, now simtime.Time,
) bool {
	wqOcc := wq.Occupancy()
	rqOcc := rq.Occupancy()
	high := (wq.Capacity() * 7) / 8
	low := (wq.Capacity() * 6) / 8

	flip := false

	if !writeMode {
		if wqOcc >= high || (rqOcc == 0 && wqOcc > 0) {
			flip = true
		}
	} else {
		if wqOcc == 0 || (rqOcc > 0 && wqOcc < low) {
			flip = true
		}
	}

	if !flip {
		return writeMode
	}

	newMode := !writeMode

	banks.Each(func(i int, b *bank.State) {
		if i == a.ActiveRequest || !b.Valid {
			return
		}

		b.Valid = false

		q := rq
		if b.Pkt.Kind == bank.WriteQueue {
			q = wq
		}

		if entry := q.At(b.Pkt.Slot); entry != nil {
			entry.Scheduled = false
			entry.ReadyTime = now
		}

		if b.ReadyTime-now < a.TCAS {
			b.OpenRow = nil
		}
	})

	activeReady := now
	if a.ActiveRequest != noActiveRequest {
		activeReady = banks.At(a.ActiveRequest).ReadyTime
	}

	a.DBusCycleAvailable = activeReady + a.TurnAround

	return newMode
}
