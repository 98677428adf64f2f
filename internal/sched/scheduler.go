// Package sched assigns the next eligible queue entry to its target
// bank, applying open-page row-buffer hit/miss timing.
package sched

import (
	"github.com/rener2104/dramctrl/internal/addrmap"
	"github.com/rener2104/dramctrl/internal/bank"
	"github.com/rener2104/dramctrl/internal/queue"
	"github.com/rener2104/dramctrl/internal/simtime"
)

// Scheduler schedules one channel's queue entries onto its bank array.
type Scheduler struct {
	Mapping *addrmap.AddressMapping
	TRP     simtime.Time
	TRCD    simtime.Time
	TCAS    simtime.Time
}

// Schedule picks the minimum-ready-time entry of q that is present, not
// yet scheduled, and whose target bank is currently idle, breaking ties
// by admission order. If such an entry exists and is ready at now, it is
// assigned to its bank with open-page hit/miss timing and marked
// scheduled. It reports whether it did observable work.
func (s *Scheduler) Schedule(q *queue.Queue, banks *bank.Array, kind bank.QueueKind, now simtime.Time) bool {
	bestSlot := -1
	var bestBankIdx uint64
	var bestReady simtime.Time

	for i := 0; i < q.Capacity(); i++ {
		entry := q.At(i)
		if entry == nil || entry.Scheduled {
			continue
		}

		bankIdx := s.Mapping.BankIndex(entry.Address)
		if banks.At(int(bankIdx)).Valid {
			continue
		}

		if bestSlot == -1 || entry.ReadyTime < bestReady {
			bestSlot = i
			bestBankIdx = bankIdx
			bestReady = entry.ReadyTime
		}
	}

	if bestSlot == -1 {
		return false
	}

	if bestReady > now {
		return false
	}

	entry := q.At(bestSlot)
	row := s.Mapping.Row(entry.Address)
	b := banks.At(int(bestBankIdx))

	hit := b.OpenRow != nil && *b.OpenRow == row

	extra := s.TRP + s.TRCD
	if hit {
		extra = 0
	}

	b.Valid = true
	b.RowBufferHit = hit
	b.OpenRow = &row
	b.ReadyTime = now + s.TCAS + extra
	b.Pkt = bank.PacketRef{Kind: kind, Slot: bestSlot, Valid: true}

	entry.Scheduled = true
	entry.ReadyTime = simtime.Infinity

	return true
}
