// Package hazard implements write-write dedup, read-from-write
// forwarding, and read-read coalescing across a channel's RQ and WQ.
package hazard

import (
	"github.com/rener2104/dramctrl/internal/addrmap"
	"github.com/rener2104/dramctrl/internal/queue"
	"github.com/rener2104/dramctrl/internal/signal"
)

// CheckWriteCollision scans WQ for entries that have not yet been
// forward-checked. Any such entry that collides with another still-live
// WQ entry is dropped (no merge). Because entries are dropped as the
// scan proceeds, among a run of colliding duplicates only the
// last-admitted survives — by the time its turn comes, every earlier
// duplicate has already been dropped and it finds no remaining
// collision. Entries that survive are marked forward-checked. It
// reports whether it did observable work.
func CheckWriteCollision(wq *queue.Queue, mapping *addrmap.AddressMapping) bool {
	progress := false

	for i := 0; i < wq.Capacity(); i++ {
		entry := wq.At(i)
		if entry == nil || entry.ForwardChecked {
			continue
		}

		if collidesWithOther(wq, i, entry, mapping) {
			wq.Release(i)
		} else {
			entry.ForwardChecked = true
		}

		progress = true
	}

	return progress
}

func collidesWithOther(
	q *queue.Queue, skip int, entry *signal.ChannelRequest, mapping *addrmap.AddressMapping,
) bool {
	for j := 0; j < q.Capacity(); j++ {
		if j == skip {
			continue
		}

		other := q.At(j)
		if other == nil {
			continue
		}

		if mapping.IsCollision(entry.Address, other.Address) {
			return true
		}
	}

	return false
}

// CheckReadCollision scans RQ for entries that have not yet been
// forward-checked. In admission order, each such entry is: forwarded
// from a colliding WQ entry's data, coalesced backwards into an earlier
// colliding RQ entry, coalesced forwards into a later colliding RQ
// entry, or else marked forward-checked. It returns the TaskIDs of
// entries completed by write-forwarding (the only path here that
// delivers a real response rather than merging into another pending
// entry) and reports whether it did observable work.
func CheckReadCollision(rq, wq *queue.Queue, mapping *addrmap.AddressMapping) ([]string, bool) {
	progress := false
	var completed []string

	for i := 0; i < rq.Capacity(); i++ {
		entry := rq.At(i)
		if entry == nil || entry.ForwardChecked {
			continue
		}

		if taskID, ok := forwardFromWrite(rq, i, entry, wq, mapping); ok {
			completed = append(completed, taskID)
			progress = true
			continue
		}

		if coalesce(rq, i, entry, mapping, backward) {
			progress = true
			continue
		}

		if coalesce(rq, i, entry, mapping, forward) {
			progress = true
			continue
		}

		entry.ForwardChecked = true
		progress = true
	}

	return completed, progress
}

func forwardFromWrite(
	rq *queue.Queue, idx int, entry *signal.ChannelRequest, wq *queue.Queue, mapping *addrmap.AddressMapping,
) (string, bool) {
	var writer *signal.ChannelRequest

	wq.Each(func(_ int, w *signal.ChannelRequest) {
		if writer == nil && mapping.IsCollision(entry.Address, w.Address) {
			writer = w
		}
	})

	if writer == nil {
		return "", false
	}

	for _, pkt := range entry.Packets {
		for _, sink := range pkt.ToReturn {
			sink.Push(signal.Response{
				Address:               pkt.Address,
				VirtualAddress:        pkt.VirtualAddress,
				Data:                  writer.Packets[0].Data,
				PrefetchMetadata:      pkt.PrefetchMetadata,
				InstructionDependents: pkt.InstructionDependents,
			})
		}
	}

	taskID := entry.TaskID

	rq.Release(idx)

	return taskID, true
}

type direction int

const (
	backward direction = iota
	forward
)

// coalesce looks for an earlier (backward) or later (forward) RQ entry
// colliding with entry. On a match it folds every sub-packet of the
// CURRENT entry into the match (per the chosen (a) resolution of the
// source's iteration-variable ambiguity, see DESIGN.md), then drops the
// current entry.
func coalesce(
	rq *queue.Queue, idx int, entry *signal.ChannelRequest, mapping *addrmap.AddressMapping, dir direction,
) bool {
	var target *signal.ChannelRequest

	scan := func(j int) bool {
		if dir == backward {
			return j < idx
		}

		return j > idx
	}

	for j := 0; j < rq.Capacity(); j++ {
		if !scan(j) {
			continue
		}

		other := rq.At(j)
		if other == nil {
			continue
		}

		if mapping.IsCollision(entry.Address, other.Address) {
			target = other
			break
		}
	}

	if target == nil {
		return false
	}

	for _, pkt := range entry.Packets {
		if !target.MergeInto(pkt) {
			target.AppendPacket(pkt)
		}
	}

	rq.Release(idx)

	return true
}
