// Package queue implements the bounded, never-reordered channel request
// queues (RQ, WQ) that sit in front of a DRAM channel's scheduler.
package queue

import "github.com/rener2104/dramctrl/internal/signal"

// Queue is a fixed-capacity array of optional ChannelRequest slots.
// Insertion fills the first free slot; slots are never reordered, so
// admission order is preserved for deterministic hazard checks and
// scheduling tie-breaks.
type Queue struct {
	slots []*signal.ChannelRequest
}

// New creates a Queue with the given number of slots.
func New(capacity int) *Queue {
	return &Queue{slots: make([]*signal.ChannelRequest, capacity)}
}

// Capacity returns the number of slots in the queue.
func (q *Queue) Capacity() int {
	return len(q.slots)
}

// Occupancy returns the number of live entries currently in the queue.
func (q *Queue) Occupancy() int {
	n := 0
	for _, s := range q.slots {
		if s != nil {
			n++
		}
	}

	return n
}

// Full reports whether every slot is occupied.
func (q *Queue) Full() bool {
	return q.Occupancy() == len(q.slots)
}

// Insert places entry into the first free slot and returns its index.
// It reports false if the queue is full.
func (q *Queue) Insert(entry *signal.ChannelRequest) (int, bool) {
	for i, s := range q.slots {
		if s == nil {
			q.slots[i] = entry
			return i, true
		}
	}

	return -1, false
}

// At returns the entry at slot i, or nil if the slot is empty.
func (q *Queue) At(i int) *signal.ChannelRequest {
	return q.slots[i]
}

// Release frees slot i.
func (q *Queue) Release(i int) {
	q.slots[i] = nil
}

// Each calls fn for every live slot, in admission order, passing the
// slot index and the entry. fn must not mutate the queue's slot
// occupancy (insert/release); mutating the entry itself is fine.
func (q *Queue) Each(fn func(i int, entry *signal.ChannelRequest)) {
	for i, s := range q.slots {
		if s != nil {
			fn(i, s)
		}
	}
}

// Addresses returns the canonical address of every live entry, in
// admission order. Used by the deadlock dump.
func (q *Queue) Addresses() []uint64 {
	var out []uint64
	q.Each(func(_ int, e *signal.ChannelRequest) {
		out = append(out, e.Address)
	})

	return out
}
