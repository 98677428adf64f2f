// Package bank models the per-(rank, bank) timing state of a DRAM
// channel: open-row tracking, busy-until times, and the back-reference
// to whichever queue entry is currently scheduled onto the bank.
package bank

import "github.com/rener2104/dramctrl/internal/simtime"

// QueueKind names which channel queue a PacketRef points into.
type QueueKind int

// The two queues a bank's scheduled request can live in.
const (
	ReadQueue QueueKind = iota
	WriteQueue
)

// PacketRef is an index-based back-reference to a scheduled queue entry,
// per the (queue_kind, slot_index) pair design: an index, not an owning
// handle, so bank and queue release can happen in either order without
// either side dereferencing the other.
type PacketRef struct {
	Kind  QueueKind
	Slot  int
	Valid bool
}

// State is one (rank, bank) pair's timing state.
type State struct {
	// Valid reports whether a scheduled request currently targets this
	// bank.
	Valid bool

	// RowBufferHit is the result of the most recently scheduled access.
	RowBufferHit bool

	// OpenRow is the row currently sensed by the bank's row buffer. A
	// nil value means no row is sensed.
	OpenRow *uint64

	// ReadyTime is the simulated time at which the bank's current
	// command completes.
	ReadyTime simtime.Time

	// Pkt is the back-reference to the scheduled queue entry.
	Pkt PacketRef
}

// Array is the flattened (rank, bank) state table for one channel.
type Array struct {
	banks []State
}

// NewArray creates an Array with n bank slots, all initially idle.
func NewArray(n int) *Array {
	return &Array{banks: make([]State, n)}
}

// Len returns the number of banks in the array.
func (a *Array) Len() int {
	return len(a.banks)
}

// At returns a pointer to the bank state at index i, so callers can
// mutate it in place.
func (a *Array) At(i int) *State {
	return &a.banks[i]
}

// Each calls fn for every bank, passing its index.
func (a *Array) Each(fn func(i int, b *State)) {
	for i := range a.banks {
		fn(i, &a.banks[i])
	}
}
