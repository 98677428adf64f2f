package signal

import (
	"sort"

	"github.com/rener2104/dramctrl/internal/simtime"
)

// ChannelRequest is one RQ or WQ queue slot: one or more coalesced
// upstream Packets whose addresses collide on the same DRAM line.
type ChannelRequest struct {
	// TaskID identifies this entry to a hooking.TracerBackend across its
	// admission-to-completion lifecycle. Empty when no tracer is
	// attached to the owning channel.
	TaskID string

	// Address is the canonical address of the entry: the address of the
	// first Packet admitted.
	Address uint64

	// Packets is the ordered list of upstream requests folded into this
	// entry by read coalescing. Write dedup never adds to it: a duplicate
	// write is dropped, not merged.
	Packets []Packet

	// ReadyTime is the simulated time at which this entry becomes
	// eligible for scheduling. It is bumped to simtime.Infinity once the
	// entry has been scheduled onto a bank.
	ReadyTime simtime.Time

	// Scheduled reports whether the Scheduler has assigned this entry to
	// a bank.
	Scheduled bool

	// ForwardChecked reports whether this entry has already passed
	// through hazard resolution this admission. It is cleared only on
	// admission, never re-checked against newer entries.
	ForwardChecked bool
}

// NewChannelRequest builds a fresh queue entry for pkt admitted at now.
func NewChannelRequest(pkt Packet, now simtime.Time) *ChannelRequest {
	return &ChannelRequest{
		Address:   pkt.Address,
		Packets:   []Packet{pkt},
		ReadyTime: now,
	}
}

// AppendPacket folds pkt into this entry, as read coalescing does when no
// sub-packet at the exact same address already exists.
func (c *ChannelRequest) AppendPacket(pkt Packet) {
	c.Packets = append(c.Packets, pkt)
}

// MergeInto merges src into the sub-packet of c found at the same
// address as src: InstructionDependents via sorted-set union, ToReturn
// by plain append (sinks have no ordering to preserve). It reports
// whether a matching sub-packet was found.
func (c *ChannelRequest) MergeInto(src Packet) bool {
	for i := range c.Packets {
		if c.Packets[i].Address != src.Address {
			continue
		}

		c.Packets[i].InstructionDependents = unionSortedUint64(
			c.Packets[i].InstructionDependents, src.InstructionDependents)
		c.Packets[i].ToReturn = append(c.Packets[i].ToReturn, src.ToReturn...)

		return true
	}

	return false
}

// unionSortedUint64 returns the sorted union of two already-sorted id
// sets, matching the source's sorted-set union merge semantics.
func unionSortedUint64(a, b []uint64) []uint64 {
	set := make(map[uint64]struct{}, len(a)+len(b))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		set[v] = struct{}{}
	}

	out := make([]uint64, 0, len(set))
	for v := range set {
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}
