package dram

import (
	"fmt"

	"github.com/rener2104/dramctrl/internal/addrmap"
	"github.com/rener2104/dramctrl/internal/signal"
	"github.com/rener2104/dramctrl/internal/simtime"
)

// Controller fans in requests from every upstream channel, fans them
// out to per-channel schedulers, and is driven one tick at a time by an
// external simulator loop.
type Controller struct {
	name string

	mapping  *addrmap.AddressMapping
	channels []*Channel

	upstream []UpstreamChannel
}

// Name returns the controller's name.
func (c *Controller) Name() string {
	return c.name
}

// Channels returns the controller's channels, indexed as the address
// mapping's CHANNEL field selects them.
func (c *Controller) Channels() []*Channel {
	return c.channels
}

// Initialize logs the controller's total addressable capacity and
// channel count.
func (c *Controller) Initialize() {
	fmt.Printf("%s: initialized with %d channel(s), %d bytes total capacity\n",
		c.name, len(c.channels), c.mapping.Slicer().TotalSizeBytes())
}

// RegisterUpstream attaches an upstream channel whose queues this
// controller drains every tick.
func (c *Controller) RegisterUpstream(u UpstreamChannel) {
	c.upstream = append(c.upstream, u)
}

// BeginPhase snapshots the simulator-wide warmup flag onto every
// channel and resets running statistics.
func (c *Controller) BeginPhase(warmup bool) {
	for _, ch := range c.channels {
		ch.SetWarmup(warmup)
		ch.Stats().BeginPhase()
	}
}

// EndPhase freezes every channel's running statistics into its ROI
// snapshot.
func (c *Controller) EndPhase() {
	for _, ch := range c.channels {
		ch.Stats().EndPhase()
	}
}

// Operate runs one simulated tick: it drains upstream queues into the
// appropriate channel's RQ/WQ, then ticks every channel. It returns a
// progress counter, nonzero if any stage of any channel did observable
// work.
func (c *Controller) Operate(now simtime.Time) int64 {
	var progress int64

	progress += c.initiateRequests(now)

	for _, ch := range c.channels {
		if ch.Operate(now) {
			progress++
		}
	}

	return progress
}

// initiateRequests drains each upstream channel's RQ, PQ, then WQ,
// admitting each entry's leading prefix that the destination channel had
// room for. The first admission failure in a queue stops drainage of
// that queue for this tick (back-pressure): the upstream retains the
// rest and retries next tick.
func (c *Controller) initiateRequests(now simtime.Time) int64 {
	var progress int64

	for _, u := range c.upstream {
		n := c.admitPrefix(u.ReadQueue(), u, now, false)
		u.DequeueRead(n)
		progress += int64(n)

		n = c.admitPrefix(u.PrefetchQueue(), u, now, false)
		u.DequeuePrefetch(n)
		progress += int64(n)

		n = c.admitPrefix(u.WriteQueue(), u, now, true)
		u.DequeueWrite(n)
		progress += int64(n)
	}

	return progress
}

func (c *Controller) admitPrefix(reqs []signal.Request, u UpstreamChannel, now simtime.Time, isWrite bool) int {
	n := 0

	for _, req := range reqs {
		var ok bool
		if isWrite {
			ok = c.addWQ(req, u, now)
		} else {
			ok = c.addRQ(req, u, now)
		}

		if !ok {
			break
		}

		n++
	}

	return n
}

func (c *Controller) channelFor(address uint64) *Channel {
	return c.channels[c.mapping.Channel(address)]
}

func packetFrom(req signal.Request, u UpstreamChannel) signal.Packet {
	pkt := signal.Packet{
		Address:               req.PhysicalAddress,
		VirtualAddress:        req.VirtualAddress,
		Data:                  req.Data,
		PrefetchMetadata:      req.PrefetchMetadata,
		InstructionDependents: req.InstructionDependents,
	}

	if req.ResponseRequested {
		pkt.ToReturn = []signal.ResponseSink{u.Returned()}
	}

	return pkt
}

// addRQ routes req to its channel's read queue. It reports whether a
// free slot was found.
func (c *Controller) addRQ(req signal.Request, u UpstreamChannel, now simtime.Time) bool {
	ch := c.channelFor(req.PhysicalAddress)
	entry := signal.NewChannelRequest(packetFrom(req, u), now)

	return ch.AddRQ(entry)
}

// addWQ routes req to its channel's write queue. It reports whether a
// free slot was found; on failure the channel's WQ_FULL counter is
// incremented.
func (c *Controller) addWQ(req signal.Request, u UpstreamChannel, now simtime.Time) bool {
	ch := c.channelFor(req.PhysicalAddress)
	entry := signal.NewChannelRequest(packetFrom(req, u), now)

	return ch.AddWQ(entry)
}
