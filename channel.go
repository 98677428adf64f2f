package dram

import (
	"fmt"

	"github.com/rener2104/dramctrl/hooking"
	"github.com/rener2104/dramctrl/internal/addrmap"
	"github.com/rener2104/dramctrl/internal/bank"
	"github.com/rener2104/dramctrl/internal/bus"
	"github.com/rener2104/dramctrl/internal/hazard"
	"github.com/rener2104/dramctrl/internal/queue"
	"github.com/rener2104/dramctrl/internal/sched"
	"github.com/rener2104/dramctrl/internal/signal"
	"github.com/rener2104/dramctrl/internal/simtime"
	"github.com/rener2104/dramctrl/internal/stat"
)

// Channel is one DRAM channel: its RQ/WQ queues, bank array, scheduler,
// and shared data bus.
type Channel struct {
	hooking.HookableBase

	name string

	mapping   *addrmap.AddressMapping
	rq, wq    *queue.Queue
	banks     *bank.Array
	scheduler *sched.Scheduler
	arbiter   *bus.Arbiter
	stats     *stat.Stats

	writeMode bool
	warmup    bool

	clock   simtime.Time
	taskSeq uint64
}

// Now returns the simulated time as of the channel's most recent
// Operate call. It satisfies hooking.TimeTeller, letting a hook
// registered on this channel (e.g. hooking.DBTracer) stamp task events
// without the channel depending on any particular tracer.
func (c *Channel) Now() simtime.Time {
	return c.clock
}

func (c *Channel) nextTaskID() uint64 {
	c.taskSeq++
	return c.taskSeq
}

// startTask stamps entry with a fresh TaskID and, if any hook is
// registered, reports its admission.
func (c *Channel) startTask(entry *signal.ChannelRequest, kind string) {
	if c.NumHooks() == 0 {
		return
	}

	entry.TaskID = fmt.Sprintf("%s-%d", c.name, c.nextTaskID())

	c.NotifyAdmitted(hooking.RequestAdmitted{
		ID:      entry.TaskID,
		Kind:    kind,
		Address: fmt.Sprintf("0x%x", entry.Address),
		Channel: c.name,
	})
}

// endTask reports the completion of the task identified by taskID, if
// any hook is registered. Called with an empty taskID (no tracer
// attached, or the entry was merged away rather than completed) is a
// no-op.
func (c *Channel) endTask(taskID string) {
	if taskID == "" || c.NumHooks() == 0 {
		return
	}

	c.NotifyCompleted(hooking.RequestCompleted{ID: taskID})
}

// Name returns the channel's name.
func (c *Channel) Name() string {
	return c.name
}

// Stats returns the channel's running and snapshotted statistics.
func (c *Channel) Stats() *stat.Stats {
	return c.stats
}

// SetWarmup sets the channel's warmup passthrough flag, snapshotted by
// the controller at the start of each phase.
func (c *Channel) SetWarmup(warmup bool) {
	c.warmup = warmup
}

// AddRQ admits entry into this channel's read queue. It reports whether
// a free slot was found.
func (c *Channel) AddRQ(entry *signal.ChannelRequest) bool {
	_, ok := c.rq.Insert(entry)
	if ok {
		c.startTask(entry, "read")
	}

	return ok
}

// AddWQ admits entry into this channel's write queue. It reports whether
// a free slot was found; on failure it increments WQ_FULL.
func (c *Channel) AddWQ(entry *signal.ChannelRequest) bool {
	_, ok := c.wq.Insert(entry)
	if !ok {
		c.stats.Sim.WQFull++
		return ok
	}

	c.startTask(entry, "write")

	return ok
}

// Operate runs one tick of this channel's pipeline: hazard resolution,
// completion, mode swap, bus arbitration, and scheduling — or, during
// warmup, the degenerate timing-agnostic passthrough. It reports whether
// it did observable work.
func (c *Channel) Operate(now simtime.Time) bool {
	c.clock = now

	if c.warmup {
		return c.warmupOperate()
	}

	progress := false

	progress = hazard.CheckWriteCollision(c.wq, c.mapping) || progress

	forwarded, readProgress := hazard.CheckReadCollision(c.rq, c.wq, c.mapping)
	progress = readProgress || progress
	for _, taskID := range forwarded {
		c.endTask(taskID)
	}

	finishedID, finishProgress := c.arbiter.FinishDBusRequest(c.banks, c.rq, c.wq, now)
	c.endTask(finishedID)
	progress = finishProgress || progress

	newMode := c.arbiter.SwapWriteMode(c.writeMode, c.wq, c.rq, c.banks, now)
	if newMode != c.writeMode {
		c.writeMode = newMode
		progress = true
	}

	progress = c.arbiter.PopulateDBus(c.banks, c.writeMode, now, c.stats) || progress

	q, kind := c.rq, bank.ReadQueue
	if c.writeMode {
		q, kind = c.wq, bank.WriteQueue
	}

	progress = c.scheduler.Schedule(q, c.banks, kind, now) || progress

	return progress
}

// warmupOperate short-circuits all DRAM timing: every valid RQ entry
// immediately produces a response and is released; every WQ entry is
// silently released.
func (c *Channel) warmupOperate() bool {
	progress := false

	for i := 0; i < c.rq.Capacity(); i++ {
		entry := c.rq.At(i)
		if entry == nil {
			continue
		}

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

		c.endTask(entry.TaskID)
		c.rq.Release(i)
		progress = true
	}

	for i := 0; i < c.wq.Capacity(); i++ {
		entry := c.wq.At(i)
		if entry == nil {
			continue
		}

		c.endTask(entry.TaskID)
		c.wq.Release(i)
		progress = true
	}

	return progress
}

// RQAddresses and WQAddresses expose the live contents of this
// channel's queues for the deadlock dump.
func (c *Channel) RQAddresses() []uint64 { return c.rq.Addresses() }
func (c *Channel) WQAddresses() []uint64 { return c.wq.Addresses() }
