package dram

import (
	"strconv"

	"github.com/rener2104/dramctrl/internal/addrmap"
	"github.com/rener2104/dramctrl/internal/bank"
	"github.com/rener2104/dramctrl/internal/bus"
	"github.com/rener2104/dramctrl/internal/queue"
	"github.com/rener2104/dramctrl/internal/sched"
	"github.com/rener2104/dramctrl/internal/simtime"
	"github.com/rener2104/dramctrl/internal/stat"
)

// Builder assembles a Controller. Every knob has a default matching a
// modest single-channel DDR-class configuration; call the With* methods
// to override what a particular trace run needs.
type Builder struct {
	name string

	clockPeriod     simtime.Time
	tRP, tRCD, tCAS simtime.Time
	dbusTurnaround  simtime.Time

	channelWidthBytes uint64
	prefetchSize      uint64
	numChannels       uint64
	numRanks          uint64
	numBanks          uint64
	numRows           uint64
	numColumns        uint64

	rqSize int
	wqSize int
}

// MakeBuilder creates a Builder with default configuration.
func MakeBuilder() Builder {
	return Builder{
		clockPeriod:       1000,
		tRP:               12500,
		tRCD:              12500,
		tCAS:              12500,
		dbusTurnaround:    7500,
		channelWidthBytes: 8,
		prefetchSize:      8,
		numChannels:       1,
		numRanks:          1,
		numBanks:          8,
		numRows:           32768,
		numColumns:        1024,
		rqSize:            64,
		wqSize:            64,
	}
}

// WithClockPeriod sets the controller's clock period, in picoseconds.
func (b Builder) WithClockPeriod(t simtime.Time) Builder {
	b.clockPeriod = t
	return b
}

// WithTRP sets the row precharge latency, in picoseconds.
func (b Builder) WithTRP(t simtime.Time) Builder {
	b.tRP = t
	return b
}

// WithTRCD sets the row-to-column delay, in picoseconds.
func (b Builder) WithTRCD(t simtime.Time) Builder {
	b.tRCD = t
	return b
}

// WithTCAS sets the column access strobe latency, in picoseconds.
func (b Builder) WithTCAS(t simtime.Time) Builder {
	b.tCAS = t
	return b
}

// WithDBUSTurnaround sets the bus turnaround penalty charged on a
// read/write mode flip, in picoseconds.
func (b Builder) WithDBUSTurnaround(t simtime.Time) Builder {
	b.dbusTurnaround = t
	return b
}

// WithChannelWidthBytes sets the per-channel transfer width, in bytes.
func (b Builder) WithChannelWidthBytes(n uint64) Builder {
	b.channelWidthBytes = n
	return b
}

// WithPrefetchSize sets the number of bursts composing one logical
// transfer. Must be a power of two.
func (b Builder) WithPrefetchSize(n uint64) Builder {
	b.prefetchSize = n
	return b
}

// WithNumChannels sets the channel count. Must be a power of two.
func (b Builder) WithNumChannels(n uint64) Builder {
	b.numChannels = n
	return b
}

// WithNumRanks sets the rank count. Must be a power of two.
func (b Builder) WithNumRanks(n uint64) Builder {
	b.numRanks = n
	return b
}

// WithNumBanks sets the bank count. Must be a power of two.
func (b Builder) WithNumBanks(n uint64) Builder {
	b.numBanks = n
	return b
}

// WithNumRows sets the row count. Must be a power of two.
func (b Builder) WithNumRows(n uint64) Builder {
	b.numRows = n
	return b
}

// WithNumColumns sets the column count. Must be a power of two.
func (b Builder) WithNumColumns(n uint64) Builder {
	b.numColumns = n
	return b
}

// WithRQSize sets the read queue capacity.
func (b Builder) WithRQSize(n int) Builder {
	b.rqSize = n
	return b
}

// WithWQSize sets the write queue capacity.
func (b Builder) WithWQSize(n int) Builder {
	b.wqSize = n
	return b
}

// Build assembles the Controller. It panics if the configuration
// violates a construction-time precondition: zero queue capacity, zero
// channel count, or any topology/prefetch violation addrmap.NewSlicer
// itself enforces.
func (b Builder) Build(name string) *Controller {
	if b.rqSize == 0 {
		panic("dram: rq size cannot be 0")
	}

	if b.wqSize == 0 {
		panic("dram: wq size cannot be 0")
	}

	if b.numChannels == 0 {
		panic("dram: channel count cannot be 0")
	}

	slicer := addrmap.NewSlicer(
		b.channelWidthBytes, b.prefetchSize,
		b.numChannels, b.numBanks, b.numColumns, b.numRanks, b.numRows,
	)
	mapping := addrmap.NewMapping(slicer)

	c := &Controller{
		name:    name,
		mapping: mapping,
	}

	for i := uint64(0); i < b.numChannels; i++ {
		ch := &Channel{
			name:    channelName(name, i),
			mapping: mapping,
			rq:      queue.New(b.rqSize),
			wq:      queue.New(b.wqSize),
			banks:   bank.NewArray(int(b.numRanks * b.numBanks)),
			scheduler: &sched.Scheduler{
				Mapping: mapping,
				TRP:     b.tRP,
				TRCD:    b.tRCD,
				TCAS:    b.tCAS,
			},
			arbiter: bus.NewArbiter(b.clockPeriod, b.prefetchSize, b.dbusTurnaround, b.tCAS),
			stats:   &stat.Stats{Name: channelName(name, i)},
		}
		c.channels = append(c.channels, ch)
	}

	return c
}

func channelName(name string, i uint64) string {
	if len(name) == 0 {
		return ""
	}

	return name + ".Channel" + strconv.FormatUint(i, 10)
}
