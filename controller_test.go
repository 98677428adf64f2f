package dram

import (
	"github.com/rener2104/dramctrl/internal/signal"
	"github.com/rener2104/dramctrl/internal/simtime"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

// fakeSink records every Response pushed to it, for scenario assertions.
type fakeSink struct {
	responses []signal.Response
}

func (s *fakeSink) Push(r signal.Response) {
	s.responses = append(s.responses, r)
}

// fakeUpstream is a minimal UpstreamChannel whose RQ/PQ/WQ are filled by
// the test directly, rather than by a real cache hierarchy.
type fakeUpstream struct {
	rq, pq, wq []signal.Request
	sink       fakeSink
}

func (u *fakeUpstream) ReadQueue() []signal.Request     { return u.rq }
func (u *fakeUpstream) PrefetchQueue() []signal.Request { return u.pq }
func (u *fakeUpstream) WriteQueue() []signal.Request    { return u.wq }
func (u *fakeUpstream) DequeueRead(n int)               { u.rq = u.rq[n:] }
func (u *fakeUpstream) DequeuePrefetch(n int)           { u.pq = u.pq[n:] }
func (u *fakeUpstream) DequeueWrite(n int)              { u.wq = u.wq[n:] }
func (u *fakeUpstream) Returned() signal.ResponseSink   { return &u.sink }

func (u *fakeUpstream) admitRead(addr uint64) {
	u.rq = append(u.rq, signal.RequestBuilder{}.
		WithPhysicalAddress(addr).
		WithResponseRequested(true).
		Build())
}

func (u *fakeUpstream) admitWrite(addr, data uint64) {
	u.wq = append(u.wq, signal.RequestBuilder{}.
		WithPhysicalAddress(addr).
		WithData(data).
		WithResponseRequested(true).
		Build())
}

// scenarioController builds the single-channel, single-bank topology
// the end-to-end scenarios are specified against.
func scenarioController() (*Controller, *fakeUpstream) {
	ctrl := MakeBuilder().
		WithClockPeriod(1000).
		WithTRP(12500).
		WithTRCD(12500).
		WithTCAS(12500).
		WithDBUSTurnaround(7500).
		WithChannelWidthBytes(8).
		WithPrefetchSize(8).
		WithNumChannels(1).
		WithNumRanks(1).
		WithNumBanks(1).
		WithRQSize(8).
		WithWQSize(8).
		Build("Scenario")

	u := &fakeUpstream{}
	ctrl.RegisterUpstream(u)
	ctrl.BeginPhase(false)

	return ctrl, u
}

var _ = Describe("Controller upstream draining", func() {
	var (
		mockCtrl *gomock.Controller
		upstream *MockUpstreamChannel
		sink     *MockResponseSink
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		upstream = NewMockUpstreamChannel(mockCtrl)
		sink = NewMockResponseSink(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("drains exactly the admitted prefix of each queue and registers the response sink", func() {
		ctrl := MakeBuilder().WithNumBanks(1).WithRQSize(8).WithWQSize(8).Build("Mocked")
		ctrl.RegisterUpstream(upstream)
		ctrl.BeginPhase(false)

		req := signal.RequestBuilder{}.
			WithPhysicalAddress(0x9000).
			WithResponseRequested(true).
			Build()

		upstream.EXPECT().ReadQueue().Return([]signal.Request{req})
		upstream.EXPECT().PrefetchQueue().Return(nil)
		upstream.EXPECT().WriteQueue().Return(nil)
		upstream.EXPECT().Returned().Return(sink)
		upstream.EXPECT().DequeueRead(1)
		upstream.EXPECT().DequeuePrefetch(0)
		upstream.EXPECT().DequeueWrite(0)

		ctrl.Operate(0)
	})
})

var _ = Describe("Controller end-to-end scenarios", func() {
	It("resolves a single read miss with the full tRP+tRCD+tCAS+burst latency", func() {
		ctrl, u := scenarioController()
		u.admitRead(0x1000)

		ctrl.Operate(0)
		ch := ctrl.channels[0]
		Expect(ch.banks.At(0).ReadyTime).To(Equal(simtime.Time(37500)))

		ctrl.Operate(37500)
		Expect(ch.banks.At(0).ReadyTime).To(Equal(simtime.Time(45500)))

		ctrl.Operate(45500)
		Expect(u.sink.responses).To(HaveLen(1))
		Expect(u.sink.responses[0].Address).To(Equal(uint64(0x1000)))

		ctrl.EndPhase()
		Expect(ch.stats.ROI.RQRowBufferMiss).To(Equal(uint64(1)))
	})

	It("serves a same-row second read as a row-buffer hit", func() {
		ctrl, u := scenarioController()
		u.admitRead(0x1000)
		ctrl.Operate(0)

		u.admitRead(0x1040)
		ctrl.Operate(1)

		ch := ctrl.channels[0]
		ctrl.Operate(37500)
		ctrl.Operate(45500)

		// The first response is delivered, and the bank going idle in
		// that same tick lets the scheduler immediately pick up the
		// second (colliding-row) entry as a row-buffer hit.
		Expect(u.sink.responses).To(HaveLen(1))
		Expect(ch.banks.At(0).ReadyTime).To(Equal(simtime.Time(58000)))
		Expect(ch.banks.At(0).RowBufferHit).To(BeTrue())

		ctrl.Operate(58000)
		Expect(ch.banks.At(0).ReadyTime).To(Equal(simtime.Time(66000)))

		ctrl.Operate(66000)
		Expect(u.sink.responses).To(HaveLen(2))

		ctrl.EndPhase()
		Expect(ch.stats.ROI.RQRowBufferHit).To(Equal(uint64(1)))
	})

	It("forwards write data to a colliding read instead of scheduling the read", func() {
		ctrl, u := scenarioController()
		u.admitWrite(0x2000, 0xDEAD)
		ctrl.Operate(0)

		u.admitRead(0x2000)
		ctrl.Operate(1)

		ch := ctrl.channels[0]
		Expect(u.sink.responses).To(HaveLen(1))
		Expect(u.sink.responses[0].Data).To(Equal(uint64(0xDEAD)))
		// The read was forwarded and dropped, never reaching the
		// scheduler: RQ is empty even though the bank may already be
		// busy with the write itself.
		Expect(ch.rq.Occupancy()).To(Equal(0))
	})

	It("coalesces identical-address reads into one transaction with every sink returned", func() {
		ctrl, _ := scenarioController()
		sinkA, sinkB, sinkC := &fakeSink{}, &fakeSink{}, &fakeSink{}

		for _, s := range []*fakeSink{sinkA, sinkB, sinkC} {
			req := signal.RequestBuilder{}.
				WithPhysicalAddress(0x3000).
				WithResponseRequested(true).
				Build()
			ch := ctrl.channelFor(req.PhysicalAddress)
			entry := signal.NewChannelRequest(signal.Packet{
				Address:  req.PhysicalAddress,
				ToReturn: []signal.ResponseSink{s},
			}, 0)
			ch.AddRQ(entry)
		}

		ch := ctrl.channels[0]
		hazardProgress := false
		for i := 0; i < 3; i++ {
			if ch.Operate(0) {
				hazardProgress = true
			}
		}
		Expect(hazardProgress).To(BeTrue())

		live := 0
		ch.rq.Each(func(i int, e *signal.ChannelRequest) {
			if e != nil {
				live++
				Expect(e.Packets[0].ToReturn).To(HaveLen(3))
			}
		})
		Expect(live).To(Equal(1))
	})

	It("flips write_mode once WQ reaches 7/8 capacity, charging turnaround and unscheduling other banks", func() {
		ctrl := MakeBuilder().
			WithClockPeriod(1000).
			WithTRP(12500).
			WithTRCD(12500).
			WithTCAS(12500).
			WithDBUSTurnaround(7500).
			WithChannelWidthBytes(8).
			WithPrefetchSize(8).
			WithNumChannels(1).
			WithNumRanks(1).
			WithNumBanks(2).
			WithRQSize(8).
			WithWQSize(8).
			Build("ModeSwap")

		u := &fakeUpstream{}
		ctrl.RegisterUpstream(u)
		ctrl.BeginPhase(false)

		// 0x1040 selects bank 1 under this topology's bit layout.
		u.admitRead(0x1040)
		ctrl.Operate(0)

		ch := ctrl.channels[0]
		Expect(ch.banks.At(1).Valid).To(BeTrue())
		Expect(ch.banks.At(1).ReadyTime).To(Equal(simtime.Time(37500)))

		// 7 non-colliding writes, all selecting bank 0, fill WQ to the
		// 7/8 high-water mark while the read above is still idle on RQ.
		for i := uint64(1); i <= 7; i++ {
			u.admitWrite(0x1000*i, i)
		}
		ctrl.Operate(1)

		Expect(ch.writeMode).To(BeTrue())
		Expect(ch.arbiter.DBusCycleAvailable).To(Equal(simtime.Time(1 + 7500)))

		// Bank 1 held the read, which was never the active bus request,
		// so the flip un-schedules it.
		Expect(ch.banks.At(1).Valid).To(BeFalse())

		live := 0
		ch.rq.Each(func(_ int, e *signal.ChannelRequest) {
			if e != nil {
				live++
				Expect(e.Scheduled).To(BeFalse())
			}
		})
		Expect(live).To(Equal(1))
	})

	It("passes requests straight through during warmup without mutating bank state", func() {
		ctrl, u := scenarioController()
		ctrl.BeginPhase(true)

		u.admitRead(0x4000)
		ctrl.Operate(0)

		Expect(u.sink.responses).To(HaveLen(1))
		Expect(u.sink.responses[0].Address).To(Equal(uint64(0x4000)))
		Expect(ctrl.channels[0].banks.At(0).Valid).To(BeFalse())
	})
})
