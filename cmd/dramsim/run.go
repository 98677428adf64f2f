package main

import (
	"fmt"
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/rener2104/dramctrl/hooking"
	"github.com/rener2104/dramctrl/internal/simtime"
	"github.com/rener2104/dramctrl/internal/statsdb"

	dram "github.com/rener2104/dramctrl"
)

var (
	flagWarmupTicks uint64
	flagMaxTicks    uint64
	flagMonitor     bool
	flagMonitorPort int
	flagOpenBrowser bool

	flagClockPeriod uint64
	flagRQSize      int
	flagWQSize      int

	flagTraceDB string
)

var runCmd = &cobra.Command{
	Use:   "run <trace-file>",
	Short: "Replay a CSV memory-access trace through the DRAM controller.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrace,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Uint64Var(&flagWarmupTicks, "warmup-ticks", 0,
		"number of leading ticks run in timing-agnostic warmup mode")
	runCmd.Flags().Uint64Var(&flagMaxTicks, "max-ticks", 10_000_000,
		"upper bound on simulated ticks before giving up and dumping the deadlock state")
	runCmd.Flags().BoolVar(&flagMonitor, "monitor", false,
		"start the HTTP introspection server while the trace replays")
	runCmd.Flags().IntVar(&flagMonitorPort, "monitor-port", 0,
		"port for the introspection server (0 picks a random free port)")
	runCmd.Flags().BoolVar(&flagOpenBrowser, "open", false,
		"open the introspection server's /stats endpoint in a browser once the run starts")
	runCmd.Flags().Uint64Var(&flagClockPeriod, "clock-period-ps", 1000,
		"controller clock period, in picoseconds")
	runCmd.Flags().IntVar(&flagRQSize, "rq-size", 64, "read queue depth per channel")
	runCmd.Flags().IntVar(&flagWQSize, "wq-size", 64, "write queue depth per channel")
	runCmd.Flags().StringVar(&flagTraceDB, "trace-db", "",
		"SQLite file basename to persist per-request lifecycles and per-phase stats to (empty disables tracing)")
}

func runTrace(_ *cobra.Command, args []string) error {
	trace, err := loadTrace(args[0])
	if err != nil {
		return err
	}

	ctrl := dram.MakeBuilder().
		WithClockPeriod(simtime.Time(flagClockPeriod)).
		WithRQSize(flagRQSize).
		WithWQSize(flagWQSize).
		Build("dramsim")

	ctrl.RegisterUpstream(trace)
	ctrl.Initialize()

	if flagMonitor {
		addr := dram.NewMonitor(ctrl).WithPortNumber(flagMonitorPort).StartServer()

		if flagOpenBrowser {
			if err := browser.OpenURL("http://" + addr + "/stats"); err != nil {
				fmt.Fprintf(os.Stderr, "dramsim: failed to open browser: %v\n", err)
			}
		}
	}

	var writer *statsdb.Writer

	if flagTraceDB != "" {
		writer = statsdb.NewWriter(flagTraceDB)
		writer.Init()
		defer writer.Close()

		for _, ch := range ctrl.Channels() {
			ch.AcceptHook(hooking.NewDBTracer(ch, writer))
		}
	}

	return simulate(ctrl, trace, writer)
}

func writePhaseStats(ctrl *dram.Controller, writer *statsdb.Writer, phase string) {
	if writer == nil {
		return
	}

	for _, ch := range ctrl.Channels() {
		writer.WritePhaseStats(ch.Name(), phase, ch.Stats().ROI)
	}
}

func simulate(ctrl *dram.Controller, trace *traceUpstream, writer *statsdb.Writer) error {
	ctrl.BeginPhase(flagWarmupTicks > 0)

	now := simtime.Time(0)
	converged := false

	for tick := uint64(0); tick < flagMaxTicks; tick++ {
		if flagWarmupTicks > 0 && tick == flagWarmupTicks {
			ctrl.EndPhase()
			writePhaseStats(ctrl, writer, "warmup")
			ctrl.BeginPhase(false)
		}

		progress := ctrl.Operate(now)
		now = now.Add(1)

		if trace.Done() && progress == 0 {
			idle := true
			for _, ch := range ctrl.Channels() {
				if len(ch.RQAddresses()) > 0 || len(ch.WQAddresses()) > 0 {
					idle = false
				}
			}

			if idle {
				converged = true
				break
			}
		}
	}

	ctrl.EndPhase()
	writePhaseStats(ctrl, writer, "roi")

	if writer != nil {
		writer.Flush()
	}

	for _, ch := range ctrl.Channels() {
		stats := ch.Stats()
		fmt.Printf(
			"%s: roi rq_hit=%d rq_miss=%d wq_hit=%d wq_miss=%d wq_full=%d dbus_congested_cycles=%d\n",
			ch.Name(), stats.ROI.RQRowBufferHit, stats.ROI.RQRowBufferMiss,
			stats.ROI.WQRowBufferHit, stats.ROI.WQRowBufferMiss,
			stats.ROI.WQFull, stats.ROI.DBusCycleCongested,
		)
	}

	if !converged {
		fmt.Fprintln(os.Stderr, "dramsim: hit max-ticks with requests still outstanding")
		ctrl.PrintDeadlock()

		return fmt.Errorf("dramsim: simulation did not converge within %d ticks", flagMaxTicks)
	}

	return nil
}
