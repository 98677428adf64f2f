// Package monitor exposes a read-only HTTP introspection server for a
// running Controller: per-channel statistics, queue contents for
// deadlock diagnosis, host resource usage, and a CPU profile capture
// endpoint. It is a scaled-down dashboard, not a simulation-control
// API.
package monitor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	// Enable profiling.
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// Controller is the subset of dram.Controller's surface the monitor
// needs. It is declared here, rather than imported, so this package
// stays free of any dependency on the root package.
type Controller interface {
	Name() string
	Channels() []Channel
}

// Channel is the subset of dram.Channel's surface the monitor needs.
type Channel interface {
	Name() string
	Stats() any
	RQAddresses() []uint64
	WQAddresses() []uint64
}

// Monitor serves a controller's statistics and queue state over HTTP.
type Monitor struct {
	controller Controller
	portNumber int
}

// NewMonitor creates a Monitor for controller.
func NewMonitor(controller Controller) *Monitor {
	return &Monitor{controller: controller}
}

// WithPortNumber sets the port the monitor listens on. Ports below
// 1000 are rejected in favor of a random port, to avoid colliding with
// a privileged service.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is not allowed for the monitor, using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// StartServer starts the monitor as a background HTTP server and
// returns the address it bound to.
func (m *Monitor) StartServer() string {
	r := mux.NewRouter()

	r.HandleFunc("/stats", m.listStats)
	r.HandleFunc("/stats/{channel}", m.listChannelStats)
	r.HandleFunc("/deadlock", m.dumpDeadlock)
	r.HandleFunc("/resource", m.listResources)
	r.HandleFunc("/profile", m.collectProfile)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber >= 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	addr := listener.Addr().(*net.TCPAddr)
	fmt.Fprintf(os.Stderr, "Monitoring %s at http://localhost:%d\n", m.controller.Name(), addr.Port)

	go func() {
		err := http.Serve(listener, nil)
		dieOnErr(err)
	}()

	return addr.String()
}

func (m *Monitor) listStats(w http.ResponseWriter, _ *http.Request) {
	stats := make(map[string]any, len(m.controller.Channels()))
	for _, ch := range m.controller.Channels() {
		stats[ch.Name()] = ch.Stats()
	}

	writeJSON(w, stats)
}

func (m *Monitor) listChannelStats(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["channel"]

	ch := m.findChannelOr404(w, name)
	if ch == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(ch.Stats())
	serializer.SetMaxDepth(1)

	dieOnErr(serializer.Serialize(w))
}

func (m *Monitor) findChannelOr404(w http.ResponseWriter, name string) Channel {
	for _, ch := range m.controller.Channels() {
		if ch.Name() == name {
			return ch
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("channel not found"))
	dieOnErr(err)

	return nil
}

type deadlockRsp struct {
	Channel string   `json:"channel"`
	RQ      []uint64 `json:"rq"`
	WQ      []uint64 `json:"wq"`
}

func (m *Monitor) dumpDeadlock(w http.ResponseWriter, _ *http.Request) {
	rsp := make([]deadlockRsp, 0, len(m.controller.Channels()))
	for _, ch := range m.controller.Channels() {
		rsp = append(rsp, deadlockRsp{
			Channel: ch.Name(),
			RQ:      ch.RQAddresses(),
			WQ:      ch.WQAddresses(),
		})
	}

	writeJSON(w, rsp)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memorySize, err := proc.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	b, err := json.Marshal(v)
	dieOnErr(err)

	_, err = w.Write(b)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
