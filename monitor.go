package dram

import "github.com/rener2104/dramctrl/internal/monitor"

// monitorController adapts Controller to monitor.Controller. It exists
// because Go does not consider []*Channel assignable to []monitor.Channel
// even though *Channel satisfies monitor.Channel.
type monitorController struct {
	c *Controller
}

func (m monitorController) Name() string { return m.c.Name() }

func (m monitorController) Channels() []monitor.Channel {
	chans := make([]monitor.Channel, len(m.c.channels))
	for i, ch := range m.c.channels {
		chans[i] = monitorChannel{ch}
	}

	return chans
}

type monitorChannel struct {
	ch *Channel
}

func (m monitorChannel) Name() string          { return m.ch.Name() }
func (m monitorChannel) Stats() any            { return m.ch.Stats() }
func (m monitorChannel) RQAddresses() []uint64 { return m.ch.RQAddresses() }
func (m monitorChannel) WQAddresses() []uint64 { return m.ch.WQAddresses() }

// NewMonitor creates an HTTP introspection server for c.
func NewMonitor(c *Controller) *monitor.Monitor {
	return monitor.NewMonitor(monitorController{c})
}
