package dram

import "github.com/rener2104/dramctrl/internal/signal"

// UpstreamChannel is the contract this controller needs from whatever
// sits above it (typically a last-level cache): a mutable triple of
// read, prefetch, and write queues, plus a sink to which completed
// responses are appended. Only this narrow shape matters; the upstream's
// own internal representation is none of the controller's concern.
type UpstreamChannel interface {
	// ReadQueue, PrefetchQueue, and WriteQueue return the upstream's
	// pending requests, in admission order.
	ReadQueue() []signal.Request
	PrefetchQueue() []signal.Request
	WriteQueue() []signal.Request

	// DequeueRead, DequeuePrefetch, and DequeueWrite drop the first n
	// entries of the corresponding queue, after the controller has
	// admitted them.
	DequeueRead(n int)
	DequeuePrefetch(n int)
	DequeueWrite(n int)

	// Returned is the sink that admitted requests asking for a response
	// are registered against.
	Returned() signal.ResponseSink
}
