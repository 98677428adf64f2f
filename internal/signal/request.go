// Package signal defines the request, response, and in-flight queue
// entry records that flow through the memory controller.
package signal

// ResponseSink receives completed Responses. The upstream cache
// hierarchy implements this to learn when its requests have returned
// from DRAM.
type ResponseSink interface {
	Push(r Response)
}

// Request is a single upstream memory access, as admitted into the
// controller via AddRQ/AddWQ.
type Request struct {
	PhysicalAddress      uint64
	VirtualAddress       uint64
	Data                 uint64
	PrefetchMetadata     uint32
	InstructionDependents []uint64
	ASID                 [2]int
	ResponseRequested    bool
	Sink                 ResponseSink
}

// Response is the completed counterpart of a Request, delivered to every
// sink that asked for one.
type Response struct {
	Address               uint64
	VirtualAddress        uint64
	Data                  uint64
	PrefetchMetadata      uint32
	InstructionDependents []uint64
}

// Packet is one upstream request's contribution to a ChannelRequest. A
// ChannelRequest may hold many Packets once read coalescing has merged
// several same-line requests into one queue slot.
type Packet struct {
	Address               uint64
	VirtualAddress        uint64
	Data                  uint64
	PrefetchMetadata      uint32
	InstructionDependents []uint64
	ToReturn              []ResponseSink
}

// RequestBuilder assembles a Request with the teacher corpus's fluent
// With* configuration idiom.
type RequestBuilder struct {
	req Request
}

// WithPhysicalAddress sets the physical address of the request to build.
func (b RequestBuilder) WithPhysicalAddress(a uint64) RequestBuilder {
	b.req.PhysicalAddress = a
	return b
}

// WithVirtualAddress sets the virtual address of the request to build.
func (b RequestBuilder) WithVirtualAddress(a uint64) RequestBuilder {
	b.req.VirtualAddress = a
	return b
}

// WithData sets the data payload of the request to build.
func (b RequestBuilder) WithData(d uint64) RequestBuilder {
	b.req.Data = d
	return b
}

// WithPrefetchMetadata sets the prefetch metadata of the request to build.
func (b RequestBuilder) WithPrefetchMetadata(pf uint32) RequestBuilder {
	b.req.PrefetchMetadata = pf
	return b
}

// WithInstructionDependent appends an instruction id that depends on the
// request to build.
func (b RequestBuilder) WithInstructionDependent(id uint64) RequestBuilder {
	b.req.InstructionDependents = append(b.req.InstructionDependents, id)
	return b
}

// WithASID sets the pair of address-space ids of the request to build.
func (b RequestBuilder) WithASID(a, c int) RequestBuilder {
	b.req.ASID = [2]int{a, c}
	return b
}

// WithResponseRequested marks the request to build as wanting a response.
func (b RequestBuilder) WithResponseRequested(want bool) RequestBuilder {
	b.req.ResponseRequested = want
	return b
}

// WithSink sets the response sink of the request to build.
func (b RequestBuilder) WithSink(sink ResponseSink) RequestBuilder {
	b.req.Sink = sink
	return b
}

// Build returns the assembled Request.
func (b RequestBuilder) Build() Request {
	return b.req
}
