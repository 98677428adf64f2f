// Package dram implements a trace-driven memory controller model.
//
// A Controller owns one or more Channels, each with its own read/write
// queues, bank timing state, and shared data bus. The outer simulator
// drives the controller one tick at a time via Operate; everything else
// — queue admission, hazard resolution, scheduling, bus arbitration —
// happens inside that call.
package dram
