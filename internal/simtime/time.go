// Package simtime defines the picosecond-granularity time type shared by
// every component of the memory controller.
package simtime

// Time is a point in simulated time, measured in picoseconds.
type Time int64

// Infinity marks a ChannelRequest.ReadyTime that has been scheduled and is
// no longer eligible for re-scheduling unless a mode swap un-schedules it.
const Infinity Time = 1<<63 - 1

// Before reports whether t occurs strictly before u.
func (t Time) Before(u Time) bool {
	return t < u
}

// AtOrBefore reports whether t occurs at or before u.
func (t Time) AtOrBefore(u Time) bool {
	return t <= u
}

// Add returns t advanced by d picoseconds.
func (t Time) Add(d Time) Time {
	return t + d
}
