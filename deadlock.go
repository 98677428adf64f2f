package dram

import "fmt"

// PrintDeadlock dumps every channel's RQ and WQ addresses, for the
// outer driver's deadlock diagnostics.
func (c *Controller) PrintDeadlock() {
	for _, ch := range c.channels {
		fmt.Printf("%s RQ: %v\n", ch.Name(), ch.RQAddresses())
		fmt.Printf("%s WQ: %v\n", ch.Name(), ch.WQAddresses())
	}
}
