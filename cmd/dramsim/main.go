// Command dramsim replays a CSV memory-access trace through the DRAM
// controller and reports the resulting statistics.
package main

func main() {
	Execute()
}
