package dram

import "github.com/rener2104/dramctrl/internal/stat"

// Stats is one channel's statistics: running (Sim) counters and the
// snapshot (ROI) frozen at the last EndPhase.
type Stats = stat.Stats
