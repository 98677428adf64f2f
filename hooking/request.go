package hooking

import "github.com/rener2104/dramctrl/internal/simtime"

// RequestTrace is the completed record of one request's lifecycle, from
// admission to completion, handed to a TracerBackend.
type RequestTrace struct {
	ID        string       `json:"id"`
	Kind      string       `json:"kind"`
	Address   string       `json:"address"`
	Channel   string       `json:"channel"`
	AdmitTime simtime.Time `json:"admit_time"`
	EndTime   simtime.Time `json:"end_time"`
}

// A TimeTeller can tell the current simulated time. This interface is
// recreated here, rather than imported, to keep hooking free of any
// dependency on the controller's own clock.
type TimeTeller interface {
	Now() simtime.Time
}
