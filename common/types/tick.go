package types

import "fmt"

// Tick is a signed integer time coordinate in the unit configured by
// HighwayConf.TickUnit (typically milliseconds) since HighwayConf.GenesisEraStart.
// All runtime arithmetic is integer tick arithmetic; wall-clock instants only
// appear at the TickClock boundary.
type Tick int64

func (t Tick) String() string {
	return fmt.Sprintf("tick(%d)", int64(t))
}

// Add returns t+d.
func (t Tick) Add(d Tick) Tick {
	return t + d
}

// Sub returns t-d.
func (t Tick) Sub(d Tick) Tick {
	return t - d
}
