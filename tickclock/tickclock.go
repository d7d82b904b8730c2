// Package tickclock converts between wall-clock instants and the integer
// ticks every other highway package operates on, and wraps the wall-clock
// source itself so tests can inject a fake clock the way hare3 tests inject
// a clockwork.FakeClock into hare3.Hare.
package tickclock

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/casper-network/go-highway/common/types"
	"github.com/casper-network/go-highway/config"
)

// TickClock converts between wall-clock Instants and Ticks under a fixed
// HighwayConf, and exposes the wall-clock "now" as a tick.
type TickClock struct {
	conf  *config.HighwayConf
	clock clockwork.Clock
}

// New builds a TickClock over conf using clock as the wall-clock source.
func New(conf *config.HighwayConf, clock clockwork.Clock) *TickClock {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TickClock{conf: conf, clock: clock}
}

// Now returns the current wall-clock instant converted to a Tick.
func (c *TickClock) Now() types.Tick {
	return c.ToTicks(c.clock.Now())
}

// ToTicks converts a wall-clock instant to a Tick relative to GenesisEraStart.
func (c *TickClock) ToTicks(instant time.Time) types.Tick {
	d := instant.Sub(c.conf.GenesisEraStart)
	return types.Tick(d.Nanoseconds() / c.conf.TickUnit.Nanoseconds())
}

// ToInstant converts a Tick back to a wall-clock instant.
func (c *TickClock) ToInstant(t types.Tick) time.Time {
	return c.conf.GenesisEraStart.Add(time.Duration(int64(t)) * c.conf.TickUnit)
}

// RoundLength returns 2^exp ticks, the length of a round at exponent exp.
func RoundLength(exp uint) types.Tick {
	return types.Tick(1) << exp
}

// NextRound returns the smallest tick on the lattice base + k*roundLen that is
// strictly greater than after.
func NextRound(base types.Tick, exp uint, after types.Tick) types.Tick {
	roundLen := RoundLength(exp)
	if after < base {
		return base
	}
	elapsed := after - base
	k := elapsed/roundLen + 1
	return base + k*roundLen
}

// CurrentRound returns the round whose lattice slot contains tick t: the
// largest base + k*roundLen that is <= t.
func CurrentRound(base types.Tick, exp uint, t types.Tick) types.Tick {
	if t <= base {
		return base
	}
	roundLen := RoundLength(exp)
	k := (t - base) / roundLen
	return base + k*roundLen
}

// OnLattice reports whether tick satisfies (tick-base) mod roundLen == 0.
func OnLattice(base types.Tick, exp uint, tick types.Tick) bool {
	roundLen := RoundLength(exp)
	return (tick-base)%roundLen == 0
}
