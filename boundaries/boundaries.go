// Package boundaries computes the booking-boundary, key-boundary and
// switch-boundary predicates over a parent/child message pair, per spec.md
// §4.4. These are pure functions of the config and two timestamps; they
// never read the DAG.
package boundaries

import (
	"sort"

	"github.com/casper-network/go-highway/common/types"
	"github.com/casper-network/go-highway/config"
)

// BookingBoundaries computes, for an era starting at startTick and ending at
// endTick, the set of booking boundaries inside the era:
// {endTick - bookingDuration - k*eraDuration : k ranges over every integer
// that lands the candidate inside the era}, reversed so the earliest
// boundary comes first.
//
// k is not bounded to k >= 0: spec.md's own worked example (§8 scenario 1)
// uses bookingDuration=10d against eraDuration=7d, so the booking boundary
// relevant to an era is the one counting down from a *later* era's end, not
// its own (era0 = [Dec-9, Dec-16) contains the boundary for era1's booking
// block, at Dec-16 + 7d - 10d = Dec-13). The search below walks k outward
// from 0 in both directions and stops as soon as the candidate leaves the
// era on that side; in practice at most one boundary exists per era.
func BookingBoundaries(conf *config.HighwayConf, startTick, endTick types.Tick) []types.Tick {
	bookingDurationTicks := types.Tick(conf.BookingDuration.Nanoseconds() / conf.TickUnit.Nanoseconds())
	eraDurationTicks := types.Tick(conf.EraDuration.Nanoseconds() / conf.TickUnit.Nanoseconds())
	if eraDurationTicks <= 0 {
		return nil
	}

	var boundaries []types.Tick
	for k := types.Tick(0); ; k++ {
		b := endTick - bookingDurationTicks - k*eraDurationTicks
		if b >= startTick && b <= endTick {
			boundaries = append(boundaries, b)
		}
		if b < startTick {
			break
		}
	}
	for k := types.Tick(1); ; k++ {
		b := endTick - bookingDurationTicks + k*eraDurationTicks
		if b > endTick {
			break
		}
		if b >= startTick {
			boundaries = append(boundaries, b)
		}
	}
	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i] < boundaries[j] })
	return boundaries
}

// KeyBoundaries shifts every booking boundary forward by entropyDuration.
func KeyBoundaries(conf *config.HighwayConf, startTick, endTick types.Tick) []types.Tick {
	entropyTicks := types.Tick(conf.EntropyDuration.Nanoseconds() / conf.TickUnit.Nanoseconds())
	booking := BookingBoundaries(conf, startTick, endTick)
	key := make([]types.Tick, len(booking))
	for i, b := range booking {
		key[i] = b + entropyTicks
	}
	return key
}

// crossesAny reports whether some boundary b in boundaries satisfies
// parent < b <= child.
func crossesAny(boundaries []types.Tick, parent, child types.Tick) bool {
	for _, b := range boundaries {
		if parent < b && b <= child {
			return true
		}
	}
	return false
}

// IsBookingBoundary reports whether the half-open interval (parent, child]
// crosses a booking boundary of the era spanning [startTick, endTick).
func IsBookingBoundary(conf *config.HighwayConf, startTick, endTick, parent, child types.Tick) bool {
	return crossesAny(BookingBoundaries(conf, startTick, endTick), parent, child)
}

// IsKeyBoundary reports whether the half-open interval (parent, child]
// crosses a key boundary of the era spanning [startTick, endTick).
func IsKeyBoundary(conf *config.HighwayConf, startTick, endTick, parent, child types.Tick) bool {
	return crossesAny(KeyBoundaries(conf, startTick, endTick), parent, child)
}

// IsSwitchBoundary reports whether the message pair (parent, child) crosses
// the era's end: parent < endTick <= child. This is deliberately asymmetric
// at the two endpoints per spec.md §9: a block timestamped exactly at
// endTick is the switch block only if its parent is strictly before it; a
// block whose parent is exactly at endTick is never itself a switch block
// under this predicate (that child would need a timestamp > endTick, which
// this call already satisfies via the caller's own tick, not endTick itself).
func IsSwitchBoundary(endTick, parent, child types.Tick) bool {
	return parent < endTick && endTick <= child
}
