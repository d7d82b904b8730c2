// Package config defines HighwayConf, the tunable protocol parameters of one
// era's runtime, in the same Config-struct-with-mapstructure-tags shape as
// hare3.Config in the teacher.
package config

import (
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

// HighwayConf enumerates the protocol parameters every EraRuntime is built
// with. All durations are interpreted in TickUnit once converted to ticks by
// tickclock.TickClock.
type HighwayConf struct {
	// TickUnit is the wall-clock duration of a single tick, e.g. time.Millisecond.
	TickUnit time.Duration `mapstructure:"tick-unit"`
	// GenesisEraStart is the wall-clock instant tick 0 of era 0 begins at.
	GenesisEraStart time.Time `mapstructure:"genesis-era-start"`
	// EraDuration is the fixed wall-clock length of every era.
	EraDuration time.Duration `mapstructure:"era-duration"`
	// BookingDuration is the distance before era-end where the booking block
	// is chosen, e.g. 10 days.
	BookingDuration time.Duration `mapstructure:"booking-duration"`
	// EntropyDuration is the gap between the booking boundary and the key
	// boundary, e.g. 3 hours.
	EntropyDuration time.Duration `mapstructure:"entropy-duration"`
	// PostEraVotingDuration is the length of the post-era voting window that
	// follows an era's switch boundary.
	PostEraVotingDuration time.Duration `mapstructure:"post-era-voting-duration"`
	// OmegaMessageTimeStart/End bound the fractional window [start, end) of a
	// round's length in which an omega ballot is scheduled.
	OmegaMessageTimeStart float64 `mapstructure:"omega-message-time-start"`
	OmegaMessageTimeEnd   float64 `mapstructure:"omega-message-time-end"`
}

// DefaultConfig mirrors the scenario fixtures in spec.md §8: a week-long era,
// a ten day booking lead, a three hour entropy gap.
func DefaultConfig() HighwayConf {
	return HighwayConf{
		TickUnit:              time.Millisecond,
		EraDuration:           7 * 24 * time.Hour,
		BookingDuration:       10 * 24 * time.Hour,
		EntropyDuration:       3 * time.Hour,
		PostEraVotingDuration: 2 * time.Hour,
		OmegaMessageTimeStart: 0.5,
		OmegaMessageTimeEnd:   0.9,
	}
}

// Validate checks internal consistency the way hare3.Config.Validate checks
// its round schedule against zdist.
func (c *HighwayConf) Validate() error {
	if c.TickUnit <= 0 {
		return fmt.Errorf("tick unit must be positive, got %v", c.TickUnit)
	}
	if c.EraDuration <= 0 {
		return fmt.Errorf("era duration must be positive, got %v", c.EraDuration)
	}
	if c.BookingDuration < 0 || c.EntropyDuration < 0 {
		return fmt.Errorf("booking/entropy duration must not be negative")
	}
	// BookingDuration is allowed to exceed EraDuration: spec.md §8 scenario 1's
	// own fixture (bookingDuration=10d, eraDuration=7d) has the booking block
	// for an era chosen during one of the era's predecessors, which is exactly
	// why boundaries.BookingBoundaries searches more than one era back. Only
	// EntropyDuration, the booking-to-key gap within a single boundary pair,
	// must stay inside one era.
	if c.EntropyDuration >= c.EraDuration {
		return fmt.Errorf(
			"entropy duration (%v) must be less than era duration (%v)",
			c.EntropyDuration, c.EraDuration,
		)
	}
	if c.PostEraVotingDuration < 0 {
		return fmt.Errorf("post-era voting duration must not be negative")
	}
	if !(0 < c.OmegaMessageTimeStart && c.OmegaMessageTimeStart < c.OmegaMessageTimeEnd && c.OmegaMessageTimeEnd < 1) {
		return fmt.Errorf(
			"omega message window must satisfy 0 < start (%v) < end (%v) < 1",
			c.OmegaMessageTimeStart, c.OmegaMessageTimeEnd,
		)
	}
	return nil
}

// MarshalLogObject lets zap.Inline(&conf) log HighwayConf, mirroring
// hare3.Config.MarshalLogObject.
func (c *HighwayConf) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddDuration("tick_unit", c.TickUnit)
	enc.AddTime("genesis_era_start", c.GenesisEraStart)
	enc.AddDuration("era_duration", c.EraDuration)
	enc.AddDuration("booking_duration", c.BookingDuration)
	enc.AddDuration("entropy_duration", c.EntropyDuration)
	enc.AddDuration("post_era_voting_duration", c.PostEraVotingDuration)
	enc.AddFloat64("omega_message_time_start", c.OmegaMessageTimeStart)
	enc.AddFloat64("omega_message_time_end", c.OmegaMessageTimeEnd)
	return nil
}
