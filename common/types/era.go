package types

import (
	"sort"

	"go.uber.org/zap/zapcore"
	"golang.org/x/exp/maps"
)

// Era is the immutable record of one era: the validator set it bonds, the
// tick range it covers, and the chain coordinates (key/booking block, leader
// seed) that a child era is derived from. Its identity is KeyBlockHash.
type Era struct {
	StartTick          Tick
	EndTick            Tick
	KeyBlockHash       Hash32
	BookingBlockHash   Hash32
	LeaderSeed         []byte
	ParentKeyBlockHash Hash32
	Bonds              map[ValidatorID]uint64
}

// TotalStake sums Bonds. Zero bonds is a degenerate, but legal, empty era.
func (e *Era) TotalStake() uint64 {
	var total uint64
	for _, stake := range e.Bonds {
		total += stake
	}
	return total
}

// IsBonded reports whether id holds a non-zero stake in this era.
func (e *Era) IsBonded(id ValidatorID) bool {
	stake, ok := e.Bonds[id]
	return ok && stake > 0
}

// SortedValidators returns every validator ID in Bonds, including any with a
// zero stake, in the canonical order every node must agree on: ascending
// ValidatorID. This is the iteration
// order LeaderSequencer uses to build its cumulative-stake table, and the
// order EraRuntime uses wherever it must walk Bonds deterministically.
func (e *Era) SortedValidators() []ValidatorID {
	ids := maps.Keys(e.Bonds)
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	return ids
}

// MarshalLogObject lets zap.Inline(era) log an Era without formatting all of
// Bonds, mirroring hare3.Config.MarshalLogObject.
func (e *Era) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt64("start_tick", int64(e.StartTick))
	enc.AddInt64("end_tick", int64(e.EndTick))
	enc.AddString("key_block", e.KeyBlockHash.String())
	enc.AddString("booking_block", e.BookingBlockHash.String())
	enc.AddString("parent_key_block", e.ParentKeyBlockHash.String())
	enc.AddInt("bonded_validators", len(e.Bonds))
	enc.AddUint64("total_stake", e.TotalStake())
	return nil
}
