// Package leaderseq implements stake-weighted, deterministic leader
// selection per round, and the child-era leader-seed derivation. It is
// grounded on hare4/eligibility.Oracle's shape: an lru cache of a per-era
// derived table, fixed-point fractional arithmetic instead of floats, and a
// functional-options constructor.
package leaderseq

import (
	"encoding/binary"
	"errors"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spacemeshos/fixed"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"

	"github.com/casper-network/go-highway/common/types"
)

// domain-separation prefixes, so the same hash function can never collide
// between "select a round leader" and "derive a child era's seed" inputs.
const (
	domainLeader byte = 0x01
	domainSeed   byte = 0x02
)

var errEmptyBonds = errors.New("leaderseq: era has no bonded validators")

const activesCacheSize = 4

type cumulativeStakeTable struct {
	ids   []types.ValidatorID
	upper []uint64 // upper[i] = cumulative stake through ids[0..i]
	total uint64
}

func buildStakeTable(era *types.Era) *cumulativeStakeTable {
	ids := era.SortedValidators()
	table := &cumulativeStakeTable{ids: ids, upper: make([]uint64, len(ids))}
	var running uint64
	for i, id := range ids {
		running += era.Bonds[id]
		table.upper[i] = running
	}
	table.total = running
	return table
}

// validatorAt returns the validator whose cumulative-stake interval contains
// target, where 0 <= target < total.
func (t *cumulativeStakeTable) validatorAt(target uint64) types.ValidatorID {
	i := sort.Search(len(t.upper), func(i int) bool { return t.upper[i] > target })
	if i == len(t.ids) {
		i = len(t.ids) - 1
	}
	return t.ids[i]
}

// Opt customizes a Sequencer at construction, mirroring hare4/eligibility.Opt.
type Opt func(*Sequencer)

// WithLogger sets the sequencer's logger.
func WithLogger(log *zap.Logger) Opt {
	return func(s *Sequencer) { s.log = log }
}

// Sequencer computes the deterministic, stake-weighted leader of a round
// within a fixed era, caching the era's cumulative-stake table the way
// hare4/eligibility.Oracle caches cachedActiveSet per epoch.
type Sequencer struct {
	cache *lru.Cache[types.Hash32, *cumulativeStakeTable]
	log   *zap.Logger
}

// New builds a Sequencer.
func New(opts ...Opt) *Sequencer {
	cache, err := lru.New[types.Hash32, *cumulativeStakeTable](activesCacheSize)
	if err != nil {
		panic("leaderseq: failed to create stake-table cache: " + err.Error())
	}
	s := &Sequencer{cache: cache, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sequencer) tableFor(era *types.Era) (*cumulativeStakeTable, error) {
	if table, ok := s.cache.Get(era.KeyBlockHash); ok {
		return table, nil
	}
	table := buildStakeTable(era)
	if table.total == 0 {
		return nil, errEmptyBonds
	}
	s.cache.Add(era.KeyBlockHash, table)
	return table, nil
}

// LeaderFunction returns a deterministic Tick -> ValidatorID function closed
// over era, per spec.md §4.2: hash (leaderSeed || roundId) into a uniform
// 64-bit value, map into [0, totalStake), return the validator whose
// cumulative-stake interval contains it.
func (s *Sequencer) LeaderFunction(era *types.Era) (func(roundID types.Tick) (types.ValidatorID, error), error) {
	table, err := s.tableFor(era)
	if err != nil {
		return nil, err
	}
	seed := era.LeaderSeed
	return func(roundID types.Tick) (types.ValidatorID, error) {
		h := leaderHash(seed, roundID)
		target := h % table.total
		return table.validatorAt(target), nil
	}, nil
}

// Leader is a convenience one-shot form of LeaderFunction for a single round.
func (s *Sequencer) Leader(era *types.Era, roundID types.Tick) (types.ValidatorID, error) {
	fn, err := s.LeaderFunction(era)
	if err != nil {
		return types.ValidatorID{}, err
	}
	return fn(roundID)
}

// StakeFraction reports id's share of era's total stake as a fixed-point
// fraction, the way hare4/eligibility computes p := fixed.DivUint64(...).
// It exists for logging/metrics, not for leader selection itself (which
// stays in exact integer arithmetic to avoid any rounding divergence between
// nodes).
func (s *Sequencer) StakeFraction(era *types.Era, id types.ValidatorID) (fixed.Fixed, error) {
	table, err := s.tableFor(era)
	if err != nil {
		return fixed.Fixed{}, err
	}
	stake, ok := era.Bonds[id]
	if !ok {
		return fixed.Fixed{}, nil
	}
	return fixed.DivUint64(stake, table.total), nil
}

func leaderHash(seed []byte, roundID types.Tick) uint64 {
	h := blake3.New()
	h.Write([]byte{domainLeader})
	h.Write(seed)
	var roundBytes [8]byte
	binary.BigEndian.PutUint64(roundBytes[:], uint64(roundID))
	h.Write(roundBytes[:])
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}

// DeriveSeed computes a child era's leader seed from its parent's seed and
// the sequence of magic bits collected from the booking block through the
// key block inclusive (spec.md §4.2). The hash is domain-separated from
// leaderHash so the same (seed, bytes) can never be confused for a round hash.
func DeriveSeed(parentSeed []byte, magicBits []bool) []byte {
	h := blake3.New()
	h.Write([]byte{domainSeed})
	h.Write(parentSeed)
	packed := make([]byte, len(magicBits))
	for i, bit := range magicBits {
		if bit {
			packed[i] = 1
		}
	}
	h.Write(packed)
	return h.Sum(nil)
}
