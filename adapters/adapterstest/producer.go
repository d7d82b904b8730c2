package adapterstest

import (
	"context"
	"encoding/binary"
	"math/rand/v2"
	"sync/atomic"

	"github.com/zeebo/blake3"

	"github.com/casper-network/go-highway/adapters"
	"github.com/casper-network/go-highway/common/types"
)

// MessageProducer is a non-cryptographic adapters.MessageProducer fake: it
// hashes the message's scale encoding plus a monotonically increasing
// counter, so repeated calls with identical arguments still produce distinct
// hashes the way a real producer's signature nonce would. Blocks get a random
// MagicBit, so block hashes are not reproducible between runs.
type MessageProducer struct {
	ValidatorID types.ValidatorID
	counter     atomic.Uint64
}

var _ adapters.MessageProducer = (*MessageProducer)(nil)

func NewMessageProducer(id types.ValidatorID) *MessageProducer {
	return &MessageProducer{ValidatorID: id}
}

func (p *MessageProducer) nextHash(body []byte) types.Hash32 {
	h := blake3.New()
	h.Write(body)
	var ctr [8]byte
	binary.BigEndian.PutUint64(ctr[:], p.counter.Add(1))
	h.Write(ctr[:])
	sum := h.Sum(nil)
	var out types.Hash32
	copy(out[:], sum)
	return out
}

func (p *MessageProducer) Block(
	_ context.Context,
	eraID types.Hash32,
	roundID types.Tick,
	mainParent types.Hash32,
	justifications map[types.ValidatorID]map[types.Hash32]struct{},
	_ bool,
) (*types.Block, error) {
	// MagicBit is intentionally independent of isBookingBlock: spec.md §5
	// requires it be drawn from an unseeded PRNG, not derived from protocol
	// state.
	b := &types.Block{
		ValidatorID:       p.ValidatorID,
		RoundID:           roundID,
		KeyBlockHash:      eraID,
		MainParent:        mainParent,
		JustificationsMap: justifications,
		MagicBit:          rand.IntN(2) == 1,
	}
	b.Hash = p.nextHash(types.MustEncode(b))
	return b, nil
}

func (p *MessageProducer) Ballot(
	_ context.Context,
	eraID types.Hash32,
	roundID types.Tick,
	target types.Hash32,
	justifications map[types.ValidatorID]map[types.Hash32]struct{},
) (*types.Ballot, error) {
	b := &types.Ballot{
		ValidatorID:       p.ValidatorID,
		RoundID:           roundID,
		KeyBlockHash:      eraID,
		Target:            target,
		JustificationsMap: justifications,
	}
	b.Hash = p.nextHash(types.MustEncode(b))
	return b, nil
}
