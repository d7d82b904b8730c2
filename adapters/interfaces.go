// Package adapters declares the external capabilities EraRuntime consumes:
// the DAG, EraStorage, ForkChoice, MessageProducer and IsSynced. All
// five are out of scope per spec.md §1 ("the gossip/relay layer, the DAG and
// era storage engines, the fork-choice oracle, the cryptographic message
// producer... the node's RPC surface" are external collaborators) — this
// package only declares the narrow contract EraRuntime requires of them, the
// way mesh/interface.go declares conservativeState/vmState/layerClock as the
// narrow contracts mesh requires of its own collaborators.
package adapters

import (
	"context"

	"github.com/casper-network/go-highway/common/types"
)

//go:generate mockgen -typed -package=adapterstest -destination=./adapterstest/mocks.go -source=./interfaces.go

// DAG is the read view over the message graph the runtime was built on top
// of. Lookups are expected to be total for any hash the runtime has
// previously seen as justified (spec.md §6).
type DAG interface {
	// Get returns the message with the given hash, or ok=false if unknown.
	Get(ctx context.Context, hash types.Hash32) (msg types.Message, ok bool, err error)
	// MessagesByValidatorInRound returns every message (block or ballot) the
	// given validator is known to have produced in the given round, in no
	// particular order. Used by the double-lambda and lambda-like-ballot
	// checks in validate and classify.
	MessagesByValidatorInRound(ctx context.Context, id types.ValidatorID, roundID types.Tick) ([]types.Message, error)
	// MainChainAncestors returns block's main-chain ancestors from the era's
	// start block up to and including block itself, oldest first. Used to
	// locate the booking and key blocks on a switch block observation.
	MainChainAncestors(ctx context.Context, block *types.Block) ([]*types.Block, error)
	// IsMainChain reports whether hash names a block on the main chain (as
	// opposed to an orphaned fork block). Off-fork switch observations must
	// be ignored per spec.md §4.7.
	IsMainChain(ctx context.Context, hash types.Hash32) (bool, error)
	// BondsAt returns the bonded validator set effective at the given block,
	// the "bondsAt(K)" lookup spec.md §4.7 requires when constructing a child
	// era from its key block. This is the one point where EraRuntime reaches
	// into the activation/bonding subsystem spec.md §1 scopes out; the DAG
	// adapter is the narrowest existing seam for it.
	BondsAt(ctx context.Context, blockHash types.Hash32) (map[types.ValidatorID]uint64, error)
}

// EraStorage is the durable record of which eras have already been created.
// AddEra must be idempotent on Era.KeyBlockHash.
type EraStorage interface {
	AddEra(ctx context.Context, era *types.Era) error
	ContainsEra(ctx context.Context, keyBlockHash types.Hash32) (bool, error)
}

// ForkChoice picks the parent and justifications the runtime should build its
// next message on top of.
type ForkChoice interface {
	FromKeyBlock(ctx context.Context, keyBlockHash types.Hash32) (mainParent types.Hash32, justifications map[types.ValidatorID]map[types.Hash32]struct{}, err error)
}

// MessageProducer signs and hashes the blocks/ballots the runtime decides to
// emit. It is the cryptographic collaborator spec.md §1 scopes out.
type MessageProducer interface {
	Block(
		ctx context.Context,
		eraID types.Hash32,
		roundID types.Tick,
		mainParent types.Hash32,
		justifications map[types.ValidatorID]map[types.Hash32]struct{},
		isBookingBlock bool,
	) (*types.Block, error)
	Ballot(
		ctx context.Context,
		eraID types.Hash32,
		roundID types.Tick,
		target types.Hash32,
		justifications map[types.ValidatorID]map[types.Hash32]struct{},
	) (*types.Ballot, error)
}

// IsSynced is a snapshot-valued capability the runtime polls on every input;
// it must be safe to read concurrently with writes by the syncing subsystem.
type IsSynced interface {
	Get(ctx context.Context) bool
}
