// Package adapterstest provides deterministic in-memory fakes for the five
// capability interfaces EraRuntime depends on, per spec.md §9 Design Notes
// ("Mocks → in-memory fakes... tests instantiate deterministic in-memory
// implementations").
package adapterstest

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/casper-network/go-highway/adapters"
	"github.com/casper-network/go-highway/common/types"
)

// DAG is an in-memory adapters.DAG backed by a map and an explicit
// main-chain marker set, populated directly by tests.
type DAG struct {
	mu        sync.RWMutex
	messages  map[types.Hash32]types.Message
	mainChain map[types.Hash32]bool
	bonds     map[types.Hash32]map[types.ValidatorID]uint64
}

var _ adapters.DAG = (*DAG)(nil)

// NewDAG returns an empty DAG fake.
func NewDAG() *DAG {
	return &DAG{
		messages:  make(map[types.Hash32]types.Message),
		mainChain: make(map[types.Hash32]bool),
		bonds:     make(map[types.Hash32]map[types.ValidatorID]uint64),
	}
}

// SetBonds records the bonded validator set effective at blockHash, for
// BondsAt to serve later.
func (d *DAG) SetBonds(blockHash types.Hash32, bonds map[types.ValidatorID]uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bonds[blockHash] = bonds
}

func (d *DAG) BondsAt(_ context.Context, blockHash types.Hash32) (map[types.ValidatorID]uint64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.bonds[blockHash], nil
}

// Add records msg, and marks it main-chain if onMainChain is true.
func (d *DAG) Add(msg types.Message, onMainChain bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages[msg.MessageHash()] = msg
	if onMainChain {
		d.mainChain[msg.MessageHash()] = true
	}
}

func (d *DAG) Get(_ context.Context, hash types.Hash32) (types.Message, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	m, ok := d.messages[hash]
	return m, ok, nil
}

func (d *DAG) MessagesByValidatorInRound(_ context.Context, id types.ValidatorID, roundID types.Tick) ([]types.Message, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []types.Message
	for _, m := range d.messages {
		if m.Validator() == id && m.Round() == roundID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (d *DAG) MainChainAncestors(_ context.Context, block *types.Block) ([]*types.Block, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var chain []*types.Block
	cur := block
	for cur != nil {
		chain = append(chain, cur)
		if cur.MainParent.IsZero() {
			break
		}
		parentMsg, ok := d.messages[cur.MainParent]
		if !ok {
			break
		}
		parentBlock, ok := parentMsg.(*types.Block)
		if !ok {
			break
		}
		cur = parentBlock
	}
	// reverse to oldest-first
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

func (d *DAG) IsMainChain(_ context.Context, hash types.Hash32) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.mainChain[hash], nil
}

// EraStorage is an in-memory adapters.EraStorage.
type EraStorage struct {
	mu    sync.Mutex
	eras  map[types.Hash32]*types.Era
}

var _ adapters.EraStorage = (*EraStorage)(nil)

func NewEraStorage() *EraStorage {
	return &EraStorage{eras: make(map[types.Hash32]*types.Era)}
}

func (s *EraStorage) AddEra(_ context.Context, era *types.Era) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.eras[era.KeyBlockHash]; ok {
		return nil
	}
	s.eras[era.KeyBlockHash] = era
	return nil
}

func (s *EraStorage) ContainsEra(_ context.Context, keyBlockHash types.Hash32) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.eras[keyBlockHash]
	return ok, nil
}

// Get returns the stored era for keyBlockHash, for test assertions.
func (s *EraStorage) Get(keyBlockHash types.Hash32) (*types.Era, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.eras[keyBlockHash]
	return e, ok
}

// ForkChoice is a scriptable adapters.ForkChoice: tests set MainParent and
// Justifications directly.
type ForkChoice struct {
	MainParent     types.Hash32
	Justifications map[types.ValidatorID]map[types.Hash32]struct{}
}

var _ adapters.ForkChoice = (*ForkChoice)(nil)

func (f *ForkChoice) FromKeyBlock(_ context.Context, _ types.Hash32) (types.Hash32, map[types.ValidatorID]map[types.Hash32]struct{}, error) {
	return f.MainParent, f.Justifications, nil
}

// IsSynced is an atomically-settable adapters.IsSynced.
type IsSynced struct {
	synced atomic.Bool
}

var _ adapters.IsSynced = (*IsSynced)(nil)

// NewIsSynced returns an IsSynced fake whose initial state is the given
// synced value.
func NewIsSynced(synced bool) *IsSynced {
	s := &IsSynced{}
	s.synced.Store(synced)
	return s
}

func (s *IsSynced) Get(_ context.Context) bool {
	return s.synced.Load()
}

// Set changes the synced state, safe to call concurrently with Get per
// spec.md §5's "IsSynced ... must be safe to read concurrently with writes
// by the syncing subsystem".
func (s *IsSynced) Set(synced bool) {
	s.synced.Store(synced)
}
