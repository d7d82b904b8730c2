package era

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"

	"github.com/casper-network/go-highway/adapters/adapterstest"
	"github.com/casper-network/go-highway/agenda"
	"github.com/casper-network/go-highway/common/types"
	"github.com/casper-network/go-highway/config"
	"github.com/casper-network/go-highway/leaderseq"
	"github.com/casper-network/go-highway/tickclock"
	"github.com/casper-network/go-highway/validate"
)

func validatorID(b byte) types.ValidatorID {
	var id types.ValidatorID
	id[0] = b
	return id
}

func hash(b byte) types.Hash32 {
	var h types.Hash32
	h[0] = b
	return h
}

func testConf() *config.HighwayConf {
	c := config.DefaultConfig()
	c.GenesisEraStart = time.Now()
	c.EraDuration = 7 * 24 * time.Hour
	c.BookingDuration = 0 // these tests don't exercise boundary/child-era logic; see TestHandleMessage_SwitchBlockCreatesEra* for that
	c.EntropyDuration = 0
	c.TickUnit = time.Second
	return &c
}

func testEra(bonds map[types.ValidatorID]uint64) *types.Era {
	return &types.Era{
		StartTick:    0,
		EndTick:      types.Tick((7 * 24 * time.Hour) / time.Second),
		KeyBlockHash: hash(0xEE),
		LeaderSeed:   []byte("genesis-seed"),
		Bonds:        bonds,
	}
}

// harness bundles one runtime and the fakes behind it, for the local
// validator localID passed to newHarness.
type harness struct {
	runtime  *EraRuntime
	dag      *adapterstest.DAG
	eraStore *adapterstest.EraStorage
	fork     *adapterstest.ForkChoice
	synced   *adapterstest.IsSynced
	producer *adapterstest.MessageProducer
	seq      *leaderseq.Sequencer
	clock    *tickclock.TickClock
	alice    types.ValidatorID
	bob      types.ValidatorID
}

func newHarness(t *testing.T, localID types.ValidatorID, bonds map[types.ValidatorID]uint64) *harness {
	t.Helper()
	return newHarnessWith(t, testConf(), localID, bonds)
}

func newHarnessWith(t *testing.T, conf *config.HighwayConf, localID types.ValidatorID, bonds map[types.ValidatorID]uint64) *harness {
	t.Helper()
	e := testEra(bonds)
	e.EndTick = types.Tick(conf.EraDuration.Nanoseconds() / conf.TickUnit.Nanoseconds())
	dag := adapterstest.NewDAG()
	eraStore := adapterstest.NewEraStorage()
	fork := &adapterstest.ForkChoice{}
	synced := adapterstest.NewIsSynced(true)
	producer := adapterstest.NewMessageProducer(localID)
	seq := leaderseq.New()
	clock := tickclock.New(conf, clockwork.NewFakeClockAt(conf.GenesisEraStart))

	rt := New(conf, e, 15, dag, eraStore, fork, synced, seq, clock,
		WithLocalValidator(localID, producer))

	return &harness{
		runtime:  rt,
		dag:      dag,
		eraStore: eraStore,
		fork:     fork,
		synced:   synced,
		producer: producer,
		seq:      seq,
		clock:    clock,
		alice:    validatorID(0xA1),
		bob:      validatorID(0xB0),
	}
}

// Scenario 2: doppelganger rejection.
func TestValidate_DoppelgangerRejection(t *testing.T) {
	alice := validatorID(0xA1)
	bonds := map[types.ValidatorID]uint64{alice: 100}
	h := newHarness(t, alice, bonds)

	block := &types.Block{Hash: hash(1), ValidatorID: alice, RoundID: 0, KeyBlockHash: h.runtime.Era().KeyBlockHash}

	err := h.runtime.Validate(context.Background(), block)
	require.Error(t, err)
	rej, ok := validate.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, validate.ReasonDoppelganger, rej.Reason)
	assert.Equal(t, "The block is coming from a doppelganger.", err.Error())
}

// Scenario 3: non-leader rejection.
func TestValidate_NonLeaderRejection(t *testing.T) {
	bonds := map[types.ValidatorID]uint64{
		validatorID(0xB0): 100,
		validatorID(0xC0): 100,
	}
	h := newHarness(t, types.ValidatorID{}, bonds)

	leaderFn, err := h.seq.LeaderFunction(h.runtime.Era())
	require.NoError(t, err)
	leader, err := leaderFn(0)
	require.NoError(t, err)

	nonLeader := validatorID(0xB0)
	if leader == nonLeader {
		nonLeader = validatorID(0xC0)
	}

	block := &types.Block{Hash: hash(2), ValidatorID: nonLeader, RoundID: 0, KeyBlockHash: h.runtime.Era().KeyBlockHash}
	err = h.runtime.Validate(context.Background(), block)
	require.Error(t, err)
	rej, ok := validate.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, validate.ReasonNonLeaderBlock, rej.Reason)
}

// Scenario 4: a second lambda block by the leader in the same round is
// rejected as a double lambda.
func TestValidate_DoubleLambdaRejection(t *testing.T) {
	bonds := map[types.ValidatorID]uint64{validatorID(0xB0): 100}
	h := newHarness(t, types.ValidatorID{}, bonds)
	leaderFn, err := h.seq.LeaderFunction(h.runtime.Era())
	require.NoError(t, err)
	leader, err := leaderFn(0)
	require.NoError(t, err)

	first := &types.Block{Hash: hash(10), ValidatorID: leader, RoundID: 0, KeyBlockHash: h.runtime.Era().KeyBlockHash}
	h.dag.Add(first, true)

	second := &types.Block{Hash: hash(11), ValidatorID: leader, RoundID: 0, KeyBlockHash: h.runtime.Era().KeyBlockHash}
	err = h.runtime.Validate(context.Background(), second)
	require.Error(t, err)
	rej, ok := validate.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, validate.ReasonDoubleLambda, rej.Reason)
}

// Scenario 7: replay during initial sync is swallowed; once synced, the same
// message is handled and produces a lambda response.
func TestHandleMessage_ReplayDuringInitialSync(t *testing.T) {
	alice := validatorID(0xA1)
	bonds := map[types.ValidatorID]uint64{
		alice:             100,
		validatorID(0xB0): 100,
	}
	h := newHarness(t, alice, bonds)
	h.synced.Set(false)

	leaderFn, err := h.seq.LeaderFunction(h.runtime.Era())
	require.NoError(t, err)
	leader, err := leaderFn(0)
	require.NoError(t, err)
	require.NotEqual(t, alice, leader, "test fixture needs a round whose leader isn't the local validator")

	block := &types.Block{Hash: hash(20), ValidatorID: leader, RoundID: 0, KeyBlockHash: h.runtime.Era().KeyBlockHash}
	h.dag.Add(block, true)

	result, err := h.runtime.HandleMessage(context.Background(), block)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Events.Len())

	h.synced.Set(true)
	result, err = h.runtime.HandleMessage(context.Background(), block)
	require.NoError(t, err)
	require.Equal(t, 1, result.Events.Len())
	_, ok := result.Events.Events()[0].(types.CreatedLambdaResponse)
	assert.True(t, ok)
}

// Scenario 6: a StartRound handled long after its lattice tick skips ahead
// instead of emitting anything for the missed round.
func TestHandleAgenda_SlippedRoundSkipsAhead(t *testing.T) {
	bonds := map[types.ValidatorID]uint64{validatorID(0xB0): 100}
	h := newHarness(t, types.ValidatorID{}, bonds)

	roundLen := tickclock.RoundLength(15)
	roundID := types.Tick(0)
	now := roundID + 3*roundLen

	result, err := h.runtime.HandleAgenda(context.Background(), now, agenda.Action{Kind: agenda.StartRound, RoundID: roundID})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Events.Len())
	require.Equal(t, 1, result.Agenda.Len())

	item := result.Agenda.Items()[0]
	assert.Equal(t, agenda.StartRound, item.Action.Kind)
	assert.Greater(t, item.Tick, now)
	assert.Equal(t, types.Tick(0), (item.Tick-h.runtime.Era().StartTick)%roundLen)
}

// Scenario 5 (core mechanics): a main-chain switch block idempotently yields
// exactly one CreatedEra event, deriving the child leader seed from the
// magic bits between booking and key block.
func TestHandleMessage_SwitchBlockCreatesEra(t *testing.T) {
	alice := validatorID(0xA1)
	bonds := map[types.ValidatorID]uint64{alice: 100}

	conf := testConf()
	conf.EraDuration = 10 * time.Second
	conf.BookingDuration = 3 * time.Second
	conf.EntropyDuration = 1 * time.Second

	h := newHarnessWith(t, conf, types.ValidatorID{}, bonds)
	era := h.runtime.Era() // startTick=0, endTick=10; booking boundary=7, key boundary=8

	genesis := &types.Block{Hash: hash(1), ValidatorID: alice, RoundID: 6, KeyBlockHash: era.KeyBlockHash, MagicBit: false}
	h.dag.Add(genesis, true)

	booking := &types.Block{
		Hash: hash(2), ValidatorID: alice, RoundID: 7, KeyBlockHash: era.KeyBlockHash,
		MainParent: genesis.Hash, MagicBit: true,
	}
	h.dag.Add(booking, true)

	key := &types.Block{
		Hash: hash(3), ValidatorID: alice, RoundID: 8, KeyBlockHash: era.KeyBlockHash,
		MainParent: booking.Hash, MagicBit: false,
	}
	h.dag.Add(key, true)
	h.dag.SetBonds(key.Hash, map[types.ValidatorID]uint64{alice: 50})

	switchBlock := &types.Block{
		Hash: hash(4), ValidatorID: alice, RoundID: 10, KeyBlockHash: era.KeyBlockHash,
		MainParent: key.Hash, MagicBit: false,
	}
	h.dag.Add(switchBlock, true)

	result, err := h.runtime.HandleMessage(context.Background(), switchBlock)
	require.NoError(t, err)
	require.Equal(t, 1, result.Events.Len())
	created, ok := result.Events.Events()[0].(types.CreatedEra)
	require.True(t, ok)
	assert.Equal(t, era.EndTick, created.Era.StartTick)
	assert.Equal(t, era.EndTick+10, created.Era.EndTick)
	assert.Equal(t, booking.Hash, created.Era.BookingBlockHash)
	assert.Equal(t, key.Hash, created.Era.KeyBlockHash)
	assert.Equal(t, era.KeyBlockHash, created.Era.ParentKeyBlockHash)
	assert.Equal(t, map[types.ValidatorID]uint64{alice: 50}, created.Era.Bonds)
	assert.Equal(t, leaderseq.DeriveSeed(era.LeaderSeed, []bool{true, false}), created.Era.LeaderSeed)

	// Idempotent: handling the same switch block again yields no further event.
	already, err := h.eraStore.ContainsEra(context.Background(), created.Era.KeyBlockHash)
	require.NoError(t, err)
	require.True(t, already)

	result2, err := h.runtime.HandleMessage(context.Background(), switchBlock)
	require.NoError(t, err)
	assert.Equal(t, 0, result2.Events.Len())
}

// TestHandleMessage_SwitchBlockCreatesEra_BookingDurationSpansMultipleEras
// covers the regime config.DefaultConfig itself ships (bookingDuration >
// eraDuration, per spec.md §8 scenario 1): the booking boundary relevant to
// this era is the one counted down from the *next* era's end, landing
// before this era's own StartTick under the naive per-era formula. This
// pins the fix in boundaries.BookingBoundaries/KeyBoundaries against
// era/runtime.go's real single-era call site.
func TestHandleMessage_SwitchBlockCreatesEra_BookingDurationSpansMultipleEras(t *testing.T) {
	alice := validatorID(0xA1)
	bonds := map[types.ValidatorID]uint64{alice: 100}

	conf := testConf()
	conf.EraDuration = 7 * time.Second
	conf.BookingDuration = 10 * time.Second // > EraDuration, as in DefaultConfig
	conf.EntropyDuration = 1 * time.Second

	// era1 = [7, 14): its booking boundary (11) and key boundary (12) are
	// counted down from era2's end (21), not era1's own end (14).
	era := &types.Era{
		StartTick:    7,
		EndTick:      14,
		KeyBlockHash: hash(0xEE),
		LeaderSeed:   []byte("genesis-seed"),
		Bonds:        bonds,
	}

	dag := adapterstest.NewDAG()
	eraStore := adapterstest.NewEraStorage()
	fork := &adapterstest.ForkChoice{}
	synced := adapterstest.NewIsSynced(true)
	producer := adapterstest.NewMessageProducer(types.ValidatorID{})
	seq := leaderseq.New()
	clock := tickclock.New(conf, clockwork.NewFakeClockAt(conf.GenesisEraStart))
	rt := New(conf, era, 15, dag, eraStore, fork, synced, seq, clock)

	genesis := &types.Block{Hash: hash(1), ValidatorID: alice, RoundID: 9, KeyBlockHash: era.KeyBlockHash}
	dag.Add(genesis, true)

	booking := &types.Block{
		Hash: hash(2), ValidatorID: alice, RoundID: 11, KeyBlockHash: era.KeyBlockHash,
		MainParent: genesis.Hash, MagicBit: true,
	}
	dag.Add(booking, true)

	key := &types.Block{
		Hash: hash(3), ValidatorID: alice, RoundID: 12, KeyBlockHash: era.KeyBlockHash,
		MainParent: booking.Hash, MagicBit: false,
	}
	dag.Add(key, true)
	dag.SetBonds(key.Hash, map[types.ValidatorID]uint64{alice: 50})

	switchBlock := &types.Block{
		Hash: hash(4), ValidatorID: alice, RoundID: 14, KeyBlockHash: era.KeyBlockHash,
		MainParent: key.Hash,
	}
	dag.Add(switchBlock, true)

	result, err := rt.HandleMessage(context.Background(), switchBlock)
	require.NoError(t, err)
	require.Equal(t, 1, result.Events.Len())
	created, ok := result.Events.Events()[0].(types.CreatedEra)
	require.True(t, ok)
	assert.Equal(t, era.EndTick, created.Era.StartTick)
	assert.Equal(t, era.EndTick+7, created.Era.EndTick)
	assert.Equal(t, booking.Hash, created.Era.BookingBlockHash)
	assert.Equal(t, key.Hash, created.Era.KeyBlockHash)
	assert.Equal(t, leaderseq.DeriveSeed(era.LeaderSeed, []bool{true, false}), created.Era.LeaderSeed)
}

// childEraMatcher is a gomock.Matcher asserting a *types.Era carries exactly
// the fields constructChildEra is expected to have derived.
type childEraMatcher struct {
	startTick          types.Tick
	endTick            types.Tick
	bookingBlockHash   types.Hash32
	keyBlockHash       types.Hash32
	parentKeyBlockHash types.Hash32
	leaderSeed         []byte
}

func (m childEraMatcher) Matches(x any) bool {
	child, ok := x.(*types.Era)
	return ok &&
		child.StartTick == m.startTick &&
		child.EndTick == m.endTick &&
		child.BookingBlockHash == m.bookingBlockHash &&
		child.KeyBlockHash == m.keyBlockHash &&
		child.ParentKeyBlockHash == m.parentKeyBlockHash &&
		string(child.LeaderSeed) == string(m.leaderSeed)
}

func (m childEraMatcher) String() string {
	return fmt.Sprintf("era{start:%d end:%d booking:%s key:%s parentKey:%s}",
		m.startTick, m.endTick, m.bookingBlockHash, m.keyBlockHash, m.parentKeyBlockHash)
}

// TestHandleMessage_SwitchBlockCreatesEra_PersistsExactChildEra verifies, via
// a gomock-generated EraStorage, that AddEra is called with exactly the
// child era constructChildEra derives (not merely that storage ends up
// containing *an* era), using a childEraMatcher over the era's derived
// fields.
func TestHandleMessage_SwitchBlockCreatesEra_PersistsExactChildEra(t *testing.T) {
	alice := validatorID(0xA1)
	bonds := map[types.ValidatorID]uint64{alice: 100}

	conf := testConf()
	conf.EraDuration = 10 * time.Second
	conf.BookingDuration = 3 * time.Second
	conf.EntropyDuration = 1 * time.Second

	era := testEra(bonds)
	era.EndTick = types.Tick(conf.EraDuration.Nanoseconds() / conf.TickUnit.Nanoseconds())

	dag := adapterstest.NewDAG()
	fork := &adapterstest.ForkChoice{}
	synced := adapterstest.NewIsSynced(true)
	producer := adapterstest.NewMessageProducer(types.ValidatorID{})
	seq := leaderseq.New()
	clock := tickclock.New(conf, clockwork.NewFakeClockAt(conf.GenesisEraStart))

	genesis := &types.Block{Hash: hash(1), ValidatorID: alice, RoundID: 6, KeyBlockHash: era.KeyBlockHash, MagicBit: false}
	dag.Add(genesis, true)

	booking := &types.Block{
		Hash: hash(2), ValidatorID: alice, RoundID: 7, KeyBlockHash: era.KeyBlockHash,
		MainParent: genesis.Hash, MagicBit: true,
	}
	dag.Add(booking, true)

	key := &types.Block{
		Hash: hash(3), ValidatorID: alice, RoundID: 8, KeyBlockHash: era.KeyBlockHash,
		MainParent: booking.Hash, MagicBit: false,
	}
	dag.Add(key, true)
	dag.SetBonds(key.Hash, map[types.ValidatorID]uint64{alice: 50})

	switchBlock := &types.Block{
		Hash: hash(4), ValidatorID: alice, RoundID: 10, KeyBlockHash: era.KeyBlockHash,
		MainParent: key.Hash, MagicBit: false,
	}
	dag.Add(switchBlock, true)

	isExpectedChild := childEraMatcher{
		startTick:          era.EndTick,
		endTick:            era.EndTick + 10,
		bookingBlockHash:   booking.Hash,
		keyBlockHash:       key.Hash,
		parentKeyBlockHash: era.KeyBlockHash,
		leaderSeed:         leaderseq.DeriveSeed(era.LeaderSeed, []bool{true, false}),
	}

	ctrl := gomock.NewController(t)
	eraStore := adapterstest.NewMockEraStorage(ctrl)
	eraStore.EXPECT().ContainsEra(gomock.Any(), key.Hash).Return(false, nil)
	eraStore.EXPECT().AddEra(gomock.Any(), isExpectedChild).Return(nil)

	rt := New(conf, era, 15, dag, eraStore, fork, synced, seq, clock,
		WithLocalValidator(types.ValidatorID{}, producer))

	result, err := rt.HandleMessage(context.Background(), switchBlock)
	require.NoError(t, err)
	require.Equal(t, 1, result.Events.Len())
}

// TestHandleMessage_IsDeterministicUnderConcurrentRuntimes drives two
// independently-constructed EraRuntimes, sharing no state, over identical
// fixtures concurrently via an errgroup.Group and asserts both produce the
// same CreatedEra. EraRuntime's derivation is pure given its adapters, so
// running two copies concurrently must not change the outcome.
func TestHandleMessage_IsDeterministicUnderConcurrentRuntimes(t *testing.T) {
	build := func() (*EraRuntime, *types.Block) {
		alice := validatorID(0xA1)
		bonds := map[types.ValidatorID]uint64{alice: 100}

		conf := testConf()
		conf.EraDuration = 10 * time.Second
		conf.BookingDuration = 3 * time.Second
		conf.EntropyDuration = 1 * time.Second

		era := testEra(bonds)
		era.EndTick = types.Tick(conf.EraDuration.Nanoseconds() / conf.TickUnit.Nanoseconds())

		dag := adapterstest.NewDAG()
		eraStore := adapterstest.NewEraStorage()
		fork := &adapterstest.ForkChoice{}
		synced := adapterstest.NewIsSynced(true)
		seq := leaderseq.New()
		clock := tickclock.New(conf, clockwork.NewFakeClockAt(conf.GenesisEraStart))
		rt := New(conf, era, 15, dag, eraStore, fork, synced, seq, clock)

		genesis := &types.Block{Hash: hash(1), ValidatorID: alice, RoundID: 6, KeyBlockHash: era.KeyBlockHash, MagicBit: false}
		dag.Add(genesis, true)
		booking := &types.Block{
			Hash: hash(2), ValidatorID: alice, RoundID: 7, KeyBlockHash: era.KeyBlockHash,
			MainParent: genesis.Hash, MagicBit: true,
		}
		dag.Add(booking, true)
		key := &types.Block{
			Hash: hash(3), ValidatorID: alice, RoundID: 8, KeyBlockHash: era.KeyBlockHash,
			MainParent: booking.Hash, MagicBit: false,
		}
		dag.Add(key, true)
		dag.SetBonds(key.Hash, map[types.ValidatorID]uint64{alice: 50})
		switchBlock := &types.Block{
			Hash: hash(4), ValidatorID: alice, RoundID: 10, KeyBlockHash: era.KeyBlockHash,
			MainParent: key.Hash, MagicBit: false,
		}
		dag.Add(switchBlock, true)

		return rt, switchBlock
	}

	rt1, block1 := build()
	rt2, block2 := build()

	results := make([]types.CreatedEra, 2)
	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		res, err := rt1.HandleMessage(ctx, block1)
		if err != nil {
			return err
		}
		if res.Events.Len() != 1 {
			return fmt.Errorf("era: expected exactly 1 event, got %d", res.Events.Len())
		}
		created, ok := res.Events.Events()[0].(types.CreatedEra)
		if !ok {
			return fatalf("era: expected CreatedEra event", nil)
		}
		results[0] = created
		return nil
	})
	g.Go(func() error {
		res, err := rt2.HandleMessage(ctx, block2)
		if err != nil {
			return err
		}
		if res.Events.Len() != 1 {
			return fmt.Errorf("era: expected exactly 1 event, got %d", res.Events.Len())
		}
		created, ok := res.Events.Events()[0].(types.CreatedEra)
		if !ok {
			return fatalf("era: expected CreatedEra event", nil)
		}
		results[1] = created
		return nil
	})
	require.NoError(t, g.Wait())

	assert.Equal(t, results[0].Era.StartTick, results[1].Era.StartTick)
	assert.Equal(t, results[0].Era.EndTick, results[1].Era.EndTick)
	assert.Equal(t, results[0].Era.BookingBlockHash, results[1].Era.BookingBlockHash)
	assert.Equal(t, results[0].Era.KeyBlockHash, results[1].Era.KeyBlockHash)
	assert.Equal(t, results[0].Era.LeaderSeed, results[1].Era.LeaderSeed)
}

func TestInitAgenda_UnbondedValidatorGetsNoSchedule(t *testing.T) {
	bonds := map[types.ValidatorID]uint64{validatorID(0xB0): 100}
	h := newHarness(t, validatorID(0xA1), bonds) // alice not bonded

	a := h.runtime.InitAgenda(context.Background(), 0)
	assert.Equal(t, 0, a.Len())
}

func TestInitAgenda_BondedValidatorSchedulesFirstRound(t *testing.T) {
	alice := validatorID(0xA1)
	bonds := map[types.ValidatorID]uint64{alice: 100}
	h := newHarness(t, alice, bonds)

	a := h.runtime.InitAgenda(context.Background(), 0)
	require.Equal(t, 1, a.Len())
	assert.Equal(t, agenda.StartRound, a.Items()[0].Action.Kind)
}
