// Package era implements EraRuntime, the single-threaded, non-blocking state
// machine described in spec.md §§2-5: it validates and classifies incoming
// messages, produces the events and self-scheduled agenda those messages and
// the passage of time call for, and derives child eras from switch blocks.
//
// EraRuntime's shape mirrors hare3.Hare: a functional-options constructor, a
// dependencies/options/state field grouping, and a single mutex serializing
// all handler calls (spec.md §5: "processes messages/actions one at a time in
// delivery order").
package era

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"github.com/casper-network/go-highway/adapters"
	"github.com/casper-network/go-highway/agenda"
	"github.com/casper-network/go-highway/boundaries"
	"github.com/casper-network/go-highway/classify"
	"github.com/casper-network/go-highway/common/types"
	"github.com/casper-network/go-highway/config"
	"github.com/casper-network/go-highway/eventlog"
	"github.com/casper-network/go-highway/leaderseq"
	"github.com/casper-network/go-highway/metrics"
	"github.com/casper-network/go-highway/tickclock"
	"github.com/casper-network/go-highway/validate"
)

// Result is the (events, agenda-additions) pair every handler returns,
// spec.md §9's "writer-monad event log -> return value".
type Result struct {
	Events eventlog.EventLog
	Agenda agenda.Agenda
}

// FatalError marks the hard-error regime of spec.md §7: a self-delivered
// message, a leader lookup failure, or a capability read failure. A
// doppelganger is reported by Validate as a validate.RejectionError
// (validate.ReasonDoppelganger), not as a FatalError. The caller is expected
// to terminate this runtime instance; the node may continue running other
// era runtimes.
type FatalError struct {
	msg string
	err error
}

func (e *FatalError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *FatalError) Unwrap() error { return e.err }

func fatalf(msg string, err error) error {
	return &FatalError{msg: msg, err: err}
}

// IsFatal reports whether err is (or wraps) a *FatalError.
func IsFatal(err error) bool {
	var f *FatalError
	return errors.As(err, &f)
}

// Opt customizes an EraRuntime at construction, mirroring hare3.Opt.
type Opt func(*EraRuntime)

// WithLogger sets the runtime's logger.
func WithLogger(log *zap.Logger) Opt {
	return func(r *EraRuntime) { r.log = log }
}

// WithLocalValidator registers this runtime as an active (non-observer)
// participant: it will classify, produce and track its own messages under
// id, signing them through producer.
func WithLocalValidator(id types.ValidatorID, producer adapters.MessageProducer) Opt {
	return func(r *EraRuntime) {
		r.localID = id
		r.hasLocal = true
		r.producer = producer
	}
}

// EraRuntime is the per-era consensus state machine. A node runs one
// EraRuntime per currently-active era; a switch block observation hands the
// resulting child Era off to the outer layer, which constructs the next
// EraRuntime from it.
type EraRuntime struct {
	// state, guarded by mu.
	mu                  sync.Mutex
	lastOwnMessageHash  types.Hash32
	hasLastOwnMessage   bool
	switchBlockProduced bool

	// options.
	log *zap.Logger

	// dependencies.
	conf       *config.HighwayConf
	era        *types.Era
	roundExp   uint
	dag        adapters.DAG
	eraStorage adapters.EraStorage
	forkChoice adapters.ForkChoice
	isSynced   adapters.IsSynced
	sequencer  *leaderseq.Sequencer
	clock      *tickclock.TickClock

	localID  types.ValidatorID
	hasLocal bool
	producer adapters.MessageProducer
}

// New builds an EraRuntime bound to era, using clock as its wall-clock
// source and sequencer for leader selection. dag/eraStorage/forkChoice/
// isSynced are the external capabilities spec.md §6 lists; roundExp is the
// round lattice's exponent (round length = 2^roundExp ticks).
func New(
	conf *config.HighwayConf,
	era *types.Era,
	roundExp uint,
	dag adapters.DAG,
	eraStorage adapters.EraStorage,
	forkChoice adapters.ForkChoice,
	isSynced adapters.IsSynced,
	sequencer *leaderseq.Sequencer,
	clock *tickclock.TickClock,
	opts ...Opt,
) *EraRuntime {
	r := &EraRuntime{
		log:        zap.NewNop(),
		conf:       conf,
		era:        era,
		roundExp:   roundExp,
		dag:        dag,
		eraStorage: eraStorage,
		forkChoice: forkChoice,
		isSynced:   isSynced,
		sequencer:  sequencer,
		clock:      clock,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Era returns the era this runtime is bound to.
func (r *EraRuntime) Era() *types.Era { return r.era }

func (r *EraRuntime) roundLen() types.Tick {
	return tickclock.RoundLength(r.roundExp)
}

func (r *EraRuntime) leaderFunc() (classify.LeaderFunc, error) {
	fn, err := r.sequencer.LeaderFunction(r.era)
	if err != nil {
		return nil, fmt.Errorf("era: leader function: %w", err)
	}
	return fn, nil
}

// Validate checks m against the protocol rules (doppelganger, non-leader
// lambda block, double lambda). A soft/protocol rejection is returned as a
// *validate.RejectionError (validate.AsRejection unwraps it); a leader lookup
// or DAG read failure is returned as a *FatalError. It never mutates state.
func (r *EraRuntime) Validate(ctx context.Context, m types.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	leaderFn, err := r.leaderFunc()
	if err != nil {
		return fatalf("era: leader lookup failed", err)
	}
	localProduced := r.hasLocal && r.hasLastOwnMessage && m.MessageHash() == r.lastOwnMessageHash
	err = validate.Validate(ctx, r.dag, leaderFn, r.conf, r.era, r.localID, localProduced, m)
	if err == nil {
		return nil
	}
	rej, ok := validate.AsRejection(err)
	if !ok {
		return fatalf("era: validate failed", err)
	}
	metrics.ObserveRejection(rejectionLabel(rej.Reason))
	return err
}

func rejectionLabel(reason validate.Reason) string {
	switch reason {
	case validate.ReasonDoppelganger:
		return "doppelganger"
	case validate.ReasonNonLeaderBlock:
		return "non_leader_block"
	case validate.ReasonDoubleLambda:
		return "double_lambda"
	default:
		return "none"
	}
}

// currentRoundLocked returns the lattice round containing the current
// wall-clock tick. Caller must hold r.mu.
func (r *EraRuntime) currentRoundLocked() types.Tick {
	return tickclock.CurrentRound(r.era.StartTick, r.roundExp, r.clock.Now())
}

// HandleMessage applies the effect table of spec.md §4.7 to an already
// validated message m. It returns the events produced and any new agenda
// items; a non-nil error is always fatal (spec.md §4.9).
func (r *EraRuntime) HandleMessage(ctx context.Context, m types.Message) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isSynced.Get(ctx) {
		return Result{}, nil
	}

	if r.hasLocal && m.Validator() == r.localID {
		return Result{}, fatalf("era: own message delivered back by relay", nil)
	}

	leaderFn, err := r.leaderFunc()
	if err != nil {
		return Result{}, fatalf("era: leader lookup failed", err)
	}

	events := eventlog.EventLog{}

	if block, ok := m.(*types.Block); ok {
		kind, err := classify.Classify(ctx, r.dag, leaderFn, r.conf, r.era, m)
		if err != nil {
			return Result{}, fatalf("era: classify failed", err)
		}
		if kind == classify.LambdaBlock && block.Round() == r.currentRoundLocked() && r.hasLocal && r.era.IsBonded(r.localID) {
			ballot, err := r.produceLambdaResponse(ctx, block)
			if err != nil {
				return Result{}, fatalf("era: produce lambda response failed", err)
			}
			events = events.Append(types.CreatedLambdaResponse{Message: ballot})
			metrics.ObserveEvent("lambda_response")
		}

		childResult, err := r.handleSwitchObservation(ctx, block)
		if err != nil {
			return Result{}, err
		}
		events = events.Merge(childResult)
		return Result{Events: events}, nil
	}

	ballot, ok := m.(*types.Ballot)
	if !ok {
		return Result{}, nil
	}

	kind, err := classify.Classify(ctx, r.dag, leaderFn, r.conf, r.era, m)
	if err != nil {
		return Result{}, fatalf("era: classify failed", err)
	}
	if kind == classify.LambdaLikeBallot {
		// spec.md §9 open question: the post-era voting-period response is
		// provisional. We emit the marker event the effect table calls for
		// and otherwise leave the branch isolated from normal-period logic.
		response, err := r.produceLambdaResponse(ctx, ballot)
		if err != nil {
			return Result{}, fatalf("era: produce post-era lambda response failed", err)
		}
		events = events.Append(types.CreatedLambdaResponse{Message: response})
		metrics.ObserveEvent("lambda_response")
	}

	return Result{Events: events}, nil
}

// handleSwitchObservation implements the "child era construction" steps of
// spec.md §4.7: it runs only for main-chain blocks that cross the era's
// switch boundary, and is idempotent via EraStorage.
func (r *EraRuntime) handleSwitchObservation(ctx context.Context, block *types.Block) (eventlog.EventLog, error) {
	isMain, err := r.dag.IsMainChain(ctx, block.MessageHash())
	if err != nil {
		return eventlog.EventLog{}, fatalf("era: main-chain lookup failed", err)
	}
	if !isMain {
		return eventlog.EventLog{}, nil
	}

	parentRound, err := r.parentRound(ctx, block)
	if err != nil {
		return eventlog.EventLog{}, err
	}
	if !boundaries.IsSwitchBoundary(r.era.EndTick, parentRound, block.Round()) {
		return eventlog.EventLog{}, nil
	}

	child, err := r.constructChildEra(ctx, block)
	if err != nil {
		return eventlog.EventLog{}, fatalf("era: child era construction failed", err)
	}

	already, err := r.eraStorage.ContainsEra(ctx, child.KeyBlockHash)
	if err != nil {
		return eventlog.EventLog{}, fatalf("era: era-storage lookup failed", err)
	}
	if already {
		return eventlog.EventLog{}, nil
	}
	if err := r.eraStorage.AddEra(ctx, child); err != nil {
		return eventlog.EventLog{}, fatalf("era: persist child era failed", err)
	}

	metrics.ObserveEvent("era")
	return eventlog.EventLog{}.Append(types.CreatedEra{Era: child}), nil
}

// parentRound returns the round of block's main-chain parent, or
// era.StartTick if block has none (it is the era's first block, built
// directly atop the key block).
func (r *EraRuntime) parentRound(ctx context.Context, block *types.Block) (types.Tick, error) {
	if block.MainParent.IsZero() {
		return r.era.StartTick, nil
	}
	parent, ok, err := r.dag.Get(ctx, block.MainParent)
	if err != nil {
		return 0, fatalf("era: resolve main parent failed", err)
	}
	if !ok {
		return 0, fatalf("era: main parent not found in DAG", nil)
	}
	return parent.Round(), nil
}

// constructChildEra implements spec.md §4.7's "Child era construction"
// algorithm over switch block s.
func (r *EraRuntime) constructChildEra(ctx context.Context, s *types.Block) (*types.Era, error) {
	chain, err := r.dag.MainChainAncestors(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("main-chain ancestors: %w", err)
	}

	bookingBoundaries := boundaries.BookingBoundaries(r.conf, r.era.StartTick, r.era.EndTick)
	keyBoundaries := boundaries.KeyBoundaries(r.conf, r.era.StartTick, r.era.EndTick)

	booking, err := findBoundaryBlock(chain, bookingBoundaries)
	if err != nil {
		return nil, fmt.Errorf("locate booking block: %w", err)
	}
	key, err := findBoundaryBlock(chain, keyBoundaries)
	if err != nil {
		return nil, fmt.Errorf("locate key block: %w", err)
	}

	magicBits, err := collectMagicBits(chain, booking, key)
	if err != nil {
		return nil, err
	}

	leaderSeed := leaderseq.DeriveSeed(r.era.LeaderSeed, magicBits)

	bonds, err := r.dag.BondsAt(ctx, key.MessageHash())
	if err != nil {
		return nil, fmt.Errorf("bonds at key block: %w", err)
	}

	return &types.Era{
		StartTick:          r.era.EndTick,
		EndTick:            r.era.EndTick + ticksOf(r.conf.EraDuration, r.conf),
		KeyBlockHash:       key.MessageHash(),
		BookingBlockHash:   booking.MessageHash(),
		LeaderSeed:         leaderSeed,
		ParentKeyBlockHash: r.era.KeyBlockHash,
		Bonds:              bonds,
	}, nil
}

func ticksOf(d interface{ Nanoseconds() int64 }, conf *config.HighwayConf) types.Tick {
	return types.Tick(d.Nanoseconds() / conf.TickUnit.Nanoseconds())
}

// findBoundaryBlock locates the first block along chain (oldest-first) whose
// parent lies strictly before the most recent boundary in boundaries and
// whose own round is at or past it, per spec.md §4.7 step 1. boundaries must
// be in ascending order (boundaries.BookingBoundaries/KeyBoundaries already
// return them that way); "the most recent" is the last (largest) one.
func findBoundaryBlock(chain []*types.Block, boundaries []types.Tick) (*types.Block, error) {
	if len(boundaries) == 0 {
		return nil, errors.New("no boundary inside era")
	}
	boundary := boundaries[len(boundaries)-1]
	for i, b := range chain {
		var parentRound types.Tick
		if i == 0 {
			parentRound = b.Round() - 1
		} else {
			parentRound = chain[i-1].Round()
		}
		if parentRound < boundary && b.Round() >= boundary {
			return b, nil
		}
	}
	return nil, fmt.Errorf("no block crosses boundary %d", boundary)
}

// collectMagicBits returns the magic bits of every block on chain from
// booking through key inclusive, in chain order, per spec.md §4.7 step 2 and
// §9's collectMagicBits round-trip property.
func collectMagicBits(chain []*types.Block, booking, key *types.Block) ([]bool, error) {
	startIdx, endIdx := -1, -1
	for i, b := range chain {
		if b.MessageHash() == booking.MessageHash() {
			startIdx = i
		}
		if b.MessageHash() == key.MessageHash() {
			endIdx = i
		}
	}
	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return nil, errors.New("booking/key block not found in main chain span")
	}
	bits := make([]bool, 0, endIdx-startIdx+1)
	for i := startIdx; i <= endIdx; i++ {
		bits = append(bits, chain[i].MagicBit)
	}
	return bits, nil
}

// produceLambdaResponse builds the ballot the local validator emits in
// reply to a lambda message: it cites m and, if present, the validator's own
// latest message, and nothing else (spec.md §8's justification-minimality
// invariant).
func (r *EraRuntime) produceLambdaResponse(ctx context.Context, m types.Message) (*types.Ballot, error) {
	justifications := map[types.ValidatorID]map[types.Hash32]struct{}{
		m.Validator(): {m.MessageHash(): {}},
	}
	if r.hasLastOwnMessage {
		justifications[r.localID] = map[types.Hash32]struct{}{r.lastOwnMessageHash: {}}
	}
	ballot, err := r.producer.Ballot(ctx, r.era.KeyBlockHash, m.Round(), m.MessageHash(), justifications)
	if err != nil {
		return nil, err
	}
	r.rememberOwnMessage(ballot.MessageHash())
	return ballot, nil
}

func (r *EraRuntime) rememberOwnMessage(hash types.Hash32) {
	r.lastOwnMessageHash = hash
	r.hasLastOwnMessage = true
}

// InitAgenda computes the runtime's initial self-scheduled work, per
// spec.md §4.8's initAgenda.
func (r *EraRuntime) InitAgenda(ctx context.Context, now types.Tick) agenda.Agenda {
	r.mu.Lock()
	defer r.mu.Unlock()

	votingTicks := ticksOf(r.conf.PostEraVotingDuration, r.conf)
	if !r.hasLocal || !r.era.IsBonded(r.localID) || now >= r.era.EndTick+votingTicks {
		return agenda.Empty()
	}
	base := r.era.StartTick
	if now > base {
		base = now
	}
	next := tickclock.NextRound(r.era.StartTick, r.roundExp, base)
	return agenda.FromItems(agenda.DelayedAction{
		Tick:   next,
		Action: agenda.Action{Kind: agenda.StartRound, RoundID: next},
	})
}

// HandleAgenda implements spec.md §4.8's dispatch over the two action kinds.
func (r *EraRuntime) HandleAgenda(ctx context.Context, now types.Tick, action agenda.Action) (Result, error) {
	switch action.Kind {
	case agenda.StartRound:
		return r.handleStartRound(ctx, now, action.RoundID)
	case agenda.CreateOmegaMessage:
		return r.handleCreateOmega(ctx, action.RoundID)
	default:
		return Result{}, fmt.Errorf("era: unknown agenda action kind %d", action.Kind)
	}
}

func (r *EraRuntime) handleStartRound(ctx context.Context, now types.Tick, roundID types.Tick) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	roundLen := r.roundLen()
	if now > roundID+roundLen {
		next := tickclock.NextRound(r.era.StartTick, r.roundExp, now)
		metrics.ObserveAgendaSlip()
		return Result{Agenda: agenda.FromItems(agenda.DelayedAction{
			Tick:   next,
			Action: agenda.Action{Kind: agenda.StartRound, RoundID: next},
		})}, nil
	}

	events := eventlog.EventLog{}

	if r.hasLocal && r.era.IsBonded(r.localID) && r.isSynced.Get(ctx) {
		leaderFn, err := r.leaderFunc()
		if err != nil {
			return Result{}, fatalf("era: leader lookup failed", err)
		}
		leader, err := leaderFn(roundID)
		if err != nil {
			return Result{}, fatalf("era: leader lookup failed", err)
		}
		if leader == r.localID {
			produced, err := r.produceRoundMessage(ctx, roundID)
			if err != nil {
				return Result{}, fatalf("era: produce round message failed", err)
			}
			events = events.Append(produced.event)
			metrics.ObserveEvent(produced.label)
		}
	}

	next := roundID + roundLen
	agendaOut := agenda.FromItems(agenda.DelayedAction{
		Tick:   next,
		Action: agenda.Action{Kind: agenda.StartRound, RoundID: next},
	})

	omegaFraction := r.conf.OmegaMessageTimeStart + rand.Float64()*(r.conf.OmegaMessageTimeEnd-r.conf.OmegaMessageTimeStart)
	omegaTick := roundID + types.Tick(omegaFraction*float64(roundLen))
	agendaOut = agendaOut.Schedule(omegaTick, agenda.Action{Kind: agenda.CreateOmegaMessage, RoundID: roundID})

	return Result{Events: events, Agenda: agendaOut}, nil
}

type producedRoundMessage struct {
	event types.HighwayEvent
	label string
}

// produceRoundMessage emits this round's leader message: a normal lambda
// block, the switch block (same event, once), or — once a switch block
// already exists on this fork — a lambda-like ballot standing in for it in
// the post-era voting period. This branch is isolated per spec.md §9's open
// question on post-era voting behavior.
func (r *EraRuntime) produceRoundMessage(ctx context.Context, roundID types.Tick) (producedRoundMessage, error) {
	if roundID >= r.era.EndTick && r.switchBlockProduced {
		mainParent, justifications, err := r.forkChoice.FromKeyBlock(ctx, r.era.KeyBlockHash)
		if err != nil {
			return producedRoundMessage{}, err
		}
		ballot, err := r.producer.Ballot(ctx, r.era.KeyBlockHash, roundID, mainParent, justifications)
		if err != nil {
			return producedRoundMessage{}, err
		}
		r.rememberOwnMessage(ballot.MessageHash())
		return producedRoundMessage{event: types.CreatedLambdaMessage{Message: ballot}, label: "lambda_like_ballot"}, nil
	}

	mainParent, justifications, err := r.forkChoice.FromKeyBlock(ctx, r.era.KeyBlockHash)
	if err != nil {
		return producedRoundMessage{}, err
	}
	isBooking := boundaries.IsBookingBoundary(r.conf, r.era.StartTick, r.era.EndTick, r.mustParentRound(ctx, mainParent), roundID)
	block, err := r.producer.Block(ctx, r.era.KeyBlockHash, roundID, mainParent, justifications, isBooking)
	if err != nil {
		return producedRoundMessage{}, err
	}
	r.rememberOwnMessage(block.MessageHash())
	if roundID >= r.era.EndTick {
		r.switchBlockProduced = true
	}
	return producedRoundMessage{event: types.CreatedLambdaMessage{Message: block}, label: "lambda_message"}, nil
}

// mustParentRound best-effort resolves mainParent's round for the
// isBookingBoundary check; a fork-choice parent the runtime cannot resolve
// is treated as preceding the era (conservative: never misses a boundary).
func (r *EraRuntime) mustParentRound(ctx context.Context, mainParent types.Hash32) types.Tick {
	if mainParent.IsZero() {
		return r.era.StartTick - 1
	}
	msg, ok, err := r.dag.Get(ctx, mainParent)
	if err != nil || !ok {
		return r.era.StartTick - 1
	}
	return msg.Round()
}

func (r *EraRuntime) handleCreateOmega(ctx context.Context, roundID types.Tick) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isSynced.Get(ctx) {
		return Result{}, nil
	}
	if !r.hasLocal || !r.era.IsBonded(r.localID) {
		return Result{}, nil
	}

	mainParent, justifications, err := r.forkChoice.FromKeyBlock(ctx, r.era.KeyBlockHash)
	if err != nil {
		return Result{}, fatalf("era: fork choice failed", err)
	}
	ballot, err := r.producer.Ballot(ctx, r.era.KeyBlockHash, roundID, mainParent, justifications)
	if err != nil {
		return Result{}, fatalf("era: produce omega ballot failed", err)
	}
	r.rememberOwnMessage(ballot.MessageHash())
	metrics.ObserveEvent("omega_message")

	return Result{Events: eventlog.EventLog{}.Append(types.CreatedOmegaMessage{Message: ballot})}, nil
}
