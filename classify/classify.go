// Package classify partitions an incoming message into one of
// {lambda-block, lambda-response, lambda-like-ballot, omega, other} per
// spec.md §4.5. Classification uses only the message and the DAG view; it is
// deterministic and independent of wall-clock time.
package classify

import (
	"context"
	"fmt"

	"github.com/casper-network/go-highway/adapters"
	"github.com/casper-network/go-highway/common/types"
	"github.com/casper-network/go-highway/config"
)

// Kind is the classifier's verdict.
type Kind uint8

const (
	Other Kind = iota
	LambdaBlock
	LambdaResponse
	LambdaLikeBallot
	Omega
)

func (k Kind) String() string {
	switch k {
	case LambdaBlock:
		return "lambda-block"
	case LambdaResponse:
		return "lambda-response"
	case LambdaLikeBallot:
		return "lambda-like-ballot"
	case Omega:
		return "omega"
	default:
		return "other"
	}
}

// LeaderFunc returns the deterministic leader of a round, e.g.
// leaderseq.Sequencer.LeaderFunction's return value.
type LeaderFunc func(roundID types.Tick) (types.ValidatorID, error)

// Classify determines m's Kind with respect to era, conf and leaderFn.
func Classify(
	ctx context.Context,
	dag adapters.DAG,
	leaderFn LeaderFunc,
	conf *config.HighwayConf,
	era *types.Era,
	m types.Message,
) (Kind, error) {
	leader, err := leaderFn(m.Round())
	if err != nil {
		return Other, fmt.Errorf("classify: leader lookup: %w", err)
	}

	if m.IsBlock() {
		if m.Validator() == leader && m.Round() < era.EndTick {
			return LambdaBlock, nil
		}
		return Other, nil
	}

	ballot, ok := m.(*types.Ballot)
	if !ok {
		return Other, nil
	}

	if ballot.Validator() == leader && InPostEraVoting(conf, era, ballot.Round()) {
		first, err := IsLambdaLikeBallot(ctx, dag, ballot)
		if err != nil {
			return Other, err
		}
		if first {
			return LambdaLikeBallot, nil
		}
	}

	if ballot.Validator() != leader {
		lambdaHash, found, err := roundLambdaBlockHash(ctx, dag, leaderFn, ballot.Round())
		if err != nil {
			return Other, err
		}
		if found && ballot.Target == lambdaHash {
			return LambdaResponse, nil
		}
	}

	return Omega, nil
}

// InPostEraVoting reports whether roundID falls in the post-era voting
// period: [era.EndTick, era.EndTick+postEraVotingDuration).
func InPostEraVoting(conf *config.HighwayConf, era *types.Era, roundID types.Tick) bool {
	votingTicks := types.Tick(conf.PostEraVotingDuration.Nanoseconds() / conf.TickUnit.Nanoseconds())
	return roundID >= era.EndTick && roundID < era.EndTick+votingTicks
}

// HasJustificationInOwnRound reports whether m cites a prior message from its
// own validator whose round equals m's round — i.e. m is a follow-up to its
// own earlier message in the same round, not an independent first message.
func HasJustificationInOwnRound(ctx context.Context, dag adapters.DAG, m types.Message) (bool, error) {
	priorHash, ok := types.OwnJustification(m, m.Validator())
	if !ok {
		return false, nil
	}
	prior, found, err := dag.Get(ctx, priorHash)
	if err != nil {
		return false, fmt.Errorf("classify: resolve own justification: %w", err)
	}
	if !found {
		return false, nil
	}
	return prior.Round() == m.Round(), nil
}

// IsLambdaLikeBallot reports whether ballot is the first message its
// validator has produced in its own round — the definition of a lambda-like
// ballot in the post-era voting period (spec.md §4.5).
func IsLambdaLikeBallot(ctx context.Context, dag adapters.DAG, ballot *types.Ballot) (bool, error) {
	hasPrior, err := HasJustificationInOwnRound(ctx, dag, ballot)
	if err != nil {
		return false, err
	}
	return !hasPrior, nil
}

// roundLambdaBlockHash finds the hash of the round's lambda message: the
// first message found among the leader's messages in roundID that is either
// a block or a ballot with no own justification in the same round (a
// lambda-like ballot stand-in). Neither the era's end nor the post-era voting
// window is checked here.
func roundLambdaBlockHash(
	ctx context.Context,
	dag adapters.DAG,
	leaderFn LeaderFunc,
	roundID types.Tick,
) (types.Hash32, bool, error) {
	leader, err := leaderFn(roundID)
	if err != nil {
		return types.Hash32{}, false, err
	}
	msgs, err := dag.MessagesByValidatorInRound(ctx, leader, roundID)
	if err != nil {
		return types.Hash32{}, false, err
	}
	for _, m := range msgs {
		if m.IsBlock() {
			return m.MessageHash(), true, nil
		}
		if ballot, ok := m.(*types.Ballot); ok {
			first, err := IsLambdaLikeBallot(ctx, dag, ballot)
			if err != nil {
				return types.Hash32{}, false, err
			}
			if first {
				return m.MessageHash(), true, nil
			}
		}
	}
	return types.Hash32{}, false, nil
}

// HasOtherLambdaMessageInSameRound reports whether the round's leader already
// has a lambda block or lambda-like ballot in m's round other than the one m
// itself directly cites as its own prior message (a legitimate follow-up).
// Used by validate's double-lambda rule.
func HasOtherLambdaMessageInSameRound(
	ctx context.Context,
	dag adapters.DAG,
	leaderFn LeaderFunc,
	conf *config.HighwayConf,
	era *types.Era,
	m types.Message,
) (bool, error) {
	leader, err := leaderFn(m.Round())
	if err != nil {
		return false, err
	}

	priorHash, hasPrior := types.OwnJustification(m, leader)

	msgs, err := dag.MessagesByValidatorInRound(ctx, leader, m.Round())
	if err != nil {
		return false, err
	}
	for _, other := range msgs {
		if other.MessageHash() == m.MessageHash() {
			continue
		}
		if hasPrior && other.MessageHash() == priorHash {
			continue
		}
		kind, err := Classify(ctx, dag, leaderFn, conf, era, other)
		if err != nil {
			return false, err
		}
		if kind == LambdaBlock || kind == LambdaLikeBallot {
			return true, nil
		}
	}
	return false, nil
}
