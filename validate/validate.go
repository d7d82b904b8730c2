// Package validate implements the protocol rules of spec.md §4.6: doppelganger
// detection, non-leader lambda-block rejection, and double-lambda rejection.
// validate never mutates state and never emits events; it returns a Reason
// when a message is rejected.
package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/casper-network/go-highway/adapters"
	"github.com/casper-network/go-highway/classify"
	"github.com/casper-network/go-highway/common/types"
	"github.com/casper-network/go-highway/config"
)

// Reason is a typed tag alongside the human-readable rejection string, so
// callers that want to branch on rejection category don't have to
// string-match spec.md's exact wording.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonDoppelganger
	ReasonNonLeaderBlock
	ReasonDoubleLambda
)

// RejectionError is returned by Validate when m is rejected. Error() returns
// exactly the human-readable string spec.md §4.6 mandates.
type RejectionError struct {
	Reason  Reason
	message string
}

func (e *RejectionError) Error() string { return e.message }

var (
	errDoppelganger = &RejectionError{
		Reason:  ReasonDoppelganger,
		message: "The block is coming from a doppelganger.",
	}
	errNonLeader = &RejectionError{
		Reason:  ReasonNonLeaderBlock,
		message: "The block is not coming from the leader of the round.",
	}
	errDoubleLambda = &RejectionError{
		Reason:  ReasonDoubleLambda,
		message: "The leader has already sent a lambda message in this round.",
	}
)

// AsRejection extracts a *RejectionError from err, if any.
func AsRejection(err error) (*RejectionError, bool) {
	var r *RejectionError
	ok := errors.As(err, &r)
	return r, ok
}

// Validate checks m against the doppelganger/non-leader/double-lambda rules,
// in the order spec.md §4.6 lists them. localID is the zero ValidatorID when
// this runtime has no local validator (observer-only runtimes never produce
// messages and so can never be a doppelganger target).
func Validate(
	ctx context.Context,
	dag adapters.DAG,
	leaderFn classify.LeaderFunc,
	conf *config.HighwayConf,
	era *types.Era,
	localID types.ValidatorID,
	localProduced bool,
	m types.Message,
) error {
	// Rule 1: doppelganger.
	if localID != (types.ValidatorID{}) && m.Validator() == localID && !localProduced {
		return errDoppelganger
	}

	// Rule 2: non-leader lambda block.
	if m.IsBlock() {
		leader, err := leaderFn(m.Round())
		if err != nil {
			return fmt.Errorf("validate: leader lookup: %w", err)
		}
		if m.Validator() != leader {
			return errNonLeader
		}
	}

	// Rule 3: double lambda. Only applies to messages that could themselves be
	// a lambda message (a block from the leader, or — in the post-era voting
	// period — a ballot from the leader).
	kind, err := classify.Classify(ctx, dag, leaderFn, conf, era, m)
	if err != nil {
		return fmt.Errorf("validate: classify: %w", err)
	}
	if kind == classify.LambdaBlock || kind == classify.LambdaLikeBallot {
		hasOther, err := classify.HasOtherLambdaMessageInSameRound(ctx, dag, leaderFn, conf, era, m)
		if err != nil {
			return fmt.Errorf("validate: double-lambda check: %w", err)
		}
		if hasOther {
			return errDoubleLambda
		}
	}

	return nil
}
