// Package agenda implements the runtime's self-scheduled future work: an
// ordered, advisory sequence of (tick, action) items. The agenda never
// blocks and never runs anything itself — it is a plain value returned from
// each EraRuntime handler and merged into the caller's global schedule,
// mirroring the writer-monad-as-return-value design called for in spec.md §9.
package agenda

import (
	"sort"

	"github.com/casper-network/go-highway/common/types"
)

// ActionKind discriminates the two action variants an agenda item can carry.
type ActionKind uint8

const (
	// StartRound begins a round: elect/act as leader if applicable, and
	// schedule the round's own omega ballot and the next round.
	StartRound ActionKind = iota
	// CreateOmegaMessage produces this validator's omega ballot for a round
	// already under way.
	CreateOmegaMessage
)

// Action is one unit of self-scheduled work. RoundID identifies which round
// the action concerns; for StartRound, RoundID is the round about to start.
type Action struct {
	Kind    ActionKind
	RoundID types.Tick
}

// DelayedAction pairs an Action with the tick it is due at.
type DelayedAction struct {
	Tick   types.Tick
	Action Action
}

// Agenda is an ordered sequence of DelayedAction, ascending by Tick, with
// ties broken by ActionKind (StartRound sorts before CreateOmegaMessage, so
// that if a round boundary and a prior round's omega schedule ever collide on
// the exact same tick, the new round is always started first).
type Agenda struct {
	items []DelayedAction
}

// Empty returns an empty Agenda.
func Empty() Agenda {
	return Agenda{}
}

// Items returns the agenda's items in their canonical order. The returned
// slice must not be mutated by the caller.
func (a Agenda) Items() []DelayedAction {
	return a.items
}

// Len reports the number of scheduled items.
func (a Agenda) Len() int {
	return len(a.items)
}

// Schedule returns a new Agenda with (tick, action) inserted in order.
func (a Agenda) Schedule(tick types.Tick, action Action) Agenda {
	return a.insert(DelayedAction{Tick: tick, Action: action})
}

func (a Agenda) insert(item DelayedAction) Agenda {
	items := make([]DelayedAction, len(a.items), len(a.items)+1)
	copy(items, a.items)
	items = append(items, item)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Tick != items[j].Tick {
			return items[i].Tick < items[j].Tick
		}
		return items[i].Action.Kind < items[j].Action.Kind
	})
	return Agenda{items: items}
}

// Merge returns a new Agenda containing the union of a's and other's items,
// in canonical order.
func (a Agenda) Merge(other Agenda) Agenda {
	items := make([]DelayedAction, 0, len(a.items)+len(other.items))
	items = append(items, a.items...)
	items = append(items, other.items...)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Tick != items[j].Tick {
			return items[i].Tick < items[j].Tick
		}
		return items[i].Action.Kind < items[j].Action.Kind
	})
	return Agenda{items: items}
}

// FromItems builds an Agenda from the given DelayedActions, in canonical
// order; the common case is a single action.
func FromItems(items ...DelayedAction) Agenda {
	return Empty().mergeAll(items)
}

func (a Agenda) mergeAll(items []DelayedAction) Agenda {
	out := a
	for _, it := range items {
		out = out.insert(it)
	}
	return out
}
