// Package eventlog implements the append-only, write-only log of
// HighwayEvent a single EraRuntime step produces. Events are never consumed
// by the runtime itself; EventLog is a plain value returned from each
// handler, per spec.md §9's "writer-monad event log -> return value".
package eventlog

import "github.com/casper-network/go-highway/common/types"

// EventLog is an ordered, append-only sequence of events. The zero value is
// an empty log.
type EventLog struct {
	events []types.HighwayEvent
}

// Append returns a new EventLog with event appended, preserving emission
// order (spec.md §5: "Events within one handler call are emitted in the
// order produced").
func (l EventLog) Append(event types.HighwayEvent) EventLog {
	events := make([]types.HighwayEvent, len(l.events), len(l.events)+1)
	copy(events, l.events)
	events = append(events, event)
	return EventLog{events: events}
}

// Events returns the log's events in emission order. The returned slice must
// not be mutated by the caller.
func (l EventLog) Events() []types.HighwayEvent {
	return l.events
}

// Len reports the number of events logged.
func (l EventLog) Len() int {
	return len(l.events)
}

// Merge returns a new EventLog with other's events appended after l's.
func (l EventLog) Merge(other EventLog) EventLog {
	events := make([]types.HighwayEvent, 0, len(l.events)+len(other.events))
	events = append(events, l.events...)
	events = append(events, other.events...)
	return EventLog{events: events}
}
