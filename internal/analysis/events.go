package analysis

import "time"

// EventKind identifies a point in the analysis run's progress.
type EventKind string

const (
	EventRunStarted   EventKind = "run_started"
	EventRuleStarted  EventKind = "rule_started"
	EventRuleFinished EventKind = "rule_finished"
	EventRunFinished  EventKind = "run_finished"
)

// Event is one point-in-time progress notification emitted during a run.
type Event struct {
	Kind    EventKind
	RunID   string
	RuleID  string
	Time    time.Time
	Elapsed time.Duration
	Matched int
}

// NewEvent creates an event of kind for the given run, stamped with the
// current time.
func NewEvent(kind EventKind, runID string) Event {
	return Event{Kind: kind, RunID: runID, Time: time.Now()}
}

// WithRule attaches the rule id a rule_started/rule_finished event concerns.
func (e Event) WithRule(ruleID string) Event {
	e.RuleID = ruleID
	return e
}

// WithElapsed attaches how long the rule took to evaluate.
func (e Event) WithElapsed(d time.Duration) Event {
	e.Elapsed = d
	return e
}

// WithMatched attaches how many candidates the rule matched.
func (e Event) WithMatched(n int) Event {
	e.Matched = n
	return e
}

// EventHandler receives one Event at a time. Handlers must not block the
// caller for long; the engine is single-threaded and waits on every call.
type EventHandler func(Event)

// MultiEventHandler fans one event out to every handler in order.
func MultiEventHandler(handlers ...EventHandler) EventHandler {
	return func(e Event) {
		for _, h := range handlers {
			if h != nil {
				h(e)
			}
		}
	}
}

// ChannelEventHandler publishes events to ch without blocking; an event is
// dropped if the channel has no room.
func ChannelEventHandler(ch chan<- Event) EventHandler {
	return func(e Event) {
		select {
		case ch <- e:
		default:
		}
	}
}
