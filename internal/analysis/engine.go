// Package analysis runs the rule set against a symbol graph and
// accumulates, per node, the reasons it must be excluded from obfuscation
// (C6 — Analysis Engine).
package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/swingft/swiftexclude/internal/match"
	"github.com/swingft/swiftexclude/internal/ruleset"
	"github.com/swingft/swiftexclude/internal/symgraph"
)

// Reason is one matched rule's contribution to a node's exclusion.
type Reason struct {
	RuleID      string
	Description string
}

// Accumulator holds, per node id, the ordered list of reasons it matched.
// Insertion order of ids matches the order in which each id was first
// matched by any rule; within an id, reason order matches rule
// declaration order.
type Accumulator struct {
	reasons map[string][]Reason
	order   []string
}

func newAccumulator() *Accumulator {
	return &Accumulator{reasons: make(map[string][]Reason)}
}

func (a *Accumulator) add(id string, r Reason) {
	if _, exists := a.reasons[id]; !exists {
		a.order = append(a.order, id)
	}
	a.reasons[id] = append(a.reasons[id], r)
}

// Reasons returns the reasons recorded for id, in match order.
func (a *Accumulator) Reasons(id string) []Reason {
	return a.reasons[id]
}

// Run applies every rule in declaration order, invoking the matcher and
// folding matches into an Accumulator. handle may be nil. It returns the
// accumulator and the run's id (stamped on every emitted Event).
func Run(g *symgraph.Graph, rules []ruleset.Rule, handle EventHandler) (*Accumulator, string) {
	if handle == nil {
		handle = func(Event) {}
	}

	runID := uuid.New().String()
	handle(NewEvent(EventRunStarted, runID))

	acc := newAccumulator()
	for _, rule := range rules {
		start := time.Now()
		handle(NewEvent(EventRuleStarted, runID).WithRule(rule.ID))

		matched := match.Run(g, rule.Conditions)
		for _, id := range matched {
			acc.add(id, Reason{RuleID: rule.ID, Description: rule.Description})
		}

		handle(NewEvent(EventRuleFinished, runID).
			WithRule(rule.ID).
			WithElapsed(time.Since(start)).
			WithMatched(len(matched)))
	}

	handle(NewEvent(EventRunFinished, runID))
	return acc, runID
}

// Result is one excluded symbol's resolved metadata plus its reasons.
type Result struct {
	ID       string
	Name     string
	Kind     string
	Location *symgraph.Location
	Reasons  []Reason
}

// BuildResults resolves every accumulated id against the graph, dropping
// ids with no corresponding node (§4.6 "orphaned matches ... silently
// dropped"). Order follows the accumulator's first-matched order.
func BuildResults(g *symgraph.Graph, acc *Accumulator) []Result {
	var out []Result
	for _, id := range acc.order {
		node := g.GetNode(id)
		if node == nil {
			continue
		}
		out = append(out, Result{
			ID:       id,
			Name:     node.Name,
			Kind:     node.Kind,
			Location: node.Location,
			Reasons:  acc.reasons[id],
		})
	}
	return out
}
