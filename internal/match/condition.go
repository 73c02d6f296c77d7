// Package match drives the Condition Evaluator (C4) and Pattern Matcher
// (C5): it reduces a candidate node set by one condition at a time, and
// runs the full find/where pipeline for a rule.
package match

import (
	"github.com/swingft/swiftexclude/internal/condlang"
	"github.com/swingft/swiftexclude/internal/symgraph"
)

// Evaluate reduces candidates by one condition, dispatching on its
// concrete type. The returned slice is a new slice; candidates is never
// mutated in place.
func Evaluate(g *symgraph.Graph, candidates []string, cond condlang.Condition) []string {
	switch c := cond.(type) {
	case *condlang.PropertyCondition:
		return evaluateProperty(g, candidates, c)
	case *condlang.EdgeCondition:
		return evaluateEdge(g, candidates, c)
	case *condlang.NotExists:
		return evaluateNotExists(g, candidates, c)
	default:
		return nil
	}
}

func evaluateProperty(g *symgraph.Graph, candidates []string, pc *condlang.PropertyCondition) []string {
	var kept []string
	for _, id := range candidates {
		terminals := walk(g, id, pc.Steps)
		satisfied := false
		for _, t := range terminals {
			node := g.GetNode(t)
			if node == nil {
				continue
			}
			attrVal, present := nodeAttr(node, pc.Attr)
			if checkOperator(pc.Op, attrVal, present, pc.RawValue) {
				satisfied = true
				break
			}
		}
		if satisfied {
			kept = append(kept, id)
		}
	}
	return kept
}

func evaluateEdge(g *symgraph.Graph, candidates []string, ec *condlang.EdgeCondition) []string {
	dir := symgraph.Out
	if ec.Dir == condlang.Incoming {
		dir = symgraph.In
	}

	var kept []string
	for _, id := range candidates {
		if len(g.GetNeighbors(id, symgraph.EdgeType(ec.EdgeType), dir)) > 0 {
			kept = append(kept, id)
		}
	}
	return kept
}

// evaluateNotExists applies §4.4.4: per candidate, replay the sub-pattern
// starting from the singleton {candidate}; if anything survives, the
// candidate is forbidden and excluded.
func evaluateNotExists(g *symgraph.Graph, candidates []string, ne *condlang.NotExists) []string {
	var kept []string
	for _, id := range candidates {
		set := []string{id}
		for _, sub := range ne.SubConditions {
			set = Evaluate(g, set, sub)
			if len(set) == 0 {
				break
			}
		}
		if len(set) == 0 {
			kept = append(kept, id)
		}
	}
	return kept
}

// nodeAttr resolves a path's terminal attribute name, checking the fixed
// node fields before the free-form attribute bag.
func nodeAttr(n *symgraph.Node, name string) (value any, present bool) {
	switch name {
	case "id":
		return n.ID, true
	case "name":
		return n.Name, true
	case "kind":
		return n.Kind, true
	default:
		return n.Attr(name)
	}
}
