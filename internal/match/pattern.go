package match

import (
	"github.com/swingft/swiftexclude/internal/condlang"
	"github.com/swingft/swiftexclude/internal/symgraph"
)

// Run drives the find/where pipeline (§4.5): seed the candidate set with
// every node in the graph, then narrow it by each where-condition in
// declaration order, short-circuiting as soon as the set empties.
func Run(g *symgraph.Graph, conditions []condlang.Condition) []string {
	candidates := g.FindAllNodes()
	for _, cond := range conditions {
		candidates = Evaluate(g, candidates, cond)
		if len(candidates) == 0 {
			return candidates
		}
	}
	return candidates
}
