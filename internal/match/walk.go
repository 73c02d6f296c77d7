package match

import (
	"github.com/swingft/swiftexclude/internal/condlang"
	"github.com/swingft/swiftexclude/internal/symgraph"
)

// walk computes the terminal node set reached from start by applying each
// traversal step in order (§4.4.1). An unrecognised step makes the whole
// path unsatisfiable: walk returns nil. A dead-end traversal also yields
// an empty result, and callers treat both the same way: no terminal node,
// so the condition fails for that start node.
func walk(g *symgraph.Graph, start string, steps []condlang.Step) []string {
	current := []string{start}
	for _, step := range steps {
		var next []string
		seen := make(map[string]bool)
		for _, id := range current {
			var hop []string
			switch step {
			case condlang.StepParent:
				hop = g.GetNeighbors(id, symgraph.EdgeContains, symgraph.In)
			case condlang.StepChild:
				hop = g.GetNeighbors(id, symgraph.EdgeContains, symgraph.Out)
			case condlang.StepSuperclass:
				hop = superclassClosure(g, id)
			default:
				return nil
			}
			for _, h := range hop {
				if !seen[h] {
					seen[h] = true
					next = append(next, h)
				}
			}
		}
		current = next
		if len(current) == 0 {
			return current
		}
	}
	return current
}

// superclassClosure walks INHERITS_FROM and CONFORMS_TO edges outward from
// start via an explicit worklist with a visited set, tolerating cycles in
// malformed input. start itself is included in the result (§4.4.1).
func superclassClosure(g *symgraph.Graph, start string) []string {
	visited := map[string]bool{start: true}
	order := []string{start}
	queue := []string{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		neighbors := g.GetNeighbors(cur, symgraph.EdgeInheritsFrom, symgraph.Out)
		neighbors = append(neighbors, g.GetNeighbors(cur, symgraph.EdgeConformsTo, symgraph.Out)...)

		for _, n := range neighbors {
			if visited[n] {
				continue
			}
			visited[n] = true
			order = append(order, n)
			queue = append(queue, n)
		}
	}

	return order
}
