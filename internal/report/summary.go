package report

import (
	"fmt"
	"io"
	"sort"
)

// PrintSummary writes the fixed-layout console summary (§4.7, §6.3):
// totals, exclusion rate, and the top-five rules by match count.
func (r Report) PrintSummary(w io.Writer) {
	excluded := len(r.Entries)
	remaining := r.TotalNodes - excluded
	rate := 0.0
	if r.TotalNodes > 0 {
		rate = float64(excluded) / float64(r.TotalNodes) * 100
	}

	fmt.Fprintf(w, "Analyzed:  %d symbols\n", r.TotalNodes)
	fmt.Fprintf(w, "Excluded:  %d symbols (%.1f%%)\n", excluded, rate)
	fmt.Fprintf(w, "Remaining: %d symbols\n", remaining)

	top := r.topRules(5)
	if len(top) == 0 {
		return
	}
	fmt.Fprintln(w, "\nTop rules by match count:")
	for _, rc := range top {
		fmt.Fprintf(w, "  %-40s %d\n", rc.ruleID, rc.count)
	}
}

type ruleCount struct {
	ruleID string
	count  int
}

// topRules returns the n rules with the highest match count, ties broken
// by rule id for determinism.
func (r Report) topRules(n int) []ruleCount {
	counts := r.ruleMatchCounts()
	list := make([]ruleCount, 0, len(counts))
	for id, c := range counts {
		list = append(list, ruleCount{id, c})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].ruleID < list[j].ruleID
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}
