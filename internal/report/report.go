// Package report assembles the two output artifacts and console summary
// described in §6.3 (C7 — Report Assembler).
package report

import (
	"sort"

	"github.com/swingft/swiftexclude/internal/analysis"
	"github.com/swingft/swiftexclude/internal/symgraph"
)

// ReasonEntry is the JSON shape of one accumulated reason.
type ReasonEntry struct {
	RuleID      string `json:"rule_id"`
	Description string `json:"description"`
}

// Entry is one excluded symbol's structured report record (§4.7).
type Entry struct {
	Name     string             `json:"name"`
	Kind     string             `json:"kind"`
	Location *symgraph.Location `json:"location,omitempty"`
	Reasons  []ReasonEntry      `json:"reasons"`
}

// Report holds both output artifacts plus the counts the console summary
// needs.
type Report struct {
	Entries    []Entry
	TotalNodes int
}

// Assemble converts analysis results into a Report. totalNodes is the
// graph's full node count, used for the console summary's exclusion rate.
func Assemble(results []analysis.Result, totalNodes int) Report {
	entries := make([]Entry, len(results))
	for i, r := range results {
		reasons := make([]ReasonEntry, len(r.Reasons))
		for j, reason := range r.Reasons {
			reasons[j] = ReasonEntry{RuleID: reason.RuleID, Description: reason.Description}
		}
		entries[i] = Entry{Name: r.Name, Kind: r.Kind, Location: r.Location, Reasons: reasons}
	}
	return Report{Entries: entries, TotalNodes: totalNodes}
}

// Names returns the alphabetically sorted, de-duplicated set of excluded
// symbol names (§4.7 "name-only list").
func (r Report) Names() []string {
	seen := make(map[string]bool, len(r.Entries))
	names := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		if !seen[e.Name] {
			seen[e.Name] = true
			names = append(names, e.Name)
		}
	}
	sort.Strings(names)
	return names
}

// ruleMatchCounts tallies how many distinct symbols each rule matched, for
// the console summary's top-5 section.
func (r Report) ruleMatchCounts() map[string]int {
	counts := make(map[string]int)
	for _, e := range r.Entries {
		for _, reason := range e.Reasons {
			counts[reason.RuleID]++
		}
	}
	return counts
}
