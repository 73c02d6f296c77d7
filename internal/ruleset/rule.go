// Package ruleset loads the YAML rule database (§6.2) into an ordered
// list of compiled Rule values (C2 — Rule Loader).
package ruleset

import "github.com/swingft/swiftexclude/internal/condlang"

// Rule is one ordered {id, description, pattern} record. The find clause
// carries no information beyond "a find clause is present" — the engine
// always evaluates where-conditions against the candidate under test — so
// only the compiled where-conditions survive into this type.
type Rule struct {
	ID          string
	Description string
	Conditions  []condlang.Condition
}
