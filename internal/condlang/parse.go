package condlang

import (
	"fmt"
	"strings"
)

// Parse compiles one condition string (§3 "condition string grammar") into
// a PropertyCondition or EdgeCondition. NotExists nodes are assembled by
// the rule loader, which recurses into Parse for each sub-condition.
func Parse(raw string) (Condition, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, fmt.Errorf("condlang: empty condition")
	}

	if dir, ok := findArrow(s); ok {
		return parseEdgeCondition(s, dir)
	}

	return parsePropertyCondition(s)
}

// findArrow locates a top-level "-->" or "<--" arrow, ignoring any that
// fall inside a quoted value (condition strings never legitimately need
// an arrow inside a quoted literal, but we scan defensively all the same).
func findArrow(s string) (Direction, bool) {
	inQuote := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote != 0 {
			if c == inQuote {
				inQuote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			inQuote = c
		case '-':
			if strings.HasPrefix(s[i:], "-->") {
				return Outgoing, true
			}
		case '<':
			if strings.HasPrefix(s[i:], "<--") {
				return Incoming, true
			}
		}
	}
	return 0, false
}

func parseEdgeCondition(s string, dir Direction) (Condition, error) {
	var lhs, rhs string
	if dir == Outgoing {
		idx := strings.Index(s, "-->")
		lhs, rhs = s[:idx], s[idx+3:]
	} else {
		idx := strings.Index(s, "<--")
		lhs, rhs = s[:idx], s[idx+3:]
	}
	lhs, rhs = strings.TrimSpace(lhs), strings.TrimSpace(rhs)
	if lhs == "" || rhs == "" {
		return nil, fmt.Errorf("condlang: edge condition %q missing an operand", s)
	}

	edgeType := ""
	if t, ok := extractEdgeType(lhs); ok {
		edgeType = t
	} else if t, ok := extractEdgeType(rhs); ok {
		edgeType = t
	}

	return &EdgeCondition{EdgeType: edgeType, Dir: dir, Source: s}, nil
}

// extractEdgeType inspects an edge-condition operand for the "--TYPE"
// decoration described in §3's edge_cond grammar. A decorated operand is
// two "--"-separated words; the longer word is taken as the edge type,
// since rule variables are conventionally short declarative placeholders
// (S, X, M) while edge type names are multi-character keywords.
func extractEdgeType(operand string) (string, bool) {
	parts := strings.SplitN(operand, "--", 2)
	if len(parts) != 2 {
		return "", false
	}
	a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if a == "" || b == "" {
		return "", false
	}
	if len(b) >= len(a) {
		return b, true
	}
	return a, true
}

func parsePropertyCondition(s string) (Condition, error) {
	pathTok, rest, ok := cutField(s)
	if !ok {
		return nil, fmt.Errorf("condlang: condition %q missing an operator", s)
	}
	opTok, valueTok, ok := cutField(rest)
	if !ok {
		return nil, fmt.Errorf("condlang: condition %q missing a value", s)
	}

	op := Operator(opTok)
	switch op {
	case OpEquals, OpNotEquals, OpIn, OpContains, OpContainsAny, OpStartsWith:
	default:
		return nil, fmt.Errorf("condlang: condition %q has unknown operator %q", s, opTok)
	}

	segments := strings.Split(pathTok, ".")
	if len(segments) < 2 {
		return nil, fmt.Errorf("condlang: condition %q has a malformed path %q", s, pathTok)
	}
	varName := segments[0]
	if varName == "" {
		return nil, fmt.Errorf("condlang: condition %q has an empty variable", s)
	}
	attr := segments[len(segments)-1]
	if attr == "" {
		return nil, fmt.Errorf("condlang: condition %q has an empty attribute", s)
	}

	steps := make([]Step, 0, len(segments)-2)
	for _, seg := range segments[1 : len(segments)-1] {
		steps = append(steps, Step(seg))
	}

	if strings.TrimSpace(valueTok) == "" {
		return nil, fmt.Errorf("condlang: condition %q has an empty value", s)
	}

	return &PropertyCondition{
		Var:      varName,
		Steps:    steps,
		Attr:     attr,
		Op:       op,
		RawValue: valueTok,
		Source:   s,
	}, nil
}

// cutField splits s at the first run of whitespace, returning the first
// field and the (still-leading-whitespace-trimmed) remainder. ok is false
// if s has no whitespace to split on.
func cutField(s string) (field, rest string, ok bool) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return "", "", false
	}
	return s[:i], strings.TrimLeft(s[i:], " \t"), true
}
