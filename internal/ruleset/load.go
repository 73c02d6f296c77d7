package ruleset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/swingft/swiftexclude/internal/condlang"
)

// Load reads and parses a rule file from path. A missing file or a
// structurally invalid YAML document is fatal (§4.8 "Input-file-missing");
// individual malformed rules are reported as recoverable diagnostics and
// simply excluded from the returned rule list.
func Load(path string) ([]Rule, []Diagnostic, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path supplied by operator/CLI flag
	if err != nil {
		return nil, nil, fmt.Errorf("reading rule file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds the rule list from raw YAML bytes.
func Parse(data []byte) ([]Rule, []Diagnostic, error) {
	var doc struct {
		Rules []yaml.Node `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing rule file: %w", err)
	}

	var rules []Rule
	var diags []Diagnostic
	seenIDs := make(map[string]bool, len(doc.Rules))

	for _, rn := range doc.Rules {
		rule, diag, ok := parseRule(rn, seenIDs)
		if !ok {
			diags = append(diags, diag)
			continue
		}
		seenIDs[rule.ID] = true
		rules = append(rules, rule)
	}

	return rules, diags, nil
}

func parseRule(rn yaml.Node, seenIDs map[string]bool) (Rule, Diagnostic, bool) {
	var fields struct {
		ID          string   `yaml:"id"`
		Description string   `yaml:"description"`
		Pattern     yaml.Node `yaml:"pattern"`
	}
	if err := rn.Decode(&fields); err != nil {
		return Rule{}, Diagnostic{
			Code: "RULE_MALFORMED", Severity: SeverityError,
			Message: err.Error(), Line: rn.Line,
		}, false
	}

	if fields.ID == "" {
		return Rule{}, Diagnostic{
			Code: "RULE_MISSING_ID", Severity: SeverityError,
			Message: "rule is missing an id", Line: rn.Line,
		}, false
	}
	if seenIDs[fields.ID] {
		return Rule{}, Diagnostic{
			Code: "RULE_DUPLICATE_ID", Severity: SeverityError,
			Message: fmt.Sprintf("duplicate rule id %q", fields.ID),
			RuleID:  fields.ID, Line: rn.Line,
		}, false
	}

	conditions, err := parsePattern(&fields.Pattern)
	if err != nil {
		return Rule{}, Diagnostic{
			Code: "RULE_MALFORMED_PATTERN", Severity: SeverityError,
			Message: err.Error(), RuleID: fields.ID, Line: rn.Line,
		}, false
	}

	return Rule{ID: fields.ID, Description: fields.Description, Conditions: conditions}, Diagnostic{}, true
}

// parsePattern validates the clause list shape (§3 "Rule.": exactly one
// find clause first, zero or one where clauses after) and compiles the
// where-conditions.
func parsePattern(pattern *yaml.Node) ([]condlang.Condition, error) {
	if pattern.Kind != yaml.SequenceNode || len(pattern.Content) == 0 {
		return nil, fmt.Errorf("pattern must be a non-empty list of clauses")
	}
	if len(pattern.Content) > 2 {
		return nil, fmt.Errorf("pattern must contain at most a find clause and a where clause")
	}

	key, _, err := singleKey(pattern.Content[0])
	if err != nil {
		return nil, err
	}
	if key != "find" {
		return nil, fmt.Errorf("pattern must begin with a find clause, got %q", key)
	}

	if len(pattern.Content) == 1 {
		return nil, nil
	}

	key, val, err := singleKey(pattern.Content[1])
	if err != nil {
		return nil, err
	}
	if key != "where" {
		return nil, fmt.Errorf("second clause must be where, got %q", key)
	}
	if val.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("where clause must be a list of conditions")
	}

	conditions := make([]condlang.Condition, 0, len(val.Content))
	for _, item := range val.Content {
		c, err := parseConditionNode(item)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, c)
	}
	return conditions, nil
}

// parseConditionNode parses one where-list entry: either a scalar
// condition string or a {not_exists: [...]} object.
func parseConditionNode(n *yaml.Node) (condlang.Condition, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return condlang.Parse(n.Value)

	case yaml.MappingNode:
		key, val, err := singleKey(n)
		if err != nil {
			return nil, err
		}
		if key != "not_exists" {
			return nil, fmt.Errorf("unsupported where-clause object %q (expected not_exists)", key)
		}
		if val.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("not_exists value must be a list of conditions")
		}
		subs := make([]condlang.Condition, 0, len(val.Content))
		for _, sub := range val.Content {
			c, err := parseConditionNode(sub)
			if err != nil {
				return nil, err
			}
			subs = append(subs, c)
		}
		return &condlang.NotExists{SubConditions: subs}, nil

	default:
		return nil, fmt.Errorf("unsupported where-clause entry")
	}
}

func singleKey(n *yaml.Node) (string, *yaml.Node, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return "", nil, fmt.Errorf("clause must be a single-key mapping")
	}
	return n.Content[0].Value, n.Content[1], nil
}
