package symgraph

import (
	"encoding/json"
	"fmt"
	"os"
)

// documentNode is the JSON shape of one entry in the "nodes" object:
// {name, kind, location?, ...free-form attrs}.
type documentNode struct {
	Name     string    `json:"name"`
	Kind     string    `json:"kind"`
	Location *Location `json:"location,omitempty"`
}

// documentEdge is the JSON shape of one entry in the "edges" array.
type documentEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// document is the top-level symbol graph document (§6.1). Unknown top-level
// keys are ignored by virtue of not being referenced here.
type document struct {
	Nodes map[string]json.RawMessage `json:"nodes"`
	Edges []documentEdge             `json:"edges"`
}

// Load reads and parses a symbol graph JSON file from path, returning a
// fully built, read-only Graph. A missing file is a fatal error per §4.8.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path supplied by operator/CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading symbol graph %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a Graph from raw symbol-graph JSON bytes.
func Parse(data []byte) (*Graph, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing symbol graph: %w", err)
	}

	g := New()

	for id, raw := range doc.Nodes {
		node, err := parseNode(id, raw)
		if err != nil {
			return nil, fmt.Errorf("parsing node %q: %w", id, err)
		}
		g.AddNode(node)
	}

	for _, e := range doc.Edges {
		if e.Source == "" || e.Target == "" {
			continue
		}
		g.AddEdge(e.Source, e.Target, EdgeType(e.Type))
	}

	return g, nil
}

// parseNode decodes one node entry, splitting the fixed fields
// (name/kind/location) from the free-form attribute bag.
func parseNode(id string, raw json.RawMessage) (*Node, error) {
	var fixed documentNode
	if err := json.Unmarshal(raw, &fixed); err != nil {
		return nil, err
	}

	var attrs map[string]any
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return nil, err
	}
	delete(attrs, "name")
	delete(attrs, "kind")
	delete(attrs, "location")

	return &Node{
		ID:       id,
		Name:     fixed.Name,
		Kind:     fixed.Kind,
		Location: fixed.Location,
		Attrs:    attrs,
	}, nil
}
