package symgraph

import "testing"

func TestGraph_AddNodeAndGetNode(t *testing.T) {
	g := New()
	g.AddNode(&Node{ID: "n1", Name: "Foo", Kind: "class"})

	got := g.GetNode("n1")
	if got == nil {
		t.Fatal("GetNode(n1) = nil, want node")
	}
	if got.Name != "Foo" || got.Kind != "class" {
		t.Errorf("GetNode(n1) = %+v, want Name=Foo Kind=class", got)
	}

	if g.GetNode("missing") != nil {
		t.Error("GetNode(missing) = non-nil, want nil")
	}
}

func TestGraph_FindAllNodes_PreservesInsertionOrder(t *testing.T) {
	g := New()
	g.AddNode(&Node{ID: "b"})
	g.AddNode(&Node{ID: "a"})
	g.AddNode(&Node{ID: "c"})

	got := g.FindAllNodes()
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("FindAllNodes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FindAllNodes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGraph_GetNeighbors_DirectionAndType(t *testing.T) {
	g := New()
	g.AddNode(&Node{ID: "child"})
	g.AddNode(&Node{ID: "parent"})
	g.AddEdge("parent", "child", EdgeContains)

	out := g.GetNeighbors("parent", EdgeContains, Out)
	if len(out) != 1 || out[0] != "child" {
		t.Errorf("GetNeighbors(parent, CONTAINS, Out) = %v, want [child]", out)
	}

	in := g.GetNeighbors("child", EdgeContains, In)
	if len(in) != 1 || in[0] != "parent" {
		t.Errorf("GetNeighbors(child, CONTAINS, In) = %v, want [parent]", in)
	}

	if got := g.GetNeighbors("parent", EdgeOverrides, Out); got != nil {
		t.Errorf("GetNeighbors with wrong edge type = %v, want nil", got)
	}
}

func TestGraph_GetNeighbors_WildcardEdgeType(t *testing.T) {
	g := New()
	g.AddNode(&Node{ID: "a"})
	g.AddNode(&Node{ID: "b"})
	g.AddNode(&Node{ID: "c"})
	g.AddEdge("a", "b", EdgeCalls)
	g.AddEdge("a", "c", EdgeReferences)

	got := g.GetNeighbors("a", "", Out)
	if len(got) != 2 {
		t.Errorf("GetNeighbors(a, \"\", Out) = %v, want 2 neighbors", got)
	}
}

func TestGraph_AddEdge_SelfLoopIgnored(t *testing.T) {
	g := New()
	g.AddNode(&Node{ID: "a"})
	g.AddEdge("a", "a", EdgeCalls)

	if got := g.GetNeighbors("a", EdgeCalls, Out); got != nil {
		t.Errorf("self-loop should be ignored, got neighbors %v", got)
	}
}

func TestGraph_DanglingEdgeTolerated(t *testing.T) {
	g := New()
	g.AddNode(&Node{ID: "a"})
	// "ghost" is never added as a node.
	g.AddEdge("a", "ghost", EdgeCalls)

	got := g.GetNeighbors("a", EdgeCalls, Out)
	if len(got) != 1 || got[0] != "ghost" {
		t.Errorf("GetNeighbors(a) = %v, want [ghost]", got)
	}
	if g.GetNode("ghost") != nil {
		t.Error("GetNode(ghost) should be nil: never added as a node")
	}
}

func TestNode_Attr_PresentNullVsAbsent(t *testing.T) {
	n := &Node{ID: "n", Attrs: map[string]any{"accessibility": nil}}

	val, ok := n.Attr("accessibility")
	if !ok || val != nil {
		t.Errorf("Attr(accessibility) = (%v, %v), want (nil, true)", val, ok)
	}

	val, ok = n.Attr("moduleName")
	if ok || val != nil {
		t.Errorf("Attr(moduleName) = (%v, %v), want (nil, false)", val, ok)
	}
}
