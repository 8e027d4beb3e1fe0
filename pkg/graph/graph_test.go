package graph

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func buildSample() *Graph {
	g := New("gbm", "RTK signalling")
	egfr := g.AddNode("EGFR")
	egfr.X, egfr.Y = ptr(10), ptr(20)
	egfr.SetAttr(AttrType, "protein")
	rtk := g.AddNode("family EGFR ERBB2")
	rtk.SetAttr(AttrType, "proteinfamily")
	rtk.SetAttr(AttrMember, []string{"hgnc.symbol:EGFR", "hgnc.symbol:ERBB2"})
	g.AddEdge(0, 1, "activates")
	return g
}

func TestAddNodeDedupesByName(t *testing.T) {
	g := New("x", "")
	a := g.AddNode("A")
	a.SetAttr("k", "v")
	g.AddNode("B")
	again := g.AddNode("A")

	if g.NodeCount() != 2 {
		t.Fatalf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if again.ID != 0 || again.Attrs["k"] != "v" {
		t.Errorf("AddNode(A) returned %+v", again)
	}
	if n, ok := g.Node("B"); !ok || n.ID != 1 {
		t.Errorf("Node(B) = %+v, %v", n, ok)
	}
	if _, ok := g.NodeByID(7); ok {
		t.Error("NodeByID(7) should not exist")
	}
}

func TestRoundTrip(t *testing.T) {
	g := buildSample()
	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Name != "gbm" || got.Description != "RTK signalling" {
		t.Errorf("metadata = %q/%q", got.Name, got.Description)
	}
	if got.NodeCount() != 2 || got.EdgeCount() != 1 {
		t.Fatalf("counts = %d/%d", got.NodeCount(), got.EdgeCount())
	}
	if n, _ := got.Node("EGFR"); !n.HasPosition() || *n.X != 10 || n.Type() != "protein" {
		t.Errorf("EGFR = %+v", n)
	}
	if got.Edges[0].Interaction != "activates" {
		t.Errorf("interaction = %q", got.Edges[0].Interaction)
	}

	path := filepath.Join(t.TempDir(), "g.json")
	if err := WriteFile(g, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := ReadFile(path); err != nil {
		t.Errorf("ReadFile: %v", err)
	}
}

func TestReadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Malformed", `{"nodes": [`},
		{"DuplicateID", `{"nodes": [{"id": 1, "name": "a"}, {"id": 1, "name": "b"}]}`},
		{"UnknownEdgeNode", `{"nodes": [{"id": 0, "name": "a"}], "edges": [{"id": 0, "source": 0, "target": 3}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReadEmptyGraph(t *testing.T) {
	g, err := Read(bytes.NewReader([]byte(`{"name": "empty"}`)))
	if err != nil {
		t.Fatal(err)
	}
	if g.Nodes == nil || g.Edges == nil {
		t.Error("Nodes and Edges should be non-nil")
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(buildSample(), DOTOptions{Scale: 2})

	for _, want := range []string{
		`digraph "gbm"`,
		`n0 [label="EGFR", shape=ellipse, pos="20,-40!"]`,
		`n1 [label="family EGFR ERBB2", shape=box]`,
		`n0 -> n1 [label="activates"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	detailed := ToDOT(buildSample(), DOTOptions{Detailed: true})
	if !strings.Contains(detailed, `type: proteinfamily`) {
		t.Errorf("detailed DOT missing attributes:\n%s", detailed)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}
