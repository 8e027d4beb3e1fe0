package assemble

import (
	"slices"
	"testing"

	"github.com/ndexcontent/tcgaloader/pkg/errors"
	"github.com/ndexcontent/tcgaloader/pkg/network"
)

func familyScenario(famName string) Input {
	nodes := []network.NodeRecord{
		{ID: "1", Name: "A", Type: network.TypeGene, ParentID: network.NoParent},
		{ID: "2", Name: "B", Type: network.TypeGene, ParentID: network.NoParent},
		{ID: "3", Name: famName, Type: network.TypeFamily, ParentID: network.NoParent},
	}
	return Input{
		Nodes: nodes,
		Edges: []network.EdgeRecord{
			{ID: "e1", SourceID: "1", TargetID: "3", Type: "x"},
			{ID: "e2", SourceID: "2", TargetID: "3", Type: "x"},
		},
		IDs: network.NewIDMap(nodes),
	}
}

func run(t *testing.T, in Input) *Assembly {
	t.Helper()
	a, err := Assemble(in)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	AggregateMembers(a.Records)
	NameContainers(a.Records, a.IDs)
	RestoreNames(a.Records, a.IDs)
	return a
}

func TestFamilyMembers(t *testing.T) {
	a := run(t, familyScenario("Fam"))

	if len(a.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(a.Records))
	}
	for _, r := range a.Records {
		want := []string{"hgnc.symbol:A", "hgnc.symbol:B"}
		if !slices.Equal(r.Target.Members, want) {
			t.Errorf("members of %s = %v, want %v", r.Target.ID, r.Target.Members, want)
		}
		if r.Target.Name != "Fam" {
			t.Errorf("container renamed to %q", r.Target.Name)
		}
		if r.Target.Kind != network.KindProteinFamily || r.Source.Kind != network.KindProtein {
			t.Errorf("kinds = %s/%s", r.Source.Kind, r.Target.Kind)
		}
		if r.Source.Members != nil {
			t.Errorf("protein endpoint has members %v", r.Source.Members)
		}
	}
}

func TestSyntheticFamilyName(t *testing.T) {
	a := run(t, familyScenario(""))

	for _, r := range a.Records {
		if r.Target.Name != "family A B" {
			t.Errorf("name = %q, want %q", r.Target.Name, "family A B")
		}
	}
	if name, _ := a.IDs.Resolve("3"); name != "family A B" {
		t.Errorf("id map not updated: %q", name)
	}
}

func TestMembersByParent(t *testing.T) {
	nodes := []network.NodeRecord{
		{ID: "1", Name: "EGFR", Type: network.TypeGene, ParentID: "3"},
		{ID: "2", Name: "p53/p21", Type: network.TypeGene, ParentID: "3"},
		{ID: "3", Name: "undefined", Type: network.TypeComplex, ParentID: network.NoParent},
		{ID: "4", Name: "KRAS", Type: network.TypeGene, ParentID: network.NoParent},
	}
	in := Input{
		Nodes: nodes,
		Edges: []network.EdgeRecord{
			{ID: "e1", SourceID: "1", TargetID: "2", Type: "binds"},
			{ID: "e2", SourceID: "4", TargetID: "3", Type: "activates"},
		},
		IDs: network.NewIDMap(nodes),
	}
	a := run(t, in)

	target := a.Records[1].Target
	want := []string{"hgnc.symbol:EGFR", "p53/p21"}
	if !slices.Equal(target.Members, want) {
		t.Errorf("members = %v, want %v", target.Members, want)
	}
	if target.Name != "complex EGFR p53/p21" {
		t.Errorf("name = %q", target.Name)
	}
	if got := a.Records[0].Source.ParentName; got != "complex EGFR p53/p21" {
		t.Errorf("parent name not restored: %q", got)
	}
}

func TestFallbackIgnoresOwnTargets(t *testing.T) {
	// KRAS and NRAS belong to family 3 but appear in no edge.
	nodes := []network.NodeRecord{
		{ID: "1", Name: "KRAS", Type: network.TypeGene, ParentID: "3"},
		{ID: "2", Name: "NRAS", Type: network.TypeGene, ParentID: "3"},
		{ID: "3", Name: "", Type: network.TypeFamily, ParentID: network.NoParent},
		{ID: "4", Name: "PIK3CA", Type: network.TypeGene, ParentID: network.NoParent},
		{ID: "5", Name: "EGFR", Type: network.TypeGene, ParentID: network.NoParent},
		{ID: "6", Name: "", Type: network.TypeComplex, ParentID: network.NoParent},
	}
	in := Input{
		Nodes: nodes,
		Edges: []network.EdgeRecord{
			{ID: "e1", SourceID: "3", TargetID: "4", Type: "activates"},
			{ID: "e2", SourceID: "5", TargetID: "6", Type: "binds"},
			{ID: "e3", SourceID: "6", TargetID: "4", Type: "activates"},
		},
		IDs: network.NewIDMap(nodes),
	}
	a := run(t, in)

	tests := []struct {
		record  int
		name    string
		members []string
	}{
		{0, "family", nil},
		{1, "complex EGFR", []string{"hgnc.symbol:EGFR"}},
		{2, "complex EGFR", []string{"hgnc.symbol:EGFR"}},
	}
	for _, tt := range tests {
		e := a.Records[tt.record].Source
		if tt.record == 1 {
			e = *a.Records[tt.record].Target
		}
		if e.Name != tt.name || !slices.Equal(e.Members, tt.members) {
			t.Errorf("record %d container = %q %v, want %q %v", tt.record, e.Name, e.Members, tt.name, tt.members)
		}
	}
}

func TestNoSelfMembership(t *testing.T) {
	nodes := []network.NodeRecord{
		{ID: "1", Name: "Fam", Type: network.TypeFamily, ParentID: network.NoParent},
		{ID: "2", Name: "A", Type: network.TypeGene, ParentID: "1"},
	}
	in := Input{
		Nodes: nodes,
		Edges: []network.EdgeRecord{
			{ID: "e1", SourceID: "1", TargetID: "1", Type: "self"},
			{ID: "e2", SourceID: "2", TargetID: "1", Type: "x"},
		},
		IDs: network.NewIDMap(nodes),
	}
	members := AggregateMembers(mustAssemble(t, in).Records)
	if slices.Contains(members["1"], "Fam") || slices.Contains(members["1"], "hgnc.symbol:Fam") {
		t.Errorf("container is its own member: %v", members["1"])
	}
}

func TestDedupeEdgesOrderStable(t *testing.T) {
	nodes := []network.NodeRecord{
		{ID: "1", Name: "A"}, {ID: "2", Name: "B"}, {ID: "3", Name: "A"},
	}
	ids := network.NewIDMap(nodes)
	edges := []network.EdgeRecord{
		{ID: "first", SourceID: "1", TargetID: "2", Type: "x"},
		{ID: "other-type", SourceID: "1", TargetID: "2", Type: "y"},
		{ID: "same-names", SourceID: "3", TargetID: "2", Type: "x"},
		{ID: "reverse", SourceID: "2", TargetID: "1", Type: "x"},
	}

	got, err := DedupeEdges(edges, ids)
	if err != nil {
		t.Fatal(err)
	}
	var gotIDs []string
	for _, e := range got {
		gotIDs = append(gotIDs, e.ID)
	}
	want := []string{"first", "other-type", "reverse"}
	if !slices.Equal(gotIDs, want) {
		t.Errorf("kept = %v, want %v", gotIDs, want)
	}

	slices.Reverse(edges)
	got, _ = DedupeEdges(edges, ids)
	if got[1].ID != "same-names" {
		t.Errorf("after reversing, kept %q, want same-names", got[1].ID)
	}
}

func TestDedupeEdgesUnnamedEndpoints(t *testing.T) {
	nodes := []network.NodeRecord{
		{ID: "1", Name: "A"},
		{ID: "2", Name: "", Type: network.TypeComplex},
		{ID: "3", Name: "undefined", Type: network.TypeComplex},
		{ID: "4", Name: " ", Type: network.TypeFamily},
	}
	edges := []network.EdgeRecord{
		{ID: "e1", SourceID: "1", TargetID: "2", Type: "x"},
		{ID: "e2", SourceID: "1", TargetID: "3", Type: "x"},
		{ID: "e3", SourceID: "1", TargetID: "4", Type: "x"},
		{ID: "e4", SourceID: "1", TargetID: "2", Type: "x"},
	}
	got, err := DedupeEdges(edges, network.NewIDMap(nodes))
	if err != nil {
		t.Fatal(err)
	}
	var gotIDs []string
	for _, e := range got {
		gotIDs = append(gotIDs, e.ID)
	}
	if want := []string{"e1", "e2", "e3"}; !slices.Equal(gotIDs, want) {
		t.Errorf("kept = %v, want %v", gotIDs, want)
	}
}

func TestUnresolvedEndpoint(t *testing.T) {
	nodes := []network.NodeRecord{{ID: "1", Name: "A"}}
	in := Input{
		Nodes: nodes,
		Edges: []network.EdgeRecord{{ID: "e1", SourceID: "1", TargetID: "42"}},
		IDs:   network.NewIDMap(nodes),
	}
	if _, err := Assemble(in); !errors.Is(err, errors.ErrCodeUnresolvedIdentifier) {
		t.Errorf("error = %v, want UNRESOLVED_IDENTIFIER", err)
	}
}

func TestIsolatedKeepRule(t *testing.T) {
	nodes := []network.NodeRecord{
		{ID: "1", Name: "A", Type: network.TypeGene, ParentID: network.NoParent},
		{ID: "2", Name: "B", Type: network.TypeGene, ParentID: network.NoParent},
		{ID: "3", Name: "Apoptosis", Type: network.TypeProcess, ParentID: network.NoParent},
		{ID: "4", Name: "Orphan", Type: network.TypeGene, ParentID: network.NoParent},
		{ID: "5", Name: "Inner", Type: network.TypeProcess, ParentID: "6"},
		{ID: "6", Name: "Nucleus", Type: network.TypeCompartment, ParentID: network.NoParent},
		{ID: "7", Name: "Ligand", Type: "LIGAND", ParentID: network.NoParent},
	}
	in := Input{
		Nodes: nodes,
		Edges: []network.EdgeRecord{{ID: "e1", SourceID: "1", TargetID: "2", Type: "x"}},
		IDs:   network.NewIDMap(nodes),
	}
	a := mustAssemble(t, in)

	var isolated []string
	for _, r := range a.Records {
		if r.IsIsolated() {
			isolated = append(isolated, r.Source.Name)
		}
	}
	want := []string{"Apoptosis", "Nucleus", "Ligand"}
	if !slices.Equal(isolated, want) {
		t.Errorf("isolated = %v, want %v", isolated, want)
	}
	if a.Records[3].Source.Kind != network.KindOther {
		t.Errorf("LIGAND kind = %s, want other", a.Records[3].Source.Kind)
	}
}

func TestJoinRemovedNode(t *testing.T) {
	nodes := []network.NodeRecord{
		{ID: "1", Name: "A", Type: network.TypeGene, ParentID: network.NoParent},
		{ID: "3", Name: "Membrane", Type: network.TypeCompartment, ParentID: network.NoParent},
	}
	removed := []network.NodeRecord{
		{ID: "2", Name: "RTK", Type: network.TypeFamily, ParentID: "3"},
	}
	all := append(slices.Clone(nodes), removed...)
	in := Input{
		Nodes:   nodes,
		Removed: removed,
		Edges:   []network.EdgeRecord{{ID: "e1", SourceID: "1", TargetID: "2", Type: "x"}},
		IDs:     network.NewIDMap(all),
	}
	a := mustAssemble(t, in)
	if a.Records[0].Target.Name != "RTK" || a.Records[0].Target.ParentName != "Membrane" {
		t.Errorf("target = %+v", a.Records[0].Target)
	}
}

func TestSyntheticName(t *testing.T) {
	tests := []struct {
		kind    network.Kind
		members []string
		want    string
	}{
		{network.KindProteinFamily, []string{"hgnc.symbol:B", "hgnc.symbol:A"}, "family A B"},
		{network.KindComplex, []string{"E", "D", "C", "B", "A"}, "complex A B C D ..."},
		{network.KindCompartment, []string{"A", "B", "C", "D"}, "compartment A B C D"},
		{network.KindComplex, nil, "complex"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := SyntheticName(tt.kind, tt.members); got != tt.want {
				t.Errorf("SyntheticName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitMembers(t *testing.T) {
	tests := []struct {
		name    string
		members []string
		joined  string
	}{
		{"plain", []string{"a", "b"}, "a|b"},
		{"separator", []string{"A|B x", "hgnc.symbol:C"}, `A\|B x|hgnc.symbol:C`},
		{"backslash", []string{`C\`, "D"}, `C\\|D`},
		{"empty member", []string{"", "a"}, "|a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			joined := JoinMembers(tt.members)
			if joined != tt.joined {
				t.Errorf("JoinMembers() = %q, want %q", joined, tt.joined)
			}
			if got := SplitMembers(joined); !slices.Equal(got, tt.members) {
				t.Errorf("SplitMembers(%q) = %q, want %q", joined, got, tt.members)
			}
		})
	}
	if SplitMembers("") != nil {
		t.Error("empty column should give nil")
	}
}

func mustAssemble(t *testing.T, in Input) *Assembly {
	t.Helper()
	a, err := Assemble(in)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return a
}
