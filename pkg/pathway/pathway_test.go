package pathway

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ndexcontent/tcgaloader/pkg/errors"
	"github.com/ndexcontent/tcgaloader/pkg/network"
)

const sample = "Glioblastoma: RTK/RAS/PI(3)K\n" +
	"Genomic alterations\n" +
	"\n" +
	"  of the RTK pathway.  \n" +
	"--NODE_NAME\tNODE_ID\tNODE_TYPE\tPARENT_ID\tPOSX\tPOSY--\n" +
	"EGFR\t1\tGENE\t3\t100\t200\n" +
	"ERBB2\t2\tGENE\t3\t140.5\t200\n" +
	"RTK\t3\tFAMILY\t-1\n" +
	"\n" +
	"--EDGE_ID\tSOURCE\tTARGET\tEDGE_TYPE--\n" +
	"e1\t1\t2\tACTIVATES\n" +
	"e2\t2\t3\tInhibits\r\n" +
	"\n"

func TestTokenize(t *testing.T) {
	tok, err := Tokenize(sample)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	if tok.Title != "Glioblastoma: RTK/RAS/PI(3)K" {
		t.Errorf("Title = %q", tok.Title)
	}
	if tok.Description != "Genomic alterations of the RTK pathway." {
		t.Errorf("Description = %q", tok.Description)
	}
	if got := len(tok.NodeRows); got != 3 {
		t.Errorf("node rows = %d, want 3", got)
	}
	if got := len(tok.EdgeRows); got != 2 {
		t.Errorf("edge rows = %d, want 2", got)
	}

	wantNodeCols := []string{"NODE_NAME", "NODE_ID", "NODE_TYPE", "PARENT_ID", "POSX", "POSY"}
	if got := tok.NodeColumns(); !slices.Equal(got, wantNodeCols) {
		t.Errorf("NodeColumns() = %v, want %v", got, wantNodeCols)
	}
	wantEdgeCols := []string{"EDGE_ID", "SOURCE", "TARGET", "EDGE_TYPE"}
	if got := tok.EdgeColumns(); !slices.Equal(got, wantEdgeCols) {
		t.Errorf("EdgeColumns() = %v, want %v", got, wantEdgeCols)
	}
	if got := tok.EdgeRows[1][3]; got != "Inhibits" {
		t.Errorf("trailing CR not stripped: %q", got)
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{
			name:  "NoSentinel",
			input: "title\nNODE_NAME\tNODE_ID\nA\t1\n\nEDGE_ID\n",
			code:  errors.ErrCodeMalformedSection,
		},
		{
			name:  "NoSeparator",
			input: "title\n--NODE_NAME\tNODE_ID--\nA\t1",
			code:  errors.ErrCodeMalformedSection,
		},
		{
			name:  "NoEdgeHeader",
			input: "title\n--NODE_NAME\tNODE_ID--\nA\t1\n\n\n",
			code:  errors.ErrCodeMalformedSection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestTokenizeSentinelOnFirstLine(t *testing.T) {
	tok, err := Tokenize("--NODE_NAME\tNODE_ID--\nA\t1\n\n--EDGE_ID\tSOURCE\tTARGET--\n")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if tok.Title != "" || tok.Description != "" {
		t.Errorf("Title = %q, Description = %q; want empty", tok.Title, tok.Description)
	}
	if len(tok.EdgeRows) != 0 {
		t.Errorf("edge rows = %d, want 0", len(tok.EdgeRows))
	}
}

func TestTokenizeFile(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := TokenizeFile(empty); !errors.Is(err, errors.ErrCodeEmptyFile) {
		t.Errorf("empty file error = %v, want EMPTY_FILE", err)
	}

	if _, err := TokenizeFile(filepath.Join(dir, "missing.txt")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := TokenizeFile(path); err != nil {
		t.Errorf("TokenizeFile: %v", err)
	}
}

func TestColumns(t *testing.T) {
	tests := []struct {
		header string
		want   []string
	}{
		{"--NODE_NAME\tNODE_ID--", []string{"NODE_NAME", "NODE_ID"}},
		{"--NODE_NAME\t NODE_ID \t", []string{"NODE_NAME", "NODE_ID"}},
		{"EDGE_ID\tSOURCE", []string{"EDGE_ID", "SOURCE"}},
		{"--EDGE_ID\tSOURCE\t--", []string{"EDGE_ID", "SOURCE"}},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := Columns(tt.header); !slices.Equal(got, tt.want) {
				t.Errorf("Columns(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestBuildTable(t *testing.T) {
	tok, err := Tokenize(sample)
	if err != nil {
		t.Fatal(err)
	}

	nodes := tok.NodeTable()
	edges := tok.EdgeTable()
	if nodes.Len() != len(tok.NodeRows) || edges.Len() != len(tok.EdgeRows) {
		t.Fatalf("table sizes = %d/%d, want %d/%d", nodes.Len(), edges.Len(), len(tok.NodeRows), len(tok.EdgeRows))
	}

	for _, r := range nodes.Records() {
		if len(r.Values) != len(nodes.Header) {
			t.Errorf("record has %d values, header has %d", len(r.Values), len(nodes.Header))
		}
		fields := r.Fields()
		for _, h := range nodes.Header {
			if _, ok := fields[h]; !ok {
				t.Errorf("record missing field %s", h)
			}
		}
	}

	padded := nodes.Records()[2]
	if padded.Get("POSX") != "" {
		t.Errorf("padded POSX = %q, want empty", padded.Get("POSX"))
	}
	if padded.Get("UNKNOWN") != "" {
		t.Error("unknown column should read empty")
	}

	extra := BuildTable([]string{"A"}, [][]string{{"1", "2", "3"}})
	if got := extra.Records()[0].Values; !slices.Equal(got, []string{"1"}) {
		t.Errorf("extra cells = %v, want [1]", got)
	}
}

func TestNodesFromTable(t *testing.T) {
	tok, err := Tokenize(sample)
	if err != nil {
		t.Fatal(err)
	}

	nodes, err := NodesFromTable(tok.NodeTable())
	if err != nil {
		t.Fatalf("NodesFromTable: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(nodes))
	}

	erbb2 := nodes[1]
	if erbb2.Name != "ERBB2" || erbb2.ID != "2" || erbb2.Type != network.TypeGene || erbb2.ParentID != "3" {
		t.Errorf("node = %+v", erbb2)
	}
	if erbb2.PosX == nil || *erbb2.PosX != 140.5 {
		t.Errorf("PosX = %v, want 140.5", erbb2.PosX)
	}
	if nodes[2].PosX != nil || nodes[2].HasParent() {
		t.Errorf("RTK node = %+v, want no position and no parent", nodes[2])
	}

	if _, err := NodesFromTable(BuildTable([]string{"NODE_NAME"}, nil)); !errors.Is(err, errors.ErrCodeMalformedSection) {
		t.Errorf("missing NODE_ID error = %v", err)
	}
}

func TestEdgesFromTable(t *testing.T) {
	tok, err := Tokenize(sample)
	if err != nil {
		t.Fatal(err)
	}

	edges, err := EdgesFromTable(tok.EdgeTable())
	if err != nil {
		t.Fatalf("EdgesFromTable: %v", err)
	}
	want := []network.EdgeRecord{
		{ID: "e1", SourceID: "1", TargetID: "2", Type: "activates"},
		{ID: "e2", SourceID: "2", TargetID: "3", Type: "inhibits"},
	}
	if !slices.Equal(edges, want) {
		t.Errorf("edges = %+v, want %+v", edges, want)
	}

	_, err = EdgesFromTable(BuildTable([]string{"EDGE_ID", "SOURCE"}, nil))
	if !errors.Is(err, errors.ErrCodeMalformedSection) || !strings.Contains(err.Error(), "TARGET") {
		t.Errorf("missing TARGET error = %v", err)
	}
}
