package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ndexcontent/tcgaloader/pkg/errors"
	"github.com/ndexcontent/tcgaloader/pkg/graph"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "svg"},
		{"dot", "dot"},
		{"JSON", "json"},
		{".svg", "svg"},
	}
	for _, tt := range tests {
		if got := parseFormat(tt.in); got != tt.want {
			t.Errorf("parseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"svg", "dot", "json"} {
		if err := validateFormat(f); err != nil {
			t.Errorf("validateFormat(%q) = %v", f, err)
		}
	}
	if err := validateFormat("png"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("validateFormat(png) = %v, want INVALID_INPUT", err)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, input, format string
		want                  string
	}{
		{"", "networks/gbm.txt", "svg", "gbm.svg"},
		{"", "out/gbm.tsv", "dot", "gbm.dot"},
		{"x/y.svg", "gbm.txt", "svg", "x/y.svg"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.input, tt.format); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.format, got, tt.want)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	dir := isolate(t)
	jsonPath := filepath.Join(dir, "gbm.json")
	dotPath := filepath.Join(dir, "gbm.dot")

	if _, _, err := execute(t, "render", sampleFile, "-f", "json", "-o", jsonPath); err != nil {
		t.Fatalf("render json: %v", err)
	}
	g, err := graph.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if g.Name != "gbm" {
		t.Errorf("Name = %q, want gbm", g.Name)
	}
	if g.EdgeCount() != 4 {
		t.Errorf("EdgeCount = %d, want 4", g.EdgeCount())
	}

	if _, _, err := execute(t, "render", jsonPath, "-f", "dot", "-o", dotPath, "--detailed"); err != nil {
		t.Fatalf("render dot: %v", err)
	}
	dot, err := os.ReadFile(dotPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(dot), `digraph "gbm" {`) {
		t.Errorf("unexpected DOT header:\n%s", dot)
	}
	if !strings.Contains(string(dot), "->") {
		t.Error("DOT has no edges")
	}
}

func TestRenderCommandTable(t *testing.T) {
	dir := isolate(t)
	data := filepath.Join(dir, "networks")
	out := filepath.Join(dir, "out")
	if err := os.MkdirAll(data, 0755); err != nil {
		t.Fatal(err)
	}
	copySample(t, data, "gbm.txt")
	if _, _, err := execute(t, "load", "--datadir", data, "--outdir", out, "--no-cache"); err != nil {
		t.Fatalf("load: %v", err)
	}

	jsonPath := filepath.Join(dir, "table.json")
	if _, _, err := execute(t, "render", filepath.Join(out, "gbm.tsv"), "-f", "json", "-o", jsonPath); err != nil {
		t.Fatalf("render table: %v", err)
	}
	g, err := graph.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if g.NodeCount() != 7 || g.EdgeCount() != 4 {
		t.Errorf("graph = %d nodes, %d edges, want 7 and 4", g.NodeCount(), g.EdgeCount())
	}
}

func TestRenderCommandBadFormat(t *testing.T) {
	isolate(t)
	if _, _, err := execute(t, "render", sampleFile, "-f", "png"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}
