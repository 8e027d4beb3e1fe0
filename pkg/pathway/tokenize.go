package pathway

import (
	"os"
	"strings"

	"github.com/ndexcontent/tcgaloader/pkg/errors"
)

const (
	// Marker wraps header lines, e.g. "--NODE_NAME\tNODE_ID\t...--".
	Marker = "--"

	// NodeSentinel starts the node table header line.
	NodeSentinel = Marker + "NODE_NAME"
)

// Tokens is the sectioned content of one pathway file.
type Tokens struct {
	Title       string     // first line, trimmed
	Description string     // non-blank lines between the title and the node header
	NodeHeader  string     // raw node header (sentinel) line
	NodeRows    [][]string // tab-split node rows
	EdgeHeader  string     // raw edge header line
	EdgeRows    [][]string // tab-split edge rows
}

// NodeColumns returns the node table column names.
func (t *Tokens) NodeColumns() []string { return Columns(t.NodeHeader) }

// EdgeColumns returns the edge table column names.
func (t *Tokens) EdgeColumns() []string { return Columns(t.EdgeHeader) }

// TokenizeFile reads path and tokenizes its content.
// A zero-byte file yields an EMPTY_FILE error.
func TokenizeFile(path string) (*Tokens, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}
	return TokenizeBytes(path, data)
}

// TokenizeBytes tokenizes the content of a file called name.
func TokenizeBytes(name string, data []byte) (*Tokens, error) {
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyFile, "file is empty: %s", name)
	}
	return Tokenize(string(data))
}

// Tokenize splits file text into its description, node and edge regions.
//
// The node region starts at the first line beginning with [NodeSentinel] and
// ends at the first blank line. The next non-blank line is the edge header;
// every later non-blank line is an edge row. A missing sentinel, separator
// or edge header yields a MALFORMED_SECTION error.
func Tokenize(text string) (*Tokens, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	t := &Tokens{}

	sentinel := -1
	var desc []string
	for i, line := range lines {
		if strings.HasPrefix(line, NodeSentinel) {
			sentinel = i
			break
		}
		if i == 0 {
			t.Title = strings.TrimSpace(line)
			continue
		}
		if s := strings.TrimSpace(line); s != "" {
			desc = append(desc, s)
		}
	}
	if sentinel < 0 {
		return nil, errors.New(errors.ErrCodeMalformedSection, "node header line starting with %q not found", NodeSentinel)
	}
	t.Description = strings.Join(desc, " ")
	t.NodeHeader = strings.TrimRight(lines[sentinel], " \t\r")

	i := sentinel + 1
	for ; i < len(lines) && !isBlank(lines[i]); i++ {
		t.NodeRows = append(t.NodeRows, splitRow(lines[i]))
	}
	if i >= len(lines) {
		return nil, errors.New(errors.ErrCodeMalformedSection, "blank line separating nodes from edges not found")
	}

	for ; i < len(lines) && isBlank(lines[i]); i++ {
	}
	if i >= len(lines) {
		return nil, errors.New(errors.ErrCodeMalformedSection, "edge header line not found")
	}
	t.EdgeHeader = strings.TrimRight(lines[i], " \t\r")

	for _, line := range lines[i+1:] {
		if isBlank(line) {
			continue
		}
		t.EdgeRows = append(t.EdgeRows, splitRow(line))
	}
	return t, nil
}

// Columns derives column names from a header line: the leading and trailing
// [Marker] are stripped, the line is split on tabs and each field is trimmed.
// Empty trailing fields are dropped.
func Columns(header string) []string {
	h := strings.TrimSpace(header)
	h = strings.TrimPrefix(h, Marker)
	h = strings.TrimSuffix(h, Marker)
	fields := strings.Split(h, "\t")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	for len(fields) > 1 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

func isBlank(line string) bool { return strings.TrimSpace(line) == "" }

func splitRow(line string) []string {
	return strings.Split(strings.TrimRight(line, " \t\r\n"), "\t")
}
