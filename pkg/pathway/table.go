package pathway

import (
	"slices"
	"strconv"
	"strings"

	"github.com/ndexcontent/tcgaloader/pkg/errors"
	"github.com/ndexcontent/tcgaloader/pkg/network"
)

// Table is a header plus rows aligned to it.
type Table struct {
	Header []string
	rows   [][]string
	index  map[string]int
}

// Record is one table row. Values follow the table header order.
type Record struct {
	table  *Table
	Values []string
}

// BuildTable aligns rows to header. Short rows are padded with empty
// strings and extra cells are dropped; no other validation happens here.
func BuildTable(header []string, rows [][]string) *Table {
	t := &Table{
		Header: slices.Clone(header),
		rows:   make([][]string, len(rows)),
		index:  make(map[string]int, len(header)),
	}
	for i, h := range t.Header {
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	for i, row := range rows {
		aligned := make([]string, len(header))
		copy(aligned, row)
		t.rows[i] = aligned
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Has reports whether the table has column col.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Records returns every row in file order.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.rows))
	for i, row := range t.rows {
		out[i] = Record{table: t, Values: row}
	}
	return out
}

// Get returns the value of column col, or "" when the column is absent.
func (r Record) Get(col string) string {
	i, ok := r.table.index[col]
	if !ok {
		return ""
	}
	return strings.TrimSpace(r.Values[i])
}

// Fields returns the record as column → value pairs.
func (r Record) Fields() map[string]string {
	out := make(map[string]string, len(r.Values))
	for i, h := range r.table.Header {
		out[h] = r.Values[i]
	}
	return out
}

// NodeTable builds the node table of a tokenized file.
func (t *Tokens) NodeTable() *Table { return BuildTable(t.NodeColumns(), t.NodeRows) }

// EdgeTable builds the edge table of a tokenized file.
func (t *Tokens) EdgeTable() *Table { return BuildTable(t.EdgeColumns(), t.EdgeRows) }

// NodesFromTable converts the node table into typed records. The name is
// read from the first column; NODE_ID is required as the join key.
func NodesFromTable(t *Table) ([]network.NodeRecord, error) {
	if !t.Has(network.ColNodeID) {
		return nil, errors.New(errors.ErrCodeMalformedSection, "node table has no %s column", network.ColNodeID)
	}
	nodes := make([]network.NodeRecord, 0, t.Len())
	for _, r := range t.Records() {
		n := network.NodeRecord{
			ID:       r.Get(network.ColNodeID),
			Type:     network.NodeType(r.Get(network.ColNodeType)),
			ParentID: r.Get(network.ColParentID),
			PosX:     parseFloat(r.Get(network.ColPosX)),
			PosY:     parseFloat(r.Get(network.ColPosY)),
		}
		if len(r.Values) > 0 {
			n.Name = strings.TrimSpace(r.Values[0])
		}
		if n.ParentID == "" {
			n.ParentID = network.NoParent
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// EdgesFromTable converts the edge table into typed records. SOURCE and
// TARGET are required; the interaction type is lower-cased.
func EdgesFromTable(t *Table) ([]network.EdgeRecord, error) {
	for _, col := range []string{network.ColSource, network.ColTarget} {
		if !t.Has(col) {
			return nil, errors.New(errors.ErrCodeMalformedSection, "edge table has no %s column", col)
		}
	}
	edges := make([]network.EdgeRecord, 0, t.Len())
	for _, r := range t.Records() {
		edges = append(edges, network.EdgeRecord{
			ID:       r.Get(network.ColEdgeID),
			SourceID: r.Get(network.ColSource),
			TargetID: r.Get(network.ColTarget),
			Type:     strings.ToLower(r.Get(network.ColEdgeType)),
		})
	}
	return edges, nil
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
