// Package anomaly detects data-quality problems in pathway node tables.
//
// Two checks run on every file: [InvalidNames] finds GENE nodes whose name
// is not a valid symbol, and [NestedNodes] finds non-GENE nodes that sit
// under another node. Neither check fails processing. Findings are
// collected in a [Report] and appended to the run-wide TSV files by a
// [Reporter].
package anomaly

import (
	"slices"

	"github.com/ndexcontent/tcgaloader/pkg/network"
)

// Nested is one nested-containment finding.
type Nested struct {
	ChildID    string           `json:"child_id"`
	ChildName  string           `json:"child_name"`
	ChildType  network.NodeType `json:"child_type"`
	ParentID   string           `json:"parent_id"`
	ParentName string           `json:"parent_name"`
	ParentType network.NodeType `json:"parent_type,omitempty"`
	Network    string           `json:"network"`
}

// Report holds the anomalies found in one file.
type Report struct {
	Network      string   `json:"network"`
	InvalidNames []string `json:"invalid_names,omitempty"`
	Nested       []Nested `json:"nested,omitempty"`
}

// Empty reports whether nothing was found.
func (r Report) Empty() bool { return len(r.InvalidNames) == 0 && len(r.Nested) == 0 }

// Count returns the total number of findings.
func (r Report) Count() int { return len(r.InvalidNames) + len(r.Nested) }

// InvalidNames returns the sorted names of GENE nodes that fail the symbol
// pattern. Every failing row is listed, so a name can appear more than once.
func InvalidNames(nodes []network.NodeRecord) []string {
	var out []string
	for _, n := range nodes {
		if n.Type.IsAtomic() && !network.IsSymbol(n.Name) {
			out = append(out, n.Name)
		}
	}
	slices.Sort(out)
	return out
}

// NestedNodes reports every non-GENE node with a parent and returns the
// child id to parent id map for this pass. A node whose parent id is not in
// the table is not nested: it stays in place as a root of its own chain.
func NestedNodes(networkName string, nodes []network.NodeRecord) ([]Nested, network.NestedNodeMap) {
	byID := make(map[string]network.NodeRecord, len(nodes))
	for _, n := range nodes {
		if _, ok := byID[n.ID]; !ok {
			byID[n.ID] = n
		}
	}

	var found []Nested
	m := make(network.NestedNodeMap)
	for _, n := range nodes {
		if n.Type.IsAtomic() || !n.HasParent() {
			continue
		}
		p, ok := byID[n.ParentID]
		if !ok {
			continue
		}
		found = append(found, Nested{
			ChildID:    n.ID,
			ChildName:  n.Name,
			ChildType:  n.Type,
			ParentID:   n.ParentID,
			ParentName: p.Name,
			ParentType: p.Type,
			Network:    networkName,
		})
		m[n.ID] = n.ParentID
	}
	return found, m
}
