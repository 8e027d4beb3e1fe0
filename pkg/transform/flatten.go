// Package transform rewrites pathway node tables.
//
// [Flatten] collapses nested containment chains so that every remaining
// node's parent is either [network.NoParent] or a node with no parent of
// its own. It iterates the nested-containment check to a fixed point and
// applies each pass as one staged substitution.
package transform

import (
	"slices"
	"strings"

	"github.com/ndexcontent/tcgaloader/pkg/anomaly"
	"github.com/ndexcontent/tcgaloader/pkg/errors"
	"github.com/ndexcontent/tcgaloader/pkg/network"
)

// CheckFunc finds nested nodes in a node table. It must return an empty
// map once nothing is nested.
type CheckFunc func(networkName string, nodes []network.NodeRecord) ([]anomaly.Nested, network.NestedNodeMap)

// Result is the output of [Flatten].
type Result struct {
	// Nodes is the flattened node table, in input order.
	Nodes []network.NodeRecord
	// Removed holds the dropped nested nodes, their parent rewritten to
	// the surviving ancestor. Edges may still reference them.
	Removed []network.NodeRecord
	// Nested accumulates the findings of every pass.
	Nested []anomaly.Nested
	// Passes is the number of passes that changed the table.
	Passes int
}

// Flatten repeatedly runs check and removes the nested nodes it reports,
// rewriting parent references to the nearest surviving ancestor, until
// check returns an empty map. A nil check uses [anomaly.NestedNodes].
//
// The input slice is not modified. A parent cycle, or more passes than
// the table has nodes, yields a CYCLIC_PARENT error.
func Flatten(networkName string, nodes []network.NodeRecord, check CheckFunc) (*Result, error) {
	if check == nil {
		check = anomaly.NestedNodes
	}

	res := &Result{Nodes: slices.Clone(nodes)}
	maxPasses := len(nodes) + 1

	for {
		found, nested := check(networkName, res.Nodes)
		if len(nested) == 0 {
			return res, nil
		}
		if res.Passes >= maxPasses {
			return nil, errors.New(errors.ErrCodeCyclicParent,
				"%s: nesting did not converge after %d passes", networkName, res.Passes)
		}
		if cycle := findCycle(nested); cycle != nil {
			return nil, errors.New(errors.ErrCodeCyclicParent,
				"%s: parent cycle %s", networkName, strings.Join(cycle, " -> "))
		}
		res.Nested = append(res.Nested, found...)

		subst := substitutions(nested)
		kept := make([]network.NodeRecord, 0, len(res.Nodes))
		for _, n := range res.Nodes {
			if ancestor, drop := subst[n.ID]; drop {
				n.ParentID = ancestor
				res.Removed = append(res.Removed, n)
				continue
			}
			if ancestor, ok := subst[n.ParentID]; ok {
				n.ParentID = ancestor
			}
			kept = append(kept, n)
		}

		// Parents of nodes removed in earlier passes may have been
		// removed now.
		for i, n := range res.Removed {
			if ancestor, ok := subst[n.ParentID]; ok {
				res.Removed[i].ParentID = ancestor
			}
		}

		res.Nodes = kept
		res.Passes++
	}
}

// substitutions resolves every nested child to its first ancestor that is
// not itself nested. The map must be acyclic.
func substitutions(nested network.NestedNodeMap) map[string]string {
	out := make(map[string]string, len(nested))
	for child, parent := range nested {
		for {
			next, ok := nested[parent]
			if !ok {
				break
			}
			parent = next
		}
		out[child] = parent
	}
	return out
}

// findCycle returns one parent cycle in nested, or nil.
func findCycle(nested network.NestedNodeMap) []string {
	const (
		white = iota
		gray
		black
	)

	ids := make([]string, 0, len(nested))
	for id := range nested {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	color := make(map[string]int, len(nested))
	for _, start := range ids {
		if color[start] != white {
			continue
		}
		var path []string
		node := start
		for {
			if _, ok := nested[node]; !ok || color[node] == black {
				break
			}
			if color[node] == gray {
				i := slices.Index(path, node)
				return append(slices.Clone(path[i:]), node)
			}
			color[node] = gray
			path = append(path, node)
			node = nested[node]
		}
		for _, id := range path {
			color[id] = black
		}
	}
	return nil
}
