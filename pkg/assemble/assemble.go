// Package assemble joins pathway edges with their endpoint nodes.
//
// The stages run in this order on one file:
//
//	recs, _ := assemble.Assemble(in)        // dedupe, join, isolated nodes
//	assemble.AggregateMembers(recs.Records) // MEMBER sets of containers
//	assemble.NameContainers(recs.Records, recs.IDs)
//	assemble.RestoreNames(recs.Records, recs.IDs)
//
// [NameContainers] is the only stage that writes to the identifier map;
// [RestoreNames] must run after it so every endpoint and parent name
// reflects the synthetic names.
package assemble

import (
	"strings"

	"github.com/ndexcontent/tcgaloader/pkg/errors"
	"github.com/ndexcontent/tcgaloader/pkg/network"
)

// Input is what the assembler needs from earlier stages.
type Input struct {
	Description string
	// Nodes is the flattened node table.
	Nodes []network.NodeRecord
	// Removed holds nodes dropped by flattening. Edges that still point at
	// them are joined against these rows.
	Removed []network.NodeRecord
	Edges   []network.EdgeRecord
	IDs     *network.IDMap
}

// Assembly is the joined record set of one file.
type Assembly struct {
	Records     []network.JoinedRecord
	Description string
	IDs         *network.IDMap
}

type edgeKey struct {
	source, target, typ string
}

// DedupeEdges drops edges whose (source name, target name, type) triple was
// already seen; the first occurrence wins and order is kept. A blank or
// "undefined" name keys by node id instead, so edges to distinct unnamed
// containers are kept apart. An endpoint id missing from ids yields an
// UNRESOLVED_IDENTIFIER error.
func DedupeEdges(edges []network.EdgeRecord, ids *network.IDMap) ([]network.EdgeRecord, error) {
	seen := make(map[edgeKey]struct{}, len(edges))
	out := make([]network.EdgeRecord, 0, len(edges))
	for _, e := range edges {
		src, err := ids.Lookup(e.SourceID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnresolvedIdentifier, err, "edge %s source", e.ID)
		}
		tgt, err := ids.Lookup(e.TargetID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnresolvedIdentifier, err, "edge %s target", e.ID)
		}
		k := edgeKey{dedupeName(e.SourceID, src), dedupeName(e.TargetID, tgt), e.Type}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}
	return out, nil
}

func dedupeName(id, name string) string {
	if n := strings.TrimSpace(name); n == "" || n == undefinedName {
		return "\x00" + id
	}
	return name
}

// Assemble deduplicates the edges, joins each one with its source (side A)
// and target (side B) node, and appends isolated nodes that pass the keep
// rule: not a protein and without a parent.
func Assemble(in Input) (*Assembly, error) {
	if in.IDs == nil {
		in.IDs = network.NewIDMap(append(append([]network.NodeRecord(nil), in.Nodes...), in.Removed...))
	}

	edges, err := DedupeEdges(in.Edges, in.IDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]network.NodeRecord, len(in.Nodes)+len(in.Removed))
	for _, set := range [][]network.NodeRecord{in.Nodes, in.Removed} {
		for _, n := range set {
			if _, ok := byID[n.ID]; !ok {
				byID[n.ID] = n
			}
		}
	}

	connected := make(map[string]bool)
	records := make([]network.JoinedRecord, 0, len(edges))
	for _, e := range edges {
		src, ok := byID[e.SourceID]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnresolvedIdentifier, "edge %s: source node %q not in node table", e.ID, e.SourceID)
		}
		tgt, ok := byID[e.TargetID]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnresolvedIdentifier, "edge %s: target node %q not in node table", e.ID, e.TargetID)
		}
		target := endpoint(tgt, in.IDs)
		records = append(records, network.JoinedRecord{
			EdgeID:   e.ID,
			EdgeType: e.Type,
			Source:   endpoint(src, in.IDs),
			Target:   &target,
		})
		connected[e.SourceID] = true
		connected[e.TargetID] = true
	}

	for _, n := range in.Nodes {
		if connected[n.ID] || !keepIsolated(n) {
			continue
		}
		connected[n.ID] = true
		records = append(records, network.JoinedRecord{Source: endpoint(n, in.IDs)})
	}

	return &Assembly{Records: records, Description: in.Description, IDs: in.IDs}, nil
}

func keepIsolated(n network.NodeRecord) bool {
	return n.Type.Kind() != network.KindProtein && !n.HasParent()
}

func endpoint(n network.NodeRecord, ids *network.IDMap) network.Endpoint {
	e := network.Endpoint{
		ID:       n.ID,
		Name:     n.Name,
		Kind:     n.Type.Kind(),
		ParentID: n.ParentID,
		PosX:     n.PosX,
		PosY:     n.PosY,
	}
	if n.HasParent() {
		e.ParentName, _ = ids.Resolve(n.ParentID)
	}
	return e
}
