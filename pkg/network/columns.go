package network

// Column names of the source node and edge tables.
const (
	ColNodeName = "NODE_NAME"
	ColNodeID   = "NODE_ID"
	ColNodeType = "NODE_TYPE"
	ColParentID = "PARENT_ID"
	ColPosX     = "POSX"
	ColPosY     = "POSY"

	ColEdgeID   = "EDGE_ID"
	ColSource   = "SOURCE"
	ColTarget   = "TARGET"
	ColEdgeType = "EDGE_TYPE"
)

// Column names of the joined record table. Target-side columns carry [SuffixB].
const (
	ColParentName = "PARENT_NAME"
	ColMember     = "MEMBER"
	SuffixB       = "_B"
)

// endpointColumns lists the per-side columns in output order, MEMBER excluded.
var endpointColumns = []string{ColNodeName, ColNodeID, ColNodeType, ColParentID, ColParentName, ColPosX, ColPosY}

// Columns returns the header of the joined record table.
// MEMBER and MEMBER_B are present only when some record has a container
// endpoint on that side.
func (n *Network) Columns() []string {
	memberA, memberB := n.HasMembers()
	cols := []string{ColEdgeID, ColEdgeType}
	cols = append(cols, endpointColumns...)
	if memberA {
		cols = append(cols, ColMember)
	}
	for _, c := range endpointColumns {
		cols = append(cols, c+SuffixB)
	}
	if memberB {
		cols = append(cols, ColMember+SuffixB)
	}
	return cols
}

// HasMembers reports, per side, whether a container endpoint exists.
func (n *Network) HasMembers() (source, target bool) {
	for _, r := range n.Records {
		if r.Source.IsContainer() {
			source = true
		}
		if r.Target != nil && r.Target.IsContainer() {
			target = true
		}
	}
	return source, target
}

// AllColumns returns the widest possible joined record header, with both
// MEMBER columns present.
func AllColumns() []string {
	n := &Network{Records: []JoinedRecord{{
		Source: Endpoint{Kind: KindComplex},
		Target: &Endpoint{Kind: KindComplex},
	}}}
	return n.Columns()
}
