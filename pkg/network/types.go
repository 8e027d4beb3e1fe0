package network

import "strings"

// NoParent is the parent id sentinel meaning "no parent".
const NoParent = "-1"

// NodeType is the node type as written in the source file.
type NodeType string

// Source node types. Any other value is kept verbatim and maps to [KindOther].
const (
	TypeGene        NodeType = "GENE"
	TypeFamily      NodeType = "FAMILY"
	TypeComplex     NodeType = "COMPLEX"
	TypeProcess     NodeType = "PROCESS"
	TypeCompartment NodeType = "COMPARTMENT"
)

// Kind is the normalized node type handed to the format generator.
type Kind string

// Normalized node kinds.
const (
	KindProtein       Kind = "protein"
	KindProteinFamily Kind = "proteinfamily"
	KindComplex       Kind = "complex"
	KindProcess       Kind = "process"
	KindCompartment   Kind = "compartment"
	KindOther         Kind = "other"
)

var kindOf = map[NodeType]Kind{
	TypeGene:        KindProtein,
	TypeFamily:      KindProteinFamily,
	TypeComplex:     KindComplex,
	TypeProcess:     KindProcess,
	TypeCompartment: KindCompartment,
}

// Kind maps the source type through the fixed vocabulary table.
// Unmapped types default to [KindOther].
func (t NodeType) Kind() Kind {
	if k, ok := kindOf[t]; ok {
		return k
	}
	return KindOther
}

// IsAtomic reports whether the type is a simple element (GENE).
func (t NodeType) IsAtomic() bool { return t == TypeGene }

// IsContainer reports whether nodes of this kind group other nodes.
func (k Kind) IsContainer() bool {
	return k == KindProteinFamily || k == KindComplex || k == KindCompartment
}

// Label returns the prefix used for synthetic container names.
func (k Kind) Label() string {
	if k == KindProteinFamily {
		return "family"
	}
	return string(k)
}

// ParseKind converts a serialized kind back to a [Kind].
// Unknown values are returned as [KindOther]; an empty string stays empty.
func ParseKind(s string) Kind {
	switch k := Kind(strings.TrimSpace(s)); k {
	case KindProtein, KindProteinFamily, KindComplex, KindProcess, KindCompartment, KindOther:
		return k
	case "":
		return ""
	}
	return KindOther
}

// NodeRecord is one row of the node table.
type NodeRecord struct {
	ID       string
	Name     string
	Type     NodeType
	ParentID string
	PosX     *float64
	PosY     *float64
}

// HasParent reports whether ParentID is set to something other than [NoParent].
func (n NodeRecord) HasParent() bool {
	return n.ParentID != "" && n.ParentID != NoParent
}

// EdgeRecord is one row of the edge table. Type is lower case.
type EdgeRecord struct {
	ID       string
	SourceID string
	TargetID string
	Type     string
}

// NestedNodeMap maps a nested, non-atomic node id to its parent id.
// An empty map means no nesting is left.
type NestedNodeMap map[string]string

// Endpoint holds the node attributes of one side of a [JoinedRecord].
type Endpoint struct {
	ID         string
	Name       string
	Kind       Kind
	ParentID   string
	ParentName string
	PosX       *float64
	PosY       *float64
	// Members is only populated for container endpoints with at least one member.
	Members []string
}

// IsContainer reports whether the endpoint groups other nodes.
func (e Endpoint) IsContainer() bool { return e.Kind.IsContainer() }

// HasParent reports whether ParentID references another node.
func (e Endpoint) HasParent() bool {
	return e.ParentID != "" && e.ParentID != NoParent
}

// JoinedRecord combines one edge with both endpoint node attributes.
// Target is nil for an isolated node that was kept without an edge.
type JoinedRecord struct {
	EdgeID   string
	EdgeType string
	Source   Endpoint
	Target   *Endpoint
}

// IsIsolated reports whether the record carries a single node and no edge.
func (r JoinedRecord) IsIsolated() bool { return r.Target == nil }

// Network is the processed record set of one pathway file.
type Network struct {
	Name        string
	Description string
	Records     []JoinedRecord
}
