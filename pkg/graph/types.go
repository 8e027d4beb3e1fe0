package graph

import "slices"

// Well-known attribute names.
const (
	AttrType   = "type"
	AttrMember = "member"
)

// =============================================================================
// Graph - Network Serialization
// =============================================================================

// Graph is the canonical node-link form of one network.
// Used for JSON files, document storage and rendering.
type Graph struct {
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Nodes       []Node `json:"nodes" bson:"nodes"`
	Edges       []Edge `json:"edges" bson:"edges"`

	byName map[string]int
}

// New creates an empty graph.
func New(name, description string) *Graph {
	return &Graph{Name: name, Description: description, Nodes: []Node{}, Edges: []Edge{}}
}

// =============================================================================
// Node
// =============================================================================

// Node is a named network node. Names are unique within a graph.
type Node struct {
	ID    int            `json:"id" bson:"id"`
	Name  string         `json:"name" bson:"name"`
	X     *float64       `json:"x,omitempty" bson:"x,omitempty"`
	Y     *float64       `json:"y,omitempty" bson:"y,omitempty"`
	Attrs map[string]any `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// Type returns the type attribute, or "".
func (n *Node) Type() string {
	s, _ := n.Attrs[AttrType].(string)
	return s
}

// HasPosition reports whether both coordinates are set.
func (n *Node) HasPosition() bool { return n.X != nil && n.Y != nil }

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed interaction between two nodes, referenced by node ID.
type Edge struct {
	ID          int            `json:"id" bson:"id"`
	Source      int            `json:"source" bson:"source"`
	Target      int            `json:"target" bson:"target"`
	Interaction string         `json:"interaction" bson:"interaction"`
	Attrs       map[string]any `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// =============================================================================
// Construction
// =============================================================================

// AddNode returns the node called name, creating it when missing.
// The returned pointer is valid until the next AddNode call.
func (g *Graph) AddNode(name string) *Node {
	g.index()
	if i, ok := g.byName[name]; ok {
		return &g.Nodes[i]
	}
	g.Nodes = append(g.Nodes, Node{ID: len(g.Nodes), Name: name})
	g.byName[name] = len(g.Nodes) - 1
	return &g.Nodes[len(g.Nodes)-1]
}

// AddEdge appends an edge between two node IDs.
func (g *Graph) AddEdge(source, target int, interaction string) *Edge {
	g.Edges = append(g.Edges, Edge{ID: len(g.Edges), Source: source, Target: target, Interaction: interaction})
	return &g.Edges[len(g.Edges)-1]
}

// Node returns the node called name.
func (g *Graph) Node(name string) (*Node, bool) {
	g.index()
	i, ok := g.byName[name]
	if !ok {
		return nil, false
	}
	return &g.Nodes[i], true
}

// NodeByID returns the node with the given ID.
func (g *Graph) NodeByID(id int) (*Node, bool) {
	i := slices.IndexFunc(g.Nodes, func(n Node) bool { return n.ID == id })
	if i < 0 {
		return nil, false
	}
	return &g.Nodes[i], true
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

func (g *Graph) index() {
	if g.byName != nil && len(g.byName) == len(g.Nodes) {
		return
	}
	g.byName = make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		if _, ok := g.byName[n.Name]; !ok {
			g.byName[n.Name] = i
		}
	}
}

// SetAttr sets a node attribute, allocating the map on first use.
func (n *Node) SetAttr(key string, v any) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]any)
	}
	n.Attrs[key] = v
}

// SetAttr sets an edge attribute, allocating the map on first use.
func (e *Edge) SetAttr(key string, v any) {
	if e.Attrs == nil {
		e.Attrs = make(map[string]any)
	}
	e.Attrs[key] = v
}
