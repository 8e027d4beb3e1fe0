// Package loadplan maps joined record columns onto a node-link graph.
//
// A load plan is a JSON document with three parts: how to build the source
// node of a record, how to build the target node, and how to build the edge
// between them.
//
//	{
//	  "source_plan": {
//	    "node_name_column": "NODE_NAME",
//	    "x_column": "POSX", "y_column": "POSY",
//	    "property_columns": [
//	      {"column_name": "NODE_TYPE", "attribute_name": "type"},
//	      {"column_name": "MEMBER", "attribute_name": "member",
//	       "data_type": "list_of_string", "delimiter": "|"}
//	    ]
//	  },
//	  "target_plan": {"node_name_column": "NODE_NAME_B"},
//	  "edge_plan": {
//	    "predicate_id_column": "EDGE_TYPE",
//	    "default_predicate": "interacts-with"
//	  }
//	}
//
// Nodes are keyed by name, so the same name on either side of different
// records becomes one graph node.
package loadplan

import (
	"bytes"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/ndexcontent/tcgaloader/pkg/errors"
	"github.com/ndexcontent/tcgaloader/pkg/graph"
	"github.com/ndexcontent/tcgaloader/pkg/network"
	"github.com/ndexcontent/tcgaloader/pkg/report"
)

// DataType is the type of a mapped attribute.
type DataType string

// Supported attribute types.
const (
	TypeString       DataType = "string"
	TypeDouble       DataType = "double"
	TypeInteger      DataType = "integer"
	TypeBoolean      DataType = "boolean"
	TypeListOfString DataType = "list_of_string"
)

// DefaultDelimiter splits list_of_string values.
const DefaultDelimiter = "|"

// DefaultPredicate is used when no predicate column value is available.
const DefaultPredicate = "interacts-with"

// Property maps one record column to a node or edge attribute.
type Property struct {
	Column    string   `json:"column_name"`
	Attribute string   `json:"attribute_name,omitempty"`
	DataType  DataType `json:"data_type,omitempty"`
	Delimiter string   `json:"delimiter,omitempty"`
	Default   string   `json:"default_value,omitempty"`
}

// Name returns the attribute name, defaulting to the column name.
func (p Property) Name() string {
	if p.Attribute != "" {
		return p.Attribute
	}
	return p.Column
}

// NodePlan describes how to build one side's node.
type NodePlan struct {
	NameColumn string     `json:"node_name_column"`
	XColumn    string     `json:"x_column,omitempty"`
	YColumn    string     `json:"y_column,omitempty"`
	Properties []Property `json:"property_columns,omitempty"`
}

// EdgePlan describes how to build the edge of a record.
type EdgePlan struct {
	PredicateColumn  string     `json:"predicate_id_column,omitempty"`
	DefaultPredicate string     `json:"default_predicate,omitempty"`
	Properties       []Property `json:"property_columns,omitempty"`
}

// Plan is a complete load plan.
type Plan struct {
	Source NodePlan `json:"source_plan"`
	Target NodePlan `json:"target_plan"`
	Edge   EdgePlan `json:"edge_plan"`
}

// Default returns the plan used when none is configured: names, positions,
// types and member lists on both sides, EDGE_TYPE as the predicate.
func Default() *Plan {
	side := func(suffix string) NodePlan {
		return NodePlan{
			NameColumn: network.ColNodeName + suffix,
			XColumn:    network.ColPosX + suffix,
			YColumn:    network.ColPosY + suffix,
			Properties: []Property{
				{Column: network.ColNodeType + suffix, Attribute: graph.AttrType},
				{Column: network.ColMember + suffix, Attribute: graph.AttrMember, DataType: TypeListOfString},
			},
		}
	}
	return &Plan{
		Source: side(""),
		Target: side(network.SuffixB),
		Edge: EdgePlan{
			PredicateColumn:  network.ColEdgeType,
			DefaultPredicate: DefaultPredicate,
		},
	}
}

// Load reads and parses a plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "load plan %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidLoadPlan, err, "read load plan %s", path)
	}
	return Parse(data)
}

// Parse decodes a JSON plan. Unknown fields are rejected and both node
// plans must name their node name column.
func Parse(data []byte) (*Plan, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var p Plan
	if err := dec.Decode(&p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLoadPlan, err, "decode load plan")
	}
	if p.Source.NameColumn == "" {
		return nil, errors.New(errors.ErrCodeInvalidLoadPlan, "source_plan.node_name_column is required")
	}
	if p.Target.NameColumn == "" {
		return nil, errors.New(errors.ErrCodeInvalidLoadPlan, "target_plan.node_name_column is required")
	}
	for _, props := range [][]Property{p.Source.Properties, p.Target.Properties, p.Edge.Properties} {
		for _, prop := range props {
			if err := prop.check(); err != nil {
				return nil, err
			}
		}
	}
	return &p, nil
}

func (p Property) check() error {
	if p.Column == "" {
		return errors.New(errors.ErrCodeInvalidLoadPlan, "property without column_name")
	}
	switch p.DataType {
	case "", TypeString, TypeDouble, TypeInteger, TypeBoolean, TypeListOfString:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidLoadPlan, "column %s: unknown data_type %q", p.Column, p.DataType)
}

// Columns returns every column the plan reads, in plan order.
func (p *Plan) Columns() []string {
	var cols []string
	add := func(c string) {
		if c != "" {
			cols = append(cols, c)
		}
	}
	for _, np := range []NodePlan{p.Source, p.Target} {
		add(np.NameColumn)
		add(np.XColumn)
		add(np.YColumn)
		for _, prop := range np.Properties {
			add(prop.Column)
		}
	}
	add(p.Edge.PredicateColumn)
	for _, prop := range p.Edge.Properties {
		add(prop.Column)
	}
	return cols
}

// Validate checks that every column the plan reads is one of columns.
func (p *Plan) Validate(columns []string) error {
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}
	var missing []string
	for _, c := range p.Columns() {
		if !known[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return errors.New(errors.ErrCodeInvalidLoadPlan, "unknown columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Apply builds the node-link graph of n.
//
// Each record yields its source node; records with a target also yield the
// target node and an edge. Records whose source name is blank are skipped.
// A cell that cannot be converted to its declared type is an
// INVALID_INPUT error.
func (p *Plan) Apply(n *network.Network) (*graph.Graph, error) {
	g := graph.New(n.Name, n.Description)
	cols := n.Columns()

	for _, r := range n.Records {
		fields := report.Fields(r, cols)

		src, ok, err := p.Source.node(g, fields)
		if err != nil {
			return nil, err
		}
		if !ok || r.IsIsolated() {
			continue
		}
		tgt, ok, err := p.Target.node(g, fields)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		predicate := fields[p.Edge.PredicateColumn]
		if predicate == "" {
			predicate = p.Edge.DefaultPredicate
		}
		if predicate == "" {
			predicate = DefaultPredicate
		}
		e := g.AddEdge(src, tgt, predicate)
		for _, prop := range p.Edge.Properties {
			v, ok, err := prop.value(fields)
			if err != nil {
				return nil, err
			}
			if ok {
				e.SetAttr(prop.Name(), v)
			}
		}
	}
	return g, nil
}

// node adds or updates the node described by fields and returns its ID.
// ok is false when the name cell is blank.
func (np NodePlan) node(g *graph.Graph, fields map[string]string) (id int, ok bool, err error) {
	name := strings.TrimSpace(fields[np.NameColumn])
	if name == "" {
		return 0, false, nil
	}
	n := g.AddNode(name)
	if x := parseFloat(fields[np.XColumn]); x != nil && n.X == nil {
		n.X = x
	}
	if y := parseFloat(fields[np.YColumn]); y != nil && n.Y == nil {
		n.Y = y
	}
	for _, prop := range np.Properties {
		v, ok, err := prop.value(fields)
		if err != nil {
			return 0, false, err
		}
		if _, set := n.Attrs[prop.Name()]; ok && !set {
			n.SetAttr(prop.Name(), v)
		}
	}
	return n.ID, true, nil
}

// value converts the property's cell. ok is false when the cell and the
// default are both empty.
func (p Property) value(fields map[string]string) (v any, ok bool, err error) {
	s := fields[p.Column]
	if s == "" {
		s = p.Default
	}
	if s == "" {
		return nil, false, nil
	}

	switch p.DataType {
	case TypeDouble:
		v, err = strconv.ParseFloat(s, 64)
	case TypeInteger:
		v, err = strconv.ParseInt(s, 10, 64)
	case TypeBoolean:
		v, err = strconv.ParseBool(s)
	case TypeListOfString:
		delim := p.Delimiter
		if delim == "" {
			delim = DefaultDelimiter
		}
		v = strings.Split(s, delim)
	default:
		v = s
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "column %s: %q is not a %s", p.Column, s, p.DataType)
	}
	return v, true, nil
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
