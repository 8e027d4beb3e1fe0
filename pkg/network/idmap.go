package network

import (
	"maps"

	"github.com/ndexcontent/tcgaloader/pkg/errors"
)

// IDMap translates node ids into display names.
//
// The map is built once per file from the node table and read by most
// pipeline stages. The synthetic namer is its only writer; stages running
// after it must read the updated names.
type IDMap struct {
	names map[string]string
}

// NewIDMap maps every node id to its raw name field.
// When ids repeat, the first row wins.
func NewIDMap(nodes []NodeRecord) *IDMap {
	m := &IDMap{names: make(map[string]string, len(nodes))}
	for _, n := range nodes {
		if _, ok := m.names[n.ID]; !ok {
			m.names[n.ID] = n.Name
		}
	}
	return m
}

// Lookup returns the display name of id. An id that was never defined by
// the node table yields an UNRESOLVED_IDENTIFIER error.
func (m *IDMap) Lookup(id string) (string, error) {
	name, ok := m.names[id]
	if !ok {
		return "", errors.New(errors.ErrCodeUnresolvedIdentifier, "node id %q is not defined in the node table", id)
	}
	return name, nil
}

// Resolve returns the display name of id and whether it was found.
func (m *IDMap) Resolve(id string) (string, bool) {
	name, ok := m.names[id]
	return name, ok
}

// Has reports whether id is known.
func (m *IDMap) Has(id string) bool {
	_, ok := m.names[id]
	return ok
}

// Set replaces the display name of id.
func (m *IDMap) Set(id, name string) { m.names[id] = name }

// Len returns the number of known ids.
func (m *IDMap) Len() int { return len(m.names) }

// Snapshot returns a copy of the id to name mapping.
func (m *IDMap) Snapshot() map[string]string { return maps.Clone(m.names) }
