package assemble

import (
	"slices"
	"strings"

	"github.com/ndexcontent/tcgaloader/pkg/network"
)

// MemberSeparator joins member identifiers in the MEMBER columns.
const MemberSeparator = "|"

// AggregateMembers fills Members on every container endpoint.
//
// Members are the names of endpoints, on either side, whose parent is the
// container. A container with no such children falls back to the protein
// nodes with an edge into it; the targets of its own edges are never
// members. The container itself is never a member. Names that are valid
// symbols are qualified with [network.SymbolPrefix]; the result is
// deduplicated and sorted.
func AggregateMembers(records []network.JoinedRecord) map[string][]string {
	children := make(map[string]map[string]bool)
	neighbours := make(map[string]map[string]bool)
	add := func(sets map[string]map[string]bool, key string, e network.Endpoint) {
		if key == e.ID || strings.TrimSpace(e.Name) == "" {
			return
		}
		if sets[key] == nil {
			sets[key] = make(map[string]bool)
		}
		sets[key][network.QualifySymbol(e.Name)] = true
	}

	for _, r := range records {
		ends := []network.Endpoint{r.Source}
		if r.Target != nil {
			ends = append(ends, *r.Target)
			if r.Target.IsContainer() && r.Source.Kind == network.KindProtein {
				add(neighbours, r.Target.ID, r.Source)
			}
		}
		for _, e := range ends {
			if e.HasParent() {
				add(children, e.ParentID, e)
			}
		}
	}

	members := make(map[string][]string)
	for i := range records {
		r := &records[i]
		setMembers(&r.Source, children, neighbours, members)
		if r.Target != nil {
			setMembers(r.Target, children, neighbours, members)
		}
	}
	return members
}

func setMembers(e *network.Endpoint, children, neighbours map[string]map[string]bool, cache map[string][]string) {
	if !e.IsContainer() {
		return
	}
	m, ok := cache[e.ID]
	if !ok {
		set := children[e.ID]
		if len(set) == 0 {
			set = neighbours[e.ID]
		}
		for name := range set {
			m = append(m, name)
		}
		slices.Sort(m)
		cache[e.ID] = m
	}
	e.Members = m
}

var memberEscaper = strings.NewReplacer(`\`, `\\`, MemberSeparator, `\`+MemberSeparator)

// JoinMembers serializes a member set for the MEMBER columns. A separator
// or backslash inside a member is escaped with a backslash.
func JoinMembers(members []string) string {
	escaped := make([]string, len(members))
	for i, m := range members {
		escaped[i] = memberEscaper.Replace(m)
	}
	return strings.Join(escaped, MemberSeparator)
}

// SplitMembers parses a MEMBER column value written by [JoinMembers].
func SplitMembers(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' && i+1 < len(s):
			i++
			b.WriteByte(s[i])
		case c == MemberSeparator[0]:
			out = append(out, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	return append(out, b.String())
}
