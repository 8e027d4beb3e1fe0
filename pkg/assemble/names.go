package assemble

import (
	"slices"
	"strings"

	"github.com/ndexcontent/tcgaloader/pkg/network"
)

const (
	// maxNameTokens is the number of member tokens kept in a synthetic name.
	maxNameTokens = 4
	undefinedName = "undefined"
)

// NeedsName reports whether a container endpoint has no usable name.
func NeedsName(e network.Endpoint) bool {
	if !e.IsContainer() {
		return false
	}
	name := strings.TrimSpace(e.Name)
	return name == "" || name == undefinedName
}

// SyntheticName builds a display name for a container of kind k from its
// members: the kind label followed by at most four sorted, unqualified
// member tokens, and " ..." when more existed.
func SyntheticName(k network.Kind, members []string) string {
	tokens := make([]string, len(members))
	for i, m := range members {
		tokens[i] = network.StripSymbol(m)
	}
	slices.Sort(tokens)

	var b strings.Builder
	b.WriteString(k.Label())
	for i, tok := range tokens {
		if i == maxNameTokens {
			b.WriteString(" ...")
			break
		}
		b.WriteByte(' ')
		b.WriteString(tok)
	}
	return b.String()
}

// NameContainers gives every unnamed container endpoint a synthetic name and
// records it in ids. It returns the ids that were renamed, in first-seen
// order. Members must be aggregated first.
func NameContainers(records []network.JoinedRecord, ids *network.IDMap) []string {
	named := make(map[string]bool)
	var order []string
	visit := func(e network.Endpoint) {
		if named[e.ID] || !NeedsName(e) {
			return
		}
		named[e.ID] = true
		order = append(order, e.ID)
		ids.Set(e.ID, SyntheticName(e.Kind, e.Members))
	}
	for _, r := range records {
		visit(r.Source)
		if r.Target != nil {
			visit(*r.Target)
		}
	}
	return order
}

// RestoreNames refreshes every endpoint name and parent name from ids.
func RestoreNames(records []network.JoinedRecord, ids *network.IDMap) {
	restore := func(e *network.Endpoint) {
		if name, ok := ids.Resolve(e.ID); ok {
			e.Name = name
		}
		if e.HasParent() {
			e.ParentName, _ = ids.Resolve(e.ParentID)
		}
	}
	for i := range records {
		restore(&records[i].Source)
		if records[i].Target != nil {
			restore(records[i].Target)
		}
	}
}
