package network

import (
	"regexp"
	"strings"
)

// SymbolPrefix qualifies member names that look like gene symbols.
const SymbolPrefix = "hgnc.symbol:"

// symbolRE accepts gene symbols with one optional trailing '@'.
var symbolRE = regexp.MustCompile(`^[A-Za-z0-9_]+(@)?$`)

// IsSymbol reports whether name is a valid biological symbol.
func IsSymbol(name string) bool { return symbolRE.MatchString(name) }

// QualifySymbol prefixes name with [SymbolPrefix] when it is a valid symbol.
// Anything else, including already-qualified identifiers and free text, is
// returned unchanged.
func QualifySymbol(name string) string {
	if IsSymbol(name) {
		return SymbolPrefix + name
	}
	return name
}

// StripSymbol removes a leading [SymbolPrefix].
func StripSymbol(member string) string {
	return strings.TrimPrefix(member, SymbolPrefix)
}
