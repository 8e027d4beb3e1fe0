package cache

// ScopedKeyer wraps a Keyer with a prefix so several profiles can share one
// cache backend without seeing each other's entries.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "profile:tcgaloader:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// NetworkKey generates a prefixed network key.
func (k *ScopedKeyer) NetworkKey(name string, content []byte, opts NetworkKeyOpts) string {
	return k.prefix + k.inner.NetworkKey(name, content, opts)
}
