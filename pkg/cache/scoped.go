package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments or
// schema versions can share one cache backend without collisions.
//
// Example usage:
//
//	// API server keys, separate from CLI entries in the same Redis
//	k := NewScopedKeyer(NewDefaultKeyer(), "api:v1:")
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

// WordsKey generates a prefixed key for word list caching.
func (k *ScopedKeyer) WordsKey(sourceHash string, opts WordsKeyOpts) string {
	return k.prefix + k.inner.WordsKey(sourceHash, opts)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(wordsHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(wordsHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
