package cache

// ScopedKeyer prefixes every key, giving a caller its own namespace in a
// shared backend. The preview server scopes keys per scene so one scene's
// frames can be dropped without touching the others.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "scene:matrix-vector:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses the
// default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// Prefix returns the scope prefix.
func (k *ScopedKeyer) Prefix() string { return k.prefix }

func (k *ScopedKeyer) FrameKey(contentHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(contentHash, opts)
}

func (k *ScopedKeyer) GraphKey(scene, paramsHash, format string) string {
	return k.prefix + k.inner.GraphKey(scene, paramsHash, format)
}
