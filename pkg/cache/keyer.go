package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer generates cache keys for the different payload kinds the pipeline
// stores. Implementations must be deterministic: the same inputs always
// yield the same key.
type Keyer interface {
	// EntityKey generates a key for a fetched image-resource document.
	EntityKey(url string) string

	// SrcsetKey generates a key for a derived srcset payload, scoped to
	// the entity it was derived from and the derivation options.
	SrcsetKey(entityHash string, opts SrcsetKeyOpts) string
}

// SrcsetKeyOpts carries the derivation inputs that affect the output and
// therefore belong in the cache key.
type SrcsetKeyOpts struct {
	Class string `json:"class"`
}

// DefaultKeyer hashes inputs into collision-safe keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// EntityKey generates a key for a fetched image-resource document.
func (k *DefaultKeyer) EntityKey(url string) string {
	return hashKey("entity", url)
}

// SrcsetKey generates a key for a derived srcset payload.
func (k *DefaultKeyer) SrcsetKey(entityHash string, opts SrcsetKeyOpts) string {
	return hashKey("srcset", entityHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, e.g. one
// namespace per origin host when a single backend serves several upstreams.
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

// EntityKey generates a prefixed key for a fetched document.
func (k *ScopedKeyer) EntityKey(url string) string {
	return k.prefix + k.inner.EntityKey(url)
}

// SrcsetKey generates a prefixed key for a derived srcset payload.
func (k *ScopedKeyer) SrcsetKey(entityHash string, opts SrcsetKeyOpts) string {
	return k.prefix + k.inner.SrcsetKey(entityHash, opts)
}

// hashKey generates a cache key of the form prefix:hash(parts...).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
