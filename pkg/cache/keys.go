package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ArtifactKeyOpts captures everything that changes a rendered figure for
// the same input data.
type ArtifactKeyOpts struct {
	Diagrams []string `json:"diagrams"`
	Axes     []string `json:"axes"`
	Format   string   `json:"format"`
	Config   any      `json:"config"`
}

// Keyer derives cache keys from a hash of the input point data.
type Keyer interface {
	// ArtifactKey is the key for a rendered figure.
	ArtifactKey(dataHash string, opts ArtifactKeyOpts) string

	// OutlierKey is the key for an outlier report on one axis.
	OutlierKey(dataHash, axis string) string
}

// DefaultKeyer derives keys of the form prefix:sha256(components).
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey generates a key for a rendered figure.
func (k *DefaultKeyer) ArtifactKey(dataHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dataHash, opts)
}

// OutlierKey generates a key for an outlier report.
func (k *DefaultKeyer) OutlierKey(dataHash, axis string) string {
	return hashKey("outliers", dataHash, axis)
}

// ScopedKeyer wraps a Keyer with a prefix so separate datasets or users
// get isolated cache namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey generates a prefixed key for a rendered figure.
func (k *ScopedKeyer) ArtifactKey(dataHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(dataHash, opts)
}

// OutlierKey generates a prefixed key for an outlier report.
func (k *ScopedKeyer) OutlierKey(dataHash, axis string) string {
	return k.prefix + k.inner.OutlierKey(dataHash, axis)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
