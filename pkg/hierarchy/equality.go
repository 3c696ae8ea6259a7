package hierarchy

import (
	"fmt"

	"github.com/aretw0/pathhierarchy/pkg/stream"
	"github.com/cespare/xxhash/v2"
)

// Equal reports whether c and other describe the same bucketing: separator,
// depth bounds, depth and order. Name, value source and attachments are not
// compared.
func (c Config) Equal(other Config) bool {
	return c.separator == other.separator &&
		c.minDepth == other.minDepth &&
		c.maxDepth == other.maxDepth &&
		c.depth == other.depth &&
		c.order.Equal(other.order)
}

// Hash returns a hash consistent with Equal, computed over the binary body.
func (c Config) Hash() uint64 {
	return xxhash.Sum64(bodyBytes(c))
}

// CacheKey renders Hash as 16 hex digits.
func (c Config) CacheKey() string {
	return fmt.Sprintf("%016x", c.Hash())
}

// StoreKey identifies c in a config store. Unlike CacheKey it also covers
// the value source, so configs that bucket alike but read different fields
// keep separate entries. Name and attachments are not covered.
func (c Config) StoreKey() (string, error) {
	w := stream.NewWriter(64)
	if err := encodeSource(w, c.source); err != nil {
		return "", err
	}
	if err := EncodeBody(w, c); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(w.Bytes())), nil
}
