/*
Package pathhierarchy is the request-configuration layer of the path_hierarchy
bucket aggregation, which groups documents by the hierarchical prefixes of a
delimited path value such as "/a/b/c".

It does not execute aggregations. It builds, validates, normalizes and
serializes their configuration so that two nodes agree on it byte for byte.

# Packages

  - pkg/hierarchy: the Builder, the immutable Config, and its text (JSON) and
    binary codecs, equality and hash.
  - pkg/order: bucket ordering criteria and the normalizer that turns a user
    list into a total order with a key tie-breaker.
  - pkg/stream: the variable-length integer stream used by the binary codec.
  - pkg/ports, pkg/adapters: a config cache keyed by the config hash, backed
    by memory or Redis, and an HTTP API over chi.

# Usage

	b := hierarchy.NewBuilder("paths").Separator(".").MaxDepth(4)
	if err := b.Orders(order.Aggregation("size", false)); err != nil {
		log.Fatal(err)
	}
	cfg, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	body, _ := cfg.MarshalJSON()  // text form
	wire, _ := hierarchy.Encode(cfg) // binary form
	key := cfg.CacheKey()           // shared by every equal config

The pathagg command wraps the same operations for request files in JSON or
YAML and can serve them over HTTP.
*/
package pathhierarchy
