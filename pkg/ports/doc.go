/*
Package ports defines the driven ports (interfaces) for the path_hierarchy
request layer.

These interfaces decouple the configuration model from external storage, so
finalized configurations can be cached in memory or shared through Redis.

# Key Interfaces

  - ConfigStore: persists finalized configurations keyed by their cache key.
*/
package ports
