// Package registry maps aggregation type names to the launchers of the
// execution engine, so a host can dispatch finalized configs by type.
package registry
