// Package observe provides observability primitives for name resolution
// lookups.
//
// It is a pure instrumentation library: no resolution logic, no transport,
// no I/O beyond exporter setup. Consumers wire the observer into the
// resolver or the cache layer.
package observe
