// Package observe provides observability primitives for flyweight registries.
//
// It is a pure instrumentation library: no storage, no transport, no I/O
// beyond exporter setup. Registries receive a Middleware and a Logger through
// their options; everything defaults to no-ops.
package observe
