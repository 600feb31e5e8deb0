// Package cache provides generic, thread-safe in-memory caches used to
// memoize dereferenced remote documents.
//
// Two implementations are available:
//   - Simple: no eviction, entries live for the cache's lifetime
//   - LRU: bounded size with least-recently-used eviction
//
// Statistics are always collected; Prometheus metrics export is optional
// and enabled with WithMetrics.
package cache
