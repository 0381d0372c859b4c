// Package parsecache declares the advisory parse-cache interface the
// Workspace Coordinator consumes on load, and provides an in-memory LRU
// implementation. A cache miss always means "reparse"; nothing about
// correctness depends on the cache being warm.
package parsecache
