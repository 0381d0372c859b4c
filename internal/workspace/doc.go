// Package workspace implements the Workspace Coordinator: it owns the
// authoritative in-memory element set for a base directory, tracks which
// blueprint files need persisting, and re-runs Merger -> Reference Resolver
// -> Validator on every edit.
package workspace
