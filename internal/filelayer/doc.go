// Package filelayer declares the file-system operations the Workspace
// Coordinator consumes and provides a concrete implementation backed by
// github.com/spf13/afero, so tests can swap in an in-memory filesystem
// without touching disk.
package filelayer
