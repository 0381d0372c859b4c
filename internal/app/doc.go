// Package app contains the core application logic. It wires a Workspace
// Coordinator to its own logger, file layer, blueprint parser, and parse
// cache, decoupled from any specific entrypoint like a CLI.
package app
