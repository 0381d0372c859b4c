// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates CLI flags into a Command the entrypoint dispatches against an
// app.App.
package cli
