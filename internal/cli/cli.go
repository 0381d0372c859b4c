package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/saltoio/salto-core/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Command is the fully parsed and validated result of a CLI invocation:
// which Workspace Coordinator operation to run, against which app.Config.
type Command struct {
	Config   *app.Config
	Action   string // "init", "load", or "flush"
	Name     string // workspace name, only meaningful for Action == "init"
	UseCache bool   // only meaningful for Action == "load" or "flush"
}

var validActions = map[string]bool{"init": true, "load": true, "flush": true}

// Parse processes command-line arguments into a Command. It returns a
// boolean indicating the program should exit cleanly (help was requested,
// or no action was given), or an ExitError for anything malformed.
func Parse(args []string, output io.Writer) (*Command, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("salto", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
salto - a blueprint-based workspace coordinator.

Usage:
  salto [options] <command> [name]

Commands:
  init [name]   Create a fresh workspace rooted at -base-dir.
  load          Discover and parse every blueprint under -base-dir.
  flush         Load, then persist any newly dirty blueprints to disk.

Options:
`)
		flagSet.PrintDefaults()
	}

	baseDirFlag := flagSet.String("base-dir", ".", "Workspace root directory.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	useCacheFlag := flagSet.Bool("use-cache", true, "Consult the parse cache when loading blueprints.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}

	action := strings.ToLower(flagSet.Arg(0))
	if !validActions[action] {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q: want init, load, or flush", flagSet.Arg(0))}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		BaseDir:   *baseDirFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
		UseCache:  *useCacheFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	name := ""
	if action == "init" && flagSet.NArg() > 1 {
		name = flagSet.Arg(1)
	}

	slog.Debug("CLI parser finished successfully.", "action", action, "config", config)
	return &Command{Config: config, Action: action, Name: name, UseCache: *useCacheFlag}, false, nil
}
