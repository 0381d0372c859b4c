package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/saltoio/salto-core/internal/app"
	"github.com/saltoio/salto-core/internal/cli"
)

// main is the entrypoint for the salto CLI.
func main() {
	// Use a minimal logger until the full one is configured by app.NewApp.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW io.Writer, args []string) error {
	cmd, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(outW, "A critical startup error occurred: %v\n", r)
			os.Exit(1)
		}
	}()

	saltoApp, err := app.NewApp(outW, cmd.Config)
	if err != nil {
		return fmt.Errorf("application startup failed: %w", err)
	}

	ctx := context.Background()
	switch cmd.Action {
	case "init":
		return saltoApp.Init(ctx, cmd.Name)
	case "load":
		if err := saltoApp.Load(ctx, cmd.UseCache); err != nil {
			return err
		}
		return printWorkspaceErrors(outW, saltoApp)
	case "flush":
		if err := saltoApp.Load(ctx, cmd.UseCache); err != nil {
			return err
		}
		if err := saltoApp.Flush(ctx); err != nil {
			return err
		}
		return printWorkspaceErrors(outW, saltoApp)
	default:
		return fmt.Errorf("unreachable: unknown action %q", cmd.Action)
	}
}

func printWorkspaceErrors(outW io.Writer, a *app.App) error {
	for _, we := range a.WorkspaceErrors() {
		fmt.Fprintf(outW, "%s: %v\n", we.Severity, we.Err)
	}
	return nil
}
