package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/saltoio/salto-core/internal/ctxlog"
	"github.com/saltoio/salto-core/internal/filelayer"
	"github.com/saltoio/salto-core/internal/hclblueprint"
	"github.com/saltoio/salto-core/internal/parsecache"
	"github.com/saltoio/salto-core/internal/workspace"
)

// parseCacheSize bounds how many parsed blueprints an App keeps warm across
// Load calls.
const parseCacheSize = 512

// App encapsulates the application's dependencies, configuration, and
// lifecycle: a Workspace Coordinator plus the logger and I/O it was built
// with.
type App struct {
	outW        io.Writer
	logger      *slog.Logger
	coordinator *workspace.Coordinator
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance wrapping its own isolated logger and Workspace
// Coordinator, backed by the real filesystem.
func NewApp(outW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.DebugContext(ctx, "logger configured successfully")

	cache, err := parsecache.New(parseCacheSize)
	if err != nil {
		// A cache that fails to construct at all is a programmer error
		// (a non-positive size), not a runtime condition callers can act on.
		return nil, fmt.Errorf("creating parse cache: %w", err)
	}

	files := filelayer.New(afero.NewOsFs())
	coordinator := workspace.New(cfg.BaseDir, files, hclblueprint.New(), cache, logger)
	logger.DebugContext(ctx, "workspace coordinator constructed", "base_dir", cfg.BaseDir)

	return &App{outW: outW, logger: logger, coordinator: coordinator}, nil
}

// Coordinator returns the application's Workspace Coordinator. This is
// primarily for testing and for the CLI's subcommand dispatch.
func (a *App) Coordinator() *workspace.Coordinator {
	return a.coordinator
}
