package app

import (
	"context"

	"github.com/saltoio/salto-core/internal/workspace"
)

// Init creates a fresh workspace rooted at the App's configured base
// directory, delegating directly to the Workspace Coordinator.
func (a *App) Init(ctx context.Context, name string) error {
	return a.coordinator.Init(ctx, name)
}

// Load discovers and parses every blueprint under the base directory and
// rebuilds the coordinator's state from them.
func (a *App) Load(ctx context.Context, useCache bool) error {
	return a.coordinator.Load(ctx, useCache)
}

// Flush persists every dirty blueprint tracked by the coordinator to disk.
func (a *App) Flush(ctx context.Context) error {
	return a.coordinator.Flush(ctx)
}

// WorkspaceErrors projects the coordinator's current parse, merge, and
// validation errors down to their source fragments for display.
func (a *App) WorkspaceErrors() []workspace.WorkspaceError {
	return a.coordinator.GetWorkspaceErrors()
}

// State returns the coordinator's current immutable snapshot.
func (a *App) State() *workspace.State {
	return a.coordinator.State()
}
