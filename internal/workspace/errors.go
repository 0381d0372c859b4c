package workspace

import "fmt"

// ExistingWorkspaceError is returned by Init when a workspace root is
// already discoverable at or above the target base directory.
type ExistingWorkspaceError struct {
	Path string
}

func (e *ExistingWorkspaceError) Error() string {
	return fmt.Sprintf("a workspace already exists at or above %s", e.Path)
}

// NotAnEmptyWorkspaceError is returned by Init when the target directory
// already contains a config file, local-storage directory, or state file.
type NotAnEmptyWorkspaceError struct {
	Path string
}

func (e *NotAnEmptyWorkspaceError) Error() string {
	return fmt.Sprintf("%s is not an empty directory for a new workspace", e.Path)
}

// Severity classifies a WorkspaceError for display.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// WorkspaceError is the projection get_workspace_errors produces: the
// underlying error paired with the source text it points at, so a caller
// can show the user exactly what to fix.
type WorkspaceError struct {
	SourceFragments [][]byte
	Err             error
	Severity        Severity
	Cause           error
}

func (w WorkspaceError) Error() string { return w.Err.Error() }
