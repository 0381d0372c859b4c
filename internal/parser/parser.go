package parser

import (
	"github.com/saltoio/salto-core/internal/element"
	"github.com/saltoio/salto-core/internal/srcrange"
)

// SourceRange pinpoints a span of a blueprint buffer. It is an alias for
// srcrange.Range, which is itself an hcl.Range: the same position
// representation a parser built on hashicorp/hcl/v2 already produces.
type SourceRange = srcrange.Range

// Error is a single parse failure tied to the span that caused it.
type Error struct {
	Subject SourceRange
	Detail  string
}

func (e Error) Error() string { return e.Detail }

// Result is what a single blueprint buffer parses into: the elements it
// declares, the source ranges backing each declared ElemID, and any parse
// errors encountered. A buffer with Errors may still contribute partial
// Elements; the Workspace Coordinator folds all three into WorkspaceState
// as-is.
type Result struct {
	Elements  []element.Element
	SourceMap srcrange.SourceMap
	Errors    []Error
}

// Parser turns a blueprint's raw bytes into a Result. filename identifies
// the buffer for source-range reporting; it need not exist on disk (the
// Workspace Coordinator also parses in-memory buffers produced by
// blueprintedit.UpdateBlueprintData before they are written back).
type Parser interface {
	Parse(buffer []byte, filename string) Result
}
