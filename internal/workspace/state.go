package workspace

import (
	"github.com/saltoio/salto-core/internal/element"
	"github.com/saltoio/salto-core/internal/merger"
	"github.com/saltoio/salto-core/internal/parser"
	"github.com/saltoio/salto-core/internal/srcrange"
	"github.com/saltoio/salto-core/internal/validator"
)

// ParsedBlueprint is one blueprint file's frozen parse result, kept around
// so a rebuild can re-run Merge/Resolve/Validate without reparsing.
type ParsedBlueprint struct {
	Filename string
	Buffer   []byte
	Result   parser.Result
}

// Errors is the error triad exposed by a State: every parse failure from
// its blueprints, every merge failure, and every validation failure.
type Errors struct {
	Parse      []parser.Error
	Merge      []merger.Error
	Validation []validator.Error
}

// State is an immutable snapshot of the workspace's derived view. The
// Coordinator never mutates a State in place; create_workspace_state
// produces a new one and the Coordinator swaps its pointer.
type State struct {
	ParsedBlueprints map[string]*ParsedBlueprint
	SourceMap        srcrange.SourceMap
	Elements         []element.Element
	Errors           Errors
}
