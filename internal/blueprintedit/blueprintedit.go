package blueprintedit

import (
	"sort"

	"github.com/saltoio/salto-core/internal/srcrange"
)

// Kind discriminates the three detailed-change shapes the Workspace
// Coordinator can apply to a blueprint buffer.
type Kind int

const (
	Add Kind = iota
	Modify
	Remove
)

// Change is a structured add/modify/remove targeting an ElemID, carrying
// the replacement text for Add/Modify (ignored for Remove).
type Change struct {
	ElemIDFullName string
	Kind           Kind
	NewText        []byte
}

// Location pairs a Change with the source range it applies to. A Change
// may produce zero locations (its ElemID has no entry in the source map,
// e.g. an Add with no prior declaration to anchor to) or several (the
// ElemID was declared in more than one place).
type Location struct {
	Change Change
	Range  srcrange.Range
}

// GetChangeLocations resolves each change against sourceMap, producing one
// Location per source range recorded for the change's ElemID. The caller
// groups the result by Range.Filename to splice each affected blueprint
// independently.
func GetChangeLocations(changes []Change, sourceMap srcrange.SourceMap) []Location {
	var locations []Location
	for _, c := range changes {
		for _, r := range sourceMap[c.ElemIDFullName] {
			locations = append(locations, Location{Change: c, Range: r})
		}
	}
	return locations
}

// UpdateBlueprintData splices every location's change into buffer and
// returns the resulting buffer. Locations are applied in descending
// byte-offset order so that an earlier edit never invalidates a later
// one's recorded offsets. A Remove location deletes its byte span; an
// Add or Modify location replaces its byte span with Change.NewText (for
// Add, the span is typically zero-width, an insertion point).
func UpdateBlueprintData(buffer []byte, locations []Location) []byte {
	ordered := append([]Location(nil), locations...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte > ordered[j].Range.Start.Byte
	})

	out := append([]byte(nil), buffer...)
	for _, loc := range ordered {
		start, end := loc.Range.Start.Byte, loc.Range.End.Byte
		if start < 0 || end > len(out) || start > end {
			continue
		}
		var replacement []byte
		if loc.Change.Kind != Remove {
			replacement = loc.Change.NewText
		}
		spliced := make([]byte, 0, start+len(replacement)+(len(out)-end))
		spliced = append(spliced, out[:start]...)
		spliced = append(spliced, replacement...)
		spliced = append(spliced, out[end:]...)
		out = spliced
	}
	return out
}
