package workspace

import (
	"sort"

	"github.com/saltoio/salto-core/internal/element"
	"github.com/saltoio/salto-core/internal/merger"
	"github.com/saltoio/salto-core/internal/parser"
	"github.com/saltoio/salto-core/internal/resolver"
	"github.com/saltoio/salto-core/internal/srcrange"
	"github.com/saltoio/salto-core/internal/validator"
)

// createWorkspaceState rebuilds a State from scratch: union every
// blueprint's source map, concatenate elements with the built-in config
// type appended, then Merge -> Resolve -> Validate. Blueprints are walked
// in lexicographically sorted filename order so parse-error order is
// deterministic across runs given the same snapshot.
func createWorkspaceState(parsedBlueprints map[string]*ParsedBlueprint) *State {
	sourceMap := srcrange.SourceMap{}
	var elements []element.Element
	var parseErrors []parser.Error

	for _, filename := range sortedFilenames(parsedBlueprints) {
		pb := parsedBlueprints[filename]
		sourceMap.Merge(pb.Result.SourceMap)
		elements = append(elements, pb.Result.Elements...)
		parseErrors = append(parseErrors, pb.Result.Errors...)
	}
	elements = append(elements, builtinElements()...)

	mergeResult := merger.Merge(elements)
	resolver.Resolve(mergeResult.Elements)
	validationErrors := validator.Validate(mergeResult.Elements)

	return &State{
		ParsedBlueprints: parsedBlueprints,
		SourceMap:        sourceMap,
		Elements:         mergeResult.Elements,
		Errors: Errors{
			Parse:      parseErrors,
			Merge:      mergeResult.Errors,
			Validation: validationErrors,
		},
	}
}

func sortedFilenames(m map[string]*ParsedBlueprint) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
