package blueprintedit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saltoio/salto-core/internal/blueprintedit"
	"github.com/saltoio/salto-core/internal/srcrange"
)

func TestGetChangeLocations_OneLocationPerSourceRange(t *testing.T) {
	sourceMap := srcrange.SourceMap{
		"salto.obj": []srcrange.Range{
			{Filename: "a.bp", Start: srcrange.Pos{Byte: 10}, End: srcrange.Pos{Byte: 20}},
			{Filename: "b.bp", Start: srcrange.Pos{Byte: 5}, End: srcrange.Pos{Byte: 9}},
		},
	}
	changes := []blueprintedit.Change{{ElemIDFullName: "salto.obj", Kind: blueprintedit.Modify, NewText: []byte("x")}}

	locations := blueprintedit.GetChangeLocations(changes, sourceMap)
	require.Len(t, locations, 2)
}

func TestUpdateBlueprintData_ModifyReplacesSpan(t *testing.T) {
	buffer := []byte("object obj { field = \"old\" }")
	start := 21
	end := 26
	require.Equal(t, "\"old\"", string(buffer[start:end]))

	locations := []blueprintedit.Location{{
		Change: blueprintedit.Change{ElemIDFullName: "salto.obj", Kind: blueprintedit.Modify, NewText: []byte(`"new"`)},
		Range:  srcrange.Range{Start: srcrange.Pos{Byte: start}, End: srcrange.Pos{Byte: end}},
	}}

	out := blueprintedit.UpdateBlueprintData(buffer, locations)
	assert.Equal(t, `object obj { field = "new" }`, string(out))
}

func TestUpdateBlueprintData_MultipleEditsAppliedRightToLeft(t *testing.T) {
	buffer := []byte("aaabbbccc")
	locations := []blueprintedit.Location{
		{Change: blueprintedit.Change{Kind: blueprintedit.Modify, NewText: []byte("X")}, Range: srcrange.Range{Start: srcrange.Pos{Byte: 0}, End: srcrange.Pos{Byte: 3}}},
		{Change: blueprintedit.Change{Kind: blueprintedit.Modify, NewText: []byte("Y")}, Range: srcrange.Range{Start: srcrange.Pos{Byte: 6}, End: srcrange.Pos{Byte: 9}}},
	}

	out := blueprintedit.UpdateBlueprintData(buffer, locations)
	assert.Equal(t, "XbbbY", string(out))
}

func TestUpdateBlueprintData_RemoveDeletesSpan(t *testing.T) {
	buffer := []byte("keep[delete]keep")
	locations := []blueprintedit.Location{{
		Change: blueprintedit.Change{Kind: blueprintedit.Remove},
		Range:  srcrange.Range{Start: srcrange.Pos{Byte: 4}, End: srcrange.Pos{Byte: 12}},
	}}

	out := blueprintedit.UpdateBlueprintData(buffer, locations)
	assert.Equal(t, "keepkeep", string(out))
}
