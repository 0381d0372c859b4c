package hclblueprint

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/saltoio/salto-core/internal/value"
)

// ctyToValue translates a fully-evaluated cty.Value into the element
// package's own Value union. It is only reached for expressions that
// evaluated cleanly with a nil EvalContext, i.e. literals: references are
// intercepted earlier by attrValue, which falls back to
// hcl.AbsTraversalForExpr before ever calling Value.
func ctyToValue(v cty.Value) value.Value {
	if v.IsNull() || !v.IsKnown() {
		return value.Null()
	}

	t := v.Type()
	switch {
	case t == cty.String:
		return value.String(v.AsString())
	case t == cty.Bool:
		return value.Bool(v.True())
	case t == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return value.Number(f)
	case t.IsTupleType(), t.IsListType(), t.IsSetType():
		items := make([]value.Value, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			items = append(items, ctyToValue(ev))
		}
		return value.List(items)
	case t.IsObjectType(), t.IsMapType():
		m := make(map[string]value.Value, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			m[k.AsString()] = ctyToValue(ev)
		}
		return value.Map(m)
	default:
		return value.Null()
	}
}
