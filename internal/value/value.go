package value

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Kind discriminates the variant held by a Value. Do not switch on anything
// about a Value besides Kind; the other fields are only meaningful for the
// Kind that owns them.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Value is the tagged union carried by every field, annotation, and
// instance attribute. Prim holds the cty representation for the four
// primitive kinds; List, Map, and Ref are populated only for their
// matching Kind.
type Value struct {
	Kind Kind
	Prim cty.Value
	List []Value
	Map  map[string]Value
	Ref  *ReferenceExpression
}

// Null returns the null Value.
func Null() Value { return Value{Kind: KindNull, Prim: cty.NilVal} }

// Bool wraps a boolean primitive.
func Bool(b bool) Value { return Value{Kind: KindBool, Prim: cty.BoolVal(b)} }

// Number wraps a numeric primitive.
func Number(f float64) Value { return Value{Kind: KindNumber, Prim: cty.NumberFloatVal(f)} }

// String wraps a string primitive.
func String(s string) Value { return Value{Kind: KindString, Prim: cty.StringVal(s)} }

// List wraps an ordered sequence of values.
func List(items []Value) Value { return Value{Kind: KindList, List: items} }

// Map wraps a string-keyed collection of values.
func Map(m map[string]Value) Value { return Value{Kind: KindMap, Map: m} }

// Reference wraps a ReferenceExpression.
func Reference(ref ReferenceExpression) Value { return Value{Kind: KindReference, Ref: &ref} }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// IsMap reports whether v is a map value; used by the merger to decide
// whether two instance attributes should be deep-merged or treated as
// scalars that must match exactly.
func (v Value) IsMap() bool { return v.Kind == KindMap }

// IsReference reports whether v denotes a traversal into the element graph.
func (v Value) IsReference() bool { return v.Kind == KindReference }

// Equal reports deep structural equality. Two references are equal iff
// their traversal strings match; cty.Value.RawEquals backs primitive
// comparison so that, e.g., unknown or null-typed values compare sanely.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindBool, KindNumber, KindString:
		return v.Prim.RawEquals(other.Prim)
	case KindList:
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(other.List[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.Map) != len(other.Map) {
			return false
		}
		for k, val := range v.Map {
			ov, ok := other.Map[k]
			if !ok || !val.Equal(ov) {
				return false
			}
		}
		return true
	case KindReference:
		return v.Ref.String() == other.Ref.String()
	default:
		return false
	}
}

// CanonicalString renders a Value into a stable string form that does not
// depend on which of two otherwise-equal contributions happened to be
// evaluated first. The merger uses it to break ties deterministically when
// two declarations disagree on a value: permuting the input never changes
// which string sorts first, so the tie-break is order-independent.
func (v Value) CanonicalString() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool, KindNumber, KindString:
		return v.Prim.GoString()
	case KindReference:
		return "ref:" + v.Ref.String()
	case KindList:
		parts := make([]string, len(v.List))
		for i, item := range v.List {
			parts[i] = item.CanonicalString()
		}
		return "[" + strings.Join(parts, ",") + "]"
	case KindMap:
		keys := make([]string, 0, len(v.Map))
		for k := range v.Map {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ":" + v.Map[k].CanonicalString()
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		return ""
	}
}

// DeepCopy returns a value with its own backing slices/maps, sharing no
// mutable state with v. The merger does not call it: merged values keep
// the slices and maps of the declarations they came from.
func (v Value) DeepCopy() Value {
	switch v.Kind {
	case KindList:
		out := make([]Value, len(v.List))
		for i, item := range v.List {
			out[i] = item.DeepCopy()
		}
		return Value{Kind: KindList, List: out}
	case KindMap:
		out := make(map[string]Value, len(v.Map))
		for k, item := range v.Map {
			out[k] = item.DeepCopy()
		}
		return Value{Kind: KindMap, Map: out}
	case KindReference:
		ref := *v.Ref
		return Value{Kind: KindReference, Ref: &ref}
	default:
		return v
	}
}

// ReferenceExpression denotes a dotted traversal path through the merged
// element set, e.g. `salesforce.lead.instance.myLead.owner`. The path is
// carried as an hcl.Traversal, the same representation the surrounding HCL
// tooling produces when an expression references a named value, so the
// validator can resolve it the exact way an hcl.EvalContext would.
type ReferenceExpression struct {
	Traversal hcl.Traversal
}

// NewReference builds a ReferenceExpression from an HCL traversal.
func NewReference(t hcl.Traversal) ReferenceExpression {
	return ReferenceExpression{Traversal: t}
}

// ParseReference parses a dotted string such as "salesforce.lead.instance.myLead.owner"
// into a ReferenceExpression. It is a convenience for tests; real parser
// implementations are expected to carry richer hcl.Traversal values (with
// source ranges) directly.
func ParseReference(dotted string) ReferenceExpression {
	steps := strings.Split(dotted, ".")
	t := make(hcl.Traversal, 0, len(steps))
	for i, step := range steps {
		if i == 0 {
			t = append(t, hcl.TraverseRoot{Name: step})
			continue
		}
		t = append(t, hcl.TraverseAttr{Name: step})
	}
	return ReferenceExpression{Traversal: t}
}

// Path returns the traversal broken into its dotted string steps.
func (r ReferenceExpression) Path() []string {
	steps := make([]string, 0, len(r.Traversal))
	for _, step := range r.Traversal {
		switch s := step.(type) {
		case hcl.TraverseRoot:
			steps = append(steps, s.Name)
		case hcl.TraverseAttr:
			steps = append(steps, s.Name)
		case hcl.TraverseIndex:
			steps = append(steps, fmt.Sprintf("%v", s.Key))
		}
	}
	return steps
}

// RootName returns the first traversal step, the identifier the reference
// is resolved against (an adapter name, a type name, or "var").
func (r ReferenceExpression) RootName() string {
	path := r.Path()
	if len(path) == 0 {
		return ""
	}
	return path[0]
}

// String renders the canonical dotted form of the traversal.
func (r ReferenceExpression) String() string {
	return strings.Join(r.Path(), ".")
}
