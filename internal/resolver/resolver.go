package resolver

import (
	"github.com/saltoio/salto-core/internal/element"
)

// Resolve replaces every TypeRef placeholder reachable from elements with a
// handle to the merged element sharing its ElemID, in place. Resolution is a
// single flat pass keyed by ElemID.FullName: each TypeRef is resolved by one
// index lookup, never by walking into its target's own fields, so a
// self-referential or mutually-recursive type graph never drives Resolve
// into unbounded recursion. Running Resolve twice over the same elements is
// a no-op the second time (I5): every already-resolved TypeRef re-resolves
// to the same handle.
func Resolve(elements []element.Element) {
	index := make(map[string]element.Element, len(elements))
	for _, el := range elements {
		index[el.ElemID().FullName()] = el
	}

	for _, el := range elements {
		switch e := el.(type) {
		case *element.ObjectType:
			resolveObjectType(e, index)
		case *element.PrimitiveType:
			resolveAnnotationTypes(e.AnnotationTypes, index)
		case *element.InstanceElement:
			e.Type = resolveRef(e.Type, index)
		case *element.ListType:
			e.Inner = resolveRef(e.Inner, index)
		}
	}
}

func resolveObjectType(o *element.ObjectType, index map[string]element.Element) {
	for _, f := range o.Fields {
		f.Type = resolveRef(f.Type, index)
	}
	resolveAnnotationTypes(o.AnnotationTypes, index)
}

func resolveAnnotationTypes(annotationTypes map[string]element.TypeRef, index map[string]element.Element) {
	for k, ref := range annotationTypes {
		annotationTypes[k] = resolveRef(ref, index)
	}
}

// resolveRef looks ref's ElemID up against index and returns the resolved
// TypeRef if found. A ref that is already resolved, or whose ElemID has no
// matching merged element, is returned unchanged.
func resolveRef(ref element.TypeRef, index map[string]element.Element) element.TypeRef {
	if ref.IsResolved() {
		return ref
	}
	if target, ok := index[ref.ElemID().FullName()]; ok {
		return ref.WithResolved(target)
	}
	return ref
}
