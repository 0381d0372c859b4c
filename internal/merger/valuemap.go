package merger

import "github.com/saltoio/salto-core/internal/element"

// mergeValueMap unions add into acc in place. A key present in both maps
// with equal values is a harmless repeat declaration and is left alone; a
// key present in both with differing values is a genuine conflict: onConflict
// is invoked and the surviving value is chosen by comparing the two
// candidates' CanonicalString so the outcome never depends on which
// declaration was folded in first.
func mergeValueMap(acc map[string]element.Value, add map[string]element.Value, onConflict func(key string)) {
	for k, v := range add {
		existing, ok := acc[k]
		if !ok {
			acc[k] = v
			continue
		}
		if existing.Equal(v) {
			continue
		}
		if v.CanonicalString() < existing.CanonicalString() {
			acc[k] = v
		}
		onConflict(k)
	}
}

// mergeTypeRefMap is mergeValueMap's counterpart for maps of TypeRef, used
// for ObjectType.AnnotationTypes.
func mergeTypeRefMap(acc map[string]element.TypeRef, add map[string]element.TypeRef, onConflict func(key string)) {
	for k, v := range add {
		existing, ok := acc[k]
		if !ok {
			acc[k] = v
			continue
		}
		if existing.ElemID().Equal(v.ElemID()) {
			continue
		}
		if v.ElemID().FullName() < existing.ElemID().FullName() {
			acc[k] = v
		}
		onConflict(k)
	}
}
