package merger

import (
	"fmt"

	"github.com/saltoio/salto-core/internal/elemid"
	"github.com/saltoio/salto-core/internal/element"
	"github.com/saltoio/salto-core/internal/value"
)

// mergeInstanceGroup deep-merges every InstanceElement declaration sharing
// id. A value key present in more than one declaration is only a conflict
// when the contributed values actually differ; nested object values are
// merged key-by-key, while lists and scalars must agree exactly or the key
// is reported via DuplicateInstanceKeyError.
func mergeInstanceGroup(id elemid.ElemID, decls []*element.InstanceElement) (*element.InstanceElement, []Error) {
	acc := element.NewInstanceElement(id, decls[0].Type)
	var errs []Error

	for _, d := range decls {
		for key, v := range d.Value {
			existing, ok := acc.Value[key]
			if !ok {
				acc.Value[key] = v
				continue
			}
			merged, conflict := deepMergeValue(existing, v)
			acc.Value[key] = merged
			if conflict {
				errs = append(errs, newDuplicateInstanceKey(id.Child(key),
					fmt.Sprintf("conflicting values for key %q", key)))
			}
		}
		mergeValueMap(acc.Annotations, d.Annotations, func(key string) {
			errs = append(errs, newDuplicateAnnotation(elemid.NewAnnotationTypeID(id.Adapter, id.TypeName, key),
				fmt.Sprintf("conflicting values for annotation %q on instance", key)))
		})
	}

	return acc, errs
}

// deepMergeValue combines two values contributed for the same key. Maps
// merge recursively, key by key; anything else must already be equal, or
// the merge reports a conflict and deterministically keeps whichever
// candidate's CanonicalString sorts first.
func deepMergeValue(existing, incoming element.Value) (element.Value, bool) {
	if existing.IsMap() && incoming.IsMap() {
		merged := make(map[string]element.Value, len(existing.Map))
		for k, v := range existing.Map {
			merged[k] = v
		}
		conflict := false
		for k, v := range incoming.Map {
			if ex, ok := merged[k]; ok {
				mv, c := deepMergeValue(ex, v)
				merged[k] = mv
				if c {
					conflict = true
				}
			} else {
				merged[k] = v
			}
		}
		return value.Map(merged), conflict
	}

	if existing.Equal(incoming) {
		return existing, false
	}
	if incoming.CanonicalString() < existing.CanonicalString() {
		return incoming, true
	}
	return existing, true
}

// applyDefaults fills every field of instance missing a value, preferring
// the field's own DEFAULT annotation over its declared type's DEFAULT
// annotation (see I4). typeAnnotations resolves a type ElemID to that
// type's own annotation map, looked up against the in-progress merge
// output rather than through TypeRef.Resolved, since the Reference
// Resolver has not run yet at this point in the pipeline.
func applyDefaults(inst *element.InstanceElement, t *element.ObjectType, typeAnnotations func(elemid.ElemID) map[string]element.Value) {
	for name, f := range t.Fields {
		if _, present := inst.Value[name]; present {
			continue
		}
		if def, ok := f.Annotations[element.DefaultAnnotation]; ok {
			inst.Value[name] = def
			continue
		}
		if annos := typeAnnotations(f.Type.ElemID()); annos != nil {
			if def, ok := annos[element.DefaultAnnotation]; ok {
				inst.Value[name] = def
			}
		}
	}
}

// CreateDefaultInstanceFromType builds a fresh instance of t named name
// whose value is populated solely from field-level DEFAULT annotations,
// ignoring any type-level DEFAULT. It is the helper named in §4.1.4,
// useful for adapters that need a ready-made "all defaults" instance
// without going through a full merge pass.
func CreateDefaultInstanceFromType(name string, t *element.ObjectType) *element.InstanceElement {
	id := elemid.NewInstanceID(t.ID.Adapter, t.ID.TypeName, name)
	inst := element.NewInstanceElement(id, element.ResolvedTypeRef(t))
	for fieldName, f := range t.Fields {
		if def, ok := f.Annotations[element.DefaultAnnotation]; ok {
			inst.Value[fieldName] = def
		}
	}
	return inst
}
