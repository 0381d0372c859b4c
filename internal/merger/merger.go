package merger

import (
	"sort"

	"github.com/saltoio/salto-core/internal/elemid"
	"github.com/saltoio/salto-core/internal/element"
)

// Result is the Merger's output: a deduplicated element per ElemID plus
// every merge rule violation encountered along the way. Result.Errors'
// membership is permutation-invariant (I1); only its order is not.
type Result struct {
	Elements []element.Element
	Errors   []Error
}

// Merge folds an unordered sequence of partial element declarations into
// one merged element per ElemID. Elements are gathered by identity before
// any rule runs; the only order Merge ever consults is the classification
// of base-vs-update within a single ObjectType's declarations, and that
// classification is syntactic (the marker type), never positional.
func Merge(elements []element.Element) Result {
	objects := map[string][]*element.ObjectType{}
	objectIDs := map[string]elemid.ElemID{}
	primitives := map[string][]*element.PrimitiveType{}
	primitiveIDs := map[string]elemid.ElemID{}
	instances := map[string][]*element.InstanceElement{}
	instanceIDs := map[string]elemid.ElemID{}
	variables := map[string][]*element.Variable{}
	variableIDs := map[string]elemid.ElemID{}
	listTypes := map[string]*element.ListType{}

	for _, el := range elements {
		id := el.ElemID()
		key := id.FullName()
		switch e := el.(type) {
		case *element.ObjectType:
			objects[key] = append(objects[key], e)
			objectIDs[key] = id
		case *element.PrimitiveType:
			primitives[key] = append(primitives[key], e)
			primitiveIDs[key] = id
		case *element.InstanceElement:
			instances[key] = append(instances[key], e)
			instanceIDs[key] = id
		case *element.Variable:
			variables[key] = append(variables[key], e)
			variableIDs[key] = id
		case *element.ListType:
			// ListType has no base/update composition and no duplicate-detection
			// rule (see §3.2): its identity is entirely determined by its inner
			// type, so any two declarations sharing that identity are already
			// structurally equal. Keep the first one seen.
			if _, ok := listTypes[key]; !ok {
				listTypes[key] = e
			}
		}
	}

	var result Result

	mergedObjects := make(map[string]*element.ObjectType, len(objects))
	for _, key := range sortedKeys(objects) {
		obj, errs := mergeObjectGroup(objectIDs[key], objects[key])
		result.Errors = append(result.Errors, errs...)
		if obj != nil {
			mergedObjects[key] = obj
			result.Elements = append(result.Elements, obj)
		}
	}

	mergedPrimitives := make(map[string]*element.PrimitiveType, len(primitives))
	for _, key := range sortedKeys(primitives) {
		prim, errs := mergePrimitiveGroup(primitiveIDs[key], primitives[key])
		result.Errors = append(result.Errors, errs...)
		if prim != nil {
			mergedPrimitives[key] = prim
			result.Elements = append(result.Elements, prim)
		}
	}

	typeAnnotations := func(id elemid.ElemID) map[string]element.Value {
		key := id.FullName()
		if o, ok := mergedObjects[key]; ok {
			return o.Annotations
		}
		if p, ok := mergedPrimitives[key]; ok {
			return p.Annotations
		}
		return nil
	}

	for _, key := range sortedKeys(instances) {
		inst, errs := mergeInstanceGroup(instanceIDs[key], instances[key])
		result.Errors = append(result.Errors, errs...)
		if inst == nil {
			continue
		}
		if t, ok := mergedObjects[inst.Type.ElemID().FullName()]; ok {
			applyDefaults(inst, t, typeAnnotations)
		}
		result.Elements = append(result.Elements, inst)
	}

	for _, key := range sortedKeys(variables) {
		v, errs := mergeVariableGroup(variableIDs[key], variables[key])
		result.Errors = append(result.Errors, errs...)
		if v != nil {
			result.Elements = append(result.Elements, v)
		}
	}

	for _, key := range sortedKeys(listTypes) {
		result.Elements = append(result.Elements, listTypes[key])
	}

	return result
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
