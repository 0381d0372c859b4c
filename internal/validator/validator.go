package validator

import (
	"fmt"
	"strings"

	"github.com/saltoio/salto-core/internal/elemid"
	"github.com/saltoio/salto-core/internal/element"
	"github.com/saltoio/salto-core/internal/value"
)

// maxReferenceChainLength bounds how many hops Validate follows through a
// chain of references before giving up; a genuine cycle is always caught
// well before this via the visited-path set, this is only a backstop
// against pathological non-cyclic chains.
const maxReferenceChainLength = 4096

// Validate walks every merged, resolved element and reports every
// UnresolvedReferenceValidationError, InvalidValueTypeValidationError,
// CircularReferenceValidationError, and MissingRequiredFieldValidationError
// it finds. It visits every primitive leaf of every instance value exactly
// once.
func Validate(elements []element.Element) []Error {
	v := &validation{
		byFullName: make(map[string]element.Element, len(elements)),
	}
	for _, el := range elements {
		v.byFullName[el.ElemID().FullName()] = el
	}

	var errs []Error
	for _, el := range elements {
		switch e := el.(type) {
		case *element.ObjectType:
			errs = append(errs, v.validateObjectType(e)...)
		case *element.PrimitiveType:
			errs = append(errs, v.validateAnnotationTypes(e.ID, e.AnnotationTypes)...)
		case *element.InstanceElement:
			errs = append(errs, v.validateInstance(e)...)
		case *element.ListType:
			if !e.Inner.IsResolved() {
				errs = append(errs, newUnresolvedReference(e.ElemID(),
					fmt.Sprintf("list element type %q does not resolve to any merged element", e.Inner.ElemID().FullName())))
			}
		}
	}
	return errs
}

type validation struct {
	byFullName map[string]element.Element
}

func (v *validation) validateObjectType(o *element.ObjectType) []Error {
	var errs []Error
	for _, f := range o.Fields {
		if !f.Type.IsResolved() {
			errs = append(errs, newUnresolvedReference(f.ElemID(),
				fmt.Sprintf("field %q references undefined type %q", f.Name, f.Type.ElemID().FullName())))
		}
	}
	errs = append(errs, v.validateAnnotationTypes(o.ID, o.AnnotationTypes)...)
	return errs
}

func (v *validation) validateAnnotationTypes(owner elemid.ElemID, annotationTypes map[string]element.TypeRef) []Error {
	var errs []Error
	for name, ref := range annotationTypes {
		if !ref.IsResolved() {
			errs = append(errs, newUnresolvedReference(elemid.NewAnnotationTypeID(owner.Adapter, owner.TypeName, name),
				fmt.Sprintf("annotation %q references undefined type %q", name, ref.ElemID().FullName())))
		}
	}
	return errs
}

func (v *validation) validateInstance(inst *element.InstanceElement) []Error {
	var errs []Error

	objType, _ := inst.Type.Resolved().(*element.ObjectType)
	if inst.Type.IsResolved() && objType == nil {
		errs = append(errs, newUnresolvedReference(inst.ElemID(),
			fmt.Sprintf("instance type %q does not resolve to an object type", inst.Type.ElemID().FullName())))
	}
	if !inst.Type.IsResolved() {
		errs = append(errs, newUnresolvedReference(inst.ElemID(),
			fmt.Sprintf("instance type %q does not resolve to any merged element", inst.Type.ElemID().FullName())))
	}

	if objType != nil {
		for name, f := range objType.Fields {
			val, present := inst.Value[name]
			if !present {
				if !fieldIsOptional(f) {
					errs = append(errs, newMissingRequiredField(inst.ElemID().Child(name),
						fmt.Sprintf("required field %q omitted from instance %q", name, inst.ElemID().FullName())))
				}
				continue
			}
			errs = append(errs, v.validateValueType(inst.ElemID().Child(name), val, f.Type)...)
		}
	}

	for name, val := range inst.Value {
		errs = append(errs, v.walkReferences(inst.ElemID().Child(name), val)...)
	}

	return errs
}

func fieldIsOptional(f *element.Field) bool {
	if def, ok := f.Annotations[element.DefaultAnnotation]; ok && !def.IsNull() {
		return true
	}
	var typeAnnotations map[string]element.Value
	switch t := f.Type.Resolved().(type) {
	case *element.ObjectType:
		typeAnnotations = t.Annotations
	case *element.PrimitiveType:
		typeAnnotations = t.Annotations
	}
	if def, ok := typeAnnotations[element.DefaultAnnotation]; ok && !def.IsNull() {
		return true
	}
	if opt, ok := f.Annotations[element.OptionalAnnotation]; ok {
		return opt.Equal(value.Bool(true))
	}
	return false
}

// validateValueType checks val's runtime shape against fieldType's resolved
// target. References are skipped here; their own resolution is checked by
// walkReferences.
func (v *validation) validateValueType(id elemid.ElemID, val element.Value, fieldType element.TypeRef) []Error {
	if val.IsNull() || val.IsReference() {
		return nil
	}
	if !fieldType.IsResolved() {
		return nil
	}

	switch target := fieldType.Resolved().(type) {
	case *element.PrimitiveType:
		if !primitiveKindMatches(target.Primitive, val) {
			return []Error{newInvalidValueType(id,
				fmt.Sprintf("expected %s value, got %s", target.Primitive, val.Kind))}
		}
	case *element.ListType:
		if val.Kind != value.KindList {
			return []Error{newInvalidValueType(id, fmt.Sprintf("expected list value, got %s", val.Kind))}
		}
		var errs []Error
		for i, item := range val.List {
			errs = append(errs, v.validateValueType(id.Child(fmt.Sprintf("%d", i)), item, target.Inner)...)
		}
		return errs
	case *element.ObjectType:
		if !val.IsMap() {
			return []Error{newInvalidValueType(id, fmt.Sprintf("expected object value, got %s", val.Kind))}
		}
	}
	return nil
}

func primitiveKindMatches(kind element.PrimitiveKind, val element.Value) bool {
	switch kind {
	case element.PrimitiveString:
		return val.Kind == value.KindString
	case element.PrimitiveNumber:
		return val.Kind == value.KindNumber
	case element.PrimitiveBoolean:
		return val.Kind == value.KindBool
	default:
		return true
	}
}

// walkReferences visits val (and, recursively, every element of a list or
// map value) looking for ReferenceExpression leaves, reporting unresolved
// roots and following resolvable chains to detect cycles.
func (v *validation) walkReferences(id elemid.ElemID, val element.Value) []Error {
	if val.IsReference() {
		return v.checkReference(id, val)
	}
	var errs []Error
	if val.IsMap() {
		for k, item := range val.Map {
			errs = append(errs, v.walkReferences(id.Child(k), item)...)
		}
	}
	for i, item := range val.List {
		errs = append(errs, v.walkReferences(id.Child(fmt.Sprintf("%d", i)), item)...)
	}
	return errs
}

func (v *validation) checkReference(id elemid.ElemID, val element.Value) []Error {
	path := val.Ref.String()
	if !v.referenceResolves(path) {
		return []Error{newUnresolvedReference(id, fmt.Sprintf("reference %q does not resolve to any merged element", path))}
	}

	visited := map[string]bool{path: true}
	current := val
	for steps := 0; steps < maxReferenceChainLength; steps++ {
		next, ok := v.dereference(current)
		if !ok {
			return nil
		}
		if !next.IsReference() {
			return nil
		}
		nextPath := next.Ref.String()
		if visited[nextPath] {
			return []Error{newCircularReference(id, fmt.Sprintf("reference %q forms a cycle at %q", path, nextPath))}
		}
		visited[nextPath] = true
		current = next
	}
	return nil
}

// referenceResolves reports whether path names something real in the merged
// graph: either an element's own FullName exactly, or an InstanceElement
// FullName followed by a chain of value-map keys that all exist. It only
// ever considers the longest dotted prefix of path found in byFullName,
// since an ElemID's own FullName is itself a dotted path and a shorter
// prefix (e.g. the owning type of a nonexistent instance) is never what the
// reference actually names.
func (v *validation) referenceResolves(path string) bool {
	steps := strings.Split(path, ".")
	for length := len(steps); length > 0; length-- {
		candidate := strings.Join(steps[:length], ".")
		el, ok := v.byFullName[candidate]
		if !ok {
			continue
		}
		remaining := steps[length:]
		if len(remaining) == 0 {
			return true
		}
		inst, ok := el.(*element.InstanceElement)
		if !ok {
			return false
		}
		val, ok := inst.Value[remaining[0]]
		if !ok {
			return false
		}
		for _, seg := range remaining[1:] {
			if !val.IsMap() {
				return false
			}
			val, ok = val.Map[seg]
			if !ok {
				return false
			}
		}
		return true
	}
	return false
}

// dereference follows a reference one hop: it resolves the reference's
// target element and, if the remaining path segments address a value
// stored on that element, returns that value.
func (v *validation) dereference(ref element.Value) (element.Value, bool) {
	path := ref.Ref.Path()
	for length := len(path); length > 0; length-- {
		candidate := strings.Join(path[:length], ".")
		el, ok := v.byFullName[candidate]
		if !ok {
			continue
		}
		inst, ok := el.(*element.InstanceElement)
		if !ok {
			return element.Value{}, false
		}
		remaining := path[length:]
		if len(remaining) == 0 {
			return element.Value{}, false
		}
		val, ok := inst.Value[remaining[0]]
		if !ok {
			return element.Value{}, false
		}
		for _, seg := range remaining[1:] {
			if !val.IsMap() {
				return element.Value{}, false
			}
			val, ok = val.Map[seg]
			if !ok {
				return element.Value{}, false
			}
		}
		return val, true
	}
	return element.Value{}, false
}
