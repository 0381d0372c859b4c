package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saltoio/salto-core/internal/elemid"
	"github.com/saltoio/salto-core/internal/element"
	"github.com/saltoio/salto-core/internal/validator"
	"github.com/saltoio/salto-core/internal/value"
)

func stringPrimitive() *element.PrimitiveType {
	return &element.PrimitiveType{ID: elemid.NewTypeID("salto", "string"), Primitive: element.PrimitiveString}
}

func TestValidate_NoErrorsOnFullyResolvedInput(t *testing.T) {
	str := stringPrimitive()
	strRef := element.ResolvedTypeRef(str)

	typeID := elemid.NewTypeID("salto", "obj")
	obj := element.NewObjectType(typeID)
	obj.Fields["name"] = &element.Field{ParentID: typeID, Name: "name", Type: strRef, Annotations: map[string]element.Value{}}

	instID := elemid.NewInstanceID("salto", "obj", "ins")
	inst := element.NewInstanceElement(instID, element.ResolvedTypeRef(obj))
	inst.Value["name"] = value.String("hello")

	errs := validator.Validate([]element.Element{str, obj, inst})
	assert.Empty(t, errs)
}

func TestValidate_UnresolvedFieldType(t *testing.T) {
	typeID := elemid.NewTypeID("salto", "obj")
	obj := element.NewObjectType(typeID)
	obj.Fields["name"] = &element.Field{
		ParentID: typeID, Name: "name",
		Type:        element.PlaceholderTypeRef(elemid.NewTypeID("salto", "missing")),
		Annotations: map[string]element.Value{},
	}

	errs := validator.Validate([]element.Element{obj})
	require.Len(t, errs, 1)
	var target validator.UnresolvedReferenceValidationError
	require.ErrorAs(t, errs[0], &target)
	assert.Equal(t, validator.SeverityError, target.Severity())
}

func TestValidate_InvalidValueType(t *testing.T) {
	str := stringPrimitive()
	strRef := element.ResolvedTypeRef(str)
	typeID := elemid.NewTypeID("salto", "obj")
	obj := element.NewObjectType(typeID)
	obj.Fields["count"] = &element.Field{ParentID: typeID, Name: "count", Type: strRef, Annotations: map[string]element.Value{}}

	instID := elemid.NewInstanceID("salto", "obj", "ins")
	inst := element.NewInstanceElement(instID, element.ResolvedTypeRef(obj))
	inst.Value["count"] = value.Number(3)

	errs := validator.Validate([]element.Element{str, obj, inst})
	require.Len(t, errs, 1)
	var target validator.InvalidValueTypeValidationError
	require.ErrorAs(t, errs[0], &target)
	assert.Equal(t, validator.SeverityWarning, target.Severity())
}

func TestValidate_MissingRequiredField(t *testing.T) {
	str := stringPrimitive()
	strRef := element.ResolvedTypeRef(str)
	typeID := elemid.NewTypeID("salto", "obj")
	obj := element.NewObjectType(typeID)
	obj.Fields["name"] = &element.Field{ParentID: typeID, Name: "name", Type: strRef, Annotations: map[string]element.Value{}}

	instID := elemid.NewInstanceID("salto", "obj", "ins")
	inst := element.NewInstanceElement(instID, element.ResolvedTypeRef(obj))

	errs := validator.Validate([]element.Element{str, obj, inst})
	require.Len(t, errs, 1)
	var target validator.MissingRequiredFieldValidationError
	require.ErrorAs(t, errs[0], &target)
}

func TestValidate_OptionalFieldOmittedIsFine(t *testing.T) {
	str := stringPrimitive()
	strRef := element.ResolvedTypeRef(str)
	typeID := elemid.NewTypeID("salto", "obj")
	obj := element.NewObjectType(typeID)
	obj.Fields["name"] = &element.Field{
		ParentID: typeID, Name: "name", Type: strRef,
		Annotations: map[string]element.Value{element.OptionalAnnotation: value.Bool(true)},
	}

	instID := elemid.NewInstanceID("salto", "obj", "ins")
	inst := element.NewInstanceElement(instID, element.ResolvedTypeRef(obj))

	errs := validator.Validate([]element.Element{str, obj, inst})
	assert.Empty(t, errs)
}

func TestValidate_UnresolvedReferenceValue(t *testing.T) {
	str := stringPrimitive()
	strRef := element.ResolvedTypeRef(str)
	typeID := elemid.NewTypeID("salto", "obj")
	obj := element.NewObjectType(typeID)
	obj.Fields["owner"] = &element.Field{ParentID: typeID, Name: "owner", Type: strRef, Annotations: map[string]element.Value{}}

	instID := elemid.NewInstanceID("salto", "obj", "ins")
	inst := element.NewInstanceElement(instID, element.ResolvedTypeRef(obj))
	inst.Value["owner"] = value.Reference(value.ParseReference("salto.obj.instance.doesNotExist"))

	errs := validator.Validate([]element.Element{str, obj, inst})
	require.Len(t, errs, 1)
	var target validator.UnresolvedReferenceValidationError
	require.ErrorAs(t, errs[0], &target)
}

func TestValidate_CircularReference(t *testing.T) {
	str := stringPrimitive()
	strRef := element.ResolvedTypeRef(str)
	typeID := elemid.NewTypeID("salto", "obj")
	obj := element.NewObjectType(typeID)
	obj.Fields["peer"] = &element.Field{ParentID: typeID, Name: "peer", Type: strRef, Annotations: map[string]element.Value{}}

	instAID := elemid.NewInstanceID("salto", "obj", "a")
	instA := element.NewInstanceElement(instAID, element.ResolvedTypeRef(obj))
	instBID := elemid.NewInstanceID("salto", "obj", "b")
	instB := element.NewInstanceElement(instBID, element.ResolvedTypeRef(obj))

	instA.Value["peer"] = value.Reference(value.ParseReference("salto.obj.instance.b.peer"))
	instB.Value["peer"] = value.Reference(value.ParseReference("salto.obj.instance.a.peer"))

	errs := validator.Validate([]element.Element{str, obj, instA, instB})
	found := false
	for _, e := range errs {
		if target, ok := e.(validator.CircularReferenceValidationError); ok {
			found = true
			assert.Equal(t, validator.SeverityWarning, target.Severity())
		}
	}
	assert.True(t, found, "expected a CircularReferenceValidationError, got %v", errs)
}

// A bare ListType element in the merged set whose inner TypeRef never
// resolved is reported directly, independent of any instance holding it.
func TestValidate_ListTypeUnresolvedInner(t *testing.T) {
	list := &element.ListType{Inner: element.PlaceholderTypeRef(elemid.NewTypeID("salto", "missing"))}

	errs := validator.Validate([]element.Element{list})
	require.Len(t, errs, 1)
	var target validator.UnresolvedReferenceValidationError
	require.ErrorAs(t, errs[0], &target)
	assert.Equal(t, validator.SeverityError, target.Severity())
}

// A field typed as a list of strings rejects an instance value holding a
// non-string element, and accepts one holding only strings.
func TestValidate_ListFieldElementTypeChecking(t *testing.T) {
	str := stringPrimitive()
	strRef := element.ResolvedTypeRef(str)
	list := &element.ListType{Inner: strRef}
	listRef := element.ResolvedTypeRef(list)

	typeID := elemid.NewTypeID("salto", "obj")
	obj := element.NewObjectType(typeID)
	obj.Fields["tags"] = &element.Field{ParentID: typeID, Name: "tags", Type: listRef, Annotations: map[string]element.Value{}}

	instID := elemid.NewInstanceID("salto", "obj", "bad")
	inst := element.NewInstanceElement(instID, element.ResolvedTypeRef(obj))
	inst.Value["tags"] = value.List([]value.Value{value.String("ok"), value.Number(3)})

	errs := validator.Validate([]element.Element{str, list, obj, inst})
	require.Len(t, errs, 1)
	var target validator.InvalidValueTypeValidationError
	require.ErrorAs(t, errs[0], &target)

	okInstID := elemid.NewInstanceID("salto", "obj", "good")
	okInst := element.NewInstanceElement(okInstID, element.ResolvedTypeRef(obj))
	okInst.Value["tags"] = value.List([]value.Value{value.String("a"), value.String("b")})

	errs = validator.Validate([]element.Element{str, list, obj, okInst})
	assert.Empty(t, errs)
}
