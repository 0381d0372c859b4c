package merger

import (
	"fmt"

	"github.com/saltoio/salto-core/internal/elemid"
)

// Error is satisfied by every typed merge failure. Stringifying any Error
// yields the fixed template "Error merging <full_name>: <reason>"; tests
// compare these messages verbatim, so the template must never drift.
type Error interface {
	error
	ElemID() elemid.ElemID
}

type baseError struct {
	id     elemid.ElemID
	reason string
}

func (e baseError) ElemID() elemid.ElemID { return e.id }

func (e baseError) Error() string {
	return fmt.Sprintf("Error merging %s: %s", e.id.FullName(), e.reason)
}

// NoBaseDefinitionMergeError is returned when an ObjectType ElemID has no
// base declaration, or an update names a field absent from the base.
type NoBaseDefinitionMergeError struct{ baseError }

func newNoBaseDefinition(id elemid.ElemID, reason string) NoBaseDefinitionMergeError {
	return NoBaseDefinitionMergeError{baseError{id, reason}}
}

// MultipleBaseDefinitionsMergeError is returned when more than one base
// declares the same ObjectType ElemID.
type MultipleBaseDefinitionsMergeError struct{ baseError }

func newMultipleBaseDefinitions(id elemid.ElemID, reason string) MultipleBaseDefinitionsMergeError {
	return MultipleBaseDefinitionsMergeError{baseError{id, reason}}
}

// DuplicateAnnotationFieldDefinitionError is returned when two field
// declarations contribute the same annotation key on the same field.
type DuplicateAnnotationFieldDefinitionError struct{ baseError }

func newDuplicateAnnotationFieldDefinition(id elemid.ElemID, reason string) DuplicateAnnotationFieldDefinitionError {
	return DuplicateAnnotationFieldDefinitionError{baseError{id, reason}}
}

// DuplicateAnnotationTypeError is returned when two object declarations
// contribute the same annotation-type entry.
type DuplicateAnnotationTypeError struct{ baseError }

func newDuplicateAnnotationType(id elemid.ElemID, reason string) DuplicateAnnotationTypeError {
	return DuplicateAnnotationTypeError{baseError{id, reason}}
}

// DuplicateAnnotationError is returned when two object declarations
// contribute the same top-level annotation value.
type DuplicateAnnotationError struct{ baseError }

func newDuplicateAnnotation(id elemid.ElemID, reason string) DuplicateAnnotationError {
	return DuplicateAnnotationError{baseError{id, reason}}
}

// DuplicateInstanceKeyError is returned when two instances sharing an
// ElemID contribute differing values for the same value key.
type DuplicateInstanceKeyError struct{ baseError }

func newDuplicateInstanceKey(id elemid.ElemID, reason string) DuplicateInstanceKeyError {
	return DuplicateInstanceKeyError{baseError{id, reason}}
}

// MultiplePrimitiveTypesUnsupportedError is returned when two PrimitiveTypes
// share an ElemID; primitives never compose the way ObjectTypes do.
type MultiplePrimitiveTypesUnsupportedError struct{ baseError }

func newMultiplePrimitiveTypesUnsupported(id elemid.ElemID, reason string) MultiplePrimitiveTypesUnsupportedError {
	return MultiplePrimitiveTypesUnsupportedError{baseError{id, reason}}
}

// DuplicateVariableNameError is returned when two Variables share an
// ElemID.
type DuplicateVariableNameError struct{ baseError }

func newDuplicateVariableName(id elemid.ElemID, reason string) DuplicateVariableNameError {
	return DuplicateVariableNameError{baseError{id, reason}}
}
