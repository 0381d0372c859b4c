package element

import (
	"github.com/saltoio/salto-core/internal/elemid"
	"github.com/saltoio/salto-core/internal/value"
)

// Element is implemented by every addressable variant: PrimitiveType,
// ObjectType, ListType, InstanceElement, and Variable.
type Element interface {
	ElemID() elemid.ElemID
}

// Value is an alias for value.Value, kept local so element signatures read
// without an extra import in every call site.
type Value = value.Value

// DefaultAnnotation is the reserved annotation name whose value supplies a
// field's default when an instance omits the field (see §4.1.4). A field's
// own DEFAULT annotation takes precedence over its declared type's DEFAULT
// annotation.
const DefaultAnnotation = "DEFAULT"

// OptionalAnnotation is the reserved boolean annotation name that exempts a
// field from MissingRequiredFieldValidationError when its instance omits it
// and it carries no DEFAULT. Without this or a DEFAULT, every declared
// field is required.
const OptionalAnnotation = "OPTIONAL"

// PrimitiveKind enumerates the built-in primitive element kinds.
type PrimitiveKind string

const (
	PrimitiveString  PrimitiveKind = "STRING"
	PrimitiveNumber  PrimitiveKind = "NUMBER"
	PrimitiveBoolean PrimitiveKind = "BOOLEAN"
)

// PrimitiveType is a built-in scalar type. Unlike ObjectType, a
// PrimitiveType ElemID must be unique across the merged set: there is no
// base/update composition for primitives.
type PrimitiveType struct {
	ID              elemid.ElemID
	Primitive       PrimitiveKind
	Annotations     map[string]Value
	AnnotationTypes map[string]TypeRef
}

// ElemID implements Element.
func (p *PrimitiveType) ElemID() elemid.ElemID { return p.ID }
