package element

import "github.com/saltoio/salto-core/internal/elemid"

// Field is a single named member of an ObjectType.
type Field struct {
	ParentID    elemid.ElemID
	Name        string
	Type        TypeRef
	Annotations map[string]Value
}

// ElemID implements Element.
func (f *Field) ElemID() elemid.ElemID {
	return elemid.NewFieldID(f.ParentID.Adapter, f.ParentID.TypeName, f.Name)
}

// ObjectType is a user- or adapter-defined structured type. Field names
// must be unique, as must annotation and annotation-type keys; the Merger
// is responsible for enforcing that before an ObjectType reaches the rest
// of the pipeline.
type ObjectType struct {
	ID              elemid.ElemID
	Fields          map[string]*Field
	Annotations     map[string]Value
	AnnotationTypes map[string]TypeRef
	IsSettings      bool
}

// ElemID implements Element.
func (o *ObjectType) ElemID() elemid.ElemID { return o.ID }

// NewObjectType returns an empty ObjectType addressed by id.
func NewObjectType(id elemid.ElemID) *ObjectType {
	return &ObjectType{
		ID:              id,
		Fields:          map[string]*Field{},
		Annotations:     map[string]Value{},
		AnnotationTypes: map[string]TypeRef{},
	}
}

// ListType is a parametric wrapper around another TypeRef. Two ListTypes
// are equal iff their inner types are equal; ListType has no independent
// merge identity of its own, so it synthesizes its ElemID from the inner
// type so the Merger and Resolver can still key it by ElemID.
type ListType struct {
	Inner TypeRef
}

// ElemID implements Element by deriving a synthetic, inner-type-keyed
// identity under the reserved "list" adapter namespace.
func (l *ListType) ElemID() elemid.ElemID {
	return elemid.NewTypeID("list", l.Inner.ElemID().FullName())
}

// Equal reports whether two ListTypes wrap the same inner type.
func (l *ListType) Equal(other *ListType) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.ElemID().Equal(other.ElemID())
}
