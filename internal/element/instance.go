package element

import "github.com/saltoio/salto-core/internal/elemid"

// InstanceElement is a concrete value of some ObjectType.
type InstanceElement struct {
	ID          elemid.ElemID
	Type        TypeRef
	Value       map[string]Value
	Annotations map[string]Value
}

// ElemID implements Element.
func (i *InstanceElement) ElemID() elemid.ElemID { return i.ID }

// NewInstanceElement returns an InstanceElement of typ addressed by id,
// with empty value and annotation maps ready to populate.
func NewInstanceElement(id elemid.ElemID, typ TypeRef) *InstanceElement {
	return &InstanceElement{
		ID:          id,
		Type:        typ,
		Value:       map[string]Value{},
		Annotations: map[string]Value{},
	}
}

// Variable is a named literal value in the reserved `var` namespace.
type Variable struct {
	ID    elemid.ElemID
	Value Value
}

// ElemID implements Element.
func (v *Variable) ElemID() elemid.ElemID { return v.ID }
