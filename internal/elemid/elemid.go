package elemid

import "strings"

// IDType discriminates what kind of thing an ElemID addresses.
type IDType string

const (
	// IDTypeType addresses a PrimitiveType, ObjectType, or ListType.
	IDTypeType IDType = "type"
	// IDTypeField addresses a single field declared on an ObjectType.
	IDTypeField IDType = "field"
	// IDTypeAttr addresses a path into an instance's value map, used to
	// pinpoint a nested leaf for error reporting.
	IDTypeAttr IDType = "attr"
	// IDTypeInstance addresses an InstanceElement.
	IDTypeInstance IDType = "instance"
	// IDTypeAnnotation addresses an annotation-type declaration on a type.
	IDTypeAnnotation IDType = "annotation"
	// IDTypeVar addresses a Variable, always under the reserved VarAdapter.
	IDTypeVar IDType = "var"
)

// VarAdapter is the reserved adapter namespace for Variable elements.
const VarAdapter = "var"

// ConfigInstanceName is the reserved instance name used by every adapter's
// singleton configuration instance.
const ConfigInstanceName = "_config"

// ElemID is the ordered tuple `(adapter, typeName, idType, ...nameParts)`
// that uniquely addresses an element, field, or annotation. Two ElemIDs are
// equal iff their tuples are equal; FullName is used as the canonical,
// comparable projection of that tuple.
type ElemID struct {
	Adapter   string
	TypeName  string
	IDType    IDType
	NameParts []string
}

// NewTypeID builds the ElemID for a PrimitiveType, ObjectType, or ListType.
func NewTypeID(adapter, typeName string) ElemID {
	return ElemID{Adapter: adapter, TypeName: typeName, IDType: IDTypeType}
}

// NewFieldID builds the ElemID for a field declared on typeName.
func NewFieldID(adapter, typeName, fieldName string) ElemID {
	return ElemID{Adapter: adapter, TypeName: typeName, IDType: IDTypeField, NameParts: []string{fieldName}}
}

// NewInstanceID builds the ElemID for an instance of typeName. Additional
// nameParts address a nested path within a container instance (rare; most
// instances have exactly one name part).
func NewInstanceID(adapter, typeName string, nameParts ...string) ElemID {
	return ElemID{Adapter: adapter, TypeName: typeName, IDType: IDTypeInstance, NameParts: append([]string(nil), nameParts...)}
}

// NewAnnotationTypeID builds the ElemID for an annotation-type declaration
// named annoName on typeName.
func NewAnnotationTypeID(adapter, typeName, annoName string) ElemID {
	return ElemID{Adapter: adapter, TypeName: typeName, IDType: IDTypeAnnotation, NameParts: []string{annoName}}
}

// NewAttrID builds the ElemID for a leaf path inside an instance's value,
// rooted at instanceName and descending through the given nested keys.
func NewAttrID(adapter, typeName, instanceName string, nestedPath ...string) ElemID {
	return ElemID{Adapter: adapter, TypeName: typeName, IDType: IDTypeAttr, NameParts: append([]string{instanceName}, nestedPath...)}
}

// NewVarID builds the ElemID for a Variable named name.
func NewVarID(name string) ElemID {
	return ElemID{Adapter: VarAdapter, IDType: IDTypeVar, NameParts: []string{name}}
}

// FullName renders the canonical dotted string for the ElemID.
func (id ElemID) FullName() string {
	switch id.IDType {
	case IDTypeVar:
		return strings.Join(append([]string{VarAdapter}, id.NameParts...), ".")
	case IDTypeType:
		return id.Adapter + "." + id.TypeName
	default:
		parts := make([]string, 0, len(id.NameParts)+3)
		parts = append(parts, id.Adapter, id.TypeName, string(id.IDType))
		parts = append(parts, id.NameParts...)
		return strings.Join(parts, ".")
	}
}

// String implements fmt.Stringer by returning FullName.
func (id ElemID) String() string {
	return id.FullName()
}

// Equal reports whether two ElemIDs address the same element.
func (id ElemID) Equal(other ElemID) bool {
	return id.FullName() == other.FullName()
}

// IsZero reports whether id is the unset ElemID value.
func (id ElemID) IsZero() bool {
	return id.Adapter == "" && id.TypeName == "" && id.IDType == "" && len(id.NameParts) == 0
}

// TypeID returns the ElemID of the type that declares id (itself, if id
// already addresses a type or a variable).
func (id ElemID) TypeID() ElemID {
	if id.IDType == IDTypeType || id.IDType == IDTypeVar {
		return id
	}
	return NewTypeID(id.Adapter, id.TypeName)
}

// Parent returns the ElemID of the immediate container of id: for a nested
// name-part path it is the path with its last segment dropped, and for a
// single-segment field/attr/instance/annotation it is the owning type.
// Parent of a type or variable ElemID is id itself, as those are top-level.
func (id ElemID) Parent() ElemID {
	if len(id.NameParts) > 1 {
		return ElemID{Adapter: id.Adapter, TypeName: id.TypeName, IDType: id.IDType, NameParts: id.NameParts[:len(id.NameParts)-1]}
	}
	if id.IDType == IDTypeType || id.IDType == IDTypeVar {
		return id
	}
	return id.TypeID()
}

// IsConfig reports whether id addresses an adapter's singleton
// configuration instance.
func (id ElemID) IsConfig() bool {
	return id.IDType == IDTypeInstance && len(id.NameParts) == 1 && id.NameParts[0] == ConfigInstanceName
}

// NestingLevel reports how many name-part segments deep id is nested below
// its owning field/instance/annotation entry. A plain field, instance, or
// annotation reference has nesting level 0; each additional path segment
// (used by IDTypeAttr to address nested instance values) adds one level.
func (id ElemID) NestingLevel() int {
	if len(id.NameParts) == 0 {
		return 0
	}
	return len(id.NameParts) - 1
}

// Child returns the ElemID reached by appending nested path segments below
// id, always addressed as IDTypeAttr. It is how the merger and validator
// name a specific leaf inside an instance's value map for error reporting.
func (id ElemID) Child(nested ...string) ElemID {
	parts := make([]string, 0, len(id.NameParts)+len(nested))
	parts = append(parts, id.NameParts...)
	parts = append(parts, nested...)
	return ElemID{Adapter: id.Adapter, TypeName: id.TypeName, IDType: IDTypeAttr, NameParts: parts}
}

// updateMarkerTypeName is the reserved type name that marks an ObjectType
// field declaration as contributing an update rather than a base.
const updateMarkerTypeName = "update"

// IsUpdateMarkerType reports whether id names the reserved marker type used
// to flag a field declaration as an update edit rather than a base
// definition (see Field.Type in the element package).
func IsUpdateMarkerType(id ElemID) bool {
	return id.IDType == IDTypeType && id.TypeName == updateMarkerTypeName
}
