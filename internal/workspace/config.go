package workspace

import (
	"github.com/google/uuid"

	"github.com/saltoio/salto-core/internal/elemid"
	"github.com/saltoio/salto-core/internal/element"
	"github.com/saltoio/salto-core/internal/value"
)

// ConfigAdapter and ConfigTypeName name the built-in workspace config type,
// distinct from an adapter's own per-workspace "_config" singleton
// instance (elemid.ConfigInstanceName): this one belongs to the workspace
// itself, holding its uid and name.
const (
	ConfigAdapter  = "salto"
	ConfigTypeName = "config"
)

// ConfigFilename is the reserved blueprint name holding the workspace's own
// config instance, written directly under base_dir.
const ConfigFilename = "salto.config.bp"

var builtinString = &element.PrimitiveType{
	ID:        elemid.NewTypeID(ConfigAdapter, "string"),
	Primitive: element.PrimitiveString,
}

var builtinStringRef = element.ResolvedTypeRef(builtinString)

// saltoConfigType returns the built-in ObjectType describing a workspace's
// own config instance: { uid: STRING, name: STRING }.
func saltoConfigType() *element.ObjectType {
	id := elemid.NewTypeID(ConfigAdapter, ConfigTypeName)
	t := element.NewObjectType(id)
	t.Fields["uid"] = &element.Field{ParentID: id, Name: "uid", Type: builtinStringRef, Annotations: map[string]element.Value{}}
	t.Fields["name"] = &element.Field{ParentID: id, Name: "name", Type: builtinStringRef, Annotations: map[string]element.Value{}}
	return t
}

// builtinElements returns the fixed set of elements every workspace state
// carries regardless of its parsed blueprints: the primitive and object
// types backing the workspace's own config instance.
func builtinElements() []element.Element {
	return []element.Element{builtinString, saltoConfigType()}
}

// newConfigInstance builds the InstanceElement for a freshly initialized
// workspace: a random uid and the given name.
func newConfigInstance(name string) *element.InstanceElement {
	id := elemid.NewInstanceID(ConfigAdapter, ConfigTypeName, elemid.ConfigInstanceName)
	inst := element.NewInstanceElement(id, element.ResolvedTypeRef(saltoConfigType()))
	inst.Value["uid"] = value.String(uuid.NewString())
	inst.Value["name"] = value.String(name)
	return inst
}
