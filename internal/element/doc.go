// Package element defines the typed element variants that make up a
// blueprint graph: PrimitiveType, ObjectType, Field, InstanceElement,
// Variable, and ListType, plus the TypeRef placeholder/handle pair that
// lets a field reference a type before the type's own declaration has been
// merged. Everything here is a plain value type; the Merger, Resolver, and
// Validator packages own the behavior that walks and combines them.
package element
