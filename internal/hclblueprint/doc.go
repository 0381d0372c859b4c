// Package hclblueprint is a concrete parser.Parser implementation backed by
// hashicorp/hcl/v2. It recognizes three block kinds: `type` (an ObjectType
// declaration, its fields nested as `field` blocks), `instance` (an
// InstanceElement, whose attributes are taken verbatim), and `variable` (a
// Variable). It does not implement a full blueprint grammar: there is no
// support for function calls, for-expressions, or conditional expressions
// inside an attribute value, only literals and plain attribute traversals
// (references). That is enough to exercise the Workspace Coordinator
// end-to-end against real files without taking on a general-purpose
// expression language.
package hclblueprint
