// Package elemid provides the structured identifier used to address every
// element, field, and annotation in a merged blueprint graph.
//
// An ElemID is an ordered tuple `(adapter, typeName, idType, ...nameParts)`.
// The package centralizes parsing of and formatting to the canonical dotted
// "full name" string so the rest of the core never hand-rolls the format.
package elemid
