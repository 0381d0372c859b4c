// Package value implements the dynamic Value union carried by fields,
// annotations, and instance data: a primitive (backed by cty.Value, the
// same dynamic value system the rest of the HCL ecosystem uses), a list, a
// map, or a ReferenceExpression denoting a traversal path through the
// merged element graph.
package value
