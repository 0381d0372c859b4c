// Package merger combines a flat, unordered sequence of partial element
// declarations into one merged element per ElemID, the way a real Merge
// of blueprint fragments works: elements are grouped by identity first,
// never folded in source-file order, so that the result of Merge does not
// depend on the order its input was discovered in. Every rule violation
// produces a typed MergeError rather than a panic or a generic error
// string; callers inspect the returned Result to get both the merged
// elements and the full set of merge failures.
package merger
