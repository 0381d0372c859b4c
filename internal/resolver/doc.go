// Package resolver implements the Reference Resolver: the single pass that
// runs immediately after the Merger and replaces every TypeRef placeholder
// reachable from a merged element with a handle to the merged element
// carrying the same ElemID. A TypeRef whose ElemID has no matching merged
// element is left as a placeholder for the Validator to report.
package resolver
