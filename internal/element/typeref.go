package element

import "github.com/saltoio/salto-core/internal/elemid"

// TypeRef is either a concrete type element handle or a placeholder
// carrying only an ElemID. Fields, annotation-type declarations, and
// InstanceElement.Type all store a TypeRef rather than an Element directly,
// because a field may reference a type before that type's own declaration
// has been merged. The Reference Resolver performs a single pass after
// merge to fill in the resolved handle for every TypeRef whose ElemID
// matches a merged type; TypeRefs left unmatched stay placeholders and are
// reported by the Validator.
type TypeRef struct {
	id       elemid.ElemID
	resolved Element
}

// PlaceholderTypeRef builds a TypeRef that only knows the ElemID it wants
// to resolve to.
func PlaceholderTypeRef(id elemid.ElemID) TypeRef {
	return TypeRef{id: id}
}

// ResolvedTypeRef builds a TypeRef that already carries its target.
func ResolvedTypeRef(e Element) TypeRef {
	return TypeRef{id: e.ElemID(), resolved: e}
}

// ElemID returns the ElemID the TypeRef points at, whether or not it has
// been resolved.
func (r TypeRef) ElemID() elemid.ElemID { return r.id }

// IsResolved reports whether the TypeRef carries a concrete handle.
func (r TypeRef) IsResolved() bool { return r.resolved != nil }

// Resolved returns the concrete target, or nil if the TypeRef is still a
// placeholder.
func (r TypeRef) Resolved() Element { return r.resolved }

// WithResolved returns a copy of r with its handle set to e. It is the only
// way a TypeRef transitions from placeholder to resolved, and is used
// exclusively by the Reference Resolver.
func (r TypeRef) WithResolved(e Element) TypeRef {
	return TypeRef{id: r.id, resolved: e}
}
