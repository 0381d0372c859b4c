package merger

import (
	"fmt"

	"github.com/saltoio/salto-core/internal/elemid"
	"github.com/saltoio/salto-core/internal/element"
)

// mergePrimitiveGroup enforces that a PrimitiveType ElemID is declared at
// most once: primitives have no base/update composition, so any second
// declaration is a straight conflict.
func mergePrimitiveGroup(id elemid.ElemID, decls []*element.PrimitiveType) (*element.PrimitiveType, []Error) {
	if len(decls) > 1 {
		return nil, []Error{newMultiplePrimitiveTypesUnsupported(id,
			fmt.Sprintf("found %d declarations for primitive type, expected exactly one", len(decls)))}
	}
	return decls[0], nil
}
