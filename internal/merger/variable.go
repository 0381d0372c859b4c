package merger

import (
	"fmt"

	"github.com/saltoio/salto-core/internal/elemid"
	"github.com/saltoio/salto-core/internal/element"
)

// mergeVariableGroup enforces Variable ElemID uniqueness within the `var`
// namespace.
func mergeVariableGroup(id elemid.ElemID, decls []*element.Variable) (*element.Variable, []Error) {
	if len(decls) > 1 {
		return nil, []Error{newDuplicateVariableName(id,
			fmt.Sprintf("found %d declarations for variable, expected exactly one", len(decls)))}
	}
	return decls[0], nil
}
