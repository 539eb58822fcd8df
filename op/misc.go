package op

import (
	"fmt"

	"github.com/flowgraph/rvsdg-go/rtype"
)

// Valist packs N operands of heterogeneous ElemTypes into a single
// variadic-argument-list value of type Result.
type Valist struct {
	ElemTypes []rtype.Value
	Result    rtype.Value
}

func (v Valist) Kind() Kind                { return KindValist }
func (v Valist) InputTypes() []rtype.Type  { return valuesToTypes(v.ElemTypes) }
func (v Valist) OutputTypes() []rtype.Type { return []rtype.Type{v.Result} }
func (v Valist) String() string            { return fmt.Sprintf("valist(%d)", len(v.ElemTypes)) }

func (v Valist) Equal(o Op) bool {
	other, ok := o.(Valist)
	return ok && sameValues(v.ElemTypes, other.ElemTypes) && v.Result.Equal(other.Result)
}
