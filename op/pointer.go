package op

import (
	"fmt"

	"github.com/flowgraph/rvsdg-go/rtype"
)

// GetElementPtr computes an address offset from a scalar pointer base by a
// sequence of bit(n) index operands. The source IR's type checker has
// already resolved which aggregate element the indices name, so the
// frontend supplies ResultElem directly rather than GetElementPtr deriving
// it by walking struct/array layouts. Only the scalar-pointer address case
// is covered; a vector-of-pointers variant is not modeled.
type GetElementPtr struct {
	BaseElem    rtype.Value
	ResultElem  rtype.Value
	IndexWidths []int
}

func (g GetElementPtr) Kind() Kind { return KindGetElementPtr }

func (g GetElementPtr) InputTypes() []rtype.Type {
	ts := make([]rtype.Type, 0, 1+len(g.IndexWidths))
	ts = append(ts, rtype.Pointer(g.BaseElem))
	for _, w := range g.IndexWidths {
		ts = append(ts, rtype.Bit(w))
	}
	return ts
}

func (g GetElementPtr) OutputTypes() []rtype.Type {
	return []rtype.Type{rtype.Pointer(g.ResultElem)}
}

func (g GetElementPtr) String() string {
	return fmt.Sprintf("getelementptr(%s -> %s, %d indices)", g.BaseElem, g.ResultElem, len(g.IndexWidths))
}

func (g GetElementPtr) Equal(o Op) bool {
	other, ok := o.(GetElementPtr)
	if !ok || !g.BaseElem.Equal(other.BaseElem) || !g.ResultElem.Equal(other.ResultElem) {
		return false
	}
	if len(g.IndexWidths) != len(other.IndexWidths) {
		return false
	}
	for i := range g.IndexWidths {
		if g.IndexWidths[i] != other.IndexWidths[i] {
			return false
		}
	}
	return true
}
