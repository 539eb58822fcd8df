package op

import (
	"fmt"

	"github.com/flowgraph/rvsdg-go/rtype"
)

// CmpKind enumerates the bitstring comparison predicates.
type CmpKind int

const (
	Eq CmpKind = iota
	Ne
	SGe
	SGt
	SLe
	SLt
	UGe
	UGt
	ULe
	ULt
)

var cmpNames = [...]string{"eq", "ne", "sge", "sgt", "sle", "slt", "uge", "ugt", "ule", "ult"}

func (k CmpKind) String() string {
	if int(k) < len(cmpNames) {
		return cmpNames[k]
	}
	return "cmp(?)"
}

// Compare produces bit(1) from two bit(n) operands.
type Compare struct {
	Op    CmpKind
	Width int
}

func (c Compare) Kind() Kind { return KindCompare }

func (c Compare) InputTypes() []rtype.Type {
	return []rtype.Type{rtype.Bit(c.Width), rtype.Bit(c.Width)}
}

func (c Compare) OutputTypes() []rtype.Type { return []rtype.Type{rtype.Bit(1)} }

func (c Compare) String() string { return fmt.Sprintf("%s.bit%d", c.Op, c.Width) }

func (c Compare) Equal(o Op) bool {
	other, ok := o.(Compare)
	return ok && c.Op == other.Op && c.Width == other.Width
}
