package op

import (
	"fmt"
	"math/big"

	"github.com/flowgraph/rvsdg-go/rtype"
)

// ConstBit is a bitstring literal of a fixed width.
type ConstBit struct {
	Width int
	Value *big.Int
}

// NewConstBit builds a ConstBit, masking value to width bits.
func NewConstBit(width int, value int64) ConstBit {
	v := big.NewInt(value)
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(width)), big.NewInt(1))
	v.And(v, mask)
	return ConstBit{Width: width, Value: v}
}

func (c ConstBit) Kind() Kind                 { return KindConstBit }
func (c ConstBit) InputTypes() []rtype.Type   { return nil }
func (c ConstBit) OutputTypes() []rtype.Type  { return []rtype.Type{rtype.Bit(c.Width)} }
func (c ConstBit) String() string             { return fmt.Sprintf("bit-constant(%s : bit%d)", c.Value, c.Width) }

func (c ConstBit) Equal(o Op) bool {
	other, ok := o.(ConstBit)
	return ok && c.Width == other.Width && c.Value.Cmp(other.Value) == 0
}

// ConstControl is a control-typed literal selecting alternative Alt of n.
type ConstControl struct {
	Alt int
	N   int
}

func (c ConstControl) Kind() Kind                { return KindConstControl }
func (c ConstControl) InputTypes() []rtype.Type  { return nil }
func (c ConstControl) OutputTypes() []rtype.Type { return []rtype.Type{rtype.Control(c.N)} }
func (c ConstControl) String() string            { return fmt.Sprintf("control-constant(%d of %d)", c.Alt, c.N) }

func (c ConstControl) Equal(o Op) bool {
	other, ok := o.(ConstControl)
	return ok && c.Alt == other.Alt && c.N == other.N
}

// Undef produces an unconstrained value of type T.
type Undef struct {
	T rtype.Value
}

func (u Undef) Kind() Kind                { return KindUndef }
func (u Undef) InputTypes() []rtype.Type  { return nil }
func (u Undef) OutputTypes() []rtype.Type { return []rtype.Type{u.T} }
func (u Undef) String() string            { return fmt.Sprintf("undef(%s)", u.T) }

func (u Undef) Equal(o Op) bool {
	other, ok := o.(Undef)
	return ok && u.T.Equal(other.T)
}
