package op

import (
	"fmt"

	"github.com/flowgraph/rvsdg-go/rtype"
)

// ArithKind enumerates the bit-arithmetic binary operators.
type ArithKind int

const (
	Add ArithKind = iota
	Sub
	Mul
	SDiv
	UDiv
	SMod
	UMod
	And
	Or
	Xor
	Shl
	Shr
	AShr
)

var arithNames = [...]string{"add", "sub", "mul", "sdiv", "udiv", "smod", "umod", "and", "or", "xor", "shl", "shr", "ashr"}

func (k ArithKind) String() string {
	if int(k) < len(arithNames) {
		return arithNames[k]
	}
	return "arith(?)"
}

// BinaryArith is a two-operand, same-width bit arithmetic operation:
// bit(n) x bit(n) -> bit(n).
type BinaryArith struct {
	Op    ArithKind
	Width int
}

func (b BinaryArith) Kind() Kind { return KindBinaryArith }

func (b BinaryArith) InputTypes() []rtype.Type {
	return []rtype.Type{rtype.Bit(b.Width), rtype.Bit(b.Width)}
}

func (b BinaryArith) OutputTypes() []rtype.Type { return []rtype.Type{rtype.Bit(b.Width)} }

func (b BinaryArith) String() string { return fmt.Sprintf("%s.bit%d", b.Op, b.Width) }

func (b BinaryArith) Equal(o Op) bool {
	other, ok := o.(BinaryArith)
	return ok && b.Op == other.Op && b.Width == other.Width
}

// Bitcast reinterprets a value of one type as another of identical storage
// size, e.g. bit32 <-> pointer(T) in a 32-bit address space.
type Bitcast struct {
	From rtype.Value
	To   rtype.Value
}

func (b Bitcast) Kind() Kind                { return KindBitcast }
func (b Bitcast) InputTypes() []rtype.Type  { return []rtype.Type{b.From} }
func (b Bitcast) OutputTypes() []rtype.Type { return []rtype.Type{b.To} }
func (b Bitcast) String() string            { return fmt.Sprintf("bitcast(%s -> %s)", b.From, b.To) }

func (b Bitcast) Equal(o Op) bool {
	other, ok := o.(Bitcast)
	return ok && b.From.Equal(other.From) && b.To.Equal(other.To)
}
