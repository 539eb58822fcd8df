package op

import (
	"fmt"

	"github.com/flowgraph/rvsdg-go/rtype"
)

// ConstDataArray builds a constant array value from N already-constant
// element operands of type ElemType.
type ConstDataArray struct {
	ElemType rtype.Value
	N        int
}

func (c ConstDataArray) Kind() Kind { return KindConstDataArray }
func (c ConstDataArray) InputTypes() []rtype.Type {
	ts := make([]rtype.Type, c.N)
	for i := range ts {
		ts[i] = c.ElemType
	}
	return ts
}
func (c ConstDataArray) OutputTypes() []rtype.Type {
	return []rtype.Type{rtype.Array(c.N, c.ElemType)}
}
func (c ConstDataArray) String() string { return fmt.Sprintf("constant-data-array(%s x %d)", c.ElemType, c.N) }
func (c ConstDataArray) Equal(o Op) bool {
	other, ok := o.(ConstDataArray)
	return ok && c.ElemType.Equal(other.ElemType) && c.N == other.N
}

// ConstStruct builds a constant struct value of Decl's shape from one
// operand per field.
type ConstStruct struct {
	Decl *rtype.StructDecl
}

func (c ConstStruct) Kind() Kind { return KindConstStruct }
func (c ConstStruct) InputTypes() []rtype.Type {
	return valuesToTypes(c.Decl.Fields)
}
func (c ConstStruct) OutputTypes() []rtype.Type {
	return []rtype.Type{rtype.Struct(c.Decl)}
}
func (c ConstStruct) String() string { return fmt.Sprintf("constant-struct(%%%s)", c.Decl.Name) }
func (c ConstStruct) Equal(o Op) bool {
	other, ok := o.(ConstStruct)
	return ok && c.Decl == other.Decl
}

// ExtractValue reads field Index out of an aggregate of type Decl.
type ExtractValue struct {
	Decl  *rtype.StructDecl
	Index int
}

func (e ExtractValue) Kind() Kind               { return KindExtractValue }
func (e ExtractValue) InputTypes() []rtype.Type { return []rtype.Type{rtype.Struct(e.Decl)} }
func (e ExtractValue) OutputTypes() []rtype.Type {
	return []rtype.Type{e.Decl.Fields[e.Index]}
}
func (e ExtractValue) String() string { return fmt.Sprintf("extractvalue(%%%s, %d)", e.Decl.Name, e.Index) }
func (e ExtractValue) Equal(o Op) bool {
	other, ok := o.(ExtractValue)
	return ok && e.Decl == other.Decl && e.Index == other.Index
}

// InsertValue returns a copy of an aggregate of type Decl with field Index
// replaced.
type InsertValue struct {
	Decl  *rtype.StructDecl
	Index int
}

func (iv InsertValue) Kind() Kind { return KindInsertValue }
func (iv InsertValue) InputTypes() []rtype.Type {
	return []rtype.Type{rtype.Struct(iv.Decl), iv.Decl.Fields[iv.Index]}
}
func (iv InsertValue) OutputTypes() []rtype.Type { return []rtype.Type{rtype.Struct(iv.Decl)} }
func (iv InsertValue) String() string            { return fmt.Sprintf("insertvalue(%%%s, %d)", iv.Decl.Name, iv.Index) }
func (iv InsertValue) Equal(o Op) bool {
	other, ok := o.(InsertValue)
	return ok && iv.Decl == other.Decl && iv.Index == other.Index
}
