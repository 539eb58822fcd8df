// Package op implements the RVSDG operations catalog: a closed tagged
// family of simple-node operations. Each operation carries its
// static attribute data and declares fixed input/result port signatures;
// equality compares attributes only (opt.CommonNodeElimination
// additionally compares input origins).
package op

import "github.com/flowgraph/rvsdg-go/rtype"

// Kind tags an Op's variant.
type Kind int

const (
	KindConstBit Kind = iota
	KindConstControl
	KindUndef
	KindBinaryArith
	KindBitcast
	KindCompare
	KindMatch
	KindAlloca
	KindLoad
	KindStore
	KindMemcpy
	KindMemStateMerge
	KindMemStateSplit
	KindGetElementPtr
	KindConstDataArray
	KindConstStruct
	KindExtractValue
	KindInsertValue
	KindApply
	KindValist
)

var kindNames = map[Kind]string{
	KindConstBit:       "const-bit",
	KindConstControl:   "const-control",
	KindUndef:          "undef",
	KindBinaryArith:    "binary",
	KindBitcast:        "bitcast",
	KindCompare:        "compare",
	KindMatch:          "match",
	KindAlloca:         "alloca",
	KindLoad:           "load",
	KindStore:          "store",
	KindMemcpy:         "memcpy",
	KindMemStateMerge:  "memstate-merge",
	KindMemStateSplit:  "memstate-split",
	KindGetElementPtr:  "getelementptr",
	KindConstDataArray: "constant-data-array",
	KindConstStruct:    "constant-struct",
	KindExtractValue:   "extractvalue",
	KindInsertValue:    "insertvalue",
	KindApply:          "apply",
	KindValist:         "valist",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "op.Kind(?)"
}

// Op is a simple-node operation. Implementations are value types so
// comparisons and copies are cheap; InputTypes/OutputTypes are fixed once
// the op's attributes are set (no input-dependent shape beyond what the
// attributes already encode — e.g. Apply's arity comes from its FuncType
// attribute, not from the origins it's later wired to).
type Op interface {
	Kind() Kind
	InputTypes() []rtype.Type
	OutputTypes() []rtype.Type
	Equal(Op) bool
	String() string
}

// sameTypes compares two type lists element-wise.
func sameTypes(a, b []rtype.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].EqualType(b[i]) {
			return false
		}
	}
	return true
}

func sameValues(a, b []rtype.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func valuesToTypes(vs []rtype.Value) []rtype.Type {
	out := make([]rtype.Type, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}
