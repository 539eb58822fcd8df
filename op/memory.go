package op

import (
	"fmt"

	"github.com/flowgraph/rvsdg-go/rtype"
)

// Alloca reserves stack storage for ValueType (Size elements for an array
// allocation) and threads the memory state: memory -> pointer, memory.
type Alloca struct {
	ValueType rtype.Value
	Size      int // element count; 1 for a scalar allocation
}

func (a Alloca) Kind() Kind { return KindAlloca }
func (a Alloca) InputTypes() []rtype.Type {
	return []rtype.Type{rtype.Memory}
}
func (a Alloca) OutputTypes() []rtype.Type {
	return []rtype.Type{rtype.Pointer(a.ValueType), rtype.Memory}
}
func (a Alloca) String() string { return fmt.Sprintf("alloca(%s, %d)", a.ValueType, a.Size) }
func (a Alloca) Equal(o Op) bool {
	other, ok := o.(Alloca)
	return ok && a.ValueType.Equal(other.ValueType) && a.Size == other.Size
}

// Load reads ValueType through a pointer, threading memory state.
// addr, memory -> value, memory.
type Load struct {
	ValueType rtype.Value
}

func (l Load) Kind() Kind { return KindLoad }
func (l Load) InputTypes() []rtype.Type {
	return []rtype.Type{rtype.Pointer(l.ValueType), rtype.Memory}
}
func (l Load) OutputTypes() []rtype.Type { return []rtype.Type{l.ValueType, rtype.Memory} }
func (l Load) String() string            { return fmt.Sprintf("load(%s)", l.ValueType) }
func (l Load) Equal(o Op) bool {
	other, ok := o.(Load)
	return ok && l.ValueType.Equal(other.ValueType)
}

// Store writes ValueType through a pointer, threading memory state.
// addr, value, memory -> memory.
type Store struct {
	ValueType rtype.Value
}

func (s Store) Kind() Kind { return KindStore }
func (s Store) InputTypes() []rtype.Type {
	return []rtype.Type{rtype.Pointer(s.ValueType), s.ValueType, rtype.Memory}
}
func (s Store) OutputTypes() []rtype.Type { return []rtype.Type{rtype.Memory} }
func (s Store) String() string            { return fmt.Sprintf("store(%s)", s.ValueType) }
func (s Store) Equal(o Op) bool {
	other, ok := o.(Store)
	return ok && s.ValueType.Equal(other.ValueType)
}

// Memcpy copies Length bytes from src to dst, threading memory state.
// dst, src, length(bitLenWidth), memory -> memory.
type Memcpy struct {
	LengthWidth int
}

func (m Memcpy) Kind() Kind { return KindMemcpy }
func (m Memcpy) InputTypes() []rtype.Type {
	return []rtype.Type{
		rtype.Pointer(rtype.Bit(8)),
		rtype.Pointer(rtype.Bit(8)),
		rtype.Bit(m.LengthWidth),
		rtype.Memory,
	}
}
func (m Memcpy) OutputTypes() []rtype.Type { return []rtype.Type{rtype.Memory} }
func (m Memcpy) String() string            { return "memcpy" }
func (m Memcpy) Equal(o Op) bool {
	other, ok := o.(Memcpy)
	return ok && m.LengthWidth == other.LengthWidth
}

// MemStateMerge joins N memory state threads into one, used wherever a
// state output would otherwise gain more than one consumer: state values
// are single-consumer, so any fan-out on a memory edge must pass through
// a MemStateSplit/MemStateMerge pair.
type MemStateMerge struct {
	NumInputs int
}

func (m MemStateMerge) Kind() Kind { return KindMemStateMerge }
func (m MemStateMerge) InputTypes() []rtype.Type {
	ts := make([]rtype.Type, m.NumInputs)
	for i := range ts {
		ts[i] = rtype.Memory
	}
	return ts
}
func (m MemStateMerge) OutputTypes() []rtype.Type { return []rtype.Type{rtype.Memory} }
func (m MemStateMerge) String() string            { return fmt.Sprintf("memstate-merge(%d)", m.NumInputs) }
func (m MemStateMerge) Equal(o Op) bool {
	other, ok := o.(MemStateMerge)
	return ok && m.NumInputs == other.NumInputs
}

// MemStateSplit forks one memory state thread into N, the dual of
// MemStateMerge.
type MemStateSplit struct {
	NumOutputs int
}

func (m MemStateSplit) Kind() Kind               { return KindMemStateSplit }
func (m MemStateSplit) InputTypes() []rtype.Type { return []rtype.Type{rtype.Memory} }
func (m MemStateSplit) OutputTypes() []rtype.Type {
	ts := make([]rtype.Type, m.NumOutputs)
	for i := range ts {
		ts[i] = rtype.Memory
	}
	return ts
}
func (m MemStateSplit) String() string { return fmt.Sprintf("memstate-split(%d)", m.NumOutputs) }
func (m MemStateSplit) Equal(o Op) bool {
	other, ok := o.(MemStateSplit)
	return ok && m.NumOutputs == other.NumOutputs
}
