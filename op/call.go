package op

import (
	"fmt"

	"github.com/flowgraph/rvsdg-go/rtype"
)

// Apply calls a function-pointer value with args, threading an io state
// in/out alongside the callee's declared results. Its operands are the
// function pointer, one value per FuncType argument, then the io state;
// threading io lets a call
// observe/cause side effects without the call summary needing to know
// which memory nodes are touched (memstate handles that separately).
type Apply struct {
	FuncType rtype.Value // KindFunction
}

func (a Apply) Kind() Kind { return KindApply }

func (a Apply) InputTypes() []rtype.Type {
	ts := make([]rtype.Type, 0, 2+len(a.FuncType.FuncArgs()))
	ts = append(ts, a.FuncType)
	ts = append(ts, valuesToTypes(a.FuncType.FuncArgs())...)
	ts = append(ts, rtype.IO)
	return ts
}

func (a Apply) OutputTypes() []rtype.Type {
	ts := make([]rtype.Type, 0, 1+len(a.FuncType.FuncResults()))
	ts = append(ts, valuesToTypes(a.FuncType.FuncResults())...)
	ts = append(ts, rtype.IO)
	return ts
}

func (a Apply) String() string { return fmt.Sprintf("apply(%s)", a.FuncType) }

func (a Apply) Equal(o Op) bool {
	other, ok := o.(Apply)
	return ok && a.FuncType.Equal(other.FuncType)
}
