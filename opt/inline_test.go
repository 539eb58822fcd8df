package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgraph/rvsdg-go/graph"
	"github.com/flowgraph/rvsdg-go/op"
	"github.com/flowgraph/rvsdg-go/rtype"
)

func TestInliningSplicesCalleeBodyAndDeletesCall(t *testing.T) {
	m := graph.NewModule()
	fnType := rtype.Function([]rtype.Value{rtype.Bit(32)}, []rtype.Value{rtype.Bit(32)})

	callee := graph.NewLambda(m.Root(), fnType)
	calleeArg := callee.Body().Arguments()[0]
	one, err := graph.NewSimpleNode(callee.Body(), op.NewConstBit(32, 1), nil)
	require.NoError(t, err)
	add, err := graph.NewSimpleNode(callee.Body(), op.BinaryArith{Op: op.Add, Width: 32}, []*graph.Output{calleeArg, one.Outputs()[0]})
	require.NoError(t, err)
	calleeNode, err := callee.Finalize([]*graph.Output{add.Outputs()[0]})
	require.NoError(t, err)

	caller := graph.NewLambda(m.Root(), rtype.Function(nil, []rtype.Value{rtype.Bit(32)}))

	ioImport := m.AddImport("io0", rtype.IO, graph.LinkagePrivate)
	actual, err := graph.NewSimpleNode(caller.Body(), op.NewConstBit(32, 41), nil)
	require.NoError(t, err)

	// Outer-region values reach the caller's body through context
	// variables; Inlining follows the callee's context variable back to the
	// lambda it captures.
	calleePtr, err := caller.BindContextVar(calleeNode.Outputs()[0])
	require.NoError(t, err)
	ioArg, err := caller.BindContextVar(ioImport)
	require.NoError(t, err)
	apply := op.Apply{FuncType: fnType}
	call, err := graph.NewSimpleNode(caller.Body(), apply, []*graph.Output{calleePtr, actual.Outputs()[0], ioArg})
	require.NoError(t, err)

	_, err = caller.Finalize([]*graph.Output{call.Outputs()[0]})
	require.NoError(t, err)

	res, err := (Inlining{}).Run(m, &RunContext{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Counters["calls_inlined"])

	for _, n := range caller.Body().Nodes() {
		assert.NotEqual(t, op.KindApply, n.Operation().Kind())
	}
	result := caller.Body().Results()[0].Origin()
	require.Equal(t, graph.KindSimple, result.Node().Kind())
	require.Equal(t, op.KindBinaryArith, result.Node().Operation().Kind())
}

func TestInliningIgnoresIndirectCalls(t *testing.T) {
	m := graph.NewModule()
	fnType := rtype.Function(nil, []rtype.Value{rtype.Bit(32)})
	caller := graph.NewLambda(m.Root(), fnType)
	fnPtr := m.AddImport("fptr", fnType, graph.LinkagePrivate)
	ptrArg, err := caller.BindContextVar(fnPtr)
	require.NoError(t, err)
	ioImport := m.AddImport("io0", rtype.IO, graph.LinkagePrivate)
	ioArg, err := caller.BindContextVar(ioImport)
	require.NoError(t, err)

	apply := op.Apply{FuncType: fnType}
	call, err := graph.NewSimpleNode(caller.Body(), apply, []*graph.Output{ptrArg, ioArg})
	require.NoError(t, err)
	_, err = caller.Finalize([]*graph.Output{call.Outputs()[0]})
	require.NoError(t, err)

	res, err := (Inlining{}).Run(m, &RunContext{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Counters["calls_inlined"])
}
