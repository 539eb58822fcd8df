package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgraph/rvsdg-go/graph"
	"github.com/flowgraph/rvsdg-go/op"
	"github.com/flowgraph/rvsdg-go/rtype"
)

func TestPushOutHoistsInvariantComputationAheadOfTheLoop(t *testing.T) {
	m := graph.NewModule()
	x := m.AddImport("x", rtype.Bit(32), graph.LinkagePrivate)
	init := m.AddImport("init", rtype.Bit(32), graph.LinkagePrivate)

	tb := graph.NewTheta(m.Root())
	arg, err := tb.AddLoopVar(init)
	require.NoError(t, err)

	one, err := graph.NewSimpleNode(tb.Body(), op.NewConstBit(32, 1), nil)
	require.NoError(t, err)
	invariant, err := graph.NewSimpleNode(tb.Body(), op.BinaryArith{Op: op.Add, Width: 32}, []*graph.Output{x, one.Outputs()[0]})
	require.NoError(t, err)
	next, err := graph.NewSimpleNode(tb.Body(), op.BinaryArith{Op: op.Add, Width: 32}, []*graph.Output{arg, invariant.Outputs()[0]})
	require.NoError(t, err)
	predNode, err := graph.NewSimpleNode(tb.Body(), op.ConstControl{Alt: rtype.LoopExit, N: 2}, nil)
	require.NoError(t, err)

	outs, err := tb.Finalize([]*graph.Output{next.Outputs()[0]}, predNode.Outputs()[0])
	require.NoError(t, err)
	_, err = m.AddExport("sink", outs[0], graph.LinkagePrivate)
	require.NoError(t, err)

	rootNodesBefore := len(m.Root().Nodes())

	res, err := (PushOut{}).Run(m, &RunContext{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Counters["nodes_pushed_out"], "both the constant and the add reading only outer values are invariant")
	assert.Greater(t, len(m.Root().Nodes()), rootNodesBefore)

	assert.NotEqual(t, tb.Body(), next.Inputs()[1].Origin().Region(), "next's invariant operand should now originate outside the loop")
	assert.Equal(t, tb.Body(), next.Inputs()[0].Origin().Region(), "next's loop-carried operand is untouched")
}
