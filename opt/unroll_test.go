package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgraph/rvsdg-go/graph"
	"github.com/flowgraph/rvsdg-go/op"
	"github.com/flowgraph/rvsdg-go/rtype"
)

func buildCountingLoop(t *testing.T) (*graph.Module, *graph.Node) {
	t.Helper()
	m := graph.NewModule()
	init := m.AddImport("init", rtype.Bit(32), graph.LinkagePrivate)

	tb := graph.NewTheta(m.Root())
	arg, err := tb.AddLoopVar(init)
	require.NoError(t, err)

	one, err := graph.NewSimpleNode(tb.Body(), op.NewConstBit(32, 1), nil)
	require.NoError(t, err)
	next, err := graph.NewSimpleNode(tb.Body(), op.BinaryArith{Op: op.Add, Width: 32}, []*graph.Output{arg, one.Outputs()[0]})
	require.NoError(t, err)
	predNode, err := graph.NewSimpleNode(tb.Body(), op.ConstControl{Alt: rtype.LoopContinue, N: 2}, nil)
	require.NoError(t, err)

	outs, err := tb.Finalize([]*graph.Output{next.Outputs()[0]}, predNode.Outputs()[0])
	require.NoError(t, err)
	theta := outs[0].Node()
	_, err = m.AddExport("sink", outs[0], graph.LinkagePrivate)
	require.NoError(t, err)
	return m, theta
}

func TestLoopUnrollingFactorBelowTwoIsANoop(t *testing.T) {
	m, theta := buildCountingLoop(t)
	res, err := (LoopUnrolling{Factor: 1}).Run(m, &RunContext{})
	require.NoError(t, err)
	assert.Empty(t, res.Counters)
	assert.Contains(t, m.Root().Nodes(), theta)
}

func TestLoopUnrollingReplacesThetaWithGuardedChain(t *testing.T) {
	m, theta := buildCountingLoop(t)

	res, err := (LoopUnrolling{Factor: 3}).Run(m, &RunContext{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Counters["loops_unrolled"])

	for _, n := range m.Root().Nodes() {
		assert.NotSame(t, theta, n)
	}

	var newTheta *graph.Node
	for _, n := range m.Root().Nodes() {
		if n.Kind() == graph.KindTheta {
			newTheta = n
		}
	}
	require.NotNil(t, newTheta)
	require.Len(t, newTheta.Outputs(), 1)

	var gammaCount int
	for _, n := range newTheta.Subregions()[0].Nodes() {
		if n.Kind() == graph.KindGamma {
			gammaCount++
		}
	}
	assert.Equal(t, 2, gammaCount, "factor 3 chains 2 guarded copies after the unconditional first")
}
