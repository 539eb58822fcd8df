package memstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgraph/rvsdg-go/graph"
	"github.com/flowgraph/rvsdg-go/memstate"
	"github.com/flowgraph/rvsdg-go/op"
	"github.com/flowgraph/rvsdg-go/pointsto"
	"github.com/flowgraph/rvsdg-go/rtype"
)

// buildStoreTest1 builds the scenario from the testable-properties
// section: a lambda with one local alloca, only exported, storing a
// constant and returning nothing observable through it.
func buildStoreTest1(t *testing.T) (*graph.Module, *pointsto.Graph, *graph.Node) {
	t.Helper()
	m := graph.NewModule()
	fnType := rtype.Function(nil, []rtype.Value{rtype.Bit(32)})
	lb := graph.NewLambda(m.Root(), fnType)
	memCtx, err := lb.BindContextVar(m.AddImport("mem0", rtype.Memory, graph.LinkagePrivate))
	require.NoError(t, err)

	allocaNode, err := graph.NewSimpleNode(lb.Body(), op.Alloca{ValueType: rtype.Bit(32), Size: 1}, []*graph.Output{memCtx})
	require.NoError(t, err)
	ptr, mem1 := allocaNode.Outputs()[0], allocaNode.Outputs()[1]

	five, err := graph.NewSimpleNode(lb.Body(), op.NewConstBit(32, 5), nil)
	require.NoError(t, err)

	storeNode, err := graph.NewSimpleNode(lb.Body(), op.Store{ValueType: rtype.Bit(32)}, []*graph.Output{ptr, five.Outputs()[0], mem1})
	require.NoError(t, err)
	_ = storeNode

	result, err := graph.NewSimpleNode(lb.Body(), op.NewConstBit(32, 0), nil)
	require.NoError(t, err)

	n, err := lb.Finalize([]*graph.Output{result.Outputs()[0]})
	require.NoError(t, err)

	_, err = m.AddExport("f", n.Outputs()[0], graph.LinkageExported)
	require.NoError(t, err)

	pg := pointsto.New()
	pg.AddAllocaNode(allocaNode)
	pg.AddLambdaNode(n)

	return m, pg, n
}

func TestLifetimeAwarePrunesNonEscapingLocalAlloca(t *testing.T) {
	m, pg, lambda := buildStoreTest1(t)

	agnostic := memstate.NewAgnosticProvider(pg)
	lifetime, err := memstate.NewLifetimeAwareProvider(m, pg)
	require.NoError(t, err)

	body := lambda.Subregions()[0]
	agnosticEntry := agnostic.RegionEntry(body)
	lifetimeEntry := lifetime.RegionEntry(body)

	// Agnostic includes every memory node; lifetime-aware drops the local,
	// non-escaping alloca, so it must have strictly fewer entries.
	assert.Greater(t, len(agnosticEntry), len(lifetimeEntry))
}

func TestAgnosticEntrySupersetsLifetimeAware(t *testing.T) {
	m, pg, lambda := buildStoreTest1(t)

	agnostic := memstate.NewAgnosticProvider(pg)
	lifetime, err := memstate.NewLifetimeAwareProvider(m, pg)
	require.NoError(t, err)

	body := lambda.Subregions()[0]
	agnosticSet := toSet(agnostic.RegionEntry(body))
	for _, m := range lifetime.RegionEntry(body) {
		assert.True(t, agnosticSet[m])
	}
}

func TestDeadLambdaContributesNoMemoryNodes(t *testing.T) {
	m := graph.NewModule()
	fnType := rtype.Function(nil, []rtype.Value{rtype.Bit(32)})
	lb := graph.NewLambda(m.Root(), fnType)
	c, err := graph.NewSimpleNode(lb.Body(), op.NewConstBit(32, 1), nil)
	require.NoError(t, err)
	n, err := lb.Finalize([]*graph.Output{c.Outputs()[0]})
	require.NoError(t, err)
	// Never exported, never called: dead.

	pg := pointsto.New()
	pg.AddLambdaNode(n)

	lifetime, err := memstate.NewLifetimeAwareProvider(m, pg)
	require.NoError(t, err)
	assert.Empty(t, lifetime.RegionEntry(n.Subregions()[0]))
}

func toSet(nodes []*pointsto.MemoryNode) map[*pointsto.MemoryNode]bool {
	s := make(map[*pointsto.MemoryNode]bool, len(nodes))
	for _, n := range nodes {
		s[n] = true
	}
	return s
}
