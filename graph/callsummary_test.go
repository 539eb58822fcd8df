//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgraph/rvsdg-go/op"
	"github.com/flowgraph/rvsdg-go/rtype"
)

func buildCalledLambda(t *testing.T, m *Module) *Node {
	t.Helper()
	fnType := rtype.Function(nil, []rtype.Value{rtype.Bit(32)})
	lb := NewLambda(m.Root(), fnType)
	c, err := NewSimpleNode(lb.Body(), op.NewConstBit(32, 9), nil)
	require.NoError(t, err)
	n, err := lb.Finalize([]*Output{c.Outputs()[0]})
	require.NoError(t, err)
	return n
}

func TestCallSummaryClassifiesDirectCall(t *testing.T) {
	m := NewModule()
	callee := buildCalledLambda(t, m)
	fnType := callee.Outputs()[0].Type().(rtype.Value)

	applyNode, err := NewSimpleNode(m.Root(), op.Apply{FuncType: fnType}, []*Output{callee.Outputs()[0], m.AddImport("ioIn", rtype.IO, LinkagePrivate)})
	require.NoError(t, err)
	_ = applyNode

	summary, err := GetCallSummary(callee)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.NumDirectCalls())
	assert.False(t, summary.IsExported())
	assert.True(t, summary.HasOnlyDirectCalls())
}

func TestCallSummaryClassifiesExport(t *testing.T) {
	m := NewModule()
	callee := buildCalledLambda(t, m)

	_, err := m.AddExport("f", callee.Outputs()[0], LinkageExported)
	require.NoError(t, err)

	summary, err := GetCallSummary(callee)
	require.NoError(t, err)
	assert.True(t, summary.IsOnlyExported())
	assert.Equal(t, 0, summary.NumDirectCalls())
}

func TestCallSummaryCacheInvalidatedByRedirect(t *testing.T) {
	m := NewModule()
	callee := buildCalledLambda(t, m)
	other := buildCalledLambda(t, m)

	exp, err := m.AddExport("f", callee.Outputs()[0], LinkageExported)
	require.NoError(t, err)

	s1, err := GetCallSummary(callee)
	require.NoError(t, err)
	assert.True(t, s1.IsExported())

	require.NoError(t, RedirectInput(exp, other.Outputs()[0]))

	s2, err := GetCallSummary(callee)
	require.NoError(t, err)
	assert.True(t, s2.IsDead())
}
