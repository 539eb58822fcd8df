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

func TestCloneIntoSimpleRegionRemapsArguments(t *testing.T) {
	m := NewModule()
	fnType := rtype.Function([]rtype.Value{rtype.Bit(32)}, []rtype.Value{rtype.Bit(32)})
	lb := NewLambda(m.Root(), fnType)
	body := lb.Body()
	arg := body.Arguments()[0]

	one, err := NewSimpleNode(body, op.NewConstBit(32, 1), nil)
	require.NoError(t, err)
	add, err := NewSimpleNode(body, op.BinaryArith{Op: op.Add, Width: 32}, []*Output{arg, one.Outputs()[0]})
	require.NoError(t, err)

	_, err = lb.Finalize([]*Output{add.Outputs()[0]})
	require.NoError(t, err)

	caller := NewLambda(m.Root(), rtype.Function(nil, []rtype.Value{rtype.Bit(32)}))
	actual, err := NewSimpleNode(caller.Body(), op.NewConstBit(32, 41), nil)
	require.NoError(t, err)

	results, err := CloneInto(caller.Body(), body, []*Output{actual.Outputs()[0]})
	require.NoError(t, err)
	require.Len(t, results, 1)

	clonedAdd := results[0].Node()
	require.Equal(t, KindSimple, clonedAdd.Kind())
	require.Same(t, actual.Outputs()[0], clonedAdd.Inputs()[0].Origin())
	require.NotSame(t, add, clonedAdd, "CloneInto must not alias the source node")

	_, err = caller.Finalize([]*Output{results[0]})
	require.NoError(t, err)
}

func TestCloneIntoRejectsArityMismatch(t *testing.T) {
	m := NewModule()
	fnType := rtype.Function([]rtype.Value{rtype.Bit(32)}, []rtype.Value{rtype.Bit(32)})
	lb := NewLambda(m.Root(), fnType)
	_, err := lb.Finalize([]*Output{lb.Body().Arguments()[0]})
	require.NoError(t, err)

	caller := NewLambda(m.Root(), rtype.Function(nil, nil))
	_, err = CloneInto(caller.Body(), lb.Body(), nil)
	assert.Error(t, err)
}

func TestCloneIntoStructuralGamma(t *testing.T) {
	m := NewModule()
	fnType := rtype.Function([]rtype.Value{rtype.Control(2), rtype.Bit(32)}, []rtype.Value{rtype.Bit(32)})
	lb := NewLambda(m.Root(), fnType)
	body := lb.Body()
	pred := body.Arguments()[0]
	x := body.Arguments()[1]

	gb, err := NewGamma(body, pred, 2)
	require.NoError(t, err)
	args, err := gb.AddEntryVar(x)
	require.NoError(t, err)
	outs, err := gb.Finalize([][]*Output{{args[0]}, {args[1]}})
	require.NoError(t, err)

	_, err = lb.Finalize([]*Output{outs[0]})
	require.NoError(t, err)

	caller := NewLambda(m.Root(), rtype.Function(nil, []rtype.Value{rtype.Bit(32)}))
	predNode, err := NewSimpleNode(caller.Body(), op.ConstControl{Alt: 0, N: 2}, nil)
	require.NoError(t, err)
	xNode, err := NewSimpleNode(caller.Body(), op.NewConstBit(32, 7), nil)
	require.NoError(t, err)

	results, err := CloneInto(caller.Body(), body, []*Output{predNode.Outputs()[0], xNode.Outputs()[0]})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, KindGamma, results[0].Node().Kind())

	_, err = caller.Finalize([]*Output{results[0]})
	require.NoError(t, err)
}
