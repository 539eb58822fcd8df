//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgraph/rvsdg-go/graph"
	"github.com/flowgraph/rvsdg-go/op"
	"github.com/flowgraph/rvsdg-go/opt"
	"github.com/flowgraph/rvsdg-go/rtype"
)

func TestNewRunnerRejectsNonPositiveConcurrency(t *testing.T) {
	_, err := NewRunner(opt.NewDefaultDriver(), nil, 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "concurrency must be greater than 0")
}

func deadConstModule(t *testing.T) *graph.Module {
	t.Helper()
	m := graph.NewModule()
	fnType := rtype.Function(nil, []rtype.Value{rtype.Bit(32)})
	lb := graph.NewLambda(m.Root(), fnType)

	live, err := graph.NewSimpleNode(lb.Body(), op.NewConstBit(32, 7), nil)
	require.NoError(t, err)
	_, err = graph.NewSimpleNode(lb.Body(), op.NewConstBit(32, 99), nil)
	require.NoError(t, err)

	lambda, err := lb.Finalize([]*graph.Output{live.Outputs()[0]})
	require.NoError(t, err)
	_, err = m.AddExport("f", lambda.Outputs()[0], graph.LinkageExported)
	require.NoError(t, err)
	return m
}

func TestRunnerRunsEveryJobConcurrentlyAndPreservesOrder(t *testing.T) {
	driver := opt.NewDriver(opt.DeadNodeElimination{})
	runner, err := NewRunner(driver, nil, 2)
	require.NoError(t, err)
	defer runner.Close()

	jobs := make([]Job, 4)
	modules := make([]*graph.Module, 4)
	for i := range jobs {
		m := deadConstModule(t)
		modules[i] = m
		jobs[i] = Job{Module: m, Specs: []opt.PassSpec{{ID: "dne"}}}
	}

	results := runner.Run(context.Background(), jobs)
	require.Len(t, results, 4)
	for i, res := range results {
		assert.NoError(t, res.Err)
		assert.Same(t, modules[i], res.Module)
		assert.Len(t, modules[i].Root().Nodes()[0].Subregions()[0].Nodes(), 1)
	}
}

func TestRunnerPropagatesUnknownPassError(t *testing.T) {
	driver := opt.NewDriver(opt.DeadNodeElimination{})
	runner, err := NewRunner(driver, nil, 1)
	require.NoError(t, err)
	defer runner.Close()

	m := deadConstModule(t)
	results := runner.Run(context.Background(), []Job{
		{Module: m, Specs: []opt.PassSpec{{ID: "not-a-real-pass"}}},
	})
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}
