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

func TestDumpIncludesNodesAndRegions(t *testing.T) {
	m := NewModule()
	c, err := NewSimpleNode(m.Root(), op.NewConstBit(32, 5), nil)
	require.NoError(t, err)
	_, err = m.AddExport("five", c.Outputs()[0], LinkageExported)
	require.NoError(t, err)

	out := Dump(m)
	assert.Contains(t, out, "module "+m.ID())
	assert.Contains(t, out, "bit-constant(5 : bit32)")
}
