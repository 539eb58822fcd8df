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
	"fmt"

	"github.com/flowgraph/rvsdg-go/op"
	"github.com/flowgraph/rvsdg-go/rtype"
)

// NewSimpleNode adds a simple node computing operation to region, wired to
// the given operand outputs. The number and type of operands must match
// operation.InputTypes() exactly, and each operand must live in region
// itself or its argument list; an operand defined in an enclosing region
// must be threaded in first as a context variable. The returned node's
// outputs are created from operation.OutputTypes(), in order.
func NewSimpleNode(region *Region, operation op.Op, operands []*Output) (*Node, error) {
	return buildSimpleNode(region, operation, operands, (*Node).addInput)
}

// SpliceSimpleNode is like NewSimpleNode but accepts operands that merely
// dominate region instead of requiring them to live in region itself. It
// is for optimizer passes relocating an already-validated node (push-out,
// pull-in, cloning) rather than for authoring new graphs, where the
// region-membership check in NewSimpleNode is what catches a
// miswired operand.
func SpliceSimpleNode(region *Region, operation op.Op, operands []*Output) (*Node, error) {
	return buildSimpleNode(region, operation, operands, (*Node).addContextInput)
}

func buildSimpleNode(region *Region, operation op.Op, operands []*Output, add func(*Node, rtype.Type, *Output) (*Input, error)) (*Node, error) {
	want := operation.InputTypes()
	if len(operands) != len(want) {
		return nil, domainErrorf("arity-mismatch",
			"%s expects %d operands, got %d", operation, len(want), len(operands))
	}
	n := newNode(region, KindSimple)
	n.operation = operation
	for idx, origin := range operands {
		if _, err := add(n, want[idx], origin); err != nil {
			region.removeNode(n)
			return nil, fmt.Errorf("operand %d: %w", idx, err)
		}
	}
	for _, t := range operation.OutputTypes() {
		n.addOutput(t)
	}
	n.finalized = true
	return n, nil
}
