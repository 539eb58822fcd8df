//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package graph

import "github.com/flowgraph/rvsdg-go/rtype"

// DeltaBuilder assembles a global: a subregion that computes one value of a
// declared element type, addressed from outside through a single pointer
// output.
type DeltaBuilder struct {
	node    *Node
	body    *Region
	elem    rtype.Value
}

// NewDelta begins building a delta node whose body computes a value of
// type elem.
func NewDelta(region *Region, elem rtype.Value) *DeltaBuilder {
	n := newNode(region, KindDelta)
	return &DeltaBuilder{node: n, body: n.addSubregion(), elem: elem}
}

// Body returns the global's subregion.
func (b *DeltaBuilder) Body() *Region { return b.body }

// BindContextVar adds a context variable reading origin, visible inside the
// subregion as the returned argument.
func (b *DeltaBuilder) BindContextVar(origin *Output) (*Output, error) {
	if b.node.finalized {
		return nil, domainErrorf("delta-finalized", "cannot bind a context variable after Finalize")
	}
	if !origin.region.dominates(b.node.region) {
		return nil, domainErrorf("non-dominating-origin", "context variable origin must dominate the delta's region")
	}
	if _, err := b.node.addContextInput(origin.typ, origin); err != nil {
		return nil, err
	}
	b.node.numContextVars++
	return b.body.addArgument(origin.typ), nil
}

// Finalize fixes the subregion's single result and produces the delta's
// pointer-to-elem output.
func (b *DeltaBuilder) Finalize(result *Output) (*Node, error) {
	if !b.elem.EqualType(result.typ) {
		return nil, domainErrorf("type-mismatch", "delta result has type %s, declared element type %s", result.typ, b.elem)
	}
	if _, err := b.body.addResult(result); err != nil {
		return nil, err
	}
	b.node.addOutput(rtype.Pointer(b.elem))
	b.node.finalized = true
	return b.node, nil
}
