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

// PhiBuilder assembles a mutual-recursion group: a set of recursion
// variables (typically lambdas) that may reference each other and the
// enclosing region's context before any of them is fully defined. Bind all
// context variables first, then add one recursion variable per member of
// the group, then build the subregion using the recursion variables'
// inside-use arguments, then finalize with each member's defining value.
type PhiBuilder struct {
	node       *Node
	body       *Region
	numRecVars int
}

// NewPhi begins building a phi node in region.
func NewPhi(region *Region) *PhiBuilder {
	n := newNode(region, KindPhi)
	return &PhiBuilder{node: n, body: n.addSubregion()}
}

// Body returns the recursion group's subregion.
func (b *PhiBuilder) Body() *Region { return b.body }

// BindContextVar adds a context variable reading origin, visible inside the
// subregion as the returned argument. Must be called before any
// AddRecursionVar call.
func (b *PhiBuilder) BindContextVar(origin *Output) (*Output, error) {
	if b.numRecVars > 0 {
		return nil, domainErrorf("bind-order", "phi context variables must all be bound before recursion variables are added")
	}
	if !origin.region.dominates(b.node.region) {
		return nil, domainErrorf("non-dominating-origin", "context variable origin must dominate the phi's region")
	}
	if _, err := b.node.addContextInput(origin.typ, origin); err != nil {
		return nil, err
	}
	b.node.numContextVars++
	return b.body.addArgument(origin.typ), nil
}

// AddRecursionVar reserves one member of the recursion group, of the given
// value or function type, returning the subregion argument that stands in
// for "the member's value, referenced from within the group" before its
// defining value exists.
func (b *PhiBuilder) AddRecursionVar(t rtype.Value) *Output {
	b.numRecVars++
	return b.body.addArgument(t)
}

// Finalize fixes each recursion variable's defining value, in the order
// AddRecursionVar was called, and produces the phi's outputs: the group's
// values as seen from the enclosing region.
func (b *PhiBuilder) Finalize(results []*Output) ([]*Output, error) {
	if len(results) != b.numRecVars {
		return nil, domainErrorf("arity-mismatch", "phi declared %d recursion variables, got %d results", b.numRecVars, len(results))
	}
	recArgs := b.body.arguments[b.node.numContextVars:]
	for idx, r := range results {
		if !recArgs[idx].typ.EqualType(r.typ) {
			return nil, domainErrorf("type-mismatch", "recursion variable %d result has type %s, declared %s", idx, r.typ, recArgs[idx].typ)
		}
		if _, err := b.body.addResult(r); err != nil {
			return nil, err
		}
	}
	outs := make([]*Output, b.numRecVars)
	for idx, r := range results {
		outs[idx] = b.node.addOutput(r.typ)
	}
	b.node.finalized = true
	return outs, nil
}
