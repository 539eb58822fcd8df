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

// LambdaBuilder assembles a lambda node in three steps: bind context
// variables captured from the enclosing region, fill in the subregion body
// using the arguments it exposes, then finalize with the body's results.
// A lambda has exactly one output: a function-pointer value.
type LambdaBuilder struct {
	node     *Node
	body     *Region
	ctxOuter []*Output // outer-region origins for each context variable
	fnType   rtype.Value
}

// NewLambda begins building a lambda node of the given function type in
// region. Call BindContextVar for each free variable the body needs, then
// Body to obtain the subregion, then Finalize once the body computes its
// results.
func NewLambda(region *Region, fnType rtype.Value) *LambdaBuilder {
	if fnType.Kind() != rtype.KindFunction {
		panic("graph: NewLambda requires a function-typed signature")
	}
	n := newNode(region, KindLambda)
	b := &LambdaBuilder{node: n, fnType: fnType}
	b.body = n.addSubregion()
	for _, a := range fnType.FuncArgs() {
		b.body.addArgument(a)
	}
	return b
}

// BindContextVar adds a context variable reading origin (from the region
// lambda was created in, or an ancestor of it) and returns the
// corresponding argument visible at the front of the body region's
// argument list.
func (b *LambdaBuilder) BindContextVar(origin *Output) (*Output, error) {
	if b.node.finalized {
		return nil, domainErrorf("lambda-finalized", "cannot bind a context variable after Finalize")
	}
	if !origin.region.dominates(b.node.region) {
		return nil, domainErrorf("non-dominating-origin", "context variable origin must dominate the lambda's region")
	}
	if _, err := b.node.addContextInput(origin.typ, origin); err != nil {
		return nil, err
	}
	b.ctxOuter = append(b.ctxOuter, origin)
	b.node.numContextVars++
	arg := &Output{id: b.body.module.arena.Alloc(), typ: origin.typ, region: b.body, index: len(b.body.arguments)}
	// Context-variable arguments are inserted after the ones already bound
	// and ahead of the formal parameters, shifting the latter's indices.
	k := b.node.numContextVars - 1
	b.body.arguments = append(b.body.arguments, nil)
	copy(b.body.arguments[k+1:], b.body.arguments[k:len(b.body.arguments)-1])
	b.body.arguments[k] = arg
	for i, a := range b.body.arguments {
		a.index = i
	}
	return arg, nil
}

// Body returns the lambda's single subregion, in which to build the
// function's computation using its arguments (context variables first, in
// bind order, then the formal parameters in fnType's order).
func (b *LambdaBuilder) Body() *Region { return b.body }

// Finalize fixes the body's results, one per result type declared by
// fnType and in that order, each of the declared type and produced inside
// the body region, and produces the lambda's function-pointer output.
func (b *LambdaBuilder) Finalize(results []*Output) (*Node, error) {
	want := b.fnType.FuncResults()
	if len(results) != len(want) {
		return nil, domainErrorf("arity-mismatch", "lambda result count %d does not match function type's %d", len(results), len(want))
	}
	for idx, r := range results {
		if !want[idx].Equal(r.typ) {
			return nil, domainErrorf("type-mismatch", "lambda result %d has type %s, function type declares %s", idx, r.typ, want[idx])
		}
		if r.region != b.body {
			return nil, domainErrorf("region-mismatch", "lambda result %d does not live in the body region", idx)
		}
		if _, err := b.body.addResult(r); err != nil {
			return nil, err
		}
	}
	b.node.addOutput(b.fnType)
	b.node.finalized = true
	return b.node, nil
}
