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

// ThetaBuilder assembles a tail-controlled loop: one subregion executed at
// least once, re-entered for as long as its trailing control(2) predicate
// selects "continue". Inputs, loop-carried arguments, and outputs are all
// in one-to-one correspondence, by position.
type ThetaBuilder struct {
	node *Node
	body *Region
}

// NewTheta begins building a theta node in region.
func NewTheta(region *Region) *ThetaBuilder {
	n := newNode(region, KindTheta)
	return &ThetaBuilder{node: n, body: n.addSubregion()}
}

// Body returns the loop's subregion.
func (b *ThetaBuilder) Body() *Region { return b.body }

// AddLoopVar threads a loop-carried variable initialized from origin,
// returning the subregion argument that exposes its per-iteration value.
// Loop vars keep the index they're added in across inputs, subregion
// arguments, subregion results, and node outputs.
func (b *ThetaBuilder) AddLoopVar(origin *Output) (*Output, error) {
	if b.node.finalized {
		return nil, domainErrorf("theta-finalized", "cannot add a loop variable after Finalize")
	}
	if _, err := b.node.addContextInput(origin.typ, origin); err != nil {
		return nil, err
	}
	return b.body.addArgument(origin.typ), nil
}

// Finalize fixes the subregion's results: one per loop variable (the value
// carried into the next iteration, or out of the loop on exit), in the
// order AddLoopVar was called, followed by the control(2) predicate
// selecting LoopContinue or LoopExit. It returns one output per loop
// variable, exposing the loop's final values.
func (b *ThetaBuilder) Finalize(loopVarResults []*Output, predicate *Output) ([]*Output, error) {
	if len(loopVarResults) != len(b.node.inputs) {
		return nil, domainErrorf("arity-mismatch", "theta has %d loop variables, got %d results", len(b.node.inputs), len(loopVarResults))
	}
	if !rtype.LoopControl.EqualType(predicate.typ) {
		return nil, domainErrorf("predicate-type-mismatch", "theta predicate must be %s, got %s", rtype.LoopControl, predicate.typ)
	}
	for idx, in := range b.node.inputs {
		r := loopVarResults[idx]
		if !in.typ.EqualType(r.typ) {
			return nil, domainErrorf("type-mismatch", "loop variable %d result has type %s, expected %s", idx, r.typ, in.typ)
		}
		if _, err := b.body.addResult(r); err != nil {
			return nil, err
		}
	}
	if _, err := b.body.addResult(predicate); err != nil {
		return nil, err
	}
	outs := make([]*Output, len(b.node.inputs))
	for idx, in := range b.node.inputs {
		outs[idx] = b.node.addOutput(in.typ)
	}
	b.node.finalized = true
	return outs, nil
}
