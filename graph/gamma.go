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

// GammaBuilder assembles a gamma node: an N-way conditional with one
// subregion per alternative. Every subregion shares the same entry-variable
// arguments and must produce the same number and types of results, one set
// per alternative, merged into the gamma's outputs.
type GammaBuilder struct {
	node       *Node
	predicate  *Output
	numAlts    int
	numEntries int
}

// NewGamma begins building a gamma node with numAlternatives subregions,
// selected by predicate (which must carry a control(numAlternatives) type).
func NewGamma(region *Region, predicate *Output, numAlternatives int) (*GammaBuilder, error) {
	if numAlternatives < 1 {
		return nil, domainErrorf("bad-alternative-count", "gamma requires at least one alternative, got %d", numAlternatives)
	}
	want := rtype.Control(numAlternatives)
	if !want.EqualType(predicate.typ) {
		return nil, domainErrorf("predicate-type-mismatch", "gamma predicate must be %s, got %s", want, predicate.typ)
	}
	n := newNode(region, KindGamma)
	if _, err := n.addContextInput(predicate.typ, predicate); err != nil {
		region.removeNode(n)
		return nil, err
	}
	for i := 0; i < numAlternatives; i++ {
		n.addSubregion()
	}
	return &GammaBuilder{node: n, predicate: predicate, numAlts: numAlternatives}, nil
}

// NumAlternatives returns the number of subregions.
func (b *GammaBuilder) NumAlternatives() int { return b.numAlts }

// Subregion returns the subregion for alternative alt.
func (b *GammaBuilder) Subregion(alt int) *Region { return b.node.subregions[alt] }

// AddEntryVar threads origin into every alternative, returning the
// per-alternative argument exposing its value inside each subregion (index
// alt of the returned slice corresponds to Subregion(alt)).
func (b *GammaBuilder) AddEntryVar(origin *Output) ([]*Output, error) {
	if b.node.finalized {
		return nil, domainErrorf("gamma-finalized", "cannot add an entry variable after Finalize")
	}
	if _, err := b.node.addContextInput(origin.typ, origin); err != nil {
		return nil, err
	}
	b.numEntries++
	args := make([]*Output, b.numAlts)
	for alt, sub := range b.node.subregions {
		args[alt] = sub.addArgument(origin.typ)
	}
	return args, nil
}

// Finalize fixes each alternative's result list. Every alternative must
// supply the same number of results, pairwise type-equal across
// alternatives; the gamma node gets one output per result position,
// merging the live alternative's value at runtime.
func (b *GammaBuilder) Finalize(subregionResults [][]*Output) ([]*Output, error) {
	if len(subregionResults) != b.numAlts {
		return nil, domainErrorf("arity-mismatch", "gamma has %d alternatives, got %d result lists", b.numAlts, len(subregionResults))
	}
	var numResults int
	if b.numAlts > 0 {
		numResults = len(subregionResults[0])
	}
	for alt, results := range subregionResults {
		if len(results) != numResults {
			return nil, domainErrorf("arity-mismatch", "alternative %d has %d results, alternative 0 has %d", alt, len(results), numResults)
		}
		sub := b.node.subregions[alt]
		for idx, r := range results {
			if alt > 0 && !subregionResults[0][idx].typ.EqualType(r.typ) {
				return nil, domainErrorf("type-mismatch", "result %d type diverges across alternatives", idx)
			}
			if _, err := sub.addResult(r); err != nil {
				return nil, err
			}
		}
	}
	outs := make([]*Output, numResults)
	for idx := 0; idx < numResults; idx++ {
		outs[idx] = b.node.addOutput(subregionResults[0][idx].typ)
	}
	b.node.finalized = true
	return outs, nil
}
