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

// CloneInto rebuilds src's nodes inside target, one new node per node of
// src, with src's arguments mapped one-to-one (by position) onto args
// (which must already live in, or dominate, target). It returns the
// outputs in target corresponding to src's result list, in order. This is
// the splicing primitive inlining uses to copy a lambda's body into a
// caller without aliasing the original lambda's nodes.
func CloneInto(target *Region, src *Region, args []*Output) ([]*Output, error) {
	if len(args) != len(src.arguments) {
		return nil, domainErrorf("arity-mismatch", "CloneInto given %d arguments for a region declaring %d", len(args), len(src.arguments))
	}
	mapping := make(map[*Output]*Output, len(src.arguments)+2*len(src.nodes))
	for i, a := range src.arguments {
		mapping[a] = args[i]
	}
	for _, n := range Topdown(src) {
		outs, err := cloneNode(target, n, mapping)
		if err != nil {
			return nil, err
		}
		for i, o := range n.outputs {
			mapping[o] = outs[i]
		}
	}
	results := make([]*Output, len(src.results))
	for i, r := range src.results {
		mapped, ok := mapping[r.origin]
		if !ok {
			return nil, invariantf("unmapped-origin", "CloneInto: result %d's origin was never cloned", i)
		}
		results[i] = mapped
	}
	return results, nil
}

func cloneNode(target *Region, n *Node, mapping map[*Output]*Output) ([]*Output, error) {
	switch n.kind {
	case KindSimple:
		operands := make([]*Output, len(n.inputs))
		for i, in := range n.inputs {
			operands[i] = mapping[in.origin]
		}
		clone, err := SpliceSimpleNode(target, n.operation, operands)
		if err != nil {
			return nil, err
		}
		return clone.outputs, nil

	case KindLambda:
		fnType := n.outputs[0].typ.(rtype.Value)
		lb := NewLambda(target, fnType)
		for i := 0; i < n.numContextVars; i++ {
			if _, err := lb.BindContextVar(mapping[n.inputs[i].origin]); err != nil {
				return nil, err
			}
		}
		results, err := CloneInto(lb.Body(), n.subregions[0], lb.Body().Arguments())
		if err != nil {
			return nil, err
		}
		clone, err := lb.Finalize(results)
		if err != nil {
			return nil, err
		}
		return clone.outputs, nil

	case KindDelta:
		elem := n.outputs[0].typ.(rtype.Value).Elem()
		db := NewDelta(target, elem)
		for i := 0; i < n.numContextVars; i++ {
			if _, err := db.BindContextVar(mapping[n.inputs[i].origin]); err != nil {
				return nil, err
			}
		}
		results, err := CloneInto(db.Body(), n.subregions[0], db.Body().Arguments())
		if err != nil {
			return nil, err
		}
		clone, err := db.Finalize(results[0])
		if err != nil {
			return nil, err
		}
		return clone.outputs, nil

	case KindGamma:
		predicate := mapping[n.inputs[0].origin]
		gb, err := NewGamma(target, predicate, len(n.subregions))
		if err != nil {
			return nil, err
		}
		perAlt := make([][]*Output, len(n.subregions))
		for i := 1; i < len(n.inputs); i++ {
			args, err := gb.AddEntryVar(mapping[n.inputs[i].origin])
			if err != nil {
				return nil, err
			}
			for alt, a := range args {
				perAlt[alt] = append(perAlt[alt], a)
			}
		}
		subResults := make([][]*Output, len(n.subregions))
		for alt, sub := range n.subregions {
			subResults[alt], err = CloneInto(gb.Subregion(alt), sub, perAlt[alt])
			if err != nil {
				return nil, err
			}
		}
		return gb.Finalize(subResults)

	case KindTheta:
		tb := NewTheta(target)
		loopArgs := make([]*Output, len(n.inputs))
		for i, in := range n.inputs {
			arg, err := tb.AddLoopVar(mapping[in.origin])
			if err != nil {
				return nil, err
			}
			loopArgs[i] = arg
		}
		bodyResults, err := CloneInto(tb.Body(), n.subregions[0], loopArgs)
		if err != nil {
			return nil, err
		}
		predicate := bodyResults[len(bodyResults)-1]
		return tb.Finalize(bodyResults[:len(bodyResults)-1], predicate)

	case KindPhi:
		pb := NewPhi(target)
		for i := 0; i < n.numContextVars; i++ {
			if _, err := pb.BindContextVar(mapping[n.inputs[i].origin]); err != nil {
				return nil, err
			}
		}
		for _, o := range n.outputs {
			pb.AddRecursionVar(o.typ.(rtype.Value))
		}
		results, err := CloneInto(pb.Body(), n.subregions[0], pb.Body().Arguments())
		if err != nil {
			return nil, err
		}
		return pb.Finalize(results)

	default:
		return nil, invariantf("unknown-kind", "CloneInto: node %d has unrecognized kind %s", n.id, n.kind)
	}
}
