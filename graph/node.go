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
	"github.com/flowgraph/rvsdg-go/graph/internal/arena"
	"github.com/flowgraph/rvsdg-go/op"
	"github.com/flowgraph/rvsdg-go/rtype"
)

// Kind tags a Node's variant: one simple kind wrapping an operation, and
// the five structural kinds, each owning one or more subregions.
type Kind int

const (
	KindSimple Kind = iota
	KindLambda
	KindGamma
	KindTheta
	KindPhi
	KindDelta
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindLambda:
		return "lambda"
	case KindGamma:
		return "gamma"
	case KindTheta:
		return "theta"
	case KindPhi:
		return "phi"
	case KindDelta:
		return "delta"
	default:
		return "Kind(?)"
	}
}

// Node is either a simple node wrapping one Op (fixed in/out arity from
// the op's signature) or a structural node owning one or more subregions.
// Both shapes share one struct, a flat struct with kind-specific fields
// rather than a type hierarchy per kind.
type Node struct {
	id     arena.ID
	kind   Kind
	region *Region // the region this node lives in

	operation op.Op // KindSimple only

	inputs  []*Input
	outputs []*Output

	subregions []*Region

	// Structural metadata. Which fields are meaningful depends on kind:
	// Lambda/Delta use numContextVars; Phi uses numContextVars and treats
	// every output as a recursion variable; Gamma/Theta need neither.
	numContextVars int

	indexInRegion int
	finalized     bool
	dead          bool
}

func (n *Node) ID() arena.ID     { return n.id }
func (n *Node) Kind() Kind       { return n.kind }
func (n *Node) Region() *Region  { return n.region }
func (n *Node) Operation() op.Op { return n.operation }
func (n *Node) Inputs() []*Input { return n.inputs }
func (n *Node) Outputs() []*Output { return n.outputs }
func (n *Node) Subregions() []*Region { return n.subregions }
func (n *Node) IsFinalized() bool { return n.finalized }
func (n *Node) IsStructural() bool { return n.kind != KindSimple }

// NumContextVars reports how many of a lambda/delta/phi node's leading
// inputs (and corresponding subregion arguments) are context variables
// rather than formal parameters or recursion variables. Meaningless for
// KindSimple, KindGamma, and KindTheta.
func (n *Node) NumContextVars() int { return n.numContextVars }

// IsDead reports whether none of this node's outputs have any consumers.
// A node with zero outputs is therefore always reported dead.
func (n *Node) IsDead() bool {
	for _, o := range n.outputs {
		if o.HasUsers() {
			return false
		}
	}
	return true
}

func newNode(region *Region, kind Kind) *Node {
	n := &Node{id: region.module.arena.Alloc(), kind: kind, region: region}
	region.addNode(n)
	return n
}

// addInput appends an input of type t reading from origin, checking that
// origin lives in n's own region — an operation reads only values defined
// in that region or its argument list, never reached across a region
// boundary by ordinary wiring — and that the declared type matches the
// origin's type. Crossing a region boundary requires a context variable;
// see addContextInput.
func (n *Node) addInput(t rtype.Type, origin *Output) (*Input, error) {
	if origin.region != n.region {
		return nil, domainErrorf("non-local-origin",
			"input of type %s on node %d cannot read output %d: origin is not defined in node's region",
			t, n.id, origin.id)
	}
	if !t.EqualType(origin.typ) {
		return nil, domainErrorf("type-mismatch",
			"input expects %s but origin %d has type %s", t, origin.id, origin.typ)
	}
	i := &Input{id: n.region.module.arena.Alloc(), typ: t, node: n, region: n.region, index: len(n.inputs)}
	n.inputs = append(n.inputs, i)
	i.setOrigin(origin)
	return i, nil
}

// addContextInput appends an input of type t reading from origin, checking
// that origin's defining region structurally dominates this node's region
// and that the declared type matches the origin's type. Used for context
// variables and other structural-node inputs (gamma predicates, entry
// variables, loop variables) that are specifically allowed to reach into
// an enclosing region.
func (n *Node) addContextInput(t rtype.Type, origin *Output) (*Input, error) {
	if !origin.region.dominates(n.region) {
		return nil, domainErrorf("non-dominating-origin",
			"input of type %s on node %d cannot read output %d: defining region does not dominate node's region",
			t, n.id, origin.id)
	}
	if !t.EqualType(origin.typ) {
		return nil, domainErrorf("type-mismatch",
			"input expects %s but origin %d has type %s", t, origin.id, origin.typ)
	}
	i := &Input{id: n.region.module.arena.Alloc(), typ: t, node: n, region: n.region, index: len(n.inputs)}
	n.inputs = append(n.inputs, i)
	i.setOrigin(origin)
	return i, nil
}

func (n *Node) addOutput(t rtype.Type) *Output {
	o := &Output{id: n.region.module.arena.Alloc(), typ: t, node: n, region: n.region, index: len(n.outputs)}
	n.outputs = append(n.outputs, o)
	return o
}

func (n *Node) addSubregion() *Region {
	r := newRegion(n.region.module, n)
	n.subregions = append(n.subregions, r)
	return r
}
