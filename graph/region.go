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
	"github.com/flowgraph/rvsdg-go/rtype"
)

// Region is an ordered list of arguments, a set of nodes, and an ordered
// list of results. Every non-root region is owned by exactly one
// structural node (its Parent); the root region is owned by the Module.
type Region struct {
	id     arena.ID
	module *Module
	parent *Node // nil for the root region

	arguments []*Output
	nodes     []*Node // insertion order; topdown/bottomup tie-break on this.
	results   []*Input
}

func newRegion(m *Module, parent *Node) *Region {
	return &Region{id: m.arena.Alloc(), module: m, parent: parent}
}

func (r *Region) ID() arena.ID { return r.id }

// Module is the graph this region belongs to.
func (r *Region) Module() *Module { return r.module }

// Parent is the structural node owning this region, or nil for the root
// region.
func (r *Region) Parent() *Node { return r.parent }

// IsRoot reports whether this is the module's root region.
func (r *Region) IsRoot() bool { return r.parent == nil }

// Arguments returns the region's ordered argument list.
func (r *Region) Arguments() []*Output { return r.arguments }

// Results returns the region's ordered result list.
func (r *Region) Results() []*Input { return r.results }

// Nodes returns the region's nodes in insertion order. Passes that need a
// dependency-respecting order should use Topdown/Bottomup instead.
func (r *Region) Nodes() []*Node { return r.nodes }

// addArgument appends a fresh argument output of type t and returns it.
func (r *Region) addArgument(t rtype.Type) *Output {
	o := &Output{id: r.module.arena.Alloc(), typ: t, region: r, index: len(r.arguments)}
	r.arguments = append(r.arguments, o)
	return o
}

// addResult appends a fresh result input reading from origin and returns
// it. origin must live in r itself — a region's results must be produced
// inside that region, not merely dominate it — or this returns a
// region-mismatch domain error.
func (r *Region) addResult(origin *Output) (*Input, error) {
	if origin.region != r {
		return nil, domainErrorf("region-mismatch", "result origin does not live in the region it is a result of")
	}
	i := &Input{id: r.module.arena.Alloc(), typ: origin.typ, region: r, index: len(r.results)}
	r.results = append(r.results, i)
	i.setOrigin(origin)
	return i, nil
}

func (r *Region) addNode(n *Node) {
	n.indexInRegion = len(r.nodes)
	r.nodes = append(r.nodes, n)
}

func (r *Region) removeNode(n *Node) {
	idx := n.indexInRegion
	r.nodes = append(r.nodes[:idx], r.nodes[idx+1:]...)
	for i := idx; i < len(r.nodes); i++ {
		r.nodes[i].indexInRegion = i
	}
}

// dominates reports whether r is an ancestor of (or equal to) other,
// walking other's owner chain outward. An input may only read an output
// whose defining region dominates the input's own region in this sense.
func (r *Region) dominates(other *Region) bool {
	for cur := other; cur != nil; cur = cur.outerRegion() {
		if cur == r {
			return true
		}
	}
	return false
}

// outerRegion returns the region enclosing r (the region owning r's
// parent node), or nil if r is the root region.
func (r *Region) outerRegion() *Region {
	if r.parent == nil {
		return nil
	}
	return r.parent.region
}

// depth is the number of structural nodes strictly enclosing r (0 for the
// root region).
func (r *Region) depth() int {
	d := 0
	for cur := r.outerRegion(); cur != nil; cur = cur.outerRegion() {
		d++
	}
	return d
}
