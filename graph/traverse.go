//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package graph

// Topdown returns region's nodes ordered so that every node appears after
// every other node in the same region whose output it directly consumes.
// The order is built by repeated sweeps over the nodes in insertion order,
// each sweep taking every node whose in-region producers are already
// placed, so running Topdown twice on an unmodified region always returns
// the same order. The result is a snapshot: nodes added to or removed from
// region after the call are not reflected in it.
func Topdown(region *Region) []*Node {
	done := make(map[*Node]bool, len(region.nodes))
	order := make([]*Node, 0, len(region.nodes))
	for len(order) < len(region.nodes) {
		progressed := false
		for _, n := range region.nodes {
			if done[n] {
				continue
			}
			if topdownReady(n, region, done) {
				order = append(order, n)
				done[n] = true
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return order
}

func topdownReady(n *Node, region *Region, done map[*Node]bool) bool {
	for _, in := range n.inputs {
		producer := in.origin.node
		if producer != nil && producer.region == region && !done[producer] {
			return false
		}
	}
	return true
}

// Bottomup returns region's nodes ordered so that every node appears after
// every other node in the same region that directly consumes one of its
// outputs. Like Topdown, it is built by repeated insertion-order sweeps and
// returns a snapshot of the region at the time of the call.
func Bottomup(region *Region) []*Node {
	done := make(map[*Node]bool, len(region.nodes))
	order := make([]*Node, 0, len(region.nodes))
	for len(order) < len(region.nodes) {
		progressed := false
		for _, n := range region.nodes {
			if done[n] {
				continue
			}
			if bottomupReady(n, region, done) {
				order = append(order, n)
				done[n] = true
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return order
}

func bottomupReady(n *Node, region *Region, done map[*Node]bool) bool {
	for _, o := range n.outputs {
		for _, u := range o.users {
			if u.node != nil && u.node.region == region && !done[u.node] {
				return false
			}
		}
	}
	return true
}
