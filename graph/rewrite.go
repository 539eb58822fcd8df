//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package graph

// RedirectInput rewires i to read from newOrigin instead of its current
// origin, checking the same invariant addContextInput checks at
// construction time for an ordinary operand, or the region-membership
// invariant addResult checks for a region's result. Every optimization
// pass that replaces a value goes through this single chokepoint so
// cached per-lambda call summaries can be invalidated consistently.
func RedirectInput(i *Input, newOrigin *Output) error {
	if i.IsResult() {
		if newOrigin.region != i.region {
			return domainErrorf("region-mismatch",
				"cannot redirect result %d to output %d: origin does not live in the region it is a result of", i.id, newOrigin.id)
		}
	} else if !newOrigin.region.dominates(i.region) {
		return domainErrorf("non-dominating-origin",
			"cannot redirect input %d to output %d: defining region does not dominate input's region", i.id, newOrigin.id)
	}
	if !i.typ.EqualType(newOrigin.typ) {
		return domainErrorf("type-mismatch",
			"cannot redirect input %d of type %s to output %d of type %s", i.id, i.typ, newOrigin.id, newOrigin.typ)
	}
	old := i.origin
	i.setOrigin(newOrigin)
	invalidateCallSummary(old)
	invalidateCallSummary(newOrigin)
	return nil
}

// DeleteNode removes n from its region, provided none of its outputs have
// any remaining consumers. Deleting a node with live consumers is a bug in
// the calling pass, not a recoverable condition from outside — dead-node
// elimination is expected to check IsDead (or a narrower, op-aware
// liveness test) before calling this.
func DeleteNode(n *Node) error {
	for _, o := range n.outputs {
		if o.HasUsers() {
			return invariantf("no-dangling-consumers", "cannot delete node %d: output %d still has consumers", n.id, o.id)
		}
	}
	for _, i := range n.inputs {
		old := i.origin
		i.setOrigin(nil)
		invalidateCallSummary(old)
	}
	for _, sub := range n.subregions {
		for _, r := range sub.results {
			origin := r.origin
			r.setOrigin(nil)
			invalidateCallSummary(origin)
		}
	}
	n.region.removeNode(n)
	n.region.module.arena.Kill(n.id)
	n.dead = true
	return nil
}
