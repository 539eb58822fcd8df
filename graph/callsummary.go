//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package graph

import "github.com/flowgraph/rvsdg-go/op"

// CallSummary classifies every user of a lambda's single function-pointer
// output into one of three buckets: a direct call (the callee position of
// an Apply node), a module export, or anything else (stored in a variable,
// passed as a context variable to another structural node, compared for
// identity, and so on). The lifetime-aware memstate provider picks each
// lambda's policy from this classification. It is cached per module and
// dropped whenever RedirectInput or DeleteNode touches a user.
type CallSummary struct {
	Lambda      *Node
	DirectCalls []*Input
	Exports     []*Input
	OtherUsers  []*Input
}

// IsDead reports whether the lambda's output has no users at all.
func (c *CallSummary) IsDead() bool {
	return len(c.DirectCalls) == 0 && len(c.Exports) == 0 && len(c.OtherUsers) == 0
}

// IsExported reports whether any export binds the lambda directly.
func (c *CallSummary) IsExported() bool { return len(c.Exports) > 0 }

// IsOnlyExported reports whether every user is a module export: the
// lambda may be called from outside the module but never from within it.
func (c *CallSummary) IsOnlyExported() bool {
	return len(c.Exports) > 0 && len(c.DirectCalls) == 0 && len(c.OtherUsers) == 0
}

// HasOnlyDirectCalls reports whether every user is a direct-call callee
// position, making the lambda a candidate for call-site inlining without
// first proving anything about indirect uses.
func (c *CallSummary) HasOnlyDirectCalls() bool {
	return len(c.DirectCalls) > 0 && len(c.Exports) == 0 && len(c.OtherUsers) == 0
}

// NumDirectCalls returns the number of direct-call sites.
func (c *CallSummary) NumDirectCalls() int { return len(c.DirectCalls) }

// NumOtherUsers returns the number of uses that are neither a direct call
// nor an export.
func (c *CallSummary) NumOtherUsers() int { return len(c.OtherUsers) }

// GetCallSummary computes (or returns the cached) CallSummary for lambda,
// which must be a finalized KindLambda node with exactly one output.
func GetCallSummary(lambda *Node) (*CallSummary, error) {
	if lambda.kind != KindLambda {
		return nil, domainErrorf("not-a-lambda", "node %d is not a lambda", lambda.id)
	}
	m := lambda.region.module
	if m.callSummaryCache == nil {
		m.callSummaryCache = make(map[*Node]*CallSummary)
	}
	if cached, ok := m.callSummaryCache[lambda]; ok {
		return cached, nil
	}
	if len(lambda.outputs) != 1 {
		return nil, invariantf("lambda-single-output", "lambda %d has %d outputs, expected exactly one", lambda.id, len(lambda.outputs))
	}
	summary := &CallSummary{Lambda: lambda}
	for _, user := range lambda.outputs[0].users {
		switch {
		case user.IsResult() && user.region == m.root:
			summary.Exports = append(summary.Exports, user)
		case user.node != nil && user.index == 0:
			if _, ok := user.node.operation.(op.Apply); ok {
				summary.DirectCalls = append(summary.DirectCalls, user)
				continue
			}
			summary.OtherUsers = append(summary.OtherUsers, user)
		default:
			summary.OtherUsers = append(summary.OtherUsers, user)
		}
	}
	m.callSummaryCache[lambda] = summary
	return summary, nil
}

// invalidateCallSummary drops the whole module's call-summary cache
// whenever a rewrite touches an edge, so a stale classification is never
// observed. Call summaries are cheap enough to recompute on next use that
// a coarse, whole-module invalidation is preferable to tracking exactly
// which lambdas a given edge could affect.
func invalidateCallSummary(o *Output) {
	if o == nil || o.region == nil {
		return
	}
	o.region.module.callSummaryCache = nil
}
