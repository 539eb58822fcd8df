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
	"fmt"
	"strings"
)

// Dump renders a module's structure as an indented, human-readable tree:
// one line per node, arguments and results annotated with their port IDs.
// It exists for test assertions and ad-hoc debugging; it is not a
// serialization format and carries no stability guarantee across runs.
func Dump(m *Module) string {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s\n", m.id)
	dumpRegion(&b, m.root, 1)
	return b.String()
}

func dumpRegion(b *strings.Builder, r *Region, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%sregion %d, args=%s\n", indent, r.id, portIDs(outputsToPorts(r.arguments)))
	for _, n := range r.nodes {
		dumpNode(b, n, depth+1)
	}
	fmt.Fprintf(b, "%sresults=%s\n", indent, resultOrigins(r.results))
}

func dumpNode(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	label := n.kind.String()
	if n.kind == KindSimple && n.operation != nil {
		label = n.operation.String()
	}
	fmt.Fprintf(b, "%snode %d %s in=%s out=%s\n", indent, n.id, label, inputOrigins(n.inputs), portIDs(outputsToPorts(n.outputs)))
	for _, sub := range n.subregions {
		dumpRegion(b, sub, depth+1)
	}
}

func outputsToPorts(outs []*Output) []uint64 {
	ids := make([]uint64, len(outs))
	for i, o := range outs {
		ids[i] = uint64(o.id)
	}
	return ids
}

func portIDs(ids []uint64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("#%d", id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func inputOrigins(ins []*Input) string {
	parts := make([]string, len(ins))
	for i, in := range ins {
		if in.origin == nil {
			parts[i] = "<none>"
			continue
		}
		parts[i] = fmt.Sprintf("#%d", in.origin.id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func resultOrigins(results []*Input) string {
	return inputOrigins(results)
}
