//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package graph implements the RVSDG data model: regions, nodes, typed
// ports and edges, the five structural node kinds (lambda, gamma, theta,
// phi, delta), and the construction/query/rewrite API every other package
// in this module is built on: node/edge ownership, a builder surface, and
// finalize-once semantics over a hierarchical, typed, data-flow IR.
package graph

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/flowgraph/rvsdg-go/graph/internal/arena"
	"github.com/flowgraph/rvsdg-go/rtype"
)

// Linkage describes how a root-region import or export is visible to the
// rest of the program (or to the outside world, for a whole-module build).
type Linkage int

const (
	LinkagePrivate Linkage = iota
	LinkageExported
	LinkageImported
)

func (l Linkage) String() string {
	switch l {
	case LinkagePrivate:
		return "private"
	case LinkageExported:
		return "exported"
	case LinkageImported:
		return "imported"
	default:
		return "Linkage(?)"
	}
}

// Module owns every region, node, and port reachable from its root region.
// Destroying a Module (dropping the last reference) releases all of them —
// there is no separate teardown call.
type Module struct {
	id    string
	arena *arena.Arena
	root  *Region

	imports []*Output // root-region arguments, in declaration order
	exports []*Input  // root-region results, in declaration order

	importLinkage []Linkage
	exportLinkage []Linkage
	importNames   []string
	exportNames   []string

	callSummaryCache map[*Node]*CallSummary
}

// NewModule creates an empty module with an empty root region. The ID is a
// UUID, identifying a compilation unit for statistics records and
// batch-run bookkeeping.
func NewModule() *Module {
	m := &Module{id: uuid.New().String(), arena: arena.New()}
	m.root = newRegion(m, nil)
	return m
}

func (m *Module) ID() string      { return m.id }
func (m *Module) Root() *Region   { return m.root }
func (m *Module) Imports() []*Output { return m.imports }
func (m *Module) Exports() []*Input  { return m.exports }

// AddImport declares a typed root-region argument representing a symbol
// defined elsewhere, visible inside the root region as an Output.
func (m *Module) AddImport(name string, t rtype.Type, linkage Linkage) *Output {
	o := m.root.addArgument(t)
	m.imports = append(m.imports, o)
	m.importLinkage = append(m.importLinkage, linkage)
	m.importNames = append(m.importNames, name)
	return o
}

// AddExport finalizes a root-region result bound to origin, with the given
// external name and linkage.
func (m *Module) AddExport(name string, origin *Output, linkage Linkage) (*Input, error) {
	if origin.region != m.root {
		return nil, domainErrorf("export-not-in-root", "export %q origin must live in the root region", name)
	}
	i, err := m.root.addResult(origin)
	if err != nil {
		return nil, err
	}
	m.exports = append(m.exports, i)
	m.exportLinkage = append(m.exportLinkage, linkage)
	m.exportNames = append(m.exportNames, name)
	return i, nil
}

// ExportName returns the declared name of the export at the given result
// input, or "" if i is not a root-region export.
func (m *Module) ExportName(i *Input) string {
	for idx, e := range m.exports {
		if e == i {
			return m.exportNames[idx]
		}
	}
	return ""
}

// ExportLinkage returns the linkage of the export at the given result
// input.
func (m *Module) ExportLinkage(i *Input) Linkage {
	for idx, e := range m.exports {
		if e == i {
			return m.exportLinkage[idx]
		}
	}
	return LinkagePrivate
}

func (m *Module) String() string {
	return fmt.Sprintf("module(%s, %d imports, %d exports)", m.id, len(m.imports), len(m.exports))
}
