// Package pointsto models the alias-analysis result the optimizer consumes:
// a set of memory nodes standing for allocation sites, and register nodes
// recording which memory nodes a pointer-typed output may address. The
// analysis itself (e.g. Steensgaard-style unification) runs outside this
// package; pointsto only holds its output and answers queries against it.
package pointsto

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/flowgraph/rvsdg-go/graph"
)

// MemoryKind tags a MemoryNode's allocation-site variant.
type MemoryKind int

const (
	KindAlloca MemoryKind = iota
	KindMalloc
	KindLambda
	KindDelta
	KindImported
	KindExternal
)

func (k MemoryKind) String() string {
	switch k {
	case KindAlloca:
		return "alloca"
	case KindMalloc:
		return "malloc"
	case KindLambda:
		return "lambda"
	case KindDelta:
		return "delta"
	case KindImported:
		return "imported"
	case KindExternal:
		return "external"
	default:
		return "MemoryKind(?)"
	}
}

// MemoryNode is one allocation site: a stack alloca, a heap allocation call
// site, a lambda (its code as an addressable object), a delta (a global),
// an imported symbol, or the single External node standing for every
// memory location outside the analyzed module.
type MemoryNode struct {
	id   string
	kind MemoryKind
	site *graph.Node   // alloca/malloc-call/lambda/delta node; nil for Imported and External
	imp  *graph.Output // module import output; set for Imported only
}

func (m *MemoryNode) ID() string        { return m.id }
func (m *MemoryNode) Kind() MemoryKind  { return m.kind }
func (m *MemoryNode) Site() *graph.Node { return m.site }
func (m *MemoryNode) Import() *graph.Output { return m.imp }

func (m *MemoryNode) String() string {
	switch m.kind {
	case KindExternal:
		return "external"
	case KindImported:
		return fmt.Sprintf("imported(#%d)", m.imp.ID())
	default:
		return fmt.Sprintf("%s(node %d)", m.kind, m.site.ID())
	}
}

// RegisterNode is the alias-analysis record for one pointer-typed output:
// the set of memory nodes it may address at runtime.
type RegisterNode struct {
	output  *graph.Output
	targets map[*MemoryNode]bool
}

// Output returns the pointer-typed output this register node describes.
func (r *RegisterNode) Output() *graph.Output { return r.output }

// AddTarget records that output may point to m.
func (r *RegisterNode) AddTarget(m *MemoryNode) {
	if r.targets == nil {
		r.targets = make(map[*MemoryNode]bool)
	}
	r.targets[m] = true
}

// PointsTo reports whether m is among this register's possible targets.
func (r *RegisterNode) PointsTo(m *MemoryNode) bool { return r.targets[m] }

// Targets returns every memory node this register may address. The order
// is unspecified.
func (r *RegisterNode) Targets() []*MemoryNode {
	out := make([]*MemoryNode, 0, len(r.targets))
	for m := range r.targets {
		out = append(out, m)
	}
	return out
}

// Graph holds every memory node and register node produced by one alias
// analysis run over a module.
type Graph struct {
	external  *MemoryNode
	memNodes  []*MemoryNode
	byAlloca  map[*graph.Node]*MemoryNode
	byLambda  map[*graph.Node]*MemoryNode
	byDelta   map[*graph.Node]*MemoryNode
	byMalloc  map[*graph.Node]*MemoryNode
	byImport  map[*graph.Output]*MemoryNode
	registers map[*graph.Output]*RegisterNode
}

// New returns an empty points-to graph with its singleton External node
// already allocated.
func New() *Graph {
	g := &Graph{
		byAlloca:  make(map[*graph.Node]*MemoryNode),
		byLambda:  make(map[*graph.Node]*MemoryNode),
		byDelta:   make(map[*graph.Node]*MemoryNode),
		byMalloc:  make(map[*graph.Node]*MemoryNode),
		byImport:  make(map[*graph.Output]*MemoryNode),
		registers: make(map[*graph.Output]*RegisterNode),
	}
	g.external = g.newNode(KindExternal, nil, nil)
	return g
}

func (g *Graph) newNode(kind MemoryKind, site *graph.Node, imp *graph.Output) *MemoryNode {
	n := &MemoryNode{id: uuid.New().String(), kind: kind, site: site, imp: imp}
	g.memNodes = append(g.memNodes, n)
	return n
}

// External returns the singleton node standing for all memory outside the
// analyzed module.
func (g *Graph) External() *MemoryNode { return g.external }

// MemoryNodes returns every memory node in insertion order; External,
// allocated by New, comes first.
func (g *Graph) MemoryNodes() []*MemoryNode { return g.memNodes }

// AddAllocaNode registers n (which must wrap an op.Alloca) as a stack
// allocation site.
func (g *Graph) AddAllocaNode(n *graph.Node) *MemoryNode {
	if existing, ok := g.byAlloca[n]; ok {
		return existing
	}
	m := g.newNode(KindAlloca, n, nil)
	g.byAlloca[n] = m
	return m
}

// AddMallocNode registers n as a heap-allocation call site. The catalog has
// no dedicated malloc operation — heap allocation is expressed as a call to
// an imported allocator symbol — so n is typically the Apply node at the
// call site, not a simple-node operation of its own.
func (g *Graph) AddMallocNode(n *graph.Node) *MemoryNode {
	if existing, ok := g.byMalloc[n]; ok {
		return existing
	}
	m := g.newNode(KindMalloc, n, nil)
	g.byMalloc[n] = m
	return m
}

// AddLambdaNode registers n (a KindLambda structural node) as an
// addressable function object.
func (g *Graph) AddLambdaNode(n *graph.Node) *MemoryNode {
	if existing, ok := g.byLambda[n]; ok {
		return existing
	}
	m := g.newNode(KindLambda, n, nil)
	g.byLambda[n] = m
	return m
}

// AddDeltaNode registers n (a KindDelta structural node) as a global.
func (g *Graph) AddDeltaNode(n *graph.Node) *MemoryNode {
	if existing, ok := g.byDelta[n]; ok {
		return existing
	}
	m := g.newNode(KindDelta, n, nil)
	g.byDelta[n] = m
	return m
}

// AddImportedNode registers imp (a module import) as an external symbol.
func (g *Graph) AddImportedNode(imp *graph.Output) *MemoryNode {
	if existing, ok := g.byImport[imp]; ok {
		return existing
	}
	m := g.newNode(KindImported, nil, imp)
	g.byImport[imp] = m
	return m
}

// LookupAlloca returns the memory node for alloca node n, if one has been
// registered.
func (g *Graph) LookupAlloca(n *graph.Node) (*MemoryNode, bool) { m, ok := g.byAlloca[n]; return m, ok }

// LookupLambda returns the memory node for lambda node n, if one has been
// registered.
func (g *Graph) LookupLambda(n *graph.Node) (*MemoryNode, bool) { m, ok := g.byLambda[n]; return m, ok }

// LookupDelta returns the memory node for delta node n, if one has been
// registered.
func (g *Graph) LookupDelta(n *graph.Node) (*MemoryNode, bool) { m, ok := g.byDelta[n]; return m, ok }

// Register returns the register node for output, creating it if this is
// the first time output is seen.
func (g *Graph) Register(output *graph.Output) *RegisterNode {
	if r, ok := g.registers[output]; ok {
		return r
	}
	r := &RegisterNode{output: output}
	g.registers[output] = r
	return r
}

// RegisterFor returns the register node already recorded for output,
// without creating one.
func (g *Graph) RegisterFor(output *graph.Output) (*RegisterNode, bool) {
	r, ok := g.registers[output]
	return r, ok
}

// GetOutputNodes returns the memory nodes a pointer-typed output may
// address, or nil if output has no recorded register node (e.g. the alias
// analysis never reached it).
func (g *Graph) GetOutputNodes(output *graph.Output) []*MemoryNode {
	r, ok := g.registers[output]
	if !ok {
		return nil
	}
	return r.Targets()
}
