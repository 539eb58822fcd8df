// Package memstate attaches entry and exit memory-node sets to every
// region and call site in a module, so lowering knows which memory-state
// threads must flow into and out of each point in the graph. Two
// providers implement the same Provider interface: Agnostic, which is
// always sound but coarse, and LifetimeAware, which narrows a lambda's
// footprint using its call summary.
package memstate

import (
	"github.com/flowgraph/rvsdg-go/graph"
	"github.com/flowgraph/rvsdg-go/op"
	"github.com/flowgraph/rvsdg-go/pointsto"
	"github.com/flowgraph/rvsdg-go/rtype"
	"github.com/flowgraph/rvsdg-go/rvsdgerr"
)

// Provider answers the five provisioning queries every pass needs.
type Provider interface {
	RegionEntry(r *graph.Region) []*pointsto.MemoryNode
	RegionExit(r *graph.Region) []*pointsto.MemoryNode
	CallEntry(apply *graph.Node) []*pointsto.MemoryNode
	CallExit(apply *graph.Node) []*pointsto.MemoryNode
	OutputNodes(o *graph.Output) []*pointsto.MemoryNode
}

type memorySet map[*pointsto.MemoryNode]bool

func (s memorySet) clone() memorySet {
	c := make(memorySet, len(s))
	for m := range s {
		c[m] = true
	}
	return c
}

func (s memorySet) slice() []*pointsto.MemoryNode {
	out := make([]*pointsto.MemoryNode, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	return out
}

// AgnosticProvider assigns every region and call site the full set of
// memory nodes in the module plus External: always correct, never prunes.
type AgnosticProvider struct {
	pg  *pointsto.Graph
	all []*pointsto.MemoryNode
}

// NewAgnosticProvider builds an AgnosticProvider over pg's memory nodes.
func NewAgnosticProvider(pg *pointsto.Graph) *AgnosticProvider {
	return &AgnosticProvider{pg: pg, all: pg.MemoryNodes()}
}

func (p *AgnosticProvider) RegionEntry(*graph.Region) []*pointsto.MemoryNode { return p.all }
func (p *AgnosticProvider) RegionExit(*graph.Region) []*pointsto.MemoryNode  { return p.all }
func (p *AgnosticProvider) CallEntry(*graph.Node) []*pointsto.MemoryNode     { return p.all }
func (p *AgnosticProvider) CallExit(*graph.Node) []*pointsto.MemoryNode      { return p.all }
func (p *AgnosticProvider) OutputNodes(o *graph.Output) []*pointsto.MemoryNode {
	return p.pg.GetOutputNodes(o)
}

// LifetimeAwareProvider narrows a lambda's entry/exit set using its call
// summary: a lambda with no escaping local allocas drops them from its
// footprint, an unreachable lambda contributes nothing, and any lambda
// whose reachability isn't resolved to one of those clean cases falls back
// to the agnostic set.
type LifetimeAwareProvider struct {
	module *graph.Module
	pg     *pointsto.Graph

	agnostic memorySet

	regionEntry map[*graph.Region]memorySet
	regionExit  map[*graph.Region]memorySet
	callEntry   map[*graph.Node]memorySet
	callExit    map[*graph.Node]memorySet
}

// NewLifetimeAwareProvider runs the provisioning sweep over module using
// pg's alias-analysis results and returns the populated provider. Its
// errors come from GetCallSummary or are an *rvsdgerr.InvariantViolation; a
// lambda that matches none of the specific policies gets the agnostic set.
func NewLifetimeAwareProvider(module *graph.Module, pg *pointsto.Graph) (*LifetimeAwareProvider, error) {
	agnostic := make(memorySet, len(pg.MemoryNodes()))
	for _, m := range pg.MemoryNodes() {
		agnostic[m] = true
	}
	p := &LifetimeAwareProvider{
		module:      module,
		pg:          pg,
		agnostic:    agnostic,
		regionEntry: make(map[*graph.Region]memorySet),
		regionExit:  make(map[*graph.Region]memorySet),
		callEntry:   make(map[*graph.Node]memorySet),
		callExit:    make(map[*graph.Node]memorySet),
	}
	if _, err := p.computeRegion(module.Root(), memorySet{}); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *LifetimeAwareProvider) RegionEntry(r *graph.Region) []*pointsto.MemoryNode {
	return p.regionEntry[r].slice()
}

func (p *LifetimeAwareProvider) RegionExit(r *graph.Region) []*pointsto.MemoryNode {
	return p.regionExit[r].slice()
}

func (p *LifetimeAwareProvider) CallEntry(apply *graph.Node) []*pointsto.MemoryNode {
	return p.callEntry[apply].slice()
}

func (p *LifetimeAwareProvider) CallExit(apply *graph.Node) []*pointsto.MemoryNode {
	return p.callExit[apply].slice()
}

func (p *LifetimeAwareProvider) OutputNodes(o *graph.Output) []*pointsto.MemoryNode {
	return p.pg.GetOutputNodes(o)
}

// computeRegion runs the topdown liveness sweep described for region,
// seeded with base, recording its entry/exit sets and returning the exit
// set for the caller to project back into its own alive set.
func (p *LifetimeAwareProvider) computeRegion(region *graph.Region, base memorySet) (memorySet, error) {
	p.regionEntry[region] = base.clone()
	alive := base.clone()
	for _, n := range graph.Topdown(region) {
		var err error
		alive, err = p.computeNode(n, alive)
		if err != nil {
			return nil, err
		}
	}
	p.regionExit[region] = alive
	return alive, nil
}

func (p *LifetimeAwareProvider) computeNode(n *graph.Node, alive memorySet) (memorySet, error) {
	switch n.Kind() {
	case graph.KindLambda:
		base, err := p.classifyLambda(n)
		if err != nil {
			return nil, err
		}
		if len(n.Subregions()) == 1 {
			if _, err := p.computeRegion(n.Subregions()[0], base); err != nil {
				return nil, err
			}
		}
		return alive, nil
	case graph.KindSimple:
		if _, ok := n.Operation().(op.Alloca); ok {
			if mem, ok := p.pg.LookupAlloca(n); ok {
				alive = alive.clone()
				alive[mem] = true
			}
		}
		if _, ok := n.Operation().(op.Apply); ok {
			p.callEntry[n] = alive.clone()
			p.callExit[n] = alive.clone()
		}
		return alive, nil
	default: // gamma, theta, phi, delta
		alive = alive.clone()
		for _, sub := range n.Subregions() {
			exit, err := p.computeRegion(sub, alive)
			if err != nil {
				return nil, err
			}
			for mem := range exit {
				alive[mem] = true
			}
		}
		return alive, nil
	}
}

// classifyLambda picks lambda's body-entry footprint from its call
// summary: dead contributes nothing, only-exported and only-direct-called
// lambdas drop their non-escaping local allocas from the agnostic set, and
// anything else (including a lambda bound inside a phi's mutual-recursion
// group, which this provider cannot soundly narrow) falls back to the
// full agnostic set.
func (p *LifetimeAwareProvider) classifyLambda(lambda *graph.Node) (memorySet, error) {
	summary, err := graph.GetCallSummary(lambda)
	if err != nil {
		return nil, err
	}
	switch {
	case summary.IsDead():
		return memorySet{}, nil
	case summary.IsOnlyExported(), summary.HasOnlyDirectCalls():
		nonEscaping, err := p.nonEscapingLocalAllocas(lambda)
		if err != nil {
			return nil, err
		}
		base := p.agnostic.clone()
		for m := range nonEscaping {
			delete(base, m)
		}
		return base, nil
	default:
		return p.agnostic.clone(), nil
	}
}

// nonEscapingLocalAllocas returns the lambda's directly-owned alloca
// memory nodes that are not reachable from any of its arguments' (context
// variables and formal parameters alike) points-to sets.
func (p *LifetimeAwareProvider) nonEscapingLocalAllocas(lambda *graph.Node) (memorySet, error) {
	if len(lambda.Subregions()) != 1 {
		return nil, rvsdgerr.Invariantf("lambda-single-subregion", "lambda %d has %d subregions, expected exactly one", lambda.ID(), len(lambda.Subregions()))
	}
	body := lambda.Subregions()[0]

	locals := memorySet{}
	for _, n := range body.Nodes() {
		if n.Kind() != graph.KindSimple {
			continue
		}
		if _, ok := n.Operation().(op.Alloca); !ok {
			continue
		}
		if mem, ok := p.pg.LookupAlloca(n); ok {
			locals[mem] = true
		}
	}

	escaping := memorySet{}
	for _, arg := range body.Arguments() {
		v, ok := arg.Type().(rtype.Value)
		if !ok || v.Kind() != rtype.KindPointer {
			continue
		}
		if reg, ok := p.pg.RegisterFor(arg); ok {
			for _, target := range reg.Targets() {
				escaping[target] = true
			}
		}
	}

	nonEscaping := memorySet{}
	for m := range locals {
		if !escaping[m] {
			nonEscaping[m] = true
		}
	}
	return nonEscaping, nil
}
