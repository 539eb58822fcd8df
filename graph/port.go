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

// Output is a unique value-producing endpoint: a node's result or a
// region's argument. Single-assignment — its defining site never changes
// once created — but it may feed any number of consuming Inputs.
type Output struct {
	id     arena.ID
	typ    rtype.Type
	node   *Node   // nil if this Output is a region argument
	region *Region // the region this output's value is visible in: the
	// owning node's region for a node output, or the region itself for an
	// argument.
	index int // position within node.outputs or region.arguments

	users []*Input // consuming inputs; maintained incrementally for O(1) dead checks.
}

// ID is a stable, arena-issued identifier, unique within the owning Module.
func (o *Output) ID() uint64 { return uint64(o.id) }

// Type returns the port's type.
func (o *Output) Type() rtype.Type { return o.typ }

// Node returns the producing node, or nil if this output is a region
// argument.
func (o *Output) Node() *Node { return o.node }

// Region returns the region this output's value lives in.
func (o *Output) Region() *Region { return o.region }

// Index is this output's position among its owner's outputs (or a region's
// arguments).
func (o *Output) Index() int { return o.index }

// IsArgument reports whether this output is a region argument rather than
// a node result.
func (o *Output) IsArgument() bool { return o.node == nil }

// Users returns the inputs currently reading this output. The slice is
// owned by the graph; callers must not mutate it.
func (o *Output) Users() []*Input { return o.users }

// HasUsers reports whether any input currently reads this output.
func (o *Output) HasUsers() bool { return len(o.users) > 0 }

func (o *Output) addUser(i *Input) {
	o.users = append(o.users, i)
}

func (o *Output) removeUser(i *Input) {
	for idx, u := range o.users {
		if u == i {
			o.users = append(o.users[:idx], o.users[idx+1:]...)
			return
		}
	}
}

// Input is a value-consuming endpoint: a node's operand or a region's
// result. It has exactly one Origin at any time; RedirectInput is the only
// way to change it after construction.
type Input struct {
	id     arena.ID
	typ    rtype.Type
	node   *Node   // nil if this Input is a region result
	region *Region // the region this input lives in
	index  int     // position within node.inputs or region.results

	origin *Output
}

func (i *Input) ID() uint64 { return uint64(i.id) }

func (i *Input) Type() rtype.Type { return i.typ }

// Node returns the consuming node, or nil if this input is a region
// result.
func (i *Input) Node() *Node { return i.node }

func (i *Input) Region() *Region { return i.region }

func (i *Input) Index() int { return i.index }

// IsResult reports whether this input is a region result rather than a
// node operand.
func (i *Input) IsResult() bool { return i.node == nil }

// Origin is the output this input currently reads.
func (i *Input) Origin() *Output { return i.origin }

func (i *Input) setOrigin(o *Output) {
	if i.origin != nil {
		i.origin.removeUser(i)
	}
	i.origin = o
	if o != nil {
		o.addUser(i)
	}
}
