package opt

import (
	"github.com/flowgraph/rvsdg-go/graph"
	"github.com/flowgraph/rvsdg-go/op"
)

// CommonNodeElimination hashes (operation, input-origin tuple) within each
// region and redirects later duplicates' consumers to the first occurrence.
// Ops with a state-typed input or output are skipped: two structurally
// identical loads or stores still thread distinct points in a state chain,
// and merging them without an alias query to prove they observe the same
// memory would be unsound. That alias-aware refinement (two loads of the
// same address with no intervening store alias to the same value) is not
// implemented; every state-carrying op is conservatively left alone.
type CommonNodeElimination struct{}

func (CommonNodeElimination) ID() string { return "cne" }

func (CommonNodeElimination) Run(m *graph.Module, _ *RunContext) (Result, error) {
	res := newResult()
	var total int
	var walkErr error
	walkRegions(m.Root(), func(r *graph.Region) {
		if walkErr != nil {
			return
		}
		n, err := cneRegion(r)
		if err != nil {
			walkErr = err
			return
		}
		total += n
	})
	if walkErr != nil {
		return res, walkErr
	}
	return res.inc("nodes_removed", int64(total)), nil
}

// cneRegion runs one topdown pass over r, eliminating later duplicates of
// an already-seen (operation, input-origin) pair as it goes: an eliminated
// node's own candidacy never matters to nodes after it, since it has no
// outputs left to match against once its users are redirected.
func cneRegion(r *graph.Region) (int, error) {
	candidates := make(map[op.Kind][]*graph.Node)
	removed := 0
	for _, n := range graph.Topdown(r) {
		if n.Kind() != graph.KindSimple || n.Operation() == nil {
			continue
		}
		if opHasStateEdge(n.Operation()) {
			continue
		}
		kind := n.Operation().Kind()
		var matched *graph.Node
		for _, cand := range candidates[kind] {
			if sameNode(cand, n) {
				matched = cand
				break
			}
		}
		if matched == nil {
			candidates[kind] = append(candidates[kind], n)
			continue
		}
		for idx, out := range n.Outputs() {
			for _, user := range append([]*graph.Input(nil), out.Users()...) {
				if err := graph.RedirectInput(user, matched.Outputs()[idx]); err != nil {
					return removed, err
				}
			}
		}
		if n.IsDead() {
			if err := graph.DeleteNode(n); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

func sameNode(a, b *graph.Node) bool {
	if !a.Operation().Equal(b.Operation()) {
		return false
	}
	ai, bi := a.Inputs(), b.Inputs()
	if len(ai) != len(bi) {
		return false
	}
	for i := range ai {
		if ai[i].Origin() != bi[i].Origin() {
			return false
		}
	}
	return true
}

func opHasStateEdge(o op.Op) bool {
	for _, t := range o.InputTypes() {
		if isStateType(t) {
			return true
		}
	}
	for _, t := range o.OutputTypes() {
		if isStateType(t) {
			return true
		}
	}
	return false
}
