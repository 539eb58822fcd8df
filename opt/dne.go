package opt

import "github.com/flowgraph/rvsdg-go/graph"

// DeadNodeElimination deletes, bottomup, every node none of whose outputs
// has a remaining consumer. It repeats until a full sweep removes nothing,
// so a node that only became dead because its last consumer was removed
// earlier in the same sweep is still caught.
type DeadNodeElimination struct{}

func (DeadNodeElimination) ID() string { return "dne" }

func (DeadNodeElimination) Run(m *graph.Module, _ *RunContext) (Result, error) {
	res := newResult()
	for {
		removed, err := dneSweep(m.Root())
		if err != nil {
			return res, err
		}
		if removed == 0 {
			return res, nil
		}
		res = res.inc("nodes_removed", int64(removed))
	}
}

// dneSweep recurses into every subregion first (a node nested inside a
// structural node can die independently of whether the structural node
// itself is live), then deletes dead nodes in r using bottomup order so a
// node's own dying doesn't race with processing nodes that used to depend
// on it within the same pass over r.
func dneSweep(r *graph.Region) (int, error) {
	removed := 0
	for _, n := range r.Nodes() {
		for _, sub := range n.Subregions() {
			sr, err := dneSweep(sub)
			if err != nil {
				return removed, err
			}
			removed += sr
		}
	}
	for _, n := range graph.Bottomup(r) {
		if !n.IsFinalized() && n.Kind() != graph.KindSimple {
			// A structural node mid-construction (builder not yet
			// finalized) is never touched by a pass.
			continue
		}
		if !n.IsDead() {
			continue
		}
		if err := graph.DeleteNode(n); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
