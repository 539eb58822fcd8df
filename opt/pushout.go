package opt

import "github.com/flowgraph/rvsdg-go/graph"

// PushOut hoists a theta body's loop-invariant simple nodes into the
// region enclosing the loop. A node is loop-invariant when every operand
// it reads originates outside the body region, meaning its result would
// be identical on every iteration; hoisting it means the loop computes it
// once instead of on every pass.
type PushOut struct{}

func (PushOut) ID() string { return "push-out" }

func (PushOut) Run(m *graph.Module, _ *RunContext) (Result, error) {
	res := newResult()
	var walkErr error
	walkRegions(m.Root(), func(r *graph.Region) {
		if walkErr != nil {
			return
		}
		for _, n := range r.Nodes() {
			if n.Kind() != graph.KindTheta {
				continue
			}
			if err := pushOutTheta(n, &res); err != nil {
				walkErr = err
				return
			}
		}
	})
	if walkErr != nil {
		return res, walkErr
	}
	return res, nil
}

func pushOutTheta(theta *graph.Node, res *Result) error {
	body := theta.Subregions()[0]
	outer := theta.Region()
	for _, n := range graph.Topdown(body) {
		if n.Kind() != graph.KindSimple {
			continue
		}
		invariant := true
		for _, in := range n.Inputs() {
			if in.Origin().Region() == body {
				invariant = false
				break
			}
		}
		if !invariant {
			continue
		}
		// A body result must be produced inside the body, so a node feeding
		// one (such as a constant predicate) stays where it is.
		feedsResult := false
		for _, out := range n.Outputs() {
			for _, user := range out.Users() {
				if user.IsResult() {
					feedsResult = true
				}
			}
		}
		if feedsResult {
			continue
		}
		operands := make([]*graph.Output, len(n.Inputs()))
		for i, in := range n.Inputs() {
			operands[i] = in.Origin()
		}
		clone, err := graph.SpliceSimpleNode(outer, n.Operation(), operands)
		if err != nil {
			return err
		}
		for idx, out := range n.Outputs() {
			for _, user := range append([]*graph.Input(nil), out.Users()...) {
				if err := graph.RedirectInput(user, clone.Outputs()[idx]); err != nil {
					return err
				}
			}
		}
		res.Counters["nodes_pushed_out"]++
	}
	return nil
}
