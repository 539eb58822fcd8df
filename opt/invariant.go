package opt

import "github.com/flowgraph/rvsdg-go/graph"

// InvariantValueRedirection finds structural-node outputs whose value
// never actually depends on the node's own computation and redirects
// their consumers straight to the upstream value, bypassing the
// structural node. In a theta, a loop-carried variable whose body result
// is exactly its own argument never changes across iterations. In a
// gamma, an output whose result is the same entry argument in every
// alternative never varies with the predicate.
type InvariantValueRedirection struct{}

func (InvariantValueRedirection) ID() string { return "invariant-redirect" }

func (InvariantValueRedirection) Run(m *graph.Module, _ *RunContext) (Result, error) {
	res := newResult()
	var walkErr error
	walkRegions(m.Root(), func(r *graph.Region) {
		if walkErr != nil {
			return
		}
		for _, n := range r.Nodes() {
			var err error
			switch n.Kind() {
			case graph.KindTheta:
				err = redirectThetaInvariants(n, &res)
			case graph.KindGamma:
				err = redirectGammaInvariants(n, &res)
			}
			if err != nil {
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

func redirectThetaInvariants(theta *graph.Node, res *Result) error {
	body := theta.Subregions()[0]
	for i, out := range theta.Outputs() {
		if body.Results()[i].Origin() != body.Arguments()[i] {
			continue
		}
		origin := theta.Inputs()[i].Origin()
		for _, user := range append([]*graph.Input(nil), out.Users()...) {
			if err := graph.RedirectInput(user, origin); err != nil {
				return err
			}
		}
		res.Counters["theta_vars_redirected"]++
	}
	return nil
}

func redirectGammaInvariants(gamma *graph.Node, res *Result) error {
	subs := gamma.Subregions()
	for i, out := range gamma.Outputs() {
		k := argIndex(subs[0], subs[0].Results()[i].Origin())
		if k < 0 {
			continue
		}
		same := true
		for alt := 1; alt < len(subs); alt++ {
			if argIndex(subs[alt], subs[alt].Results()[i].Origin()) != k {
				same = false
				break
			}
		}
		if !same {
			continue
		}
		// Entry var k's outer origin is gamma.Inputs()[1+k]: input 0 is
		// always the predicate.
		origin := gamma.Inputs()[1+k].Origin()
		for _, user := range append([]*graph.Input(nil), out.Users()...) {
			if err := graph.RedirectInput(user, origin); err != nil {
				return err
			}
		}
		res.Counters["gamma_outputs_redirected"]++
	}
	return nil
}

func argIndex(r *graph.Region, o *graph.Output) int {
	if !o.IsArgument() || o.Region() != r {
		return -1
	}
	return o.Index()
}
