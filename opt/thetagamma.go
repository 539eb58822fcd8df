package opt

import "github.com/flowgraph/rvsdg-go/graph"

// ThetaGammaInversion recognizes a loop whose entire body is a single
// two-way gamma on a loop-invariant predicate, where that gamma directly
// produces every loop-carried result and the loop's own exit predicate.
// In that shape the branch decision never changes across iterations, so
// the loop can be rewritten as a gamma on the same predicate wrapping two
// independent, smaller loops, one per alternative, each only ever
// executing its own branch's body. Bodies that mix the gamma's result
// with other per-iteration computation do not match and are left alone:
// recognizing the narrower, provably invariant shape is the entire point
// of this pass, not an attempt at a general loop-splitting transform.
type ThetaGammaInversion struct{}

func (ThetaGammaInversion) ID() string { return "theta-gamma-inversion" }

func (ThetaGammaInversion) Run(m *graph.Module, _ *RunContext) (Result, error) {
	res := newResult()
	var walkErr error
	walkRegions(m.Root(), func(r *graph.Region) {
		if walkErr != nil {
			return
		}
		for _, n := range append([]*graph.Node(nil), r.Nodes()...) {
			if n.Kind() != graph.KindTheta {
				continue
			}
			matched, err := invertThetaGamma(n, &res)
			if err != nil {
				walkErr = err
				return
			}
			if matched {
				res.Counters["loops_inverted"]++
			}
		}
	})
	if walkErr != nil {
		return res, walkErr
	}
	return res, nil
}

func invertThetaGamma(theta *graph.Node, res *Result) (bool, error) {
	body := theta.Subregions()[0]
	if len(body.Nodes()) != 1 {
		return false, nil
	}
	gamma := body.Nodes()[0]
	if gamma.Kind() != graph.KindGamma || len(gamma.Subregions()) != 2 {
		return false, nil
	}
	numLoopVars := len(theta.Inputs())
	// The gamma must produce every loop-carried result plus the loop's own
	// exit predicate, and take exactly the loop-carried variables as its
	// entry vars (one per loop var, read from this iteration's argument).
	if len(gamma.Outputs()) != numLoopVars+1 || len(gamma.Inputs()) != 1+numLoopVars {
		return false, nil
	}
	predicate := gamma.Inputs()[0].Origin()
	if predicate.Region() == body {
		return false, nil // predicate must be loop-invariant
	}
	for k := 0; k < numLoopVars; k++ {
		if gamma.Inputs()[1+k].Origin() != body.Arguments()[k] {
			return false, nil
		}
	}
	for i := 0; i <= numLoopVars; i++ {
		if body.Results()[i].Origin() != gamma.Outputs()[i] {
			return false, nil
		}
	}

	gb, err := graph.NewGamma(theta.Region(), predicate, 2)
	if err != nil {
		return false, err
	}
	entryArgs := make([][]*graph.Output, numLoopVars)
	for k := 0; k < numLoopVars; k++ {
		args, err := gb.AddEntryVar(theta.Inputs()[k].Origin())
		if err != nil {
			return false, err
		}
		entryArgs[k] = args
	}

	subResults := make([][]*graph.Output, 2)
	for alt := 0; alt < 2; alt++ {
		sub := gb.Subregion(alt)
		tb := graph.NewTheta(sub)
		loopArgs := make([]*graph.Output, numLoopVars)
		for k := 0; k < numLoopVars; k++ {
			loopArgs[k], err = tb.AddLoopVar(entryArgs[k][alt])
			if err != nil {
				return false, err
			}
		}
		bodyResults, err := graph.CloneInto(tb.Body(), gamma.Subregions()[alt], loopArgs)
		if err != nil {
			return false, err
		}
		newOutputs, err := tb.Finalize(bodyResults[:numLoopVars], bodyResults[numLoopVars])
		if err != nil {
			return false, err
		}
		subResults[alt] = newOutputs
	}

	newOutputs, err := gb.Finalize(subResults)
	if err != nil {
		return false, err
	}
	for i, out := range theta.Outputs() {
		for _, user := range append([]*graph.Input(nil), out.Users()...) {
			if err := graph.RedirectInput(user, newOutputs[i]); err != nil {
				return false, err
			}
		}
	}
	if err := graph.DeleteNode(theta); err != nil {
		return false, err
	}
	return true, nil
}
