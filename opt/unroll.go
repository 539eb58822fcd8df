package opt

import (
	"github.com/flowgraph/rvsdg-go/graph"
	"github.com/flowgraph/rvsdg-go/op"
	"github.com/flowgraph/rvsdg-go/rtype"
)

// LoopUnrolling replaces a theta's single-copy body with a chain of Factor
// body copies, gating every copy after the first behind the previous
// copy's own exit predicate: once a copy selects LoopExit, the remaining
// copies collapse to an identity pass-through instead of running the body
// (and any of its memory effects) again. This keeps the transform exact
// regardless of the loop's actual trip count; the number of outer
// iterations becomes the trip count divided by Factor, rounded up.
type LoopUnrolling struct {
	// Factor is how many body copies each outer iteration attempts. Values
	// less than 2 make the pass a no-op.
	Factor int
}

func (LoopUnrolling) ID() string { return "loop-unroll" }

func (p LoopUnrolling) Run(m *graph.Module, _ *RunContext) (Result, error) {
	res := newResult()
	if p.Factor < 2 {
		return res, nil
	}
	var walkErr error
	walkRegions(m.Root(), func(r *graph.Region) {
		if walkErr != nil {
			return
		}
		for _, n := range append([]*graph.Node(nil), r.Nodes()...) {
			if n.Kind() != graph.KindTheta {
				continue
			}
			if err := unrollTheta(n, p.Factor, &res); err != nil {
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

func unrollTheta(theta *graph.Node, factor int, res *Result) error {
	origBody := theta.Subregions()[0]
	numVars := len(theta.Inputs())

	tb := graph.NewTheta(theta.Region())
	loopArgs := make([]*graph.Output, numVars)
	for i, in := range theta.Inputs() {
		arg, err := tb.AddLoopVar(in.Origin())
		if err != nil {
			return err
		}
		loopArgs[i] = arg
	}

	// The first copy always runs unconditionally, mirroring the original
	// theta's own tail-controlled semantics (the body always executes at
	// least once per outer iteration).
	firstResults, err := graph.CloneInto(tb.Body(), origBody, loopArgs)
	if err != nil {
		return err
	}
	curValues := firstResults[:numVars]
	curPred := firstResults[numVars]

	for copy := 1; copy < factor; copy++ {
		curValues, curPred, err = guardedCopy(tb.Body(), origBody, curValues, curPred)
		if err != nil {
			return err
		}
	}

	newOutputs, err := tb.Finalize(curValues, curPred)
	if err != nil {
		return err
	}
	for i, out := range theta.Outputs() {
		for _, user := range append([]*graph.Input(nil), out.Users()...) {
			if err := graph.RedirectInput(user, newOutputs[i]); err != nil {
				return err
			}
		}
	}
	if err := graph.DeleteNode(theta); err != nil {
		return err
	}
	res.Counters["loops_unrolled"]++
	return nil
}

// guardedCopy wraps one more body copy in a two-way gamma on pred: when
// pred selects LoopContinue, the copy actually runs against values; when it
// selects LoopExit, values and pred pass through unchanged.
func guardedCopy(region *graph.Region, body *graph.Region, values []*graph.Output, pred *graph.Output) ([]*graph.Output, *graph.Output, error) {
	numVars := len(values)
	gb, err := graph.NewGamma(region, pred, 2)
	if err != nil {
		return nil, nil, err
	}
	entryArgs := make([][]*graph.Output, numVars)
	for i := 0; i < numVars; i++ {
		args, err := gb.AddEntryVar(values[i])
		if err != nil {
			return nil, nil, err
		}
		entryArgs[i] = args
	}
	contArgs := make([]*graph.Output, numVars)
	exitArgs := make([]*graph.Output, numVars)
	for i := 0; i < numVars; i++ {
		contArgs[i] = entryArgs[i][rtype.LoopContinue]
		exitArgs[i] = entryArgs[i][rtype.LoopExit]
	}

	contResults, err := graph.CloneInto(gb.Subregion(rtype.LoopContinue), body, contArgs)
	if err != nil {
		return nil, nil, err
	}

	exitPredNode, err := graph.NewSimpleNode(gb.Subregion(rtype.LoopExit), op.ConstControl{Alt: rtype.LoopExit, N: 2}, nil)
	if err != nil {
		return nil, nil, err
	}
	exitResults := append(append([]*graph.Output{}, exitArgs...), exitPredNode.Outputs()[0])

	subResults := make([][]*graph.Output, 2)
	subResults[rtype.LoopContinue] = contResults
	subResults[rtype.LoopExit] = exitResults

	outs, err := gb.Finalize(subResults)
	if err != nil {
		return nil, nil, err
	}
	return outs[:numVars], outs[numVars], nil
}
