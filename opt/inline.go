package opt

import (
	"github.com/flowgraph/rvsdg-go/graph"
	"github.com/flowgraph/rvsdg-go/op"
)

// Inlining splices a direct call's target lambda body into the caller's
// region, wiring the lambda's context variables and formal arguments to
// the call's actual operands and the call's result consumers to the
// spliced body's results, then deletes the call. The callee's own copy is
// untouched; a later dead-node-elimination pass removes it once its call
// summary goes dead.
type Inlining struct{}

func (Inlining) ID() string { return "inline" }

func (Inlining) Run(m *graph.Module, _ *RunContext) (Result, error) {
	res := newResult()
	if _, err := inlineRegion(m.Root(), &res); err != nil {
		return res, err
	}
	return res, nil
}

func inlineRegion(r *graph.Region, res *Result) (int, error) {
	inlined := 0
	// Recurse into subregions that already exist before this region's own
	// calls are spliced; a spliced callee body may itself contain calls,
	// left for a subsequent pass run to inline rather than recursing into
	// freshly cloned nodes here.
	for _, n := range r.Nodes() {
		for _, sub := range n.Subregions() {
			c, err := inlineRegion(sub, res)
			if err != nil {
				return inlined, err
			}
			inlined += c
		}
	}
	for _, n := range append([]*graph.Node(nil), r.Nodes()...) {
		if n.Kind() != graph.KindSimple {
			continue
		}
		apply, ok := n.Operation().(op.Apply)
		if !ok {
			continue
		}
		fn := n.Inputs()[0].Origin()
		// A callee defined outside this region reaches it through lambda
		// context variables; follow them outward to the captured value.
		for fn.IsArgument() {
			owner := fn.Region().Parent()
			if owner == nil || owner.Kind() != graph.KindLambda || fn.Index() >= owner.NumContextVars() {
				break
			}
			fn = owner.Inputs()[fn.Index()].Origin()
		}
		callee := fn.Node()
		if callee == nil || callee.Kind() != graph.KindLambda || !callee.IsFinalized() {
			continue
		}
		if err := inlineCall(n, callee, apply); err != nil {
			return inlined, err
		}
		inlined++
		res.Counters["calls_inlined"]++
	}
	return inlined, nil
}

func inlineCall(call *graph.Node, callee *graph.Node, apply op.Apply) error {
	numCtx := callee.NumContextVars()
	numArgs := len(apply.FuncType.FuncArgs())

	args := make([]*graph.Output, 0, numCtx+numArgs)
	for i := 0; i < numCtx; i++ {
		args = append(args, callee.Inputs()[i].Origin())
	}
	for i := 0; i < numArgs; i++ {
		args = append(args, call.Inputs()[1+i].Origin())
	}

	results, err := graph.CloneInto(call.Region(), callee.Subregions()[0], args)
	if err != nil {
		return err
	}

	for i, r := range results {
		for _, user := range append([]*graph.Input(nil), call.Outputs()[i].Users()...) {
			if err := graph.RedirectInput(user, r); err != nil {
				return err
			}
		}
	}
	// Apply's trailing output is an io token opaque to the callee (the
	// type system carries no io parameter on a function signature); bypass
	// it to the call's own io operand so sequencing of surrounding calls
	// is preserved without a dangling reference to the deleted node.
	ioOut := call.Outputs()[len(results)]
	ioIn := call.Inputs()[len(call.Inputs())-1].Origin()
	for _, user := range append([]*graph.Input(nil), ioOut.Users()...) {
		if err := graph.RedirectInput(user, ioIn); err != nil {
			return err
		}
	}

	return graph.DeleteNode(call)
}
