package opt

import "github.com/flowgraph/rvsdg-go/graph"

// PullIn clones a single-output, single-use simple node feeding exactly one
// gamma entry variable into the alternative's subregion that uses it, and
// redirects that entry argument's users to the clone. The original producer
// and the gamma's entry variable are not removed, so the original still
// runs outside the gamma on every path. Producers
// with more than one output (alloca, and anything else that threads
// memory state alongside a value) are left outside the gamma: duplicating
// a state-producing node into one branch while its sibling state output
// stays referenced elsewhere would split a single state thread across two
// regions, which this pass does not attempt to repair.
type PullIn struct{}

func (PullIn) ID() string { return "pull-in" }

func (PullIn) Run(m *graph.Module, _ *RunContext) (Result, error) {
	res := newResult()
	var walkErr error
	walkRegions(m.Root(), func(r *graph.Region) {
		if walkErr != nil {
			return
		}
		for _, n := range append([]*graph.Node(nil), r.Nodes()...) {
			if n.Kind() != graph.KindGamma {
				continue
			}
			if err := pullIntoGamma(n, &res); err != nil {
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

func pullIntoGamma(gamma *graph.Node, res *Result) error {
	subs := gamma.Subregions()
	numEntries := len(gamma.Inputs()) - 1
	for k := 0; k < numEntries; k++ {
		in := gamma.Inputs()[1+k]
		origin := in.Origin()
		producer := origin.Node()
		if producer == nil || producer.Kind() != graph.KindSimple || len(producer.Outputs()) != 1 {
			continue
		}
		if len(origin.Users()) != 1 {
			continue
		}
		targetAlt := -1
		for alt, sub := range subs {
			if sub.Arguments()[k].HasUsers() {
				if targetAlt != -1 {
					targetAlt = -2
					break
				}
				targetAlt = alt
			}
		}
		if targetAlt < 0 {
			continue
		}
		operands := make([]*graph.Output, len(producer.Inputs()))
		for i, pin := range producer.Inputs() {
			operands[i] = pin.Origin()
		}
		clone, err := graph.SpliceSimpleNode(subs[targetAlt], producer.Operation(), operands)
		if err != nil {
			return err
		}
		arg := subs[targetAlt].Arguments()[k]
		for _, user := range append([]*graph.Input(nil), arg.Users()...) {
			if err := graph.RedirectInput(user, clone.Outputs()[0]); err != nil {
				return err
			}
		}
		res.Counters["nodes_pulled_in"]++
	}
	return nil
}
