package opt

import (
	"math/big"

	"github.com/flowgraph/rvsdg-go/graph"
	"github.com/flowgraph/rvsdg-go/op"
)

// ReductionRule looks at a simple node's operation and its operands'
// origins and, when it recognizes a local algebraic simplification,
// returns the output that should replace the node's sole result. It
// returns (nil, false) when the rule does not apply to this node.
type ReductionRule func(n *graph.Node) (*graph.Output, bool)

// defaultReductionRules is keyed by op.Kind so each operation family owns
// its own simplifications, mirroring how a per-operation normalization
// table stays a closed, independently extensible set as new op kinds are
// added to the catalog.
var defaultReductionRules = map[op.Kind][]ReductionRule{
	op.KindBinaryArith: {foldBinaryArith, identityBinaryArith},
	op.KindCompare:     {foldCompare},
}

// NodeReductions applies defaultReductionRules to every simple node,
// repeating each region until a full pass makes no further change, since
// one reduction's output can enable another (e.g. folding an operand down
// to a constant exposes an identity opportunity on its consumer).
type NodeReductions struct {
	Rules map[op.Kind][]ReductionRule
}

func (NodeReductions) ID() string { return "node-reductions" }

func (p NodeReductions) Run(m *graph.Module, _ *RunContext) (Result, error) {
	rules := p.Rules
	if rules == nil {
		rules = defaultReductionRules
	}
	res := newResult()
	var walkErr error
	walkRegions(m.Root(), func(r *graph.Region) {
		if walkErr != nil {
			return
		}
		for {
			changed, err := reduceRegionOnce(r, rules, &res)
			if err != nil {
				walkErr = err
				return
			}
			if !changed {
				break
			}
		}
	})
	if walkErr != nil {
		return res, walkErr
	}
	return res, nil
}

func reduceRegionOnce(r *graph.Region, rules map[op.Kind][]ReductionRule, res *Result) (bool, error) {
	changed := false
	for _, n := range append([]*graph.Node(nil), r.Nodes()...) {
		if n.Kind() != graph.KindSimple {
			continue
		}
		// A node already replaced (or never used) has no users to redirect.
		if len(n.Outputs()) == 0 || len(n.Outputs()[0].Users()) == 0 {
			continue
		}
		for _, rule := range rules[n.Operation().Kind()] {
			replacement, ok := rule(n)
			if !ok {
				continue
			}
			for _, user := range append([]*graph.Input(nil), n.Outputs()[0].Users()...) {
				if err := graph.RedirectInput(user, replacement); err != nil {
					return changed, err
				}
			}
			res.Counters["nodes_reduced"]++
			changed = true
			break
		}
	}
	return changed, nil
}

func constOperand(n *graph.Node, i int) (op.ConstBit, bool) {
	producer := n.Inputs()[i].Origin().Node()
	if producer == nil {
		return op.ConstBit{}, false
	}
	c, ok := producer.Operation().(op.ConstBit)
	return c, ok
}

// foldBinaryArith replaces a binary arithmetic node whose both operands
// are bit constants with the single constant result of the operation.
func foldBinaryArith(n *graph.Node) (*graph.Output, bool) {
	b := n.Operation().(op.BinaryArith)
	lhs, ok := constOperand(n, 0)
	if !ok {
		return nil, false
	}
	rhs, ok := constOperand(n, 1)
	if !ok {
		return nil, false
	}
	result := new(big.Int)
	switch b.Op {
	case op.Add:
		result.Add(lhs.Value, rhs.Value)
	case op.Sub:
		result.Sub(lhs.Value, rhs.Value)
	case op.Mul:
		result.Mul(lhs.Value, rhs.Value)
	case op.UDiv:
		if rhs.Value.Sign() == 0 {
			return nil, false
		}
		result.Div(lhs.Value, rhs.Value)
	case op.UMod:
		if rhs.Value.Sign() == 0 {
			return nil, false
		}
		result.Mod(lhs.Value, rhs.Value)
	case op.And:
		result.And(lhs.Value, rhs.Value)
	case op.Or:
		result.Or(lhs.Value, rhs.Value)
	case op.Xor:
		result.Xor(lhs.Value, rhs.Value)
	case op.Shl:
		result.Lsh(lhs.Value, uint(rhs.Value.Int64()))
	case op.Shr:
		result.Rsh(lhs.Value, uint(rhs.Value.Int64()))
	default:
		// SDiv, SMod and AShr depend on the sign of the stored bit pattern;
		// this rule does not fold them.
		return nil, false
	}
	folded, err := graph.NewSimpleNode(n.Region(), op.NewConstBit(b.Width, result.Int64()), nil)
	if err != nil {
		return nil, false
	}
	return folded.Outputs()[0], true
}

// identityBinaryArith catches operations against a constant identity
// element: add/or/xor/shl/shr with 0, mul with 1.
func identityBinaryArith(n *graph.Node) (*graph.Output, bool) {
	b := n.Operation().(op.BinaryArith)
	rhs, ok := constOperand(n, 1)
	if !ok {
		return nil, false
	}
	switch b.Op {
	case op.Add, op.Sub, op.Or, op.Xor, op.Shl, op.Shr, op.AShr:
		if rhs.Value.Sign() != 0 {
			return nil, false
		}
	case op.Mul, op.UDiv, op.SDiv:
		if rhs.Value.Cmp(big.NewInt(1)) != 0 {
			return nil, false
		}
	default:
		return nil, false
	}
	return n.Inputs()[0].Origin(), true
}

// foldCompare replaces a comparison of two bit constants with its bit(1)
// boolean result.
func foldCompare(n *graph.Node) (*graph.Output, bool) {
	c := n.Operation().(op.Compare)
	lhs, ok := constOperand(n, 0)
	if !ok {
		return nil, false
	}
	rhs, ok := constOperand(n, 1)
	if !ok {
		return nil, false
	}
	l, r := lhs.Value, rhs.Value
	switch c.Op {
	case op.SGe, op.SGt, op.SLe, op.SLt:
		// Read the stored bit patterns as two's-complement values.
		bias := new(big.Int).Lsh(big.NewInt(1), uint(c.Width-1))
		l = new(big.Int).Sub(new(big.Int).Xor(l, bias), bias)
		r = new(big.Int).Sub(new(big.Int).Xor(r, bias), bias)
	}
	cmp := l.Cmp(r)
	var result bool
	switch c.Op {
	case op.Eq:
		result = cmp == 0
	case op.Ne:
		result = cmp != 0
	case op.UGe, op.SGe:
		result = cmp >= 0
	case op.UGt, op.SGt:
		result = cmp > 0
	case op.ULe, op.SLe:
		result = cmp <= 0
	case op.ULt, op.SLt:
		result = cmp < 0
	default:
		return nil, false
	}
	v := int64(0)
	if result {
		v = 1
	}
	folded, err := graph.NewSimpleNode(n.Region(), op.NewConstBit(1, v), nil)
	if err != nil {
		return nil, false
	}
	return folded.Outputs()[0], true
}
