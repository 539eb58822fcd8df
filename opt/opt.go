// Package opt implements the RVSDG optimization passes: dead-node and
// common-node elimination, inlining, invariant-value redirection, pull-in,
// push-out, theta-gamma inversion, loop unrolling, and per-operation node
// reductions. Each pass is a self-contained (module, points-to?, stats) ->
// module rewrite that preserves every graph invariant.
package opt

import (
	"context"
	"fmt"
	"time"

	"github.com/flowgraph/rvsdg-go/graph"
	"github.com/flowgraph/rvsdg-go/internal/telemetry"
	"github.com/flowgraph/rvsdg-go/memstate"
	"github.com/flowgraph/rvsdg-go/pointsto"
	"github.com/flowgraph/rvsdg-go/rtype"
	"github.com/flowgraph/rvsdg-go/rvsdgerr"
	"github.com/flowgraph/rvsdg-go/stats"
	"github.com/flowgraph/rvsdg-go/telemetry/trace"
)

// RunContext carries the optional analysis results a pass may consult.
// PointsTo and MemState are nil when no alias analysis has been run. None
// of the passes in this package reads either field.
type RunContext struct {
	PointsTo *pointsto.Graph
	MemState memstate.Provider
}

// Result reports what a single pass run changed.
type Result struct {
	Counters map[string]int64
}

func newResult() Result { return Result{Counters: make(map[string]int64)} }

func (r Result) inc(key string, n int64) Result {
	r.Counters[key] += n
	return r
}

// Pass is one semantics-preserving rewrite over a module.
type Pass interface {
	ID() string
	Run(m *graph.Module, rc *RunContext) (Result, error)
}

// PassSpec names one pipeline step and its parameters, as decoded from a
// pipeline configuration by rvpipeline.Load.
type PassSpec struct {
	ID     string
	Params map[string]any
}

// Driver runs an ordered list of passes by ID against a module, recording
// a stats.Record per pass when a collector is supplied.
type Driver struct {
	passes map[string]Pass
}

// NewDriver builds a Driver over the given passes, keyed by their ID.
func NewDriver(passes ...Pass) *Driver {
	d := &Driver{passes: make(map[string]Pass, len(passes))}
	for _, p := range passes {
		d.passes[p.ID()] = p
	}
	return d
}

// Register adds p to the driver, replacing any existing pass with the same
// ID.
func (d *Driver) Register(p Pass) { d.passes[p.ID()] = p }

// NewDefaultDriver registers every pass this package implements under its
// own ID, with LoopUnrolling defaulting to a factor of 4. Callers that want
// a different unroll factor or a subset of passes should build a Driver
// with NewDriver directly instead.
func NewDefaultDriver() *Driver {
	return NewDriver(
		DeadNodeElimination{},
		CommonNodeElimination{},
		Inlining{},
		InvariantValueRedirection{},
		PullIn{},
		PushOut{},
		ThetaGammaInversion{},
		LoopUnrolling{Factor: 4},
		NodeReductions{},
	)
}

// Run executes each spec in specs, in order, against m. A pass ID absent
// from the driver's registry is a domain error: the pipeline configuration
// named a pass the binary doesn't know about. Each pass run and the overall
// pipeline are traced and recorded as OpenTelemetry spans and metrics through
// internal/telemetry in addition to the stats.Record written per pass.
func (d *Driver) Run(ctx context.Context, m *graph.Module, specs []PassSpec, rc *RunContext, collector *stats.Collector) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if rc == nil {
		rc = &RunContext{}
	}

	driverCtx, driverSpan := trace.Tracer.Start(ctx, telemetry.NewDriverSpanName(len(specs)))
	driverStart := time.Now()
	runErr := d.run(driverCtx, m, specs, rc, collector)

	driverAttrs := telemetry.DriverRunAttributes{
		ModuleName: m.ID(),
		PassCount:  len(specs),
		Error:      runErr,
	}
	telemetry.TraceDriverRun(driverSpan, driverAttrs)
	driverSpan.End()
	telemetry.ReportDriverMetrics(driverCtx, driverAttrs, time.Since(driverStart))

	return runErr
}

func (d *Driver) run(ctx context.Context, m *graph.Module, specs []PassSpec, rc *RunContext, collector *stats.Collector) error {
	for _, spec := range specs {
		p, ok := d.passes[spec.ID]
		if !ok {
			return rvsdgerr.Domainf("unknown-pass", "pipeline names pass %q, which is not registered", spec.ID)
		}
		before := ModuleSize(m)
		start := time.Now()

		passCtx, span := trace.Tracer.Start(ctx, telemetry.NewPassSpanName(spec.ID))
		var err error
		tracker := telemetry.NewPassMetricsTracker(passCtx, spec.ID, m.ID(), &err)
		var res Result
		res, err = p.Run(m, rc)
		end := time.Now()
		after := ModuleSize(m)

		telemetry.TracePassRun(span, spec.ID, m.ID(), res.Counters, before, after, err)
		span.End()
		tracker.RecordMetrics(res.Counters, before, after)()

		if err != nil {
			return fmt.Errorf("opt: pass %s failed: %w", spec.ID, err)
		}
		if err := collector.Write(stats.Record{
			PassID:     spec.ID,
			StartUnix:  start.Unix(),
			EndUnix:    end.Unix(),
			BeforeSize: before,
			AfterSize:  after,
			Counters:   res.Counters,
		}); err != nil {
			return fmt.Errorf("opt: pass %s: writing stats: %w", spec.ID, err)
		}
	}
	return nil
}

// ModuleSize counts every node reachable from m's root region, recursing
// into subregions. Passes use before/after deltas of this count as their
// headline size statistic.
func ModuleSize(m *graph.Module) int { return regionSize(m.Root()) }

func regionSize(r *graph.Region) int {
	n := len(r.Nodes())
	for _, node := range r.Nodes() {
		for _, sub := range node.Subregions() {
			n += regionSize(sub)
		}
	}
	return n
}

// walkRegions calls fn for r and every subregion reachable from it,
// depth-first, subregions before their owning node's siblings are visited.
func walkRegions(r *graph.Region, fn func(*graph.Region)) {
	fn(r)
	for _, n := range r.Nodes() {
		for _, sub := range n.Subregions() {
			walkRegions(sub, fn)
		}
	}
}

// isStateType reports whether t is a state-edge type (io, memory, loop, or
// control(n)) rather than a value type.
func isStateType(t rtype.Type) bool {
	_, ok := t.(rtype.State)
	return ok
}

